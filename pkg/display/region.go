// Package display holds the single display region shared by both forms.
// Submissions take a Ticket before their request and commit the rendered
// View afterwards; a response older than the last committed one is dropped,
// so the region always shows the newest outcome.
package display

import (
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-msgform/pkg/render"
)

// Ticket identifies one submission. Seq orders submissions across both forms.
type Ticket struct {
	Form      string
	Seq       uint64
	RequestID string
}

// Listener observes applied views. Listeners run in commit order and must not
// call back into the Region.
type Listener func(render.View)

// Region is safe for concurrent use.
type Region struct {
	mu        sync.Mutex
	deliverMu sync.Mutex

	issued    uint64
	committed uint64
	view      render.View

	listeners map[int]Listener
	nextID    int
}

// New returns a region showing the idle view.
func New() *Region {
	return &Region{
		view:      render.Idle(),
		listeners: make(map[int]Listener),
	}
}

// Begin issues a ticket for a submission of form.
func (r *Region) Begin(form string) Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued++
	return Ticket{
		Form:      form,
		Seq:       r.issued,
		RequestID: uuid.NewString(),
	}
}

// Commit shows view unless a newer ticket has already been committed. It
// reports whether the view was applied. The view is stamped with the ticket's
// request id.
func (r *Region) Commit(t Ticket, view render.View) bool {
	r.mu.Lock()
	if t.Seq == 0 || t.Seq > r.issued || t.Seq <= r.committed {
		r.mu.Unlock()
		return false
	}
	view.RequestID = t.RequestID
	r.committed = t.Seq
	r.view = view
	listeners := make([]Listener, 0, len(r.listeners))
	for id := 0; id < r.nextID; id++ {
		if fn, ok := r.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	// Take the delivery lock before releasing state so listeners see commits
	// in order.
	r.deliverMu.Lock()
	r.mu.Unlock()
	defer r.deliverMu.Unlock()

	for _, fn := range listeners {
		fn(view)
	}
	return true
}

// Current returns the view on display.
func (r *Region) Current() render.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

// Subscribe registers fn for applied views and returns its cancel function.
func (r *Region) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.listeners, id)
			r.mu.Unlock()
		})
	}
}
