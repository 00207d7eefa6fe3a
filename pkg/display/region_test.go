package display_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-msgform/pkg/display"
	"github.com/goliatone/go-msgform/pkg/message"
	"github.com/goliatone/go-msgform/pkg/render"
)

func TestRegion_StartsIdle(t *testing.T) {
	r := display.New()
	if got := r.Current().Kind; got != render.KindIdle {
		t.Fatalf("kind = %q", got)
	}
}

func TestRegion_CommitStampsRequestID(t *testing.T) {
	r := display.New()
	ticket := r.Begin(message.FormRetrieve)
	if ticket.RequestID == "" || ticket.Seq != 1 {
		t.Fatalf("unexpected ticket %+v", ticket)
	}

	if !r.Commit(ticket, render.NotFound("ghost")) {
		t.Fatalf("expected commit to apply")
	}
	if got := r.Current().RequestID; got != ticket.RequestID {
		t.Fatalf("request id = %q, want %q", got, ticket.RequestID)
	}
}

func TestRegion_StaleResponseDiscarded(t *testing.T) {
	r := display.New()
	older := r.Begin(message.FormSend)
	newer := r.Begin(message.FormRetrieve)

	if !r.Commit(newer, render.NotFound("ghost")) {
		t.Fatalf("newer commit should apply")
	}
	if r.Commit(older, render.Stored(message.Stored{Name: "A"})) {
		t.Fatalf("older commit should be discarded")
	}
	if got := r.Current().Kind; got != render.KindNotFound {
		t.Fatalf("stale response overwrote region: kind = %q", got)
	}
}

func TestRegion_InOrderCommitsBothApply(t *testing.T) {
	r := display.New()
	first := r.Begin(message.FormSend)
	second := r.Begin(message.FormSend)

	if !r.Commit(first, render.Idle()) || !r.Commit(second, render.NotFound("x")) {
		t.Fatalf("in-order commits should both apply")
	}
	if r.Commit(second, render.Idle()) {
		t.Fatalf("a ticket commits at most once")
	}
}

func TestRegion_RejectsForeignTickets(t *testing.T) {
	r := display.New()
	if r.Commit(display.Ticket{}, render.Idle()) {
		t.Fatalf("zero ticket must be rejected")
	}
	if r.Commit(display.Ticket{Seq: 9}, render.Idle()) {
		t.Fatalf("unissued ticket must be rejected")
	}
}

func TestRegion_Subscribe(t *testing.T) {
	r := display.New()
	var seen []render.Kind
	cancel := r.Subscribe(func(v render.View) {
		seen = append(seen, v.Kind)
	})

	r.Commit(r.Begin(message.FormRetrieve), render.NotFound("a"))
	stale := r.Begin(message.FormSend)
	r.Commit(r.Begin(message.FormRetrieve), render.Retrieved(message.Retrieved{Name: "a"}))
	r.Commit(stale, render.Idle())
	cancel()
	r.Commit(r.Begin(message.FormSend), render.Idle())

	want := []render.Kind{render.KindNotFound, render.KindRetrieved}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestRegion_ConcurrentCommitsKeepNewest(t *testing.T) {
	r := display.New()
	const n = 50
	tickets := make([]display.Ticket, n)
	for i := range tickets {
		tickets[i] = r.Begin(message.FormRetrieve)
	}

	var wg sync.WaitGroup
	for i := n - 1; i >= 0; i-- {
		wg.Add(1)
		go func(tk display.Ticket) {
			defer wg.Done()
			r.Commit(tk, render.NotFound(tk.RequestID))
		}(tickets[i])
	}
	wg.Wait()

	last := tickets[n-1]
	if got := r.Current().RequestID; got != last.RequestID {
		t.Fatalf("region shows %q, want newest %q", got, last.RequestID)
	}
}
