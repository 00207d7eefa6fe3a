package formclient

import (
	"context"
	"sync"

	"github.com/goliatone/go-msgform/pkg/render"
)

// SendForm holds the store form fields.
type SendForm struct {
	Name    string
	Message string
}

// RetrieveForm holds the retrieve form field.
type RetrieveForm struct {
	Name string
}

// Page keeps the two forms side by side. Submitting one form reads only that
// form; neither submission writes to any form.
type Page struct {
	mu       sync.RWMutex
	send     SendForm
	retrieve RetrieveForm
	client   *FormClient
}

// NewPage returns a page with empty forms bound to fc.
func NewPage(fc *FormClient) *Page {
	return &Page{client: fc}
}

// SetSend replaces the store form values.
func (p *Page) SetSend(f SendForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = f
}

// SetRetrieve replaces the retrieve form values.
func (p *Page) SetRetrieve(f RetrieveForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.retrieve = f
}

// Send returns the store form values.
func (p *Page) Send() SendForm {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.send
}

// Retrieve returns the retrieve form values.
func (p *Page) Retrieve() RetrieveForm {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.retrieve
}

// Display returns the view currently shown.
func (p *Page) Display() render.View {
	return p.client.Region().Current()
}

// SubmitSend submits the store form.
func (p *Page) SubmitSend(ctx context.Context) (render.View, Outcome) {
	f := p.Send()
	return p.client.HandleSend(ctx, f.Name, f.Message)
}

// SubmitRetrieve submits the retrieve form.
func (p *Page) SubmitRetrieve(ctx context.Context) (render.View, Outcome) {
	f := p.Retrieve()
	return p.client.HandleRetrieve(ctx, f.Name)
}
