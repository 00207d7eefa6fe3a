package validator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	"github.com/goliatone/go-msgform/internal/contract/parser"
	"github.com/goliatone/go-msgform/pkg/contract"
)

// Validator implements contract.Validator with kin-openapi request and
// response filters.
type Validator struct {
	router routers.Router
}

var _ contract.Validator = (*Validator)(nil)

// New loads and validates doc, then prepares a router for matching requests.
func New(ctx context.Context, doc contract.Document) (*Validator, error) {
	spec, err := parser.Load(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract validator: validate document: %w", err)
	}
	router, err := gorillamux.NewRouter(spec)
	if err != nil {
		return nil, fmt.Errorf("contract validator: build router: %w", err)
	}
	return &Validator{router: router}, nil
}

// ValidateRequest checks req against the matching operation.
func (v *Validator) ValidateRequest(ctx context.Context, req *http.Request) error {
	input, err := v.requestInput(req)
	if err != nil {
		return err
	}

	body, err := snapshotBody(req)
	if err != nil {
		return err
	}
	defer restoreBody(req, body)

	if err := openapi3filter.ValidateRequest(ctx, input); err != nil {
		return fmt.Errorf("%w: request %s %s: %v", contract.ErrViolation, req.Method, req.URL.Path, err)
	}
	return nil
}

// ValidateResponse checks a response status, headers and body produced for req.
func (v *Validator) ValidateResponse(ctx context.Context, req *http.Request, status int, header http.Header, body []byte) error {
	input, err := v.requestInput(req)
	if err != nil {
		return err
	}

	if header == nil {
		header = http.Header{}
	}
	resp := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: input,
		Status:                 status,
		Header:                 header,
		Options:                &openapi3filter.Options{IncludeResponseStatus: true},
	}
	resp.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(ctx, resp); err != nil {
		return fmt.Errorf("%w: response %d for %s %s: %v", contract.ErrViolation, status, req.Method, req.URL.Path, err)
	}
	return nil
}

func (v *Validator) requestInput(req *http.Request) (*openapi3filter.RequestValidationInput, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", contract.ErrViolation)
	}
	route, params, err := v.router.FindRoute(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", contract.ErrViolation, req.Method, req.URL.Path, err)
	}
	return &openapi3filter.RequestValidationInput{
		Request:    req,
		PathParams: params,
		Route:      route,
		Options:    &openapi3filter.Options{},
	}, nil
}

func snapshotBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	data, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("contract validator: read request body: %w", err)
	}
	restoreBody(req, data)
	return data, nil
}

func restoreBody(req *http.Request, data []byte) {
	if data == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(data))
	req.ContentLength = int64(len(data))
}
