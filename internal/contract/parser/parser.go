package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-msgform/pkg/contract"
)

// Parser implements contract.Parser using kin-openapi.
type Parser struct {
	options contract.ParserOptions
}

var _ contract.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options contract.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Operations converts a Document into operations keyed by operationId.
func (p *Parser) Operations(ctx context.Context, doc contract.Document) (contract.Operations, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spec, err := Load(ctx, doc)
	if err != nil {
		return nil, err
	}

	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("contract parser: validate: %w", err)
		}
	}

	ops := make(contract.Operations)
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, operation := range item.Operations() {
				collectOperation(ops, method, path, operation)
			}
		}
	}
	if len(ops) == 0 {
		return nil, errors.New("contract parser: no operations extracted")
	}

	if err := ops.Require(p.options.Required...); err != nil {
		return nil, err
	}
	return ops, nil
}

// Load decodes the raw document into a kin-openapi model without
// validating it.
func Load(ctx context.Context, doc contract.Document) (*openapi3.T, error) {
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("contract parser: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract parser: load document: %w", err)
	}
	return spec, nil
}

func collectOperation(target contract.Operations, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	op, err := contract.NewOperation(id, method, path)
	if err != nil {
		return
	}
	op.Summary = operation.Summary
	if op.Summary == "" {
		op.Summary = op.Method + " " + path
	}
	target[id] = op
}
