package msgform

import (
	"context"

	internalLoader "github.com/goliatone/go-msgform/internal/contract/loader"
	internalParser "github.com/goliatone/go-msgform/internal/contract/parser"
	internalValidator "github.com/goliatone/go-msgform/internal/contract/validator"
	"github.com/goliatone/go-msgform/pkg/contract"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...contract.LoaderOption) contract.Loader {
	cfg := contract.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...contract.ParserOption) contract.Parser {
	cfg := contract.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// NewValidator builds a request/response validator for doc.
func NewValidator(ctx context.Context, doc contract.Document) (contract.Validator, error) {
	return internalValidator.New(ctx, doc)
}
