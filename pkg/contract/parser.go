package contract

import "context"

// Parser extracts the addressable operations from a Document.
type Parser interface {
	Operations(ctx context.Context, doc Document) (Operations, error)
}

// ParserOptions exposes parse-time toggles.
type ParserOptions struct {
	// Validate runs OpenAPI structural validation before extracting
	// operations. Defaults to true.
	Validate bool

	// Required lists operation ids that must be present for the parse to
	// succeed.
	Required []string
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithDocumentValidation toggles structural validation.
func WithDocumentValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithRequiredOperations fails the parse when any id is missing.
func WithRequiredOperations(ids ...string) ParserOption {
	return func(opts *ParserOptions) {
		opts.Required = append(opts.Required, ids...)
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{Validate: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
