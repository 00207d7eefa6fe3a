package contract

import (
	"context"
	"errors"
	"net/http"
)

// ErrViolation marks requests or responses that do not conform to the
// contract document. Implementations wrap it with the underlying cause.
var ErrViolation = errors.New("contract: violation")

// Validator checks HTTP exchanges against a contract document.
type Validator interface {
	// ValidateRequest checks method, path, parameters and body. The request
	// body is left readable for the caller.
	ValidateRequest(ctx context.Context, req *http.Request) error
	// ValidateResponse checks a response produced for req.
	ValidateResponse(ctx context.Context, req *http.Request, status int, header http.Header, body []byte) error
}
