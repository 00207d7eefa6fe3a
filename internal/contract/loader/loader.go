package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-msgform/pkg/contract"
)

// Loader implements contract.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the top-level msgform package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ contract.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options contract.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src contract.Source) (contract.Document, error) {
	if src == nil {
		return contract.Document{}, errors.New("contract loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case contract.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case contract.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case contract.SourceKindURL:
		if !l.allowHTTP {
			return contract.Document{}, errors.New("contract loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("contract loader: unsupported source kind")
	}
	if err != nil {
		return contract.Document{}, err
	}

	return contract.NewDocument(src, data)
}
