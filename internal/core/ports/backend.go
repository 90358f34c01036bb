package ports

import "context"

// Download is a binary payload fetched from the backend, passed through to
// the browser untouched.
type Download struct {
	ContentType string
	Data        []byte
}

// Backend is the authenticated REST client. Implementations attach the bearer
// token of the session carried by ctx, decode 2xx JSON bodies into out and
// return *domain.BackendError for any other status.
type Backend interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string) error
	Download(ctx context.Context, path string) (*Download, error)
}
