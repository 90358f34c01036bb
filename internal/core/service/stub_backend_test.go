package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/domain"
	"github.com/Oussamaelmakhdari/Gestion-Des-Examens/internal/core/ports"
)

type backendCall struct {
	Method string
	Path   string
	Body   any
	Token  string
}

// stubBackend answers GETs from a path → value table, through a JSON round
// trip so decoding behaves like the real client.
type stubBackend struct {
	mu       sync.Mutex
	calls    []backendCall
	get      map[string]any
	post     map[string]any
	errs     map[string]error
	download *ports.Download

	afterWrite func(method, path string, body any)
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		get:  make(map[string]any),
		post: make(map[string]any),
		errs: make(map[string]error),
	}
}

func (b *stubBackend) record(ctx context.Context, method, path string, body any) error {
	b.mu.Lock()
	b.calls = append(b.calls, backendCall{
		Method: method,
		Path:   path,
		Body:   body,
		Token:  domain.SessionFromContext(ctx).Token(),
	})
	err := b.errs[method+" "+path]
	b.mu.Unlock()
	return err
}

func (b *stubBackend) Get(ctx context.Context, path string, out any) error {
	if err := b.record(ctx, http.MethodGet, path, nil); err != nil {
		return err
	}
	b.mu.Lock()
	v, ok := b.get[path]
	b.mu.Unlock()
	if !ok {
		return &domain.BackendError{Status: http.StatusNotFound, Detail: "Not Found"}
	}
	return roundTrip(v, out)
}

func (b *stubBackend) Post(ctx context.Context, path string, in, out any) error {
	if err := b.record(ctx, http.MethodPost, path, in); err != nil {
		return err
	}
	b.written(http.MethodPost, path, in)
	if out == nil {
		return nil
	}
	b.mu.Lock()
	v := b.post[path]
	b.mu.Unlock()
	return roundTrip(v, out)
}

func (b *stubBackend) Put(ctx context.Context, path string, in, out any) error {
	if err := b.record(ctx, http.MethodPut, path, in); err != nil {
		return err
	}
	b.written(http.MethodPut, path, in)
	return nil
}

func (b *stubBackend) Delete(ctx context.Context, path string) error {
	if err := b.record(ctx, http.MethodDelete, path, nil); err != nil {
		return err
	}
	b.written(http.MethodDelete, path, nil)
	return nil
}

func (b *stubBackend) Download(ctx context.Context, path string) (*ports.Download, error) {
	if err := b.record(ctx, http.MethodGet, path, nil); err != nil {
		return nil, err
	}
	return b.download, nil
}

func (b *stubBackend) written(method, path string, body any) {
	if b.afterWrite != nil {
		b.afterWrite(method, path, body)
	}
}

func (b *stubBackend) setGet(path string, v any) {
	b.mu.Lock()
	b.get[path] = v
	b.mu.Unlock()
}

// callsTo returns the recorded calls for one method and path.
func (b *stubBackend) callsTo(method, path string) []backendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []backendCall
	for _, c := range b.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func roundTrip(v, out any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// bodyJSON returns the wire form of a recorded request body.
func bodyJSON(v any) map[string]any {
	raw, _ := json.Marshal(v)
	var m map[string]any
	_ = json.Unmarshal(raw, &m)
	return m
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *recordingAudit) Record(e domain.AuditEntry) {
	a.mu.Lock()
	a.entries = append(a.entries, e)
	a.mu.Unlock()
}

func adminCtx() context.Context {
	return domain.ContextWithSession(context.Background(),
		domain.NewSession("sid", "admin-token", domain.Identity{Role: domain.RoleAdmin, DisplayName: "Admin", UserID: 1}))
}
