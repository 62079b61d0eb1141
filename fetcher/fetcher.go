// Package fetcher coordinates retrieval of the authorization payload,
// keyed by the active tenant/project context. It caches one normalized
// snapshot per ContextKey and collapses concurrent requests for the same
// key into a single network call.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/cccteam/authstate/authzsnap"
	"github.com/cccteam/authstate/payload"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"
)

const name = "github.com/cccteam/authstate/fetcher"

const (
	// Context scope headers consumed by the authorization endpoint.
	// Both are omitted for global scope; only HeaderTenant is sent for
	// tenant scope.
	HeaderTenant  = "X-Tenant"
	HeaderProject = "X-Project"
)

// Doer executes an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(r *http.Request) (*http.Response, error)
}

// flight is one in-progress fetch, shared by all callers that requested
// the same ContextKey before it resolved.
type flight struct {
	done chan struct{}
	snap *authzsnap.Snapshot
	err  error
}

// fetchState is the cache entry for one ContextKey.
type fetchState struct {
	snapshot *authzsnap.Snapshot
	resolved bool
	flight   *flight
}

// Coordinator owns the ContextKey → fetchState map for the lifetime of a
// session. It is safe for concurrent use.
type Coordinator struct {
	client      Doer
	tokenSource oauth2.TokenSource
	endpoint    string
	metrics     *Metrics

	mu     sync.Mutex
	states map[authzsnap.ContextKey]*fetchState
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

// New creates a Coordinator fetching from endpoint, authenticating each
// request with a bearer token from tokenSource.
func New(client Doer, tokenSource oauth2.TokenSource, endpoint string, opts ...Option) *Coordinator {
	c := &Coordinator{
		client:      client,
		tokenSource: tokenSource,
		endpoint:    endpoint,
		states:      make(map[authzsnap.ContextKey]*fetchState),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchSnapshot returns the normalized snapshot for key.
//
// A resolved cache entry is returned without network access unless
// forceRefresh is set. If a fetch for the same key is already in flight,
// the caller waits on it and receives its result or error (single
// flight). On failure the in-flight slot is cleared so a later call may
// retry; a previously resolved snapshot for the key is retained.
func (c *Coordinator) FetchSnapshot(ctx context.Context, key authzsnap.ContextKey, forceRefresh bool) (*authzsnap.Snapshot, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Coordinator.FetchSnapshot()")
	defer span.End()

	c.mu.Lock()
	st, ok := c.states[key]
	if !ok {
		st = &fetchState{}
		c.states[key] = st
	}

	if st.resolved && !forceRefresh {
		snap := st.snapshot
		c.mu.Unlock()
		c.metrics.cacheHit()

		return snap, nil
	}

	if st.flight != nil {
		f := st.flight
		c.mu.Unlock()
		c.metrics.sharedFlight()

		return c.await(ctx, f)
	}

	f := &flight{done: make(chan struct{})}
	st.flight = f
	c.mu.Unlock()

	snap, err := c.fetch(ctx, key)
	c.metrics.fetch(err)

	c.mu.Lock()
	// The entry may have been invalidated (or the whole map reset on
	// logout) while the request was in flight. A stale result is still
	// delivered to its callers but must not repopulate the cache.
	if cur, ok := c.states[key]; ok && cur == st {
		if err == nil {
			st.snapshot = snap
			st.resolved = true
		}
		st.flight = nil
	}
	c.mu.Unlock()

	f.snap, f.err = snap, err
	close(f.done)

	if err != nil {
		return nil, err
	}

	return snap, nil
}

// await blocks until f resolves or ctx is done. Callers that abandon the
// wait do not abort the underlying fetch.
func (c *Coordinator) await(ctx context.Context, f *flight) (*authzsnap.Snapshot, error) {
	select {
	case <-f.done:
		if f.err != nil {
			return nil, f.err
		}

		return f.snap, nil
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "context.Context.Done()")
	}
}

// Invalidate evicts the cache entry for key, forcing the next
// FetchSnapshot call to hit the network.
func (c *Coordinator) Invalidate(key authzsnap.ContextKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.states, key)
}

// Reset synchronously drops every cache entry. Called on logout; a
// permission check racing the reset observes the cleared map, never a
// stale snapshot.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.states = make(map[authzsnap.ContextKey]*fetchState)
}

// fetch performs the network request and normalization for key.
func (c *Coordinator) fetch(ctx context.Context, key authzsnap.ContextKey) (*authzsnap.Snapshot, error) {
	ctx, span := otel.Tracer(name).Start(ctx, "Coordinator.fetch()")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "http.NewRequestWithContext()")
	}

	token, err := c.tokenSource.Token()
	if err != nil {
		return nil, errors.Wrap(err, "oauth2.TokenSource.Token()")
	}
	token.SetAuthHeader(req)

	if !key.IsGlobal() {
		req.Header.Set(HeaderTenant, key.TenantID)
		if key.HasProject() {
			req.Header.Set(HeaderProject, key.ProjectID)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "Doer.Do()")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewUnauthorizedError("credential rejected by authorization endpoint")
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &HTTPError{
			Message: "unexpected status from authorization endpoint",
			Status:  resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "io.ReadAll()")
	}

	u, err := payload.Decode(body)
	if err != nil {
		return nil, errors.Wrap(err, "payload.Decode()")
	}

	snap := payload.Normalize(u)
	logger.Ctx(ctx).Infof("fetched authorization snapshot for %s: %d roles, %d permissions",
		key, len(snap.Roles), len(snap.Permissions))

	return snap, nil
}
