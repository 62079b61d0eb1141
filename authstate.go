// Package authstate resolves a backend-issued identity/role/permission
// payload into a queryable authorization snapshot and keeps it consistent
// across tenant/project context switches.
package authstate

import (
	"context"
	"sync"

	"github.com/cccteam/authstate/authzsnap"
	"github.com/cccteam/authstate/contextstore"
	"github.com/cccteam/authstate/fetcher"
	"github.com/cccteam/ccc/accesstypes"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"go.opentelemetry.io/otel"
)

const name = "github.com/cccteam/authstate"

// State is the controller's lifecycle phase.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateContextPending  State = "context-pending"
	StateReady           State = "ready"
	StateError           State = "error"
)

// Client orchestrates login, context selection, and logout against a
// snapshot fetcher, and exposes the single current snapshot to the rest
// of the application. It is safe for concurrent use.
//
// The Client owns which ContextKey is current; the fetcher owns the
// per-key cache and is never mutated around.
type Client struct {
	fetcher SnapshotFetcher
	store   contextstore.Store
	cookies selectionCookieManager

	mu       sync.RWMutex
	state    State
	username string
	current  authzsnap.ContextKey
	snapshot *authzsnap.Snapshot
}

// New creates a Client in the unauthenticated state.
func New(fetcher SnapshotFetcher, opts ...Option) *Client {
	c := &Client{
		fetcher: fetcher,
		state:   StateUnauthenticated,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Login establishes the authorization state for username after the
// identity provider has issued a credential. It fetches the no-context
// snapshot to discover the subject's scope, then restores a persisted
// context selection if one exists.
func (c *Client) Login(ctx context.Context, username string) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Client.Login()")
	defer span.End()

	c.mu.Lock()
	c.state = StateAuthenticating
	c.username = username
	c.mu.Unlock()

	snap, err := c.fetcher.FetchSnapshot(ctx, authzsnap.None(), false)
	if err != nil {
		c.fetchFailed(err)

		return errors.Wrap(err, "SnapshotFetcher.FetchSnapshot()")
	}

	c.mu.Lock()
	c.current = authzsnap.None()
	c.snapshot = snap
	c.state = StateContextPending
	if snap.IsProductOwner() {
		// Global scope needs no tenant selection.
		c.state = StateReady
	}
	c.mu.Unlock()

	if key, ok := c.storedSelection(ctx, username); ok {
		if err := c.SelectContext(ctx, key); err != nil {
			// The restored selection may reference a tenant the user no
			// longer belongs to. Selection is retried interactively; the
			// no-context snapshot stays usable.
			logger.Ctx(ctx).Infof("stored context selection %s not restored: %v", key, err)
		}
	}

	return nil
}

// SelectContext switches the current context to key, fetching its
// snapshot if it is not already cached. The prior key's cache entry is
// retained for fast back-navigation. On failure the last known-good
// snapshot remains current.
func (c *Client) SelectContext(ctx context.Context, key authzsnap.ContextKey) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Client.SelectContext()")
	defer span.End()

	c.mu.RLock()
	state := c.state
	username := c.username
	c.mu.RUnlock()

	if state == StateUnauthenticated || state == StateAuthenticating {
		return errors.New("context selection requires an authenticated session")
	}

	snap, err := c.fetcher.FetchSnapshot(ctx, key, false)
	if err != nil {
		c.fetchFailed(err)

		return errors.Wrap(err, "SnapshotFetcher.FetchSnapshot()")
	}

	c.mu.Lock()
	c.current = key
	c.snapshot = snap
	c.state = StateReady
	if key.IsGlobal() && !snap.IsProductOwner() {
		c.state = StateContextPending
	}
	c.mu.Unlock()

	c.persistSelection(ctx, username, key)

	return nil
}

// Refresh re-fetches the current context's snapshot, bypassing the
// cache. Used after server-side role changes.
func (c *Client) Refresh(ctx context.Context) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Client.Refresh()")
	defer span.End()

	c.mu.RLock()
	key := c.current
	c.mu.RUnlock()

	snap, err := c.fetcher.FetchSnapshot(ctx, key, true)
	if err != nil {
		c.fetchFailed(err)

		return errors.Wrap(err, "SnapshotFetcher.FetchSnapshot()")
	}

	c.mu.Lock()
	if c.current == key {
		c.snapshot = snap
	}
	c.mu.Unlock()

	return nil
}

// Logout clears the credential-scoped state. The fetcher cache and the
// current snapshot are cleared before Logout returns, so a permission
// check racing the logout observes the empty state, never a stale
// authorized one.
func (c *Client) Logout(ctx context.Context) error {
	ctx, span := otel.Tracer(name).Start(ctx, "Client.Logout()")
	defer span.End()

	c.mu.Lock()
	username := c.username
	c.snapshot = nil
	c.current = authzsnap.None()
	c.username = ""
	c.state = StateUnauthenticated
	c.fetcher.Reset()
	c.mu.Unlock()

	if c.store != nil && username != "" {
		if err := c.store.ClearSelection(ctx, username); err != nil {
			return errors.Wrap(err, "contextstore.Store.ClearSelection()")
		}
	}

	return nil
}

// Current returns the snapshot for the current context, or nil when none
// is loaded. All predicates on a nil snapshot deny.
func (c *Client) Current() *authzsnap.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snapshot
}

// State returns the controller's lifecycle phase.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

// CurrentKey returns the ContextKey the current snapshot applies to.
func (c *Client) CurrentKey() authzsnap.ContextKey {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

// DisplayName returns the current subject's display name.
func (c *Client) DisplayName() string {
	return c.Current().DisplayName()
}

// Email returns the current subject's email.
func (c *Client) Email() string {
	return c.Current().Email()
}

// RoleNames returns the current snapshot's role names.
func (c *Client) RoleNames() []string {
	return c.Current().RoleNames()
}

// PermissionNames returns the current snapshot's permission names,
// synthetics included.
func (c *Client) PermissionNames() []accesstypes.Permission {
	return c.Current().PermissionNames()
}

// fetchFailed records a fetch failure. The last known-good snapshot is
// retained so the UI keeps rendering; without one the controller enters
// the error state. A 401 means the credential itself is no longer valid,
// so it forces the cleared unauthenticated state instead.
func (c *Client) fetchFailed(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if fetcher.HasUnauthorized(err) {
		c.snapshot = nil
		c.current = authzsnap.None()
		c.username = ""
		c.state = StateUnauthenticated
		c.fetcher.Reset()

		return
	}

	if c.snapshot == nil {
		c.state = StateError
	}
}

// storedSelection loads a confirmed persisted selection for username.
func (c *Client) storedSelection(ctx context.Context, username string) (authzsnap.ContextKey, bool) {
	if c.store == nil {
		return authzsnap.None(), false
	}

	sel, err := c.store.Selection(ctx, username)
	if err != nil || sel == nil || !sel.Confirmed || sel.TenantID == "" {
		return authzsnap.None(), false
	}

	return authzsnap.ContextKey{TenantID: sel.TenantID, ProjectID: sel.ProjectID}, true
}

// persistSelection saves a confirmed non-global selection.
func (c *Client) persistSelection(ctx context.Context, username string, key authzsnap.ContextKey) {
	if c.store == nil || username == "" || key.IsGlobal() {
		return
	}

	sel := &contextstore.Selection{
		Username:  username,
		TenantID:  key.TenantID,
		ProjectID: key.ProjectID,
		Confirmed: true,
	}
	if err := c.store.SaveSelection(ctx, sel); err != nil {
		// Persistence is a convenience; selection still applies for this
		// session.
		logger.Ctx(ctx).Errorf("contextstore.Store.SaveSelection(): %v", err)
	}
}
