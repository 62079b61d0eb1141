package authstate

import (
	"github.com/cccteam/authstate/contextstore"
	"github.com/gorilla/securecookie"
)

// Option configures a Client.
type Option func(*Client)

// WithContextStore persists confirmed context selections so they survive
// across sessions.
func WithContextStore(store contextstore.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithSelectionCookie enables the encrypted selection cookie used to
// seed the initial ContextKey on page load.
func WithSelectionCookie(secureCookie *securecookie.SecureCookie) Option {
	return func(c *Client) {
		c.cookies = newSelectionCookieClient(secureCookie)
	}
}
