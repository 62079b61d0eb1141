package authstate

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cccteam/authstate/authzsnap"
	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
	"github.com/gorilla/securecookie"
)

// scKey is a type for storing values in the selection cookie
type scKey string

func (c scKey) String() string {
	return string(c)
}

const (
	// Keys used within the Secure Cookie
	scSelectionCookieName scKey = "ctxselection"
	scTenantID            scKey = "tenantID"
	scProjectID           scKey = "projectID"
	scConfirmed           scKey = "confirmed"
)

// Interface included for testability
type selectionCookieManager interface {
	readSelectionCookie(r *http.Request) (key authzsnap.ContextKey, confirmed bool, ok bool)
	writeSelectionCookie(w http.ResponseWriter, key authzsnap.ContextKey) error
	deleteSelectionCookie(w http.ResponseWriter)
}

var _ selectionCookieManager = &selectionCookieClient{}

type selectionCookieClient struct {
	secureCookie *securecookie.SecureCookie
}

func newSelectionCookieClient(secureCookie *securecookie.SecureCookie) *selectionCookieClient {
	return &selectionCookieClient{
		secureCookie: secureCookie,
	}
}

func (c *selectionCookieClient) readSelectionCookie(r *http.Request) (authzsnap.ContextKey, bool, bool) {
	cookie, err := r.Cookie(scSelectionCookieName.String())
	if err != nil {
		return authzsnap.None(), false, false
	}

	cval := make(map[scKey]string)
	if err := c.secureCookie.Decode(scSelectionCookieName.String(), cookie.Value, &cval); err != nil {
		logger.Req(r).Error(errors.Wrap(err, "secureCookie.Decode()"))

		return authzsnap.None(), false, false
	}

	key := authzsnap.ContextKey{
		TenantID:  cval[scTenantID],
		ProjectID: cval[scProjectID],
	}
	confirmed, _ := strconv.ParseBool(cval[scConfirmed])

	return key, confirmed, true
}

func (c *selectionCookieClient) writeSelectionCookie(w http.ResponseWriter, key authzsnap.ContextKey) error {
	cval := map[scKey]string{
		scTenantID:  key.TenantID,
		scProjectID: key.ProjectID,
		scConfirmed: strconv.FormatBool(true),
	}

	encoded, err := c.secureCookie.Encode(scSelectionCookieName.String(), cval)
	if err != nil {
		return errors.Wrap(err, "securecookie.Encode()")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     scSelectionCookieName.String(),
		Value:    encoded,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return nil
}

func (c *selectionCookieClient) deleteSelectionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     scSelectionCookieName.String(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// SeedFromRequest restores the context selection carried by the request's
// selection cookie. Read once at startup of a browser session; an absent
// or unconfirmed cookie is not an error.
func (c *Client) SeedFromRequest(ctx context.Context, r *http.Request) error {
	if c.cookies == nil {
		return nil
	}

	key, confirmed, ok := c.cookies.readSelectionCookie(r)
	if !ok || !confirmed || key.IsGlobal() {
		return nil
	}

	if err := c.SelectContext(ctx, key); err != nil {
		return errors.Wrap(err, "Client.SelectContext()")
	}

	return nil
}

// SaveSelectionCookie writes the current context selection to the
// response so the next browser session starts from it.
func (c *Client) SaveSelectionCookie(w http.ResponseWriter) error {
	if c.cookies == nil {
		return nil
	}

	key := c.CurrentKey()
	if key.IsGlobal() {
		return nil
	}

	if err := c.cookies.writeSelectionCookie(w, key); err != nil {
		return errors.Wrap(err, "writeSelectionCookie()")
	}

	return nil
}

// ClearSelectionCookie expires the selection cookie. Called on logout.
func (c *Client) ClearSelectionCookie(w http.ResponseWriter) {
	if c.cookies == nil {
		return
	}

	c.cookies.deleteSelectionCookie(w)
}
