package authstate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/cccteam/authstate/authzsnap"
	"github.com/cccteam/authstate/mock/mock_authstate"
	"github.com/gorilla/securecookie"
	"go.uber.org/mock/gomock"
)

func testSecureCookie() *securecookie.SecureCookie {
	hashKey := []byte("0123456789abcdef0123456789abcdef")
	blockKey := []byte("fedcba9876543210fedcba9876543210")

	return securecookie.New(hashKey, blockKey)
}

// requestWithCookies builds a request carrying the cookies set on w.
func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := &http.Request{
		Method: http.MethodGet,
		URL:    &url.URL{},
		Header: http.Header{
			"Cookie": w.Header().Values("Set-Cookie"),
		},
	}

	return r
}

func TestSelectionCookieRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  authzsnap.ContextKey
	}{
		{name: "tenant only", key: authzsnap.ContextKey{TenantID: "t1"}},
		{name: "tenant and project", key: authzsnap.ContextKey{TenantID: "t1", ProjectID: "p1"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newSelectionCookieClient(testSecureCookie())

			w := httptest.NewRecorder()
			if err := c.writeSelectionCookie(w, tt.key); err != nil {
				t.Fatalf("writeSelectionCookie() = %v", err)
			}

			key, confirmed, ok := c.readSelectionCookie(requestWithCookies(w))
			if !ok {
				t.Fatal("readSelectionCookie() ok = false, want true")
			}
			if !confirmed {
				t.Error("readSelectionCookie() confirmed = false, want true")
			}
			if key != tt.key {
				t.Errorf("readSelectionCookie() key = %v, want %v", key, tt.key)
			}
		})
	}
}

func TestSelectionCookieAbsent(t *testing.T) {
	t.Parallel()

	c := newSelectionCookieClient(testSecureCookie())

	r := &http.Request{Method: http.MethodGet, URL: &url.URL{}}
	if _, _, ok := c.readSelectionCookie(r); ok {
		t.Error("readSelectionCookie() ok = true for request without cookie")
	}
}

func TestSelectionCookieTampered(t *testing.T) {
	t.Parallel()

	c := newSelectionCookieClient(testSecureCookie())

	r := &http.Request{
		Method: http.MethodGet,
		URL:    &url.URL{},
		Header: http.Header{
			"Cookie": []string{scSelectionCookieName.String() + "=garbage"},
		},
	}
	if _, _, ok := c.readSelectionCookie(r); ok {
		t.Error("readSelectionCookie() ok = true for tampered cookie")
	}
}

func TestClientSeedFromRequest(t *testing.T) {
	t.Parallel()

	key := authzsnap.ContextKey{TenantID: "t1", ProjectID: "p1"}

	type test struct {
		name        string
		cookieKey   authzsnap.ContextKey
		confirmed   bool
		present     bool
		expectFetch bool
	}
	tests := []test{
		{name: "confirmed selection restores context", cookieKey: key, confirmed: true, present: true, expectFetch: true},
		{name: "unconfirmed selection ignored", cookieKey: key, confirmed: false, present: true},
		{name: "absent cookie ignored", present: false},
		{name: "global key ignored", cookieKey: authzsnap.None(), confirmed: true, present: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)

			fetcher := mock_authstate.NewMockSnapshotFetcher(ctrl)
			if tt.expectFetch {
				fetcher.EXPECT().FetchSnapshot(gomock.Any(), tt.cookieKey, false).Return(authzsnap.Empty(), nil)
			}

			cookies := NewMockselectionCookieManager(ctrl)
			cookies.EXPECT().readSelectionCookie(gomock.Any()).Return(tt.cookieKey, tt.confirmed, tt.present)

			c := New(fetcher)
			c.cookies = cookies
			c.state = StateContextPending

			r := &http.Request{Method: http.MethodGet, URL: &url.URL{}}
			if err := c.SeedFromRequest(context.Background(), r); err != nil {
				t.Fatalf("SeedFromRequest() error = %v", err)
			}

			if tt.expectFetch {
				if got := c.CurrentKey(); got != tt.cookieKey {
					t.Errorf("CurrentKey() = %v, want %v", got, tt.cookieKey)
				}
			}
		})
	}
}

func TestClientSaveSelectionCookie(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	key := authzsnap.ContextKey{TenantID: "t1"}

	cookies := NewMockselectionCookieManager(ctrl)
	cookies.EXPECT().writeSelectionCookie(gomock.Any(), key).Return(nil)

	c := New(mock_authstate.NewMockSnapshotFetcher(ctrl))
	c.cookies = cookies
	c.current = key

	if err := c.SaveSelectionCookie(httptest.NewRecorder()); err != nil {
		t.Fatalf("SaveSelectionCookie() error = %v", err)
	}
}

func TestClientSaveSelectionCookieGlobalIsNoop(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	// No writeSelectionCookie expectation: the sentinel key is never
	// persisted.
	c := New(mock_authstate.NewMockSnapshotFetcher(ctrl))
	c.cookies = NewMockselectionCookieManager(ctrl)

	if err := c.SaveSelectionCookie(httptest.NewRecorder()); err != nil {
		t.Fatalf("SaveSelectionCookie() error = %v", err)
	}
}

func TestClientClearSelectionCookie(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	cookies := NewMockselectionCookieManager(ctrl)
	cookies.EXPECT().deleteSelectionCookie(gomock.Any())

	c := New(mock_authstate.NewMockSnapshotFetcher(ctrl))
	c.cookies = cookies

	c.ClearSelectionCookie(httptest.NewRecorder())
}
