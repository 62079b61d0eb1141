package authstate

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cccteam/authstate/authzsnap"
	"github.com/cccteam/ccc/accesstypes"
	"github.com/go-chi/chi/v5"
)

func guardTestClient(snapshot *authzsnap.Snapshot) *Client {
	return &Client{
		state:    StateReady,
		snapshot: snapshot,
	}
}

func TestClientRequireRoute(t *testing.T) {
	t.Parallel()

	snapshot := authzsnap.New(
		authzsnap.Subject{ID: "u1"},
		[]authzsnap.Role{{Name: "Tenant Admin"}},
		[]authzsnap.Permission{{Name: "ViewProjects"}, {Name: "UpdateProjects"}},
		authzsnap.Context{TenantID: "t1"},
	)

	tests := []struct {
		name       string
		client     *Client
		descriptor authzsnap.RouteDescriptor
		wantStatus int
	}{
		{
			name:       "permission satisfied",
			client:     guardTestClient(snapshot),
			descriptor: authzsnap.RouteDescriptor{Permission: "ViewProjects"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "permission denied",
			client:     guardTestClient(snapshot),
			descriptor: authzsnap.RouteDescriptor{Permission: "DeleteProjects"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "require all satisfied",
			client: guardTestClient(snapshot),
			descriptor: authzsnap.RouteDescriptor{
				Permissions: []accesstypes.Permission{"ViewProjects", "UpdateProjects"},
				RequireAll:  true,
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "role satisfied",
			client:     guardTestClient(snapshot),
			descriptor: authzsnap.RouteDescriptor{Roles: []string{"Tenant Admin"}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unconstrained route allowed",
			client:     guardTestClient(snapshot),
			descriptor: authzsnap.RouteDescriptor{},
			wantStatus: http.StatusOK,
		},
		{
			name:       "no snapshot fails closed",
			client:     guardTestClient(nil),
			descriptor: authzsnap.RouteDescriptor{Permission: "ViewProjects"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no snapshot unconstrained route still allowed",
			client:     guardTestClient(nil),
			descriptor: authzsnap.RouteDescriptor{},
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := chi.NewRouter()
			r.Use(tt.client.RequireRoute(tt.descriptor))
			r.Get("/projects", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects", http.NoBody))

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("status = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestClientRequirePermission(t *testing.T) {
	t.Parallel()

	snapshot := authzsnap.New(
		authzsnap.Subject{ID: "u1"},
		nil,
		[]authzsnap.Permission{{Name: "ViewBatches"}},
		authzsnap.Context{},
	)

	r := chi.NewRouter()
	r.With(guardTestClient(snapshot).RequirePermission("ViewBatches")).Get("/batches", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.With(guardTestClient(snapshot).RequirePermission("DeleteBatches")).Delete("/batches", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/batches", http.NoBody))
	if w.Code != http.StatusOK {
		t.Errorf("GET status = %d, want %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/batches", http.NoBody))
	if w.Code != http.StatusForbidden {
		t.Errorf("DELETE status = %d, want %d", w.Code, http.StatusForbidden)
	}
}
