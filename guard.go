package authstate

import (
	"net/http"

	"github.com/cccteam/authstate/authzsnap"
	"github.com/cccteam/ccc/accesstypes"
	"github.com/cccteam/httpio"
	"go.opentelemetry.io/otel"
)

// RequireRoute is middleware that denies the request with a 403 unless
// the current snapshot satisfies the route's descriptor. With no
// snapshot loaded every constrained descriptor denies (fail closed).
func (c *Client) RequireRoute(descriptor authzsnap.RouteDescriptor) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return c.handle(func(w http.ResponseWriter, r *http.Request) error {
			ctx, span := otel.Tracer(name).Start(r.Context(), "Client.RequireRoute()")
			defer span.End()

			if !c.Current().CanAccessRoute(descriptor) {
				return httpio.NewEncoder(w).ClientMessage(ctx, httpio.NewForbiddenMessage("access denied"))
			}

			next.ServeHTTP(w, r.WithContext(ctx))

			return nil
		})
	}
}

// RequirePermission is shorthand for a single-permission route guard.
func (c *Client) RequirePermission(permission accesstypes.Permission) func(next http.Handler) http.Handler {
	return c.RequireRoute(authzsnap.RouteDescriptor{Permission: permission})
}
