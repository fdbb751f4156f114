package middleware

import (
	"context"
	"culinary-calc/backend/app/models"
	"net/http"
)

type ctxKey int

const identityKey ctxKey = 1

// Identity headers forwarded to API handlers. Inbound copies are always
// stripped by the gateway, so handlers may trust them.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
)

var identityHeaders = []string{HeaderUserID, HeaderUserEmail, HeaderUserRole}

type Identity struct {
	UserID string
	Email  string
	Role   models.Role
}

func (id Identity) IsAdmin() bool { return id.Role.IsAdmin() }

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.UserID != ""
}

// IdentityFromHeaders reads the identity the gateway injected into an API request.
func IdentityFromHeaders(r *http.Request) (Identity, bool) {
	id := Identity{
		UserID: r.Header.Get(HeaderUserID),
		Email:  r.Header.Get(HeaderUserEmail),
		Role:   models.Role(r.Header.Get(HeaderUserRole)),
	}
	if id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}

func (id Identity) setHeaders(h http.Header) {
	h.Set(HeaderUserID, id.UserID)
	h.Set(HeaderUserEmail, id.Email)
	h.Set(HeaderUserRole, id.Role.String())
}
