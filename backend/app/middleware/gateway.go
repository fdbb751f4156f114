package middleware

import (
	"context"
	"culinary-calc/backend/app/models"
	"culinary-calc/backend/global"
	"encoding/json"
	"net/http"
	"strings"
)

type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.User, error)
}

type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// State is what the gateway decided for a single request.
type State int

const (
	StatePublic State = iota
	StateUnauthenticated
	StateAuthenticatedUser
	StateAuthenticatedAdmin
	StateRejected
)

func (s State) String() string {
	switch s {
	case StatePublic:
		return "public"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticatedUser:
		return "authenticated_user"
	case StateAuthenticatedAdmin:
		return "authenticated_admin"
	case StateRejected:
		return "rejected"
	}
	return "unknown"
}

var (
	staticPrefixes = []string{"/static/", "/favicon"}
	publicPaths    = map[string]bool{
		"/":                  true,
		"/login":             true,
		"/register":          true,
		"/api/auth/login":    true,
		"/api/auth/register": true,
	}
	adminPrefixes = []string{"/admin", "/api/admin"}
)

func IsAPIPath(path string) bool { return strings.HasPrefix(path, "/api/") }

func IsPublicPath(path string) bool {
	for _, p := range staticPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return publicPaths[path]
}

// IsAdminPath matches an admin prefix itself or anything below it, so
// "/administrator" is not admin scoped.
func IsAdminPath(path string) bool {
	for _, p := range adminPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Gateway authenticates every request before it reaches the router.
// Nothing is cached between requests.
type Gateway struct {
	Sessions SessionValidator
	Admins   AdminChecker
	Cookie   SessionCookie
	// LoginPath and LandingPath default to /login and /dashboard.
	LoginPath   string
	LandingPath string
}

func (g *Gateway) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = stripIdentity(r)
		state := g.resolve(w, r, next)
		global.Logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Stringer("state", state).Msg("gateway")
	})
}

func (g *Gateway) resolve(w http.ResponseWriter, r *http.Request, next http.Handler) State {
	path := r.URL.Path
	if IsPublicPath(path) {
		next.ServeHTTP(w, r)
		return StatePublic
	}
	api := IsAPIPath(path)

	token := g.Cookie.Read(r)
	if token == "" {
		g.unauthenticated(w, r, api)
		return StateUnauthenticated
	}
	ctx := r.Context()
	user, err := g.Sessions.ValidateSession(ctx, token)
	if err != nil {
		return g.reject(w, r, api, err)
	}
	if user == nil {
		g.Cookie.Clear(w)
		g.unauthenticated(w, r, api)
		return StateUnauthenticated
	}

	state := StateAuthenticatedUser
	if IsAdminPath(path) {
		ok, err := g.Admins.IsAdmin(ctx, user.ID)
		if err != nil {
			return g.reject(w, r, api, err)
		}
		if !ok {
			if api {
				writeError(w, http.StatusForbidden, "forbidden", "Admin access required")
			} else {
				http.Redirect(w, r, g.landing(), http.StatusFound)
			}
			return StateAuthenticatedUser
		}
		state = StateAuthenticatedAdmin
	}

	id := Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
	if api {
		id.setHeaders(r.Header)
	}
	next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
	return state
}

func (g *Gateway) unauthenticated(w http.ResponseWriter, r *http.Request, api bool) {
	if api {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}
	http.Redirect(w, r, g.login(), http.StatusFound)
}

func (g *Gateway) reject(w http.ResponseWriter, r *http.Request, api bool, err error) State {
	global.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("gateway: session check failed")
	g.Cookie.Clear(w)
	if api {
		writeError(w, http.StatusInternalServerError, "internal_error", "Authentication check failed")
	} else {
		http.Redirect(w, r, g.login(), http.StatusFound)
	}
	return StateRejected
}

func (g *Gateway) login() string {
	if g.LoginPath == "" {
		return "/login"
	}
	return g.LoginPath
}

func (g *Gateway) landing() string {
	if g.LandingPath == "" {
		return "/dashboard"
	}
	return g.LandingPath
}

// stripIdentity drops client supplied identity headers. The request is
// cloned so the caller's header map is never mutated.
func stripIdentity(r *http.Request) *http.Request {
	r2 := r.Clone(r.Context())
	for _, h := range identityHeaders {
		r2.Header.Del(h)
	}
	return r2
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": msg})
}
