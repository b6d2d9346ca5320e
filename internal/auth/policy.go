package auth

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

// DecisionKind enumerates the outcomes of a policy check.
type DecisionKind int

const (
	DecisionAllow DecisionKind = iota
	DecisionRedirect
	DecisionDeny
)

// Decision is the policy engine's output steering a request.
// The caller is responsible for actually issuing the redirect or denial.
type Decision struct {
	Kind     DecisionKind
	Location string // redirect target, set when Kind is DecisionRedirect
	Status   int    // HTTP status, set when Kind is DecisionDeny
}

// Allow lets the request through to its handler.
func Allow() Decision {
	return Decision{Kind: DecisionAllow}
}

// RedirectTo steers the request to another page.
func RedirectTo(path string) Decision {
	return Decision{Kind: DecisionRedirect, Location: path}
}

// Deny rejects the request with an HTTP status.
func Deny(status int) Decision {
	return Decision{Kind: DecisionDeny, Status: status}
}

// publicPaths are the navigation pages an authenticated user is bounced away from.
var publicPaths = []string{"/", "/login", "/register"}

// protectedPrefixes are the navigation sections that require a session.
var protectedPrefixes = []string{"/dashboard", "/admin"}

// Decide computes the navigation policy for a page request.
// Order matters: the authenticated-on-public-page redirect is evaluated
// before the protected-route check, and the admin role is only examined
// once a session is known to exist, so anonymous callers learn nothing
// about role handling.
func Decide(path string, identity *Identity) Decision {
	if identity != nil && slices.Contains(publicPaths, path) {
		return RedirectTo("/dashboard")
	}

	if identity == nil && hasAnyPrefix(path, protectedPrefixes) {
		return RedirectTo("/login")
	}

	if hasAnyPrefix(path, []string{"/admin"}) && !identity.IsAdmin() {
		return RedirectTo("/dashboard")
	}

	return Allow()
}

// hasAnyPrefix reports whether path sits at or under any of the given sections.
func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// PageGuard applies the navigation policy to page routes.
// Allowed requests continue with the verified identity (if any) in context.
func PageGuard(codec *Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := ResolveSession(codec, r)

			switch decision := Decide(r.URL.Path, identity); decision.Kind {
			case DecisionRedirect:
				log.Debug().Str("path", r.URL.Path).Str("location", decision.Location).Msg("Redirecting")
				http.Redirect(w, r, decision.Location, http.StatusFound)
			case DecisionDeny:
				http.Error(w, http.StatusText(decision.Status), decision.Status)
			default:
				if identity != nil {
					r = r.WithContext(WithIdentity(r.Context(), identity))
				}
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireSession guards API routes that need any authenticated session.
// Missing or invalid sessions get a machine-readable 401 instead of a redirect.
func RequireSession(codec *Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := ResolveSession(codec, r)
			if identity == nil {
				denyJSON(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin guards admin-only API routes.
// Anonymous callers get 401; authenticated non-admins get 403. The role is
// only examined after the session check so the two cases stay distinguishable.
func RequireAdmin(codec *Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := ResolveSession(codec, r)
			if identity == nil {
				denyJSON(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if !identity.IsAdmin() {
				log.Debug().Str("path", r.URL.Path).Str("user_id", identity.UserID.String()).Msg("Admin route denied")
				denyJSON(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// denyJSON writes the API denial body: {"error": message}.
func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
