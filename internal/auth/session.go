package auth

import (
	"context"
	"net/http"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

type contextKey int

const identityContextKey contextKey = iota

// ResolveSession extracts and verifies the session token from a request's
// cookies. A missing cookie or a token that fails verification both yield
// nil - anonymous, never an error.
func ResolveSession(codec *Codec, r *http.Request) *Identity {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	return codec.Verify(cookie.Value)
}

// SetSessionCookie stores the session token in an HTTP-only cookie.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TokenTTL.Seconds()),
	})
}

// ClearSessionCookie deletes the session cookie. There is no server-side
// session state, so this is the whole of logout.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// WithIdentity returns a context carrying the verified identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext extracts the verified identity from the request context.
// Returns nil if no identity is present (unauthenticated request).
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityContextKey).(*Identity)
	return identity
}
