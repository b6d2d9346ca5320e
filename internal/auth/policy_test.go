package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/userhub/internal/models"
)

func TestDecide(t *testing.T) {
	user := newTestIdentity(t, models.RoleUser)
	admin := newTestIdentity(t, models.RoleAdmin)

	tests := []struct {
		name     string
		path     string
		identity *Identity
		want     Decision
	}{
		{"anonymous on home", "/", nil, Allow()},
		{"anonymous on login", "/login", nil, Allow()},
		{"anonymous on register", "/register", nil, Allow()},
		{"authenticated on home", "/", &user, RedirectTo("/dashboard")},
		{"authenticated on login", "/login", &user, RedirectTo("/dashboard")},
		{"admin on register", "/register", &admin, RedirectTo("/dashboard")},
		{"anonymous on dashboard", "/dashboard", nil, RedirectTo("/login")},
		{"anonymous on dashboard subpath", "/dashboard/settings", nil, RedirectTo("/login")},
		{"anonymous on admin", "/admin", nil, RedirectTo("/login")},
		{"user on dashboard", "/dashboard", &user, Allow()},
		{"user on admin", "/admin", &user, RedirectTo("/dashboard")},
		{"user on admin subpath", "/admin/users", &user, RedirectTo("/dashboard")},
		{"admin on admin", "/admin", &admin, Allow()},
		{"admin on admin subpath", "/admin/users", &admin, Allow()},
		{"anonymous on unmatched path", "/about", nil, Allow()},
		{"user on unmatched path", "/about", &user, Allow()},
		{"prefix does not match sibling path", "/dashboards", nil, Allow()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Decide(tt.path, tt.identity))
		})
	}
}

func guardedRequest(t *testing.T, mw func(http.Handler) http.Handler, path, cookie string) *httptest.ResponseRecorder {
	t.Helper()

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: cookie})
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestPageGuard(t *testing.T) {
	codec := newTestCodec(t)

	userToken, err := codec.Issue(newTestIdentity(t, models.RoleUser))
	require.NoError(t, err)

	adminToken, err := codec.Issue(newTestIdentity(t, models.RoleAdmin))
	require.NoError(t, err)

	guard := PageGuard(codec)

	t.Run("authenticated visiting login is sent to dashboard", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/login", userToken)
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})

	t.Run("anonymous visiting dashboard is sent to login", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/dashboard", "")
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("garbage cookie is anonymous", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/dashboard", "garbage")
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("non-admin visiting admin is bounced to dashboard", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/admin", userToken)
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})

	t.Run("admin visiting admin is allowed", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/admin", adminToken)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("user visiting dashboard is allowed", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/dashboard", userToken)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireSession(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue(newTestIdentity(t, models.RoleUser))
	require.NoError(t, err)

	guard := RequireSession(codec)

	t.Run("no cookie", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/api/users/me", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/api/users/me", "bad-token")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid session", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/api/users/me", token)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	codec := newTestCodec(t)

	userToken, err := codec.Issue(newTestIdentity(t, models.RoleUser))
	require.NoError(t, err)

	adminToken, err := codec.Issue(newTestIdentity(t, models.RoleAdmin))
	require.NoError(t, err)

	guard := RequireAdmin(codec)

	t.Run("anonymous gets 401", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/api/admin/users", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-admin gets 403", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/api/admin/users", userToken)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.JSONEq(t, `{"error":"Forbidden"}`, rec.Body.String())
	})

	t.Run("admin allowed", func(t *testing.T) {
		rec := guardedRequest(t, guard, "/api/admin/users", adminToken)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
