package server

import (
	"net/http"
	"strings"

	"filippo.io/csrf"
	"github.com/rs/cors"
	"github.com/wolfeidau/userhub/internal/auth"
	"github.com/wolfeidau/userhub/internal/login"
	"github.com/wolfeidau/userhub/internal/store"
)

// Server assembles the API and page routes with their access guards.
type Server struct {
	codec *auth.Codec
	users *UserService
	admin *AdminService
}

// New creates a new server.
func New(users store.UserStore, codec *auth.Codec, loginService *login.Service) *Server {
	return &Server{
		codec: codec,
		users: NewUserService(users, loginService),
		admin: NewAdminService(users),
	}
}

// Handler builds the full route table. API routes get CORS with credentials
// enabled for the session cookie; HTML pages get CSRF protection instead.
func (s *Server) Handler(corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// Public auth endpoints
	mux.HandleFunc("POST /api/login", s.users.Login)
	mux.HandleFunc("POST /api/logout", s.users.Logout)
	mux.HandleFunc("POST /api/register", s.users.Register)

	// Session-gated profile endpoints
	requireSession := auth.RequireSession(s.codec)
	mux.Handle("GET /api/users/me", requireSession(http.HandlerFunc(s.users.Me)))
	mux.Handle("PUT /api/users/me", requireSession(http.HandlerFunc(s.users.UpdateMe)))

	// ADMIN-gated user management
	requireAdmin := auth.RequireAdmin(s.codec)
	mux.Handle("GET /api/admin/users", requireAdmin(http.HandlerFunc(s.admin.ListUsers)))
	mux.Handle("PATCH /api/admin/users/{id}", requireAdmin(http.HandlerFunc(s.admin.UpdateUser)))
	mux.Handle("DELETE /api/admin/users/{id}", requireAdmin(http.HandlerFunc(s.admin.DeleteUser)))

	// Pages behind the navigation policy
	guard := auth.PageGuard(s.codec)
	mux.Handle("GET /{$}", guard(pageHandler("Home")))
	mux.Handle("GET /login", guard(pageHandler("Login")))
	mux.Handle("GET /register", guard(pageHandler("Register")))
	mux.Handle("GET /dashboard", guard(pageHandler("Dashboard")))
	mux.Handle("GET /dashboard/", guard(pageHandler("Dashboard")))
	mux.Handle("GET /admin", guard(pageHandler("Admin")))
	mux.Handle("GET /admin/", guard(pageHandler("Admin")))

	// CSRF protection for HTML pages (not applied to API routes)
	protection := csrf.New()

	apiHandler := withCORS(corsOrigins, mux)
	htmlHandler := protection.Handler(mux)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// API routes get CORS, HTML routes get CSRF
		if isAPIRoute(r.URL.Path) {
			apiHandler.ServeHTTP(w, r)
		} else {
			htmlHandler.ServeHTTP(w, r)
		}
	})
}

// isAPIRoute returns true if the path is an API route that needs CORS instead of CSRF
func isAPIRoute(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// withCORS adds CORS support to the API routes.
func withCORS(allowedOrigins []string, h http.Handler) http.Handler {
	middleware := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true, // Required for cookie-based authentication
	})
	return middleware.Handler(h)
}
