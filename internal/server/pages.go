package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/userhub/internal/auth"
)

// Placeholder pages. The interesting part is the navigation policy wrapped
// around them; the real UI is served elsewhere.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}} | userhub</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .UserID}}<p>Signed in as {{.UserID}} ({{.Role}})</p>{{end}}
</body>
</html>
`))

type pageData struct {
	Title  string
	UserID string
	Role   string
}

// pageHandler renders a minimal page, showing the session identity when present.
func pageHandler(title string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := pageData{Title: title}
		if identity := auth.IdentityFromContext(r.Context()); identity != nil {
			data.UserID = identity.UserID.String()
			data.Role = identity.Role
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			log.Error().Err(err).Str("page", title).Msg("Failed to render page")
		}
	})
}
