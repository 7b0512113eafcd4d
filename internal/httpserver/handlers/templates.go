package handlers

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = map[string]*template.Template{}

func init() {
	names := []string{
		"index.html",
		"add_client.html",
		"edit_client.html",
		"view_client.html",
		"search_results.html",
		"404.html",
		"500.html",
	}
	for _, name := range names {
		pages[name] = template.Must(
			template.ParseFS(templateFS, "templates/base.html", "templates/"+name))
	}
}

func renderPage(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = pages[name].ExecuteTemplate(w, "base", data)
}

type errorData struct {
	Flashes []Flash
}

func renderNotFound(w http.ResponseWriter) {
	renderPage(w, http.StatusNotFound, "404.html", errorData{})
}

func renderServerError(w http.ResponseWriter) {
	renderPage(w, http.StatusInternalServerError, "500.html", errorData{})
}

// NotFoundPage renders the dedicated 404 template for unknown routes.
func NotFoundPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderNotFound(w)
	}
}

// Static serves the embedded assets under /static/.
func Static() http.Handler {
	sub, _ := fs.Sub(staticFS, "static")
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
