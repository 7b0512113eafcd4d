package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"clientdesk/internal/httpserver/handlers"
	"clientdesk/internal/store"
)

func NewRouter(s *store.ClientStore, sess sessions.Store, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	// Server-rendered pages.
	r.Get("/", handlers.IndexPage(s, sess, lg))
	r.Get("/add", handlers.AddClientForm(sess))
	r.Post("/add", handlers.AddClientSubmit(s, sess, lg))
	r.Get("/edit/{id}", handlers.EditClientForm(s, sess, lg))
	r.Post("/edit/{id}", handlers.EditClientSubmit(s, sess, lg))
	r.Get("/view/{id}", handlers.ViewClientPage(s, sess, lg))
	r.Get("/delete/{id}", handlers.DeleteClientPage(s, sess, lg))
	r.Post("/delete/{id}", handlers.DeleteClientPage(s, sess, lg))
	r.Get("/search", handlers.SearchPage(s, sess, lg))

	// JSON API mirror.
	r.Route("/api/clients", func(api chi.Router) {
		api.Get("/", handlers.APIListClients(s, lg))
		api.Post("/", handlers.APICreateClient(s, lg))
		api.Get("/{id}", handlers.APIGetClient(s, lg))
		api.Put("/{id}", handlers.APIUpdateClient(s, lg))
		api.Delete("/{id}", handlers.APIDeleteClient(s, lg))
	})

	r.Handle("/static/*", handlers.Static())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.NotFound(handlers.NotFoundPage())
	return r
}
