package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"clientdesk/internal/models"
	"clientdesk/internal/store"
)

type indexData struct {
	Flashes []Flash
	Page    *store.ClientPage
}

type clientFormData struct {
	Flashes []Flash
	Client  *models.Client
}

type searchData struct {
	Flashes []Flash
	Query   string
	Clients []models.Client
}

func formToClientForm(r *http.Request) store.ClientForm {
	return store.ClientForm{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Company: strings.TrimSpace(r.FormValue("company")),
		Address: strings.TrimSpace(r.FormValue("address")),
		City:    strings.TrimSpace(r.FormValue("city")),
		State:   strings.TrimSpace(r.FormValue("state")),
		ZipCode: strings.TrimSpace(r.FormValue("zip_code")),
	}
}

// IndexPage lists clients ten per page. A page beyond the last renders an
// empty table rather than an error.
func IndexPage(s *store.ClientStore, st sessions.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		pg, err := s.List(r.Context(), page)
		if err != nil {
			lg.Errorw("list clients", "error", err)
			renderServerError(w)
			return
		}
		renderPage(w, http.StatusOK, "index.html", indexData{
			Flashes: popFlashes(st, w, r),
			Page:    pg,
		})
	}
}

func AddClientForm(st sessions.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, http.StatusOK, "add_client.html", clientFormData{
			Flashes: popFlashes(st, w, r),
		})
	}
}

func AddClientSubmit(s *store.ClientStore, st sessions.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := formToClientForm(r)
		if f.Name == "" || f.Email == "" || f.Phone == "" {
			addFlash(st, w, r, "danger", "Name, email and phone are required!")
			http.Redirect(w, r, "/add", http.StatusFound)
			return
		}
		if _, err := s.Create(r.Context(), f); err != nil {
			if errors.Is(err, store.ErrEmailTaken) {
				addFlash(st, w, r, "danger", "Email already exists!")
			} else {
				lg.Errorw("create client", "error", err)
				addFlash(st, w, r, "danger", "Error adding client!")
			}
			http.Redirect(w, r, "/add", http.StatusFound)
			return
		}
		addFlash(st, w, r, "success", "Client added successfully!")
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func EditClientForm(s *store.ClientStore, st sessions.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clientID(r)
		if !ok {
			renderNotFound(w)
			return
		}
		c, err := s.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				renderNotFound(w)
				return
			}
			lg.Errorw("get client", "error", err)
			renderServerError(w)
			return
		}
		renderPage(w, http.StatusOK, "edit_client.html", clientFormData{
			Flashes: popFlashes(st, w, r),
			Client:  c,
		})
	}
}

func EditClientSubmit(s *store.ClientStore, st sessions.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clientID(r)
		if !ok {
			renderNotFound(w)
			return
		}
		editURL := fmt.Sprintf("/edit/%d", id)
		f := formToClientForm(r)
		if f.Name == "" || f.Email == "" || f.Phone == "" {
			addFlash(st, w, r, "danger", "Name, email and phone are required!")
			http.Redirect(w, r, editURL, http.StatusFound)
			return
		}
		if _, err := s.Update(r.Context(), id, f); err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				renderNotFound(w)
			case errors.Is(err, store.ErrEmailTaken):
				addFlash(st, w, r, "danger", "Email already exists!")
				http.Redirect(w, r, editURL, http.StatusFound)
			default:
				lg.Errorw("update client", "error", err)
				addFlash(st, w, r, "danger", "Error updating client!")
				http.Redirect(w, r, editURL, http.StatusFound)
			}
			return
		}
		addFlash(st, w, r, "success", "Client updated successfully!")
		http.Redirect(w, r, fmt.Sprintf("/view/%d", id), http.StatusFound)
	}
}

func ViewClientPage(s *store.ClientStore, st sessions.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clientID(r)
		if !ok {
			renderNotFound(w)
			return
		}
		c, err := s.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				renderNotFound(w)
				return
			}
			lg.Errorw("get client", "error", err)
			renderServerError(w)
			return
		}
		renderPage(w, http.StatusOK, "view_client.html", clientFormData{
			Flashes: popFlashes(st, w, r),
			Client:  c,
		})
	}
}

// DeleteClientPage handles both GET and POST; the GET mutation is kept for
// compatibility with the previous route table.
func DeleteClientPage(s *store.ClientStore, st sessions.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clientID(r)
		if !ok {
			renderNotFound(w)
			return
		}
		if err := s.Delete(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				renderNotFound(w)
				return
			}
			lg.Errorw("delete client", "error", err)
			addFlash(st, w, r, "danger", "Error deleting client!")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		addFlash(st, w, r, "success", "Client deleted successfully!")
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// SearchPage matches the query against name, email, phone and company. An
// empty query shows no results.
func SearchPage(s *store.ClientStore, st sessions.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		cs, err := s.Search(r.Context(), q)
		if err != nil {
			lg.Errorw("search clients", "error", err)
			renderServerError(w)
			return
		}
		renderPage(w, http.StatusOK, "search_results.html", searchData{
			Flashes: popFlashes(st, w, r),
			Query:   q,
			Clients: cs,
		})
	}
}
