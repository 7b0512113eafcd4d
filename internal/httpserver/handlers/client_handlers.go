package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"clientdesk/internal/models"
	"clientdesk/internal/store"
)

// clientID parses the {id} route parameter. A non-numeric id is treated the
// same as an absent record.
func clientID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

type clientReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

func (req clientReq) form() store.ClientForm {
	return store.ClientForm{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Company: strings.TrimSpace(req.Company),
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
		State:   strings.TrimSpace(req.State),
		ZipCode: strings.TrimSpace(req.ZipCode),
	}
}

func APIListClients(s *store.ClientStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := s.All(r.Context())
		if err != nil {
			respondStoreError(w, lg, err)
			return
		}
		out := make([]models.ClientJSON, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.JSON())
		}
		respondJSON(w, http.StatusOK, out)
	}
}

func APIGetClient(s *store.ClientStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clientID(r)
		if !ok {
			respondError(w, http.StatusNotFound, "Client not found")
			return
		}
		c, err := s.Get(r.Context(), id)
		if err != nil {
			respondStoreError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, c.JSON())
	}
}

func APICreateClient(s *store.ClientStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req clientReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		f := req.form()
		if f.Name == "" || f.Email == "" || f.Phone == "" {
			respondError(w, http.StatusBadRequest, "name, email and phone are required")
			return
		}
		c, err := s.Create(r.Context(), f)
		if err != nil {
			respondStoreError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusCreated, c.JSON())
	}
}

func APIUpdateClient(s *store.ClientStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clientID(r)
		if !ok {
			respondError(w, http.StatusNotFound, "Client not found")
			return
		}
		var patch store.ClientPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		c, err := s.Patch(r.Context(), id, patch)
		if err != nil {
			respondStoreError(w, lg, err)
			return
		}
		respondJSON(w, http.StatusOK, c.JSON())
	}
}

func APIDeleteClient(s *store.ClientStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := clientID(r)
		if !ok {
			respondError(w, http.StatusNotFound, "Client not found")
			return
		}
		if err := s.Delete(r.Context(), id); err != nil {
			respondStoreError(w, lg, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
