package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clientdesk/internal/store"
)

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

func newTestRouter(t *testing.T) (http.Handler, *store.ClientStore) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "clients.db")), &gorm.Config{})
	require.NoError(t, err)
	s := store.New(db)
	require.NoError(t, s.Migrate())
	sess := sessions.NewCookieStore([]byte("test-secret"))
	return NewRouter(s, sess, zap.NewNop().Sugar()), s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestAPICreate(t *testing.T) {
	t.Parallel()

	t.Run("returns 201 with the full representation", func(t *testing.T) {
		h, _ := newTestRouter(t)
		rec := doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{
			"name": "Alice Johnson", "email": "alice@example.com", "phone": "555-0100",
			"company": "Initech", "city": "Springfield",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		body := decodeBody(t, rec)
		require.EqualValues(t, 1, body["id"])
		require.Equal(t, "Alice Johnson", body["name"])
		require.Equal(t, "alice@example.com", body["email"])
		require.Equal(t, "Initech", body["company"])
		require.Regexp(t, timestampPattern, body["created_at"])
		require.Regexp(t, timestampPattern, body["updated_at"])
	})

	t.Run("rejects a duplicate email with 400", func(t *testing.T) {
		h, s := newTestRouter(t)
		rec := doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{
			"name": "A", "email": "a@x.com", "phone": "555",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{
			"name": "B", "email": "a@x.com", "phone": "555",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Email already exists", decodeBody(t, rec)["error"])

		n, err := s.Count(context.Background())
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})

	t.Run("rejects missing required fields with 400", func(t *testing.T) {
		h, _ := newTestRouter(t)
		rec := doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{"name": "A"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, decodeBody(t, rec)["error"], "required")
	})
}

func TestAPIGet(t *testing.T) {
	t.Parallel()

	t.Run("lists all clients", func(t *testing.T) {
		h, _ := newTestRouter(t)
		doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{"name": "A", "email": "a@x.com", "phone": "1"})
		doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{"name": "B", "email": "b@x.com", "phone": "2"})

		rec := doJSON(t, h, http.MethodGet, "/api/clients", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 2)
		require.Equal(t, "A", list[0]["name"])
	})

	t.Run("missing id returns a JSON 404", func(t *testing.T) {
		h, _ := newTestRouter(t)
		rec := doJSON(t, h, http.MethodGet, "/api/clients/42", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "Client not found", decodeBody(t, rec)["error"])
	})

	t.Run("non-numeric id returns 404", func(t *testing.T) {
		h, _ := newTestRouter(t)
		rec := doJSON(t, h, http.MethodGet, "/api/clients/abc", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAPIPartialUpdate(t *testing.T) {
	t.Parallel()

	t.Run("changes only supplied fields", func(t *testing.T) {
		h, _ := newTestRouter(t)
		doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{
			"name": "Alice", "email": "alice@x.com", "phone": "555-0100", "company": "Initech",
		})

		rec := doJSON(t, h, http.MethodPut, "/api/clients/1", map[string]string{"phone": "555-0199"})
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, "555-0199", body["phone"])
		require.Equal(t, "Alice", body["name"])
		require.Equal(t, "Initech", body["company"])
	})

	t.Run("identifier and timestamps are never client-settable", func(t *testing.T) {
		h, _ := newTestRouter(t)
		rec := doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{
			"name": "Alice", "email": "alice@x.com", "phone": "555-0100",
		})
		created := decodeBody(t, rec)["created_at"]

		rec = doJSON(t, h, http.MethodPut, "/api/clients/1", map[string]any{
			"id": 99, "created_at": "1999-01-01 00:00:00", "name": "Alice Cooper",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		require.EqualValues(t, 1, body["id"])
		require.Equal(t, created, body["created_at"])
		require.Equal(t, "Alice Cooper", body["name"])
	})

	t.Run("duplicate email returns 400", func(t *testing.T) {
		h, _ := newTestRouter(t)
		doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{"name": "A", "email": "a@x.com", "phone": "1"})
		doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{"name": "B", "email": "b@x.com", "phone": "2"})

		rec := doJSON(t, h, http.MethodPut, "/api/clients/2", map[string]string{"email": "a@x.com"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing id returns 404", func(t *testing.T) {
		h, _ := newTestRouter(t)
		rec := doJSON(t, h, http.MethodPut, "/api/clients/42", map[string]string{"name": "X"})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAPIDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes once, then 404", func(t *testing.T) {
		h, _ := newTestRouter(t)
		doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{"name": "A", "email": "a@x.com", "phone": "1"})

		rec := doJSON(t, h, http.MethodDelete, "/api/clients/1", nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, rec.Body.String())

		rec = doJSON(t, h, http.MethodGet, "/api/clients/1", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = doJSON(t, h, http.MethodDelete, "/api/clients/1", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPages(t *testing.T) {
	t.Parallel()

	t.Run("index renders the client table", func(t *testing.T) {
		h, _ := newTestRouter(t)
		doJSON(t, h, http.MethodPost, "/api/clients", map[string]string{"name": "Alice", "email": "alice@x.com", "phone": "1"})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		require.Contains(t, rec.Body.String(), "Alice")
	})

	t.Run("out-of-range page renders an empty table", func(t *testing.T) {
		h, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/?page=9", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("add form submission redirects home with a flash", func(t *testing.T) {
		h, _ := newTestRouter(t)
		rec := doForm(t, h, "/add", url.Values{
			"name": {"Alice"}, "email": {"alice@x.com"}, "phone": {"555-0100"},
		})
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))
		require.NotEmpty(t, rec.Header().Get("Set-Cookie"))
	})

	t.Run("duplicate email redirects back to the add form", func(t *testing.T) {
		h, _ := newTestRouter(t)
		doForm(t, h, "/add", url.Values{"name": {"A"}, "email": {"a@x.com"}, "phone": {"1"}})

		rec := doForm(t, h, "/add", url.Values{"name": {"B"}, "email": {"a@x.com"}, "phone": {"1"}})
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/add", rec.Header().Get("Location"))
	})

	t.Run("edit submission redirects to the detail page", func(t *testing.T) {
		h, _ := newTestRouter(t)
		doForm(t, h, "/add", url.Values{"name": {"Alice"}, "email": {"alice@x.com"}, "phone": {"1"}})

		rec := doForm(t, h, "/edit/1", url.Values{"name": {"Alice Cooper"}, "email": {"alice@x.com"}, "phone": {"1"}})
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/view/1", rec.Header().Get("Location"))
	})

	t.Run("view of a missing client renders the 404 page", func(t *testing.T) {
		h, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/view/42", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "404")
	})

	t.Run("delete works over GET and POST", func(t *testing.T) {
		h, _ := newTestRouter(t)
		doForm(t, h, "/add", url.Values{"name": {"A"}, "email": {"a@x.com"}, "phone": {"1"}})
		doForm(t, h, "/add", url.Values{"name": {"B"}, "email": {"b@x.com"}, "phone": {"2"}})

		req := httptest.NewRequest(http.MethodGet, "/delete/1", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))

		rec = doForm(t, h, "/delete/2", url.Values{})
		require.Equal(t, http.StatusFound, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/delete/1", nil)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("search renders matches and empty query shows none", func(t *testing.T) {
		h, _ := newTestRouter(t)
		doForm(t, h, "/add", url.Values{"name": {"Alice Johnson"}, "email": {"alice@x.com"}, "phone": {"1"}})

		req := httptest.NewRequest(http.MethodGet, "/search?q=johnson", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Alice Johnson")

		req = httptest.NewRequest(http.MethodGet, "/search?q=", nil)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, rec.Body.String(), "Alice Johnson")
	})

	t.Run("unknown routes render the 404 page", func(t *testing.T) {
		h, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})

	t.Run("healthz responds 200", func(t *testing.T) {
		h, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
