package handlers

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "clientdesk"

// Flash is a one-shot status message shown on the next rendered page after a
// redirect. Category maps to an alert style (success, danger).
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

func addFlash(st sessions.Store, w http.ResponseWriter, r *http.Request, category, message string) {
	sess, _ := st.Get(r, sessionName)
	sess.AddFlash(Flash{Category: category, Message: message})
	_ = sess.Save(r, w)
}

// popFlashes drains pending flashes. Reading flashes mutates the session, so
// it must be saved again to clear them from the cookie.
func popFlashes(st sessions.Store, w http.ResponseWriter, r *http.Request) []Flash {
	sess, _ := st.Get(r, sessionName)
	raw := sess.Flashes()
	if len(raw) > 0 {
		_ = sess.Save(r, w)
	}
	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out
}
