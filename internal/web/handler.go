// ABOUTME: HTTP handlers for interactive login/logout and the API auth surface
// ABOUTME: Adapts transport concerns around the auth core; owns redirects and JSON shapes

package web

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/2389/warden/internal/auth"
)

// Handler serves the interactive login flow and the programmatic API
// endpoints over one Authenticator.
type Handler struct {
	auth   *auth.Authenticator
	logger *slog.Logger
}

// New creates the HTTP handler set.
func New(a *auth.Authenticator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{auth: a, logger: logger}
}

// Routes returns the full handler tree with observability middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.HandleFunc("/api/auth", h.handleAPIAuth)
	mux.HandleFunc("/api/token", h.handleAPIToken)
	mux.HandleFunc("/", h.handleRoot)
	return withObservability(h.logger, mux)
}

var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>warden login</title></head>
<body>
  <h1>Log in</h1>
  {{if .Message}}<p class="message">{{.Message}}</p>{{end}}
  <form method="post" action="/login">
    <label>Username <input type="text" name="username"></label>
    <label>Password <input type="password" name="password"></label>
    <button type="submit">Log in</button>
  </form>
</body>
</html>
`))

func (h *Handler) renderLoginPage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginTemplate.Execute(w, struct{ Message string }{Message: message}); err != nil {
		h.logger.Error("rendering login page", "error", err)
	}
}

// handleLogin serves the login form and processes submissions. On success
// the client is redirected so a reload cannot resubmit the form; users with
// plaintext-stored passwords get the pwdclear notice on that redirect.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	sw := wrapWriter(w)
	req := newRequest(r)

	if r.Method == http.MethodGet {
		if r.URL.Query().Get("login_msg") == "pwdclear" {
			h.renderLoginPage(sw, "Your password is stored in clear text; ask the operator to hash it")
			return
		}
		h.renderLoginPage(sw, "")
		return
	}

	res := h.auth.Authenticate(req, &cookieSink{w: sw})
	if !res.OK {
		h.renderLoginPage(sw, res.Message)
		return
	}

	target := "/"
	if res.Redirect && res.PlaintextSecret {
		target = "/login?login_msg=pwdclear"
	}
	http.Redirect(sw, r, target, http.StatusFound)
}

// handleLogout clears the session cookie pair and confirms.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sw := wrapWriter(w)
	req := newRequest(r)
	req.r.Form.Set(auth.FieldAction, "logout")

	res := h.auth.Authenticate(req, &cookieSink{w: sw})
	h.renderLoginPage(sw, res.Message)
}

// handleRoot shows who is logged in, or sends the visitor to the form.
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	sw := wrapWriter(w)
	req := newRequest(r)
	res := h.auth.Authenticate(req, &cookieSink{w: sw})

	if !h.auth.IsValidSession(req) {
		http.Redirect(sw, r, "/login", http.StatusFound)
		return
	}

	sw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	user := res.User
	if user == "" {
		user = "anonymous"
	}
	if _, err := sw.Write([]byte("Logged in as " + user + "\n")); err != nil {
		h.logger.Error("writing root response", "error", err)
	}
}

// authResponse is the JSON shape for the API endpoints.
type authResponse struct {
	OK      bool   `json:"ok"`
	User    string `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body authResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// handleAPIAuth authenticates a programmatic request and reports the verdict.
func (h *Handler) handleAPIAuth(w http.ResponseWriter, r *http.Request) {
	req := newRequest(r)
	res := h.auth.Authenticate(req, nil)

	if !res.OK {
		writeJSON(w, http.StatusUnauthorized, authResponse{OK: false, Message: res.Message})
		return
	}
	writeJSON(w, http.StatusOK, authResponse{OK: true, User: res.User})
}

// handleAPIToken returns the caller's signing token, authenticating first.
func (h *Handler) handleAPIToken(w http.ResponseWriter, r *http.Request) {
	req := newRequest(r)
	res := h.auth.Authenticate(req, nil)

	if !res.OK {
		writeJSON(w, http.StatusUnauthorized, authResponse{OK: false, Message: res.Message})
		return
	}
	writeJSON(w, http.StatusOK, authResponse{
		OK:    true,
		User:  res.User,
		Token: h.auth.SigningToken(res.User),
	})
}
