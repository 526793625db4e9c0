package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/waypost/waypost/internal/common"
	"github.com/waypost/waypost/internal/logging"
	"github.com/waypost/waypost/internal/server/models"
	"github.com/waypost/waypost/internal/server/services"
)

// Provisioner is what the handlers need from the signup service.
type Provisioner interface {
	SignUp(ctx context.Context, form services.SignupForm) (*models.User, error)
}

// Handlers serves the HTML pages and the signup form submission.
type Handlers struct {
	signup Provisioner
	tmpl   *Templates
	logger logging.Logger
}

func NewHandlers(signup Provisioner, tmpl *Templates, logger logging.Logger) *Handlers {
	return &Handlers{
		signup: signup,
		tmpl:   tmpl,
		logger: logger.With("module", "web"),
	}
}

// renderPage writes the named page, or a plain 500 if rendering fails.
func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, page string, status int) {
	var buf bytes.Buffer
	if err := h.tmpl.Render(&buf, page, nil); err != nil {
		h.logger.Error(r.Context(), "error rendering page", "page", page, "error", err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn(r.Context(), "error writing response", "page", page, "error", err.Error())
	}
}

// GetLanding serves the landing page; it doubles as the fallback route.
func (h *Handlers) GetLanding(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "landing", http.StatusOK)
}

// GetSignup serves the signup form.
func (h *Handlers) GetSignup(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "signup", http.StatusOK)
}

// GetLogin serves the login form.
func (h *Handlers) GetLogin(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "login", http.StatusOK)
}

// PostSignup runs the provisioning flow for a submitted signup form.
//
// On success the browser is redirected to the landing page. On any failure
// the signup form is re-rendered with no pre-population and no specific
// error message: which field was wrong must not be observable from the
// response. The distinct error kind is still logged for operators.
func (h *Handlers) PostSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn(r.Context(), "signup form parse failed", "error", err.Error())
		h.renderPage(w, r, "signup", http.StatusOK)
		return
	}

	form := services.SignupForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Email:    r.PostFormValue("email"),
		Secret:   r.PostFormValue("secret"),
	}

	user, err := h.signup.SignUp(r.Context(), form)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUserNotAllocated):
			h.logger.Warn(r.Context(), "signup rejected: user not allocated")
		case errors.Is(err, common.ErrHashingFailure):
			h.logger.Error(r.Context(), "signup failed: hashing failure", "error", err.Error())
		default:
			h.logger.Error(r.Context(), "signup failed: storage error", "error", err.Error())
		}
		h.renderPage(w, r, "signup", http.StatusOK)
		return
	}

	h.logger.Info(r.Context(), "user signed up", "user_id", user.ID, "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
