package handlers

import (
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"aiadoption/internal/auth"
	"aiadoption/internal/view"
)

const loginTitle = "Sign in"

type loginForm struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,max=128"`
}

func (h *Handlers) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity.CurrentUser(r); ok {
		redirect(w, r, "/dashboard")
		return
	}
	h.view.Render(w, r, "login.html", view.PageData{Title: loginTitle})
}

func (h *Handlers) PostLogin(w http.ResponseWriter, r *http.Request) {
	form := loginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := h.validate.Struct(form); err != nil {
		h.renderLogin(w, r, http.StatusUnprocessableEntity, form, "Enter a valid email address and password.")
		return
	}

	user, err := h.auth.Authenticate(r.Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, auth.ErrAccountInactive):
		h.renderLogin(w, r, http.StatusForbidden, form, "This account has been suspended.")
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.renderLogin(w, r, http.StatusUnauthorized, form, "Incorrect email or password.")
		return
	case err != nil:
		h.log.WithField("request_id", chimiddleware.GetReqID(r.Context())).
			WithError(err).Error("login failed")
		h.renderFailure(w, r, loginTitle)
		return
	}

	if err := h.sessions.SetUser(w, r, user); err != nil {
		h.log.WithField("user_id", user.ID).WithError(err).Error("save session")
		h.renderFailure(w, r, loginTitle)
		return
	}

	h.log.WithField("user_id", user.ID).Info("user signed in")
	redirect(w, r, "/dashboard")
}

func (h *Handlers) PostLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.log.WithError(err).Warn("clear session")
	}
	redirectWithSuccess(w, r, "/login", "You have been signed out.")
}

func (h *Handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, form loginForm, message string) {
	h.view.RenderStatus(w, r, status, "login.html", view.PageData{
		Title: loginTitle,
		Error: message,
		Data:  map[string]string{"Email": form.Email},
	})
}
