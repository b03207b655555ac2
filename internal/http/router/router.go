package router

import (
	"net/http"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"aiadoption/internal/auth"
	"aiadoption/internal/http/handlers"
	"aiadoption/internal/http/middleware"
)

// loginForm is the largest form the app accepts: an email and a password.
var loginForm = middleware.FormPolicy{MaxBytes: 64 << 10, Verbatim: []string{"password"}}

func New(log logrus.FieldLogger, sessions *auth.Sessions, identity auth.IdentityProvider, h *handlers.Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpLogger.Logger("router", log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Heartbeat("/healthz"))

	r.Get("/readyz", h.Ready)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SanitizeForm(loginForm))
		r.Use(middleware.CSRF(sessions))

		r.Get("/login", h.ShowLogin)
		r.Post("/login", h.PostLogin)
		r.Post("/logout", h.PostLogout)

		r.Get("/", h.ShowDashboard)
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", h.ShowDashboard)
			r.Get("/roadmap.xlsx", h.ExportRoadmap)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthRequired(identity))
				r.Get("/surveys", h.ListSurveys)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found.", http.StatusNotFound)
	})

	return r
}
