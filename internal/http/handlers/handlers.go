package handlers

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"aiadoption/internal/auth"
	"aiadoption/internal/dashboard"
	"aiadoption/internal/http/middleware"
	"aiadoption/internal/pagination"
	"aiadoption/internal/repo"
	"aiadoption/internal/view"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*auth.User, error)
}

type SurveyLister interface {
	CountSurveyResponses(ctx context.Context, userID uuid.UUID) (int, error)
	ListSurveyResponses(ctx context.Context, userID uuid.UUID, p pagination.Pager) ([]repo.SurveyResponse, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Log       logrus.FieldLogger
	Identity  auth.IdentityProvider
	Sessions  *auth.Sessions
	Auth      Authenticator
	Dashboard *dashboard.Service
	Surveys   SurveyLister
	DB        Pinger
	View      *view.Renderer
}

type Handlers struct {
	log       logrus.FieldLogger
	identity  auth.IdentityProvider
	sessions  *auth.Sessions
	auth      Authenticator
	dashboard *dashboard.Service
	surveys   SurveyLister
	db        Pinger
	view      *view.Renderer
	validate  *validator.Validate
}

func New(d Deps) *Handlers {
	return &Handlers{
		log:       d.Log,
		identity:  d.Identity,
		sessions:  d.Sessions,
		auth:      d.Auth,
		dashboard: d.Dashboard,
		surveys:   d.Surveys,
		db:        d.DB,
		view:      d.View,
		validate:  validator.New(),
	}
}

func currentUser(ctx context.Context) (*auth.User, bool) {
	return middleware.UserFromContext(ctx)
}

// renderFailure answers a store failure with a generic page.
func (h *Handlers) renderFailure(w http.ResponseWriter, r *http.Request, title string) {
	h.view.RenderStatus(w, r, http.StatusInternalServerError, "error.html", view.PageData{Title: title})
}
