package handlers

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"aiadoption/internal/dashboard"
	"aiadoption/internal/http/middleware"
	"aiadoption/internal/view"
)

const dashboardTitle = "Dashboard"

// ShowDashboard resolves the identity once, then redirects or renders.
func (h *Handlers) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	r, outcome, ok := h.resolveDashboard(w, r)
	if !ok {
		return
	}
	if outcome.IsRedirect() {
		redirect(w, r, outcome.Redirect)
		return
	}

	h.view.Render(w, r, "dashboard.html", view.PageData{
		Title: dashboardTitle,
		Data:  *outcome.View,
	})
}

// resolveDashboard runs the dashboard gate for the request's user. The
// returned request carries that user in its context. ok is false once an
// error response has been written.
func (h *Handlers) resolveDashboard(w http.ResponseWriter, r *http.Request) (*http.Request, dashboard.Outcome, bool) {
	fields := logrus.Fields{"request_id": chimiddleware.GetReqID(r.Context())}

	user, found := h.identity.CurrentUser(r)
	if found {
		r = r.WithContext(middleware.WithUser(r.Context(), user))
		fields["user_id"] = user.ID
	} else {
		user = nil
	}

	outcome, err := h.dashboard.Resolve(r.Context(), user)
	if err != nil {
		h.log.WithFields(fields).WithError(err).Error("dashboard lookup failed")
		h.renderFailure(w, r, dashboardTitle)
		return r, dashboard.Outcome{}, false
	}

	if outcome.Reason == dashboard.ReasonProfileMissing {
		h.log.WithFields(fields).Warn("authenticated user has no profile row, sending to onboarding")
	}

	return r, outcome, true
}
