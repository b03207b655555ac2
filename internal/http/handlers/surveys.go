package handlers

import (
	"net/http"
	"strconv"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"aiadoption/internal/pagination"
	"aiadoption/internal/view"
)

const surveysPageSize = 10

func (h *Handlers) ListSurveys(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r.Context())
	if !ok {
		redirect(w, r, "/login")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	total, err := h.surveys.CountSurveyResponses(r.Context(), user.ID)
	if err != nil {
		h.surveysFailed(w, r, user.ID, err)
		return
	}

	pager := pagination.NewPager(total, page, surveysPageSize)
	list, err := h.surveys.ListSurveyResponses(r.Context(), user.ID, pager)
	if err != nil {
		h.surveysFailed(w, r, user.ID, err)
		return
	}

	h.view.Render(w, r, "surveys.html", view.PageData{
		Title: "Past assessments",
		Data: map[string]any{
			"Items": list,
			"Pager": pager,
		},
	})
}

func (h *Handlers) surveysFailed(w http.ResponseWriter, r *http.Request, userID uuid.UUID, err error) {
	h.log.WithFields(logrus.Fields{
		"request_id": chimiddleware.GetReqID(r.Context()),
		"user_id":    userID,
	}).WithError(err).Error("list survey responses")
	h.renderFailure(w, r, "Past assessments")
}
