// Package dashboard decides whether a dashboard request is redirected or
// rendered, and assembles the view model from the user's profile, latest
// survey response and points.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"aiadoption/internal/auth"
	"aiadoption/internal/repo"
)

const (
	LoginPath  = "/login"
	SurveyPath = "/survey"
)

// Defaults applied when a row is absent or a value is unset.
const (
	DefaultDisplayName = "there"
	DefaultPoints      = 0
	DefaultLevel       = 1
	DefaultScore       = 0
)

// Store is the read side the dashboard needs. Lookups that match no row
// return an error wrapping repo.ErrNotFound.
type Store interface {
	ProfileByID(ctx context.Context, id uuid.UUID) (*repo.Profile, error)
	LatestSurveyResponse(ctx context.Context, userID uuid.UUID) (*repo.SurveyResponse, error)
	PointsByUserID(ctx context.Context, userID uuid.UUID) (*repo.UserPoints, error)
}

// Reason says why Resolve redirected. A missing profile and an unfinished
// onboarding both go to the survey, but stay distinguishable for logging.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnauthenticated
	ReasonProfileMissing
	ReasonOnboardingIncomplete
)

func (r Reason) String() string {
	switch r {
	case ReasonUnauthenticated:
		return "unauthenticated"
	case ReasonProfileMissing:
		return "profile_missing"
	case ReasonOnboardingIncomplete:
		return "onboarding_incomplete"
	default:
		return "none"
	}
}

// Outcome is either a redirect (Redirect non-empty, with its Reason) or a
// view. Exactly one of Redirect and View is set.
type Outcome struct {
	Redirect string
	Reason   Reason
	View     *ViewModel
}

func (o Outcome) IsRedirect() bool {
	return o.Redirect != ""
}

// ViewModel is what the dashboard page renders. Absent rows are already
// replaced with defaults.
type ViewModel struct {
	DisplayName      string
	Points           int
	Level            int
	AIReadinessScore int
	Roadmap          []repo.RoadmapStep
}

// Service decides between redirecting and rendering the dashboard.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Resolve runs the onboarding gate for user and, once it passes, loads the
// survey and points concurrently. A nil user redirects to the login page
// without touching the store.
func (s *Service) Resolve(ctx context.Context, user *auth.User) (Outcome, error) {
	if user == nil {
		return Outcome{Redirect: LoginPath, Reason: ReasonUnauthenticated}, nil
	}

	profile, err := s.store.ProfileByID(ctx, user.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return Outcome{Redirect: SurveyPath, Reason: ReasonProfileMissing}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("load profile: %w", err)
	}
	if !profile.OnboardingCompleted {
		return Outcome{Redirect: SurveyPath, Reason: ReasonOnboardingIncomplete}, nil
	}

	var (
		survey *repo.SurveyResponse
		points *repo.UserPoints
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		item, err := s.store.LatestSurveyResponse(gctx, user.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load latest survey response: %w", err)
		}
		survey = item
		return nil
	})
	g.Go(func() error {
		item, err := s.store.PointsByUserID(gctx, user.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load points: %w", err)
		}
		points = item
		return nil
	})
	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}

	view := Assemble(profile, survey, points)
	return Outcome{View: &view}, nil
}

// Assemble applies every default in one place. survey and points may be nil.
func Assemble(profile *repo.Profile, survey *repo.SurveyResponse, points *repo.UserPoints) ViewModel {
	view := ViewModel{
		DisplayName:      DefaultDisplayName,
		Points:           DefaultPoints,
		Level:            DefaultLevel,
		AIReadinessScore: DefaultScore,
		Roadmap:          []repo.RoadmapStep{},
	}

	if profile != nil && profile.FullName != nil {
		if name := strings.TrimSpace(*profile.FullName); name != "" {
			view.DisplayName = name
		}
	}

	if points != nil {
		if points.Points > 0 {
			view.Points = points.Points
		}
		if points.Level >= 1 {
			view.Level = points.Level
		}
	}

	if survey != nil {
		if survey.AIReadinessScore > 0 {
			view.AIReadinessScore = survey.AIReadinessScore
		}
		if len(survey.Roadmap) > 0 {
			view.Roadmap = append(view.Roadmap, survey.Roadmap...)
		}
	}

	return view
}
