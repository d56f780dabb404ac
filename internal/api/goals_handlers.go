package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errorvalues "github.com/limbo/waypoint/internal/error_values"
	"github.com/limbo/waypoint/internal/service"
	"github.com/limbo/waypoint/pkg/httputil"
)

const dateLayout = "2006-01-02"

type GoalRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	GoalType    string           `json:"goal_type"`
	TrackerType string           `json:"tracker_type"`
	Unit        string           `json:"unit"`
	TargetValue *decimal.Decimal `json:"target_value"`
	TargetDate  string           `json:"target_date"`
	IsPinned    bool             `json:"is_pinned"`
	IsHidden    bool             `json:"is_hidden"`
	SortOrder   int              `json:"sort_order"`
}

func parseTargetDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// goalIDFromURL pulls and parses the {id} route parameter.
func goalIDFromURL(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func (s *Server) CreateGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("creating goal error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req GoalRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("creating goal error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	targetDate, err := parseTargetDate(req.TargetDate)
	if err != nil {
		logger.Error("creating goal error: bad target date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "target_date must be YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	goal, err := s.goalsService.CreateGoal(ctx, uid, &service.CreateGoalRequest{
		Title:       req.Title,
		Description: req.Description,
		GoalType:    req.GoalType,
		TrackerType: req.TrackerType,
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
		TargetDate:  targetDate,
		IsPinned:    req.IsPinned,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidTrackerType),
			errors.Is(err, errorvalues.ErrTargetNotNumeric):
			logger.Error("creating goal error: bad tracker fields", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid tracker configuration", err)
			return
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("creating goal error: owner not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		default:
			logger.Error("creating goal error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "creating goal failed", err)
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, goal)
	logger.Info("goal created", slog.String("goal_id", goal.ID.String()))
}

func (s *Server) GetGoals(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("getting goals error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	goals, err := s.goalsService.ListGoals(ctx, uid)
	if err != nil {
		logger.Error("getting goals error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "getting goals failed", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"goals": goals,
	})
	logger.Info("goals listed", slog.Int("count", len(goals)))
}

func (s *Server) GetGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("getting goal error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	goalID, err := goalIDFromURL(r)
	if err != nil {
		logger.Error("getting goal error: invalid goal id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	goal, err := s.goalsService.GetGoal(ctx, goalID, uid)
	if err != nil {
		writeGoalLookupError(w, logger, "getting goal", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, goal)
}

func (s *Server) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("updating goal error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	goalID, err := goalIDFromURL(r)
	if err != nil {
		logger.Error("updating goal error: invalid goal id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id", nil)
		return
	}
	var req GoalRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("updating goal error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	targetDate, err := parseTargetDate(req.TargetDate)
	if err != nil {
		logger.Error("updating goal error: bad target date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "target_date must be YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	goal, err := s.goalsService.UpdateGoal(ctx, goalID, uid, &service.UpdateGoalRequest{
		Title:       req.Title,
		Description: req.Description,
		GoalType:    req.GoalType,
		TrackerType: req.TrackerType,
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
		TargetDate:  targetDate,
		IsPinned:    req.IsPinned,
		IsHidden:    req.IsHidden,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidTrackerType),
			errors.Is(err, errorvalues.ErrTargetNotNumeric):
			logger.Error("updating goal error: bad tracker fields", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid tracker configuration", err)
			return
		default:
			writeGoalLookupError(w, logger, "updating goal", err)
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, goal)
	logger.Info("goal updated", slog.String("goal_id", goal.ID.String()))
}

func (s *Server) PinGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("pinning goal error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	goalID, err := goalIDFromURL(r)
	if err != nil {
		logger.Error("pinning goal error: invalid goal id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id", nil)
		return
	}
	var req struct {
		IsPinned bool `json:"is_pinned"`
	}
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("pinning goal error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.goalsService.SetPinned(ctx, goalID, uid, req.IsPinned); err != nil {
		writeGoalLookupError(w, logger, "pinning goal", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"goal_id":   goalID.String(),
		"is_pinned": req.IsPinned,
	})
	logger.Info("goal pin toggled", slog.String("goal_id", goalID.String()), slog.Bool("pinned", req.IsPinned))
}

func (s *Server) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("deleting goal error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	goalID, err := goalIDFromURL(r)
	if err != nil {
		logger.Error("deleting goal error: invalid goal id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.goalsService.DeleteGoal(ctx, goalID, uid); err != nil {
		writeGoalLookupError(w, logger, "deleting goal", err)
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("goal deleted", slog.String("goal_id", goalID.String()))
}

// writeGoalLookupError maps lookup failures shared by all goal-scoped
// handlers. Foreign goals answer 404 the same as missing ones.
func writeGoalLookupError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, errorvalues.ErrGoalNotFound), errors.Is(err, errorvalues.ErrWrongOwner):
		logger.Error(op+" error: goal not found", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusNotFound, "goal not found", nil)
	default:
		logger.Error(op+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, op+" failed", nil)
	}
}
