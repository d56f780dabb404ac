package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/limbo/waypoint/pkg/httputil"
)

func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("building dashboard error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	vm, err := s.dashboardService.BuildDashboard(ctx, uid)
	if err != nil {
		// The view model is still valid, only emptier than it should be.
		logger.Warn("building dashboard degraded", slog.String("error", err.Error()))
	}
	httputil.WriteJSONResponse(w, http.StatusOK, vm)
	logger.Info("dashboard built",
		slog.Int("pinned", len(vm.Pinned)),
		slog.Int("other", len(vm.Other)),
	)
}

func (s *Server) GetGoalDetail(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("building goal detail error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	goalID, err := goalIDFromURL(r)
	if err != nil {
		logger.Error("building goal detail error: invalid goal id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	detail, err := s.dashboardService.GoalDetail(ctx, goalID, uid)
	if err != nil {
		writeGoalLookupError(w, logger, "building goal detail", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, detail)
}
