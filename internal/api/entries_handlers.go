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

type EntryRequest struct {
	EntryDate  string           `json:"entry_date"`
	IsDone     *bool            `json:"is_done"`
	Value      *decimal.Decimal `json:"value"`
	Reflection string           `json:"reflection"`
}

func (s *Server) LogEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("logging entry error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	goalID, err := goalIDFromURL(r)
	if err != nil {
		logger.Error("logging entry error: invalid goal id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id", nil)
		return
	}
	var req EntryRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("logging entry error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	entryDate, err := time.Parse(dateLayout, req.EntryDate)
	if err != nil {
		logger.Error("logging entry error: bad entry date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "entry_date must be YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entry, err := s.entriesService.LogEntry(ctx, goalID, uid, &service.LogEntryRequest{
		EntryDate:  entryDate,
		IsDone:     req.IsDone,
		Value:      req.Value,
		Reflection: req.Reflection,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTrackerUnset),
			errors.Is(err, errorvalues.ErrEntryKindMismatch),
			errors.Is(err, errorvalues.ErrEntryDateNotAllowed):
			logger.Error("logging entry error: rejected entry", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "entry rejected", err)
			return
		default:
			writeGoalLookupError(w, logger, "logging entry", err)
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, entry)
	logger.Info("entry logged", slog.String("entry_id", entry.ID.String()))
}

func (s *Server) GetEntries(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("getting entries error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	goalID, err := goalIDFromURL(r)
	if err != nil {
		logger.Error("getting entries error: invalid goal id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	entries, err := s.entriesService.ListEntries(ctx, goalID, uid)
	if err != nil {
		writeGoalLookupError(w, logger, "getting entries", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"entries": entries,
	})
	logger.Info("entries listed", slog.Int("count", len(entries)))
}

func (s *Server) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("deleting entry error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error("deleting entry error: invalid entry id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid entry id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.entriesService.DeleteEntry(ctx, entryID, uid); err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrEntryNotFound),
			errors.Is(err, errorvalues.ErrGoalNotFound),
			errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("deleting entry error: entry not found", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusNotFound, "entry not found", nil)
			return
		default:
			logger.Error("deleting entry error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "deleting entry failed", nil)
			return
		}
	}
	httputil.WriteNoContent(w)
	logger.Info("entry deleted", slog.String("entry_id", entryID.String()))
}
