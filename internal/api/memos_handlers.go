package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"

	errorvalues "github.com/limbo/waypoint/internal/error_values"
	"github.com/limbo/waypoint/internal/service"
	"github.com/limbo/waypoint/pkg/httputil"
)

func (s *Server) SaveMemo(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("saving memo error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	topic := chi.URLParam(r, "topic")
	var req struct {
		Body string `json:"body"`
	}
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("saving memo error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.memosService.SaveMemo(ctx, uid, &service.MemoRequest{
		Topic: topic,
		Body:  req.Body,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("saving memo error: user not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		}
		logger.Error("saving memo error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "saving memo failed", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"topic": topic,
	})
	logger.Info("memo saved", slog.String("topic", topic))
}

func (s *Server) GetMemo(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("getting memo error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	topic := chi.URLParam(r, "topic")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	memo, err := s.memosService.GetMemo(ctx, uid, topic)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMemoNotFound) {
			logger.Error("getting memo error: memo not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "memo not found", nil)
			return
		}
		logger.Error("getting memo error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "getting memo failed", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, memo)
}

func (s *Server) GetMemos(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("getting memos error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	memos, err := s.memosService.ListMemos(ctx, uid)
	if err != nil {
		logger.Error("getting memos error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "getting memos failed", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"memos": memos,
	})
	logger.Info("memos listed", slog.Int("count", len(memos)))
}

func (s *Server) DeleteMemo(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("deleting memo error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	topic := chi.URLParam(r, "topic")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.memosService.DeleteMemo(ctx, uid, topic); err != nil {
		if errors.Is(err, errorvalues.ErrMemoNotFound) {
			logger.Error("deleting memo error: memo not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "memo not found", nil)
			return
		}
		logger.Error("deleting memo error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "deleting memo failed", nil)
		return
	}
	httputil.WriteNoContent(w)
	logger.Info("memo deleted", slog.String("topic", topic))
}
