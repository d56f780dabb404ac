package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	errorvalues "github.com/limbo/waypoint/internal/error_values"
	"github.com/limbo/waypoint/internal/service"
	"github.com/limbo/waypoint/pkg/httputil"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such name already exists", nil)
			return
		}
		logger.Error("registering error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "registration failed", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID.String(),
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("login error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user with such name doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid username or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID.String(),
		"token": token,
	})
	logger.Info("successful login")
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

// DeleteAccount removes the authenticated user and, via cascade, all of
// their goals, entries and memos. Requires the password again.
func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r.Context())
	if err != nil {
		logger.Error("deleting account error: no uid in context")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req DeleteAccountRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("deleting account error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err := s.userService.DeleteAccount(ctx, uid, req.Password); err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("deleting account error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid password", nil)
			return
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("deleting account error: user not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		default:
			logger.Error("deleting account error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "deleting account failed", nil)
			return
		}
	}
	httputil.WriteNoContent(w)
	logger.Info("account deleted")
}
