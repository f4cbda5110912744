package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/templui/deskboard/internal/ctxkeys"
	"github.com/templui/deskboard/internal/respond"
	"github.com/templui/deskboard/internal/service"
)

// AccountHandler serves the signed-in user's profile, dashboard and analytics.
type AccountHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAccountHandler(authService *service.AuthService, userService *service.UserService) *AccountHandler {
	return &AccountHandler{
		authService: authService,
		userService: userService,
	}
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.userService.Profile(user.ID)
	if err != nil {
		slog.Error("failed to load profile", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.JSON(w, http.StatusOK, profile)
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateProfileRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	updated, err := h.userService.UpdateName(user.ID, req.Name)
	if err != nil {
		var inputErr *service.InvalidInputError
		if errors.As(err, &inputErr) {
			respond.Error(w, http.StatusBadRequest, inputErr.Error())
			return
		}
		slog.Error("failed to update profile", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.userService.DeleteAccount(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to delete account", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.authService.ClearJWTCookie(w)
	respond.Message(w, "Account deleted successfully")
}

func (h *AccountHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	summary, err := h.userService.Dashboard(user.ID)
	if err != nil {
		slog.Error("failed to load dashboard", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.JSON(w, http.StatusOK, summary)
}

func (h *AccountHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	days := service.DefaultAnalyticsDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respond.Error(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	analytics, err := h.userService.Analytics(user.ID, days, time.Now())
	if err != nil {
		slog.Error("failed to compute analytics", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.JSON(w, http.StatusOK, analytics)
}
