package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/deskboard/internal/ctxkeys"
	"github.com/templui/deskboard/internal/model"
	"github.com/templui/deskboard/internal/respond"
	"github.com/templui/deskboard/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	settings, err := h.settingsService.Settings(user.ID)
	if err != nil {
		slog.Error("failed to get settings", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.JSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var update model.SettingsUpdate
	err := decodeJSON(w, r, &update)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	settings, err := h.settingsService.Update(user.ID, update)
	if err != nil {
		var inputErr *service.InvalidInputError
		if errors.As(err, &inputErr) {
			respond.Error(w, http.StatusBadRequest, inputErr.Error())
			return
		}
		slog.Error("failed to update settings", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.JSON(w, http.StatusOK, settings)
}
