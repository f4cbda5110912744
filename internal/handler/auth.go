package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/deskboard/internal/model"
	"github.com/templui/deskboard/internal/respond"
	"github.com/templui/deskboard/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var inputErr *service.InvalidInputError
		switch {
		case errors.As(err, &inputErr):
			respond.Error(w, http.StatusBadRequest, inputErr.Error())
		case errors.Is(err, service.ErrEmailAlreadyExists):
			respond.Error(w, http.StatusConflict, "User already exists")
		default:
			slog.Error("failed to register user", "error", err)
			respond.Error(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		respond.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to log in", "error", err)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, expiry, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.authService.SetJWTCookie(w, token, expiry)
	slog.Info("user logged in", "user_id", user.ID)

	respond.JSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	respond.Message(w, "Logged out")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(v)
}
