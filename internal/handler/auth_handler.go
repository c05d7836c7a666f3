package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/slashrage/jalapeno-business/internal/apperrors"
	"github.com/slashrage/jalapeno-business/internal/models"
	"github.com/slashrage/jalapeno-business/internal/service"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteError(w, "email и пароль обязательны", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// bad credentials go out as 401, not 400
		if apperrors.IsKind(err, apperrors.KindValidation) {
			WriteError(w, "неверный email или пароль", http.StatusUnauthorized)
			return
		}
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// GetCurrentUser returns the profile of the authenticated user
func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "требуется авторизация", http.StatusUnauthorized)
		return
	}

	user, err := h.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, user)
}

// UpdateUser changes the name and email of the authenticated user
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req service.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.UpdateUser(r.Context(), userID, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, user)
}

// UpdatePassword checks the current password and issues a fresh token
func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "требуется авторизация", http.StatusUnauthorized)
		return
	}

	var req UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		WriteError(w, "текущий и новый пароль обязательны", http.StatusBadRequest)
		return
	}

	token, err := h.AuthService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]string{"token": token})
}
