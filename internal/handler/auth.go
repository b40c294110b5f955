package handler

import (
	"net/http"

	"github.com/jobbuddy/api/internal/service"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := Decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		ServiceError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := Decode(r, &req); err != nil {
		Error(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		ServiceError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		ServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// Logout exists for client symmetry. Tokens are stateless, so there is
// nothing to invalidate server side.
func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{"message": "Logout successful"})
}

type recoverRequest struct {
	Email string `json:"email"`
}

// RecoverPassword responds identically whether or not the email exists.
func (h *authHandler) RecoverPassword(w http.ResponseWriter, r *http.Request) {
	var req recoverRequest
	if err := Decode(r, &req); err != nil || req.Email == "" {
		Error(w, http.StatusBadRequest, CodeBadRequest, "email is required")
		return
	}

	h.authService.RecoverPassword(req.Email)

	JSON(w, http.StatusOK, map[string]any{
		"message": "If an account with that email exists, recovery instructions have been sent",
	})
}
