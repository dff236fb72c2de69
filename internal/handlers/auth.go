// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lapalette/backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// The auth pages expect {success, message} envelopes with the original
// French demo copy, so these handlers do not use the shared error helper.
func authError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authError(c, http.StatusBadRequest, "Adresse e-mail et mot de passe requis (démo).")
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			authError(c, http.StatusBadRequest, "Adresse e-mail et mot de passe requis (démo).")
		case errors.Is(err, services.ErrInvalidEmail):
			authError(c, http.StatusBadRequest, "Merci de saisir une adresse e-mail valide (démo).")
		default:
			authError(c, http.StatusUnauthorized, "Identifiants invalides (démo).")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

// POST /auth/reset-demo
// Demo-only: the new password lives in memory until the server restarts.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req services.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		authError(c, http.StatusBadRequest, "Email, ancien mot de passe et nouveau mot de passe requis (démo).")
		return
	}

	if err := h.authService.ResetPassword(&req); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			authError(c, http.StatusBadRequest, "Email, ancien mot de passe et nouveau mot de passe requis (démo).")
		case errors.Is(err, services.ErrUserNotFound):
			authError(c, http.StatusNotFound, "Aucun compte trouvé pour cet e-mail (démo).")
		case errors.Is(err, services.ErrWeakPassword):
			authError(c, http.StatusBadRequest, "Le nouveau mot de passe doit contenir au moins 4 caractères (démo).")
		default:
			authError(c, http.StatusUnauthorized, "Ancien mot de passe incorrect (démo).")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Mot de passe mis à jour (démo, jusqu'au prochain redémarrage du serveur).",
	})
}
