// internal/services/auth_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/lapalette/backend/internal/models"
	"github.com/lapalette/backend/internal/utils"
)

// AuthService implements the demo login. The token is the bare
// "<userId>:<role>" pair: unsigned, no expiry, trivially forgeable. That is
// acceptable only because nothing server-side trusts it.
type AuthService struct {
	store CredentialStore
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginUser struct {
	ID          int64           `json:"id"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	DisplayName string          `json:"displayName"`
	ShopID      *int64          `json:"shopId"`
}

type LoginResult struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func NewAuthService(store CredentialStore) *AuthService {
	return &AuthService{
		store: store,
	}
}

func (s *AuthService) Login(req *LoginRequest) (*LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.IsValidEmail(normalizedEmail) {
		return nil, ErrInvalidEmail
	}

	// Unknown email and wrong password both land on the same error so the
	// response does not leak which emails exist
	user, ok := s.store.FindByEmail(normalizedEmail)
	if !ok || req.Password != user.Password {
		return nil, ErrInvalidCredentials
	}

	token := fmt.Sprintf("%d:%s", user.ID, user.Role)

	return &LoginResult{
		Token: token,
		User: LoginUser{
			ID:          user.ID,
			Email:       user.Email,
			Role:        user.Role,
			DisplayName: user.DisplayName,
			ShopID:      user.ShopID,
		},
	}, nil
}

// ResetPassword swaps the demo password in memory; the change is lost when
// the process restarts.
func (s *AuthService) ResetPassword(req *ResetPasswordRequest) error {
	if req.Email == "" || req.OldPassword == "" || req.NewPassword == "" {
		return ErrMissingCredentials
	}

	user, ok := s.store.FindByEmail(req.Email)
	if !ok {
		return ErrUserNotFound
	}

	if req.OldPassword != user.Password {
		return ErrInvalidCredentials
	}

	trimmed := strings.TrimSpace(req.NewPassword)
	if len(trimmed) < 4 {
		return ErrWeakPassword
	}

	if !s.store.UpdatePassword(user.ID, trimmed) {
		return ErrUserNotFound
	}

	return nil
}
