// Package auth issues and validates sessions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories"
	"dentalbooks/internal/utils"
	"dentalbooks/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// TokenPair is what Login and RefreshTokens hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type Service interface {
	Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, session *models.UserClaims) error
	ChangePassword(ctx context.Context, session *models.UserClaims, oldPassword, newPassword string) error
	// Authenticate resolves an access token into a live session.
	Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error)
}

type service struct {
	userRepo repositories.UserRepository
	now      func() time.Time
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// HashPassword bcrypt-hashes a plaintext password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPasswordPolicy returns ErrWeakPassword when password is too weak.
func CheckPasswordPolicy(password string) error {
	v := validation.New()
	v.Password("password", password)
	if !v.Valid() {
		return fmt.Errorf("%w: %s", apperrors.ErrWeakPassword, v.Errors["password"])
	}
	return nil
}

func (s *service) Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	if err := CheckPasswordPolicy(input.Password); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         strings.TrimSpace(input.Name),
		Password:     hashed,
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		TokenVersion: 1,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("Registered user ID: %d", user.ID)
	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			log.Printf("Login failed: no user for %s", email)
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Login failed: Incorrect password for user ID: %d", user.ID)
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if user.Status != models.StatusActive {
		log.Printf("Login refused: user ID %d is %s", user.ID, user.Status)
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	tokens, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		log.Printf("Failed to record last login for user ID %d: %v", user.ID, err)
	}
	return user, tokens, nil
}

func (s *service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseTokenOfType(refreshToken, models.TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.current(ctx, claims)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *service) Logout(ctx context.Context, session *models.UserClaims) error {
	return s.userRepo.IncrementTokenVersion(ctx, session.UserID)
}

func (s *service) ChangePassword(ctx context.Context, session *models.UserClaims, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperrors.ErrInvalidCredentials
	}
	if err := CheckPasswordPolicy(newPassword); err != nil {
		return err
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	// UpdatePassword also bumps the token version, revoking every open session.
	return s.userRepo.UpdatePassword(ctx, user.ID, hashed)
}

func (s *service) Authenticate(ctx context.Context, accessToken string) (*models.UserClaims, error) {
	claims, err := utils.ParseTokenOfType(accessToken, models.TokenTypeAccess)
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, apperrors.ErrInvalidToken
	}
	if _, err := s.current(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// current loads the user behind claims and checks the token is still live.
func (s *service) current(ctx context.Context, claims *models.UserClaims) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if user.TokenVersion != claims.TokenVersion {
		log.Printf("Token version mismatch for user %d. Token: %d, DB: %d",
			user.ID, claims.TokenVersion, user.TokenVersion)
		return nil, apperrors.ErrSessionExpired
	}
	if user.Status != models.StatusActive {
		return nil, apperrors.ErrSessionExpired
	}
	return user, nil
}

func (s *service) issue(user *models.User) (*TokenPair, error) {
	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		log.Println("Error generating tokens:", err)
		return nil, fmt.Errorf("generate tokens: %w", err)
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(utils.AccessTokenTTL.Seconds()),
	}, nil
}
