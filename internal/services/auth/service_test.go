package auth

import (
	"context"
	"testing"

	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories/mocks"
	"dentalbooks/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const goodPassword = "Sup3r!secret"

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func activeUser(t *testing.T) *models.User {
	u := &models.User{
		Email:        "dentist@example.com",
		Password:     hashed(t, goodPassword),
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		TokenVersion: 2,
	}
	u.ID = 7
	return u
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("weak password", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		s := NewService(repo)

		_, err := s.Register(ctx, &models.CreateUserInput{Email: "a@b.co", Name: "A", Password: "password"})
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates normalised user", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "dentist@example.com" &&
				u.Role == models.RoleUser &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(goodPassword)) == nil
		})).Return(nil)
		s := NewService(repo)

		user, err := s.Register(ctx, &models.CreateUserInput{Email: " Dentist@Example.com ", Name: "Dr Who", Password: goodPassword})
		require.NoError(t, err)
		assert.Equal(t, "Dr Who", user.Name)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		repo.On("Create", ctx, mock.Anything).Return(apperrors.ErrEmailTaken)
		s := NewService(repo)

		_, err := s.Register(ctx, &models.CreateUserInput{Email: "a@b.co", Name: "A", Password: goodPassword})
		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	tests := []struct {
		name     string
		password string
		setup    func(*mocks.UserRepository, *models.User)
		wantErr  error
	}{
		{
			name:     "unknown email",
			password: goodPassword,
			setup: func(r *mocks.UserRepository, _ *models.User) {
				r.On("GetByEmail", ctx, "dentist@example.com").Return(nil, apperrors.ErrUserNotFound)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			password: "Wr0ng!pass",
			setup: func(r *mocks.UserRepository, u *models.User) {
				r.On("GetByEmail", ctx, "dentist@example.com").Return(u, nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "success",
			password: goodPassword,
			setup: func(r *mocks.UserRepository, u *models.User) {
				r.On("GetByEmail", ctx, "dentist@example.com").Return(u, nil)
				r.On("TouchLastLogin", ctx, u.ID, mock.Anything).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.UserRepository)
			u := activeUser(t)
			tt.setup(repo, u)
			s := NewService(repo)

			user, tokens, err := s.Login(ctx, "dentist@example.com", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tokens)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.ID, user.ID)

			claims, err := utils.ParseTokenOfType(tokens.AccessToken, models.TokenTypeAccess)
			require.NoError(t, err)
			assert.Equal(t, 2, claims.TokenVersion)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_RefreshTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	u := activeUser(t)
	_, refresh, err := utils.GenerateTokens(&models.UserClaims{UserID: u.ID, Role: u.Role, TokenVersion: u.TokenVersion})
	require.NoError(t, err)

	t.Run("reissues while version matches", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		repo.On("GetByID", ctx, u.ID).Return(u, nil)

		tokens, err := NewService(repo).RefreshTokens(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("revoked after logout", func(t *testing.T) {
		bumped := *u
		bumped.TokenVersion++
		repo := new(mocks.UserRepository)
		repo.On("GetByID", ctx, u.ID).Return(&bumped, nil)

		_, err := NewService(repo).RefreshTokens(ctx, refresh)
		assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		access, _, err := utils.GenerateTokens(&models.UserClaims{UserID: u.ID, TokenVersion: u.TokenVersion})
		require.NoError(t, err)

		_, err = NewService(new(mocks.UserRepository)).RefreshTokens(ctx, access)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestService_Authenticate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	u := activeUser(t)

	access, refresh, err := utils.GenerateTokens(&models.UserClaims{UserID: u.ID, Role: u.Role, TokenVersion: u.TokenVersion})
	require.NoError(t, err)

	repo := new(mocks.UserRepository)
	repo.On("GetByID", ctx, u.ID).Return(u, nil)
	s := NewService(repo)

	claims, err := s.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	_, err = s.Authenticate(ctx, refresh)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	session := &models.UserClaims{UserID: 7}

	t.Run("wrong old password", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		repo.On("GetByID", ctx, uint(7)).Return(activeUser(t), nil)

		err := NewService(repo).ChangePassword(ctx, session, "nope", "N3w!password")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("weak new password", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		repo.On("GetByID", ctx, uint(7)).Return(activeUser(t), nil)

		err := NewService(repo).ChangePassword(ctx, session, goodPassword, "short")
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
	})

	t.Run("stores new hash", func(t *testing.T) {
		repo := new(mocks.UserRepository)
		repo.On("GetByID", ctx, uint(7)).Return(activeUser(t), nil)
		repo.On("UpdatePassword", ctx, uint(7), mock.MatchedBy(func(h string) bool {
			return bcrypt.CompareHashAndPassword([]byte(h), []byte("N3w!password")) == nil
		})).Return(nil)

		require.NoError(t, NewService(repo).ChangePassword(ctx, session, goodPassword, "N3w!password"))
		repo.AssertExpectations(t)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.UserRepository)
	repo.On("IncrementTokenVersion", ctx, uint(7)).Return(nil)

	require.NoError(t, NewService(repo).Logout(ctx, &models.UserClaims{UserID: 7}))
	repo.AssertExpectations(t)
}
