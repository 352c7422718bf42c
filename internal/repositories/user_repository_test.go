package repositories

import (
	"context"
	"testing"

	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo UserRepository) *models.User {
	t.Helper()
	u := &models.User{
		Email:        "dr.lee@clinic.test",
		Password:     "hash",
		Name:         "Dr Lee",
		Role:         models.RoleUser,
		Status:       models.StatusActive,
		TokenVersion: 1,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_GetByIDCachesOnMiss(t *testing.T) {
	ctx := context.Background()
	cs, mr := newTestCache(t)
	repo := NewUserRepository(newTestDB(t), cs)
	u := seedUser(t, repo)
	key := cache.GenerateKey(cache.EntityUser, cache.KeyID, u.ID)

	require.False(t, mr.Exists(key))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.True(t, mr.Exists(key))

	cached, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", cached.Password)
	assert.Equal(t, 1, cached.TokenVersion)
}

func TestUserRepository_WritesInvalidateCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		write func(repo UserRepository, u *models.User) error
		check func(t *testing.T, got *models.User)
	}{
		{
			name: "increment token version",
			write: func(repo UserRepository, u *models.User) error {
				return repo.IncrementTokenVersion(ctx, u.ID)
			},
			check: func(t *testing.T, got *models.User) {
				assert.Equal(t, 2, got.TokenVersion)
			},
		},
		{
			name: "update password",
			write: func(repo UserRepository, u *models.User) error {
				return repo.UpdatePassword(ctx, u.ID, "new-hash")
			},
			check: func(t *testing.T, got *models.User) {
				assert.Equal(t, "new-hash", got.Password)
				assert.Equal(t, 2, got.TokenVersion)
			},
		},
		{
			name: "update profile",
			write: func(repo UserRepository, u *models.User) error {
				u.Name = "Dr Lee-Smith"
				return repo.Update(ctx, u)
			},
			check: func(t *testing.T, got *models.User) {
				assert.Equal(t, "Dr Lee-Smith", got.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, mr := newTestCache(t)
			repo := NewUserRepository(newTestDB(t), cs)
			u := seedUser(t, repo)
			key := cache.GenerateKey(cache.EntityUser, cache.KeyID, u.ID)

			cached, err := repo.GetByID(ctx, u.ID)
			require.NoError(t, err)
			require.True(t, mr.Exists(key))

			require.NoError(t, tt.write(repo, cached))
			assert.False(t, mr.Exists(key))

			got, err := repo.GetByID(ctx, u.ID)
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestUserRepository_DeleteInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	cs, mr := newTestCache(t)
	repo := NewUserRepository(newTestDB(t), cs)
	u := seedUser(t, repo)
	key := cache.GenerateKey(cache.EntityUser, cache.KeyID, u.ID)

	_, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(key))

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.False(t, mr.Exists(key))

	_, err = repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepository_CacheReadFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	cs, mr := newTestCache(t)
	repo := NewUserRepository(newTestDB(t), cs)
	u := seedUser(t, repo)
	key := cache.GenerateKey(cache.EntityUser, cache.KeyID, u.ID)

	require.NoError(t, mr.Set(key, "{not json"))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, 1, got.TokenVersion)

	// the corrupt value is replaced by the row just read
	raw, err := mr.Get(key)
	require.NoError(t, err)
	assert.Contains(t, raw, u.Email)
}

func TestUserRepository_WithoutCache(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t), nil)
	u := seedUser(t, repo)

	require.NoError(t, repo.IncrementTokenVersion(ctx, u.ID))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TokenVersion)
}
