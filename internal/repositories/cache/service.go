package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dentalbooks/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by typed getters when the key is absent.
var ErrMiss = errors.New("cache miss")

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// cachedUser keeps the fields models.User hides from API responses.
type cachedUser struct {
	models.User
	Password     string `json:"password"`
	TokenVersion int    `json:"token_version"`
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, GenerateKey(EntityUser, KeyID, user.ID), cachedUser{
		User:         *user,
		Password:     user.Password,
		TokenVersion: user.TokenVersion,
	})
}

func (s *CacheService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var cu cachedUser
	found, err := s.Get(ctx, GenerateKey(EntityUser, KeyID, id), &cu)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrMiss
	}
	user := cu.User
	user.Password = cu.Password
	user.TokenVersion = cu.TokenVersion
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, id uint) error {
	return s.Delete(ctx, GenerateKey(EntityUser, KeyID, id))
}

// Calculation form caching. Forms are read on every income entry write.
func (s *CacheService) CacheForm(ctx context.Context, form *models.CalculationForm) error {
	if form == nil {
		return errors.New("cannot cache nil form")
	}
	return s.Set(ctx, GenerateKey(EntityForm, KeyID, form.ID), form)
}

func (s *CacheService) GetForm(ctx context.Context, id uint) (*models.CalculationForm, error) {
	var form models.CalculationForm
	found, err := s.Get(ctx, GenerateKey(EntityForm, KeyID, id), &form)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrMiss
	}
	return &form, nil
}

func (s *CacheService) InvalidateForm(ctx context.Context, id uint) error {
	return s.Delete(ctx, GenerateKey(EntityForm, KeyID, id))
}

// FlushAll flushes all keys from the cache
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
