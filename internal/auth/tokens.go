package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/meridian-ims/meridian-ims/internal/shared"
)

const tokenPrefix = "ims:token:"

// TokenStore keeps opaque bearer tokens in Redis; a token expires with its
// key, no sweeper needed.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

type tokenRecord struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// Issue creates a fresh token for the user and stores it with TTL.
func (s *TokenStore) Issue(ctx context.Context, user *User) (string, time.Time, error) {
	token := uuid.NewString()
	payload, err := json.Marshal(tokenRecord{UserID: user.ID, Email: user.Email})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("marshal token record: %w", err)
	}
	if err := s.client.Set(ctx, tokenPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("store token: %w", err)
	}
	return token, time.Now().Add(s.ttl), nil
}

// Resolve maps a bearer token back to its user, or ErrInvalidCredentials.
func (s *TokenStore) Resolve(ctx context.Context, token string) (shared.AuthUser, error) {
	payload, err := s.client.Get(ctx, tokenPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return shared.AuthUser{}, shared.ErrInvalidCredentials
	}
	if err != nil {
		return shared.AuthUser{}, fmt.Errorf("fetch token: %w", err)
	}
	var rec tokenRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return shared.AuthUser{}, fmt.Errorf("decode token record: %w", err)
	}
	return shared.AuthUser{ID: rec.UserID, Email: rec.Email}, nil
}

// Revoke deletes a token; revoking an unknown token is not an error.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, tokenPrefix+token).Err()
}
