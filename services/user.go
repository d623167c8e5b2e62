package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/peoplehq/orgdir/authz"
	"github.com/peoplehq/orgdir/db"
)

// UserService reads user records, gated by the authorization policy.
type UserService struct {
	PG    *sql.DB
	Redis *redis.Client
	Gate  *authz.Gate

	// CacheTTL bounds how stale a cached user record may be.
	CacheTTL time.Duration
}

// NewUserService creates a new UserService. redis may be nil, which
// disables the cache.
func NewUserService(pg *sql.DB, rdb *redis.Client, gate *authz.Gate) *UserService {
	return &UserService{PG: pg, Redis: rdb, Gate: gate, CacheTTL: 5 * time.Minute}
}

// GetUser returns a user record if the requester is allowed to see
// it: themselves, or someone they share an organisation with.
func (s *UserService) GetUser(ctx context.Context, requesterID, targetID string) (*db.User, error) {
	user, err := s.fetchUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !s.Gate.CanViewUser(ctx, requesterID, targetID) {
		return nil, authz.ErrForbidden
	}
	return user, nil
}

// fetchUser reads through the Redis cache to the database.
func (s *UserService) fetchUser(ctx context.Context, id string) (*db.User, error) {
	key := "user:" + id

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var user db.User
			if err := json.Unmarshal([]byte(cached), &user); err == nil {
				return &user, nil
			}
			// Corrupt cache entry: drop it and fall through to the DB
			s.Redis.Del(ctx, key)
		}
	}

	var user db.User
	err := s.PG.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, COALESCE(phone, ''), is_active, is_staff, created_at, updated_at
		FROM users
		WHERE id = $1 AND is_active = true
	`, id).Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone,
		&user.IsActive, &user.IsStaff, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, authz.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(user); err == nil {
			s.Redis.Set(ctx, key, payload, s.CacheTTL)
		}
	}

	return &user, nil
}
