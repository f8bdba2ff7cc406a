package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/techfolio/backend/internal/domain/wizard"
	"github.com/techfolio/backend/pkg/apperror"
)

// redisSessionStore keeps wizard drafts in Redis so an edit session
// survives between requests without touching the portfolio record until
// the owner saves.
type redisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) wizard.Store {
	return &redisSessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(ownerID uuid.UUID) string {
	return "wizard:session:" + ownerID.String()
}

func (s *redisSessionStore) Get(ctx context.Context, ownerID uuid.UUID) (*wizard.Session, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.NewNotFound("wizard session", ownerID.String())
		}
		return nil, apperror.NewInternal("failed to read wizard session", err)
	}

	session := &wizard.Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, apperror.NewInternal("failed to decode wizard session", err)
	}
	if session.Draft != nil {
		session.Draft.Normalize()
	}
	return session, nil
}

func (s *redisSessionStore) Put(ctx context.Context, session *wizard.Session) error {
	session.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(session)
	if err != nil {
		return apperror.NewInternal("failed to encode wizard session", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(session.OwnerID), raw, s.ttl).Err(); err != nil {
		return apperror.NewInternal("failed to store wizard session", err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, ownerID uuid.UUID) error {
	if err := s.rdb.Del(ctx, sessionKey(ownerID)).Err(); err != nil {
		return apperror.NewInternal("failed to delete wizard session", err)
	}
	return nil
}
