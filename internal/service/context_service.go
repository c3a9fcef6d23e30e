package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edustack/campus-backend/internal/config"
	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/policy"
	"github.com/edustack/campus-backend/internal/repository"
)

// scopeCacheTTL bounds how stale a cached actor context may get. Profile
// writes invalidate eagerly; the TTL covers out-of-band changes.
const scopeCacheTTL = 5 * time.Minute

// ContextService loads the policy evaluation context for an actor, caching
// it in Redis since every request needs it.
type ContextService struct {
	cfg         *config.Config
	rdb         *redis.Client
	profileRepo *repository.ProfileRepository
	logger      zerolog.Logger
}

// NewContextService creates a new ContextService.
func NewContextService(cfg *config.Config, rdb *redis.Client, profileRepo *repository.ProfileRepository) *ContextService {
	return &ContextService{
		cfg:         cfg,
		rdb:         rdb,
		profileRepo: profileRepo,
		logger:      log.With().Str("component", "context_service").Logger(),
	}
}

// Resolve returns the policy context for an actor, from cache when possible.
func (s *ContextService) Resolve(ctx context.Context, actor *model.Actor) (*policy.Actor, error) {
	key := config.CacheKey.ActorScopeKey(actor.ID)

	cached, err := s.rdb.Get(ctx, key).Bytes()
	if err == nil {
		pa := &policy.Actor{}
		if err := json.Unmarshal(cached, pa); err == nil {
			return pa, nil
		}
		// Corrupt cache entry; fall through to a rebuild.
		s.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn().Err(err).Msg("scope cache read failed, rebuilding from database")
	}

	primaryOnly := s.cfg.ParentVisibility == config.ParentVisibilityPrimary
	pa, err := s.profileRepo.BuildActorContext(ctx, actor, primaryOnly)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(pa); err == nil {
		if err := s.rdb.Set(ctx, key, raw, scopeCacheTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("scope cache write failed")
		}
	}
	return pa, nil
}

// Invalidate drops an actor's cached context. Called after profile or
// assignment-list writes so the next request sees fresh bindings.
func (s *ContextService) Invalidate(ctx context.Context, actorID uuid.UUID) {
	if err := s.rdb.Del(ctx, config.CacheKey.ActorScopeKey(actorID)).Err(); err != nil {
		s.logger.Warn().Err(err).Str("actor_id", actorID.String()).Msg("scope cache invalidation failed")
	}
}
