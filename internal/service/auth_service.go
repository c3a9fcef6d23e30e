package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/edustack/campus-backend/internal/config"
	"github.com/edustack/campus-backend/internal/model"
	"github.com/edustack/campus-backend/internal/repository"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrSessionInvalid     = errors.New("session invalidated")
)

// Claims extends JWT standard claims with actor identity.
type Claims struct {
	jwt.RegisteredClaims
	ActorID  uuid.UUID  `json:"actor_id"`
	Role     model.Role `json:"role"`
	SchoolID *uuid.UUID `json:"school_id,omitempty"`
}

// AuthService handles authentication, JWT and session management.
type AuthService struct {
	cfg       *config.Config
	rdb       *redis.Client
	actorRepo *repository.ActorRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client, actorRepo *repository.ActorRepository) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb, actorRepo: actorRepo}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login verifies credentials and issues a token. A fresh login replaces any
// previous session for the actor.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	actor, err := s.actorRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !actor.IsActive {
		return nil, ErrAccountInactive
	}
	if err := s.CheckPassword(actor.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, Actor: *actor}, nil
}

// GenerateToken creates a JWT for an actor and registers its session JTI in
// Redis with the same expiry as the token.
func (s *AuthService) GenerateToken(ctx context.Context, actor *model.Actor) (string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   actor.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		ActorID:  actor.ID,
		Role:     actor.Role,
		SchoolID: actor.SchoolID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	sessionKey := config.CacheKey.ActorSessionKey(actor.ID)
	if err := s.rdb.Set(ctx, sessionKey, jti, s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ValidateSession checks that the token's JTI matches the active session in
// Redis. Tokens from superseded logins are rejected.
func (s *AuthService) ValidateSession(ctx context.Context, actorID uuid.UUID, jti string) error {
	stored, err := s.rdb.Get(ctx, config.CacheKey.ActorSessionKey(actorID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrSessionInvalid
		}
		return fmt.Errorf("check session: %w", err)
	}
	if stored != jti {
		return ErrSessionInvalid
	}
	return nil
}

// Logout removes the actor's session, invalidating outstanding tokens.
func (s *AuthService) Logout(ctx context.Context, actorID uuid.UUID) error {
	return s.rdb.Del(ctx, config.CacheKey.ActorSessionKey(actorID)).Err()
}
