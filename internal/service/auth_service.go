package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healthassist/healthassist-go/internal/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
)

// AuthService handles registration, login and bearer-token sessions.
// Tokens are opaque uuids kept in redis with a TTL.
type AuthService struct {
	store       *store.SQLiteStore
	redisClient *redis.Client
	sessionTTL  time.Duration
	logger      *zap.Logger
}

// NewAuthService creates the auth service
func NewAuthService(st *store.SQLiteStore, redisClient *redis.Client, sessionTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:       st,
		redisClient: redisClient,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// Register creates a new account
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	existing, err := s.store.GetUserByUsername(username)
	if err != nil {
		return fmt.Errorf("looking up username: %w", err)
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.store.CreateUser(username, string(hashed)); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", zap.String("username", username))
	return nil
}

// Login verifies credentials and issues a bearer token
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		return "", fmt.Errorf("looking up username: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.New().String()
	if err := s.redisClient.Set(ctx, sessionKey(token), username, s.sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}

	s.logger.Info("user logged in", zap.String("username", username))
	return token, nil
}

// ResolveToken returns the username a token belongs to
func (s *AuthService) ResolveToken(ctx context.Context, token string) (string, error) {
	username, err := s.redisClient.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolving session: %w", err)
	}
	return username, nil
}

func sessionKey(token string) string {
	return "session:" + token
}
