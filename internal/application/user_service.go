package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/moodwatch/internal/domain/apperr"
	"github.com/oksasatya/moodwatch/internal/domain/entity"
	repo "github.com/oksasatya/moodwatch/internal/domain/repository"
	"github.com/oksasatya/moodwatch/pkg/helpers"
)

const MinPasswordLen = 6

var errInvalidCredentials = &apperr.AuthError{Reason: "invalid credentials"}

type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client // optional; sessions are not tracked without it
	Logger *logrus.Logger
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, JWT: jwt, Redis: rdb, Logger: logger}
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func sessionKey(userID int64) string {
	return helpers.SessionKey(strconv.FormatInt(userID, 10))
}

// Register creates the user with the default role and logs them in.
func (s *UserService) Register(ctx context.Context, username, password string) (*entity.User, TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, TokenPair{}, apperr.Validation("username", "username is required")
	}
	if len(password) < MinPasswordLen {
		return nil, TokenPair{}, apperr.Validation("password", fmt.Sprintf("password must be at least %d characters long", MinPasswordLen))
	}
	hash, err := helpers.HashPassword(password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, TokenPair{}, apperr.Validation("password", "password must be at most 72 bytes")
	}
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{Username: username, Password: hash, Role: entity.DefaultRole}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrUsernameTaken) {
			return nil, TokenPair{}, apperr.Validation("username", "username already exists")
		}
		return nil, TokenPair{}, fmt.Errorf("create user: %w", err)
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*entity.User, TokenPair, error) {
	u, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil || u == nil {
		return nil, TokenPair{}, errInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, errInvalidCredentials
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"username":   u.Username,
			"role":       u.Role,
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.JWT.RefreshTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.log().WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh validates the refresh token against the live session and rotates both tokens.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, int64, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, 0, errInvalidCredentials
	}
	uid, err := claims.UID()
	if err != nil {
		return TokenPair{}, 0, errInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, uid)
	if err != nil || u == nil {
		return TokenPair{}, 0, errInvalidCredentials
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, 0, errInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, 0, err
	}
	return pair, u.ID, nil
}

// Logout drops the session so outstanding tokens stop working.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	if s.Redis == nil {
		return nil
	}
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		s.log().WithError(err).WithField("user_id", userID).Warn("redis delete session failed")
		return err
	}
	return nil
}

func (s *UserService) Get(ctx context.Context, userID int64) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, &apperr.AuthError{Reason: "user not found"}
		}
		return nil, err
	}
	return u, nil
}

// UpdateRole changes the user's role, the only mutable user attribute.
func (s *UserService) UpdateRole(ctx context.Context, userID int64, role string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return apperr.Validation("role", "role is required")
	}
	if err := s.Repo.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if s.Redis != nil {
		key := sessionKey(userID)
		if n, err := s.Redis.Exists(ctx, key).Result(); err == nil && n > 0 {
			_ = s.Redis.HSet(ctx, key, "role", role, "updated_at", nowRFC3339()).Err()
		}
	}
	return nil
}

func (s *UserService) log() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
