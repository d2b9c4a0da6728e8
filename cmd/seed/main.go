package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/moodwatch/config"
	"github.com/oksasatya/moodwatch/internal/domain/entity"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
	pginfra "github.com/oksasatya/moodwatch/internal/infrastructure/postgres"
	"github.com/oksasatya/moodwatch/pkg/helpers"
)

// Seeds a demo user (SEED_USERNAME, SEED_PASSWORD, SEED_ROLE) with a week of moods.
// A random password is generated and printed when SEED_PASSWORD is unset.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()
	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	users := pginfra.NewUserRepository(pool)
	store := pginfra.NewRecordStore(pool)

	username := envOr("SEED_USERNAME", "demo")
	password := os.Getenv("SEED_PASSWORD")
	generated := password == ""
	if generated {
		if password, err = randomPassword(); err != nil {
			logger.WithError(err).Fatal("failed to generate password")
		}
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		logger.WithError(err).Fatal("failed to hash password")
	}

	u := &entity.User{Username: username, Password: hash, Role: entity.DefaultRole}
	switch err := users.Create(ctx, u); {
	case err == nil:
	case errors.Is(err, repository.ErrUsernameTaken):
		existing, gErr := users.GetByUsername(ctx, username)
		if gErr != nil {
			logger.WithError(gErr).Fatal("failed to load existing user")
		}
		logger.WithField("user_id", existing.ID).Info("user already seeded")
		return
	default:
		logger.WithError(err).Fatal("failed to seed user")
	}

	if role := os.Getenv("SEED_ROLE"); role != "" {
		if err := users.UpdateRole(ctx, u.ID, role); err != nil {
			logger.WithError(err).Fatal("failed to set role")
		}
		u.Role = role
	}

	notes := []string{"slept badly", "", "good workout", "", "deadline stress", "", "weekend with friends"}
	for i, score := range []int{4, 5, 7, 6, 3, 6, 8} {
		m := &entity.Mood{UserID: u.ID, Score: score}
		if notes[i] != "" {
			n := notes[i]
			m.Note = &n
		}
		if err := store.CreateMood(ctx, m); err != nil {
			logger.WithError(err).Fatal("failed to seed mood")
		}
	}

	fields := logrus.Fields{"user_id": u.ID, "username": u.Username, "role": u.Role, "moods": 7}
	logger.WithFields(fields).Info("seeded demo user")
	if generated {
		fmt.Printf("generated password for %s: %s\n", username, password)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func randomPassword() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
