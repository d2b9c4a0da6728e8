package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/oksasatya/moodwatch/internal/domain/entity"
	"github.com/oksasatya/moodwatch/internal/domain/repository"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()

	u := &entity.User{Username: "alice", Password: "hash"}
	if err := r.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID != 1 || u.Role != entity.DefaultRole || u.CreatedAt.IsZero() {
		t.Fatalf("unexpected user after create: %+v", u)
	}

	byName, err := r.GetByUsername(ctx, "ALICE")
	if err != nil || byName.ID != u.ID {
		t.Fatalf("lookup by username failed: %v %+v", err, byName)
	}

	if err := r.Create(ctx, &entity.User{Username: "Alice"}); !errors.Is(err, repository.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := r.GetByID(ctx, 99); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_UpdateRole(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepository()
	u := &entity.User{Username: "bob"}
	_ = r.Create(ctx, u)

	if err := r.UpdateRole(ctx, u.ID, "manager"); err != nil {
		t.Fatal(err)
	}
	got, _ := r.GetByID(ctx, u.ID)
	if got.Role != "manager" {
		t.Fatalf("expected role manager, got %s", got.Role)
	}
	if err := r.UpdateRole(ctx, 42, "x"); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
