package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/moodwatch/internal/domain/apperr"
	"github.com/oksasatya/moodwatch/internal/domain/entity"
	"github.com/oksasatya/moodwatch/internal/infrastructure/memory"
	"github.com/oksasatya/moodwatch/pkg/helpers"
)

func newUsers() *UserService {
	helpers.PasswordCost = bcrypt.MinCost
	jwt := helpers.NewJWTManager("a-secret", "r-secret", time.Minute, time.Hour)
	return NewUserService(memory.NewUserRepository(), jwt, nil, nil)
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newUsers()

	u, pair, err := svc.Register(ctx, "dave", "secret1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if u.Role != entity.DefaultRole || pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("unexpected register result %+v %+v", u, pair)
	}
	if u.Password == "secret1" {
		t.Fatalf("password must be hashed")
	}

	logged, _, err := svc.Login(ctx, "dave", "secret1")
	if err != nil || logged.ID != u.ID {
		t.Fatalf("Login failed: %v", err)
	}

	_, _, err = svc.Login(ctx, "dave", "wrong")
	var ae *apperr.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestUserService_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newUsers()
	_, _, _ = svc.Register(ctx, "erin", "secret1")

	cases := []struct{ user, pass string }{
		{"", "secret1"},
		{"frank", "12345"},
		{"erin", "another1"},
	}
	for _, tc := range cases {
		_, _, err := svc.Register(ctx, tc.user, tc.pass)
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Register(%q): expected ValidationError, got %v", tc.user, err)
		}
	}
}

func TestUserService_Refresh(t *testing.T) {
	ctx := context.Background()
	svc := newUsers()
	u, pair, _ := svc.Register(ctx, "gina", "secret1")

	next, uid, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil || uid != u.ID || next.AccessToken == "" {
		t.Fatalf("Refresh failed: %v", err)
	}
	if _, _, err := svc.Refresh(ctx, pair.AccessToken); err == nil {
		t.Fatalf("access token must not be accepted as refresh token")
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()
	svc := newUsers()
	u, _, _ := svc.Register(ctx, "hank", "secret1")

	if err := svc.UpdateRole(ctx, u.ID, "admin"); err != nil {
		t.Fatal(err)
	}
	got, _ := svc.Get(ctx, u.ID)
	if got.Role != "admin" {
		t.Fatalf("expected admin, got %s", got.Role)
	}
	if _, err := svc.Get(ctx, 999); err == nil {
		t.Fatalf("expected error for unknown user")
	}
}
