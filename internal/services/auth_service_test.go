package services

import (
	"context"
	"errors"
	"testing"

	"github.com/movalearn/movalearn-backend/internal/repos"
	"github.com/movalearn/movalearn-backend/internal/repos/testutil"
)

func newAuthService(t *testing.T) (AuthService, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(tx, log)
	tokenRepo := repos.NewUserTokenRepo(tx, log)
	verificationRepo := repos.NewEmailVerificationTokenRepo(tx, log)
	progressionSvc := NewProgressionService(tx, log, userRepo, nil)

	svc := NewAuthService(tx, log, userRepo, tokenRepo, verificationRepo, NewEmailService(log), progressionSvc)
	return svc, context.Background()
}

func TestRegisterAndLogin(t *testing.T) {
	svc, ctx := newAuthService(t)

	user, pair, err := svc.Register(ctx, "Auth@Example.com", "password123", "Auth Tester")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "auth@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("claims carry wrong user id: %s", claims.UserID)
	}

	if _, _, err := svc.Register(ctx, "auth@example.com", "password123", "Dup"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	logged, _, err := svc.Login(ctx, "auth@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.Streak != 1 {
		t.Fatalf("login should record daily activity, streak=%d", logged.Streak)
	}

	if _, _, err := svc.Login(ctx, "auth@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, ctx := newAuthService(t)

	cases := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{"bad email", "not-an-email", "password123", "A"},
		{"short password", "short@example.com", "1234567", "A"},
		{"empty name", "noname@example.com", "password123", "  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Register(ctx, tc.email, tc.password, tc.userName); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRefreshRotation(t *testing.T) {
	svc, ctx := newAuthService(t)

	_, pair, err := svc.Register(ctx, "rotate@example.com", "password123", "Rotator")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh should rotate the refresh token")
	}

	// The consumed token is gone.
	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for a consumed refresh token, got %v", err)
	}
}

func TestLogoutRevokesTokens(t *testing.T) {
	svc, ctx := newAuthService(t)

	user, pair, err := svc.Register(ctx, "logout@example.com", "password123", "Leaver")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Logout(ctx, user.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}
