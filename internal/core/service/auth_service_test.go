package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
)

type stubDirectory struct {
	users map[string]*domain.User
	err   error
}

func newStubDirectory(t *testing.T, username, password, role string) *stubDirectory {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &stubDirectory{users: map[string]*domain.User{
		strings.ToLower(username): {
			Username:     username,
			DisplayName:  "Display " + username,
			Role:         role,
			PasswordHash: string(hash),
		},
	}}
}

func (d *stubDirectory) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	u, ok := d.users[strings.ToLower(username)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func TestAuthService_Login_Success(t *testing.T) {
	dir := newStubDirectory(t, "Kiritonyu", "s3cret", domain.RoleOfficer)
	svc := NewAuthService(dir, "secret", time.Hour)

	token, user, err := svc.Login(context.Background(), "kiritonyu", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "Kiritonyu" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleOfficer {
		t.Fatalf("expected role %s, got %v", domain.RoleOfficer, claims["role"])
	}
	if claims["username"] != "Kiritonyu" {
		t.Fatalf("expected username claim, got %v", claims["username"])
	}
	if claims["name"] != "Display Kiritonyu" {
		t.Fatalf("expected name claim, got %v", claims["name"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := NewAuthService(newStubDirectory(t, "dave", "goodpass", domain.RoleMember), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserLooksLikeBadPassword(t *testing.T) {
	svc := NewAuthService(newStubDirectory(t, "dave", "goodpass", domain.RoleMember), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubDirectory(t, "dave", "goodpass", domain.RoleMember), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "  ", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for blank username, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dave", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for blank password, got %v", err)
	}
}

func TestAuthService_Login_DirectoryFailure(t *testing.T) {
	dir := newStubDirectory(t, "dave", "goodpass", domain.RoleMember)
	dir.err = errors.New("disk gone")
	svc := NewAuthService(dir, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "dave", "goodpass")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected directory error to surface, got %v", err)
	}
}
