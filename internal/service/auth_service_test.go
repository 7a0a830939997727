package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/greencart-logistics/internal/config"
	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "auth-service-test-secret"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordPolicy.MinLength = 8
	return NewAuthService(cfg, repository.NewAdminRepository(db), nil), db
}

func seedManager(t *testing.T, svc *AuthService, db *gorm.DB, username, password string) *models.Admin {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Username: username, PasswordHash: hash}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func TestManagerLoginIssuesSessionToken(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seedManager(t, svc, db, "dispatcher", "original-pass-1")

	session, err := svc.Login("dispatcher", "original-pass-1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token == "" {
		t.Fatal("session token is empty")
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry must be in the future, got %v", session.ExpiresAt)
	}
	if session.Roles == nil {
		t.Fatal("roles must never be nil")
	}

	claims, err := svc.ParseJWT(session.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != session.Admin.ID || claims.Username != "dispatcher" {
		t.Fatalf("claims mismatch: id=%d username=%s", claims.AdminID, claims.Username)
	}
	if claims.TokenVersion != session.Admin.TokenVersion {
		t.Fatalf("token version want %d got %d", session.Admin.TokenVersion, claims.TokenVersion)
	}

	var reloaded models.Admin
	if err := db.First(&reloaded, session.Admin.ID).Error; err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if reloaded.LastLoginAt == nil {
		t.Fatal("last login time not recorded")
	}
}

func TestManagerLoginRejectsBadCredentials(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seedManager(t, svc, db, "dispatcher", "original-pass-1")

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "dispatcher", "not-the-pass"},
		{"unknown account", "ghost", "original-pass-1"},
		{"empty username", "", "original-pass-1"},
		{"empty password", "dispatcher", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Login(tc.username, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("%s: want ErrInvalidCredentials got %v", tc.name, err)
		}
	}
}

func TestChangePasswordRevokesIssuedTokens(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	admin := seedManager(t, svc, db, "dispatcher", "original-pass-1")

	session, err := svc.Login("dispatcher", "original-pass-1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	oldClaims, err := svc.ParseJWT(session.Token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "wrong-old", "replacement-pass-2"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "original-pass-1", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak new password want ErrWeakPassword got %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "original-pass-1", "replacement-pass-2"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var reloaded models.Admin
	if err := db.First(&reloaded, admin.ID).Error; err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if reloaded.TokenVersion != oldClaims.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", oldClaims.TokenVersion+1, reloaded.TokenVersion)
	}
	if reloaded.TokenInvalidBefore == nil {
		t.Fatal("token invalid-before not recorded")
	}

	if _, err := svc.Login("dispatcher", "original-pass-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	renewed, err := svc.Login("dispatcher", "replacement-pass-2")
	if err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	claims, err := svc.ParseJWT(renewed.Token)
	if err != nil {
		t.Fatalf("parse renewed token failed: %v", err)
	}
	if claims.TokenVersion != reloaded.TokenVersion {
		t.Fatalf("renewed token version want %d got %d", reloaded.TokenVersion, claims.TokenVersion)
	}
}
