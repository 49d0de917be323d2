package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ldc-store/internal/config"
	"github.com/ldc-store/internal/models"
	"github.com/ldc-store/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
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
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-with-enough-length-0001"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordPolicy.MinLength = 8
	cfg.Security.PasswordPolicy.RequireLower = true
	cfg.Security.PasswordPolicy.RequireNumber = true
	return NewAuthService(cfg, repository.NewAdminRepository(db)), db
}

func createTestAdmin(t *testing.T, db *gorm.DB, username, password string) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func TestAuthServiceLoginAndParse(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestAdmin(t, db, "admin", "secret123x")

	admin, token, expiresAt, err := svc.Login("admin", "secret123x")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || expiresAt.Before(time.Now()) {
		t.Fatalf("invalid token result: token=%q expires=%v", token, expiresAt)
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("last_login_at should be set")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse jwt failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createTestAdmin(t, db, "admin", "secret123x")

	if _, _, _, err := svc.Login("admin", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if _, _, _, err := svc.Login("ghost", "secret123x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got: %v", err)
	}
}

func TestAuthServiceChangePasswordBumpsTokenVersion(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	admin := createTestAdmin(t, db, "admin", "secret123x")

	_, token, _, err := svc.Login("admin", "secret123x")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "secret123x", "newsecret456"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var reloaded models.Admin
	if err := db.First(&reloaded, admin.ID).Error; err != nil {
		t.Fatalf("reload admin failed: %v", err)
	}
	if reloaded.TokenVersion != admin.TokenVersion+1 {
		t.Fatalf("expected token version bumped, got: %d", reloaded.TokenVersion)
	}

	// 旧 Token 签名仍有效，但版本号已过期
	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse old token failed: %v", err)
	}
	if claims.TokenVersion == reloaded.TokenVersion {
		t.Fatalf("old token version should mismatch after password change")
	}

	if _, _, _, err := svc.Login("admin", "newsecret456"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAuthServiceChangePasswordValidation(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	admin := createTestAdmin(t, db, "admin", "secret123x")

	if err := svc.ChangePassword(admin.ID, "wrong", "newsecret456"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got: %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "secret123x", "short1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for short password, got: %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "secret123x", "NOLOWERCASE1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword without lowercase, got: %v", err)
	}
	if err := svc.ChangePassword(9999, "x", "newsecret456"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}
