package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ldc-store/internal/config"
	"github.com/ldc-store/internal/constants"
	"github.com/ldc-store/internal/models"
	"github.com/ldc-store/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSettingServiceTest(t *testing.T) (*SettingService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:setting_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Site.Name = "测试站点"
	cfg.Site.Description = "测试描述"
	cfg.Order.ExpireMinutes = 30
	return NewSettingService(repository.NewSettingRepository(db), cfg), db
}

func TestSettingServiceGetDefaults(t *testing.T) {
	svc, _ := setupSettingServiceTest(t)

	settings, err := svc.Get()
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if settings.SiteName != "测试站点" {
		t.Fatalf("expected config default site name, got: %s", settings.SiteName)
	}
	if settings.OrderExpireMinutes != 30 {
		t.Fatalf("expected expire minutes 30, got: %d", settings.OrderExpireMinutes)
	}
}

func TestSettingServiceUpdateRoundTrip(t *testing.T) {
	svc, _ := setupSettingServiceTest(t)

	settings, err := svc.Update(context.Background(), map[string]string{
		constants.SettingKeySiteName:           "新站点名",
		constants.SettingKeyOrderExpireMinutes: "45",
	})
	if err != nil {
		t.Fatalf("update settings failed: %v", err)
	}
	if settings.SiteName != "新站点名" {
		t.Fatalf("expected updated site name, got: %s", settings.SiteName)
	}
	if settings.OrderExpireMinutes != 45 {
		t.Fatalf("expected expire minutes 45, got: %d", settings.OrderExpireMinutes)
	}

	// 二次更新覆盖已有行
	settings, err = svc.Update(context.Background(), map[string]string{
		constants.SettingKeySiteName: "再次更新",
	})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if settings.SiteName != "再次更新" {
		t.Fatalf("expected second update applied, got: %s", settings.SiteName)
	}
	if settings.OrderExpireMinutes != 45 {
		t.Fatalf("expire minutes should be preserved, got: %d", settings.OrderExpireMinutes)
	}
}

func TestSettingServiceInvalidExpireMinutesFallsBack(t *testing.T) {
	svc, db := setupSettingServiceTest(t)

	row := models.Setting{Key: constants.SettingKeyOrderExpireMinutes, Value: "not-a-number"}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("seed setting failed: %v", err)
	}

	settings, err := svc.Get()
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if settings.OrderExpireMinutes != 30 {
		t.Fatalf("expected fallback to default 30, got: %d", settings.OrderExpireMinutes)
	}
}

func TestSettingServiceUpdateRejectsUnknownKey(t *testing.T) {
	svc, _ := setupSettingServiceTest(t)

	_, err := svc.Update(context.Background(), map[string]string{"site.unknown": "x"})
	if !errors.Is(err, ErrUnknownSettingKey) {
		t.Fatalf("expected ErrUnknownSettingKey, got: %v", err)
	}
}
