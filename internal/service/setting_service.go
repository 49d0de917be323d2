package service

import (
	"context"
	"strings"

	"github.com/ldc-store/internal/cache"
	"github.com/ldc-store/internal/config"
	"github.com/ldc-store/internal/constants"
	"github.com/ldc-store/internal/logger"
	"github.com/ldc-store/internal/repository"

	"github.com/spf13/cast"
)

// SettingService 系统设置服务
type SettingService struct {
	settingRepo repository.SettingRepository
	defaults    SiteSettings
}

// SiteSettings 站点配置（数据库值与默认值合并后的结果）
type SiteSettings struct {
	SiteName           string `json:"site_name"`
	SiteDescription    string `json:"site_description"`
	SiteIcon           string `json:"site_icon"`
	OrderExpireMinutes int    `json:"order_expire_minutes"`
}

// NewSettingService 创建设置服务实例
func NewSettingService(settingRepo repository.SettingRepository, cfg *config.Config) *SettingService {
	defaults := SiteSettings{
		SiteName:           "LDC Store",
		SiteDescription:    "自动发卡平台",
		OrderExpireMinutes: 15,
	}
	if cfg != nil {
		if name := strings.TrimSpace(cfg.Site.Name); name != "" {
			defaults.SiteName = name
		}
		if desc := strings.TrimSpace(cfg.Site.Description); desc != "" {
			defaults.SiteDescription = desc
		}
		defaults.SiteIcon = strings.TrimSpace(cfg.Site.Icon)
		if cfg.Order.ExpireMinutes > 0 {
			defaults.OrderExpireMinutes = cfg.Order.ExpireMinutes
		}
	}
	return &SettingService{
		settingRepo: settingRepo,
		defaults:    defaults,
	}
}

var knownSettingKeys = map[string]struct{}{
	constants.SettingKeySiteName:           {},
	constants.SettingKeySiteDescription:    {},
	constants.SettingKeySiteIcon:           {},
	constants.SettingKeyOrderExpireMinutes: {},
}

// Get 读取站点配置
// 数据库行覆盖默认值；非法或缺失的值回退默认值。
func (s *SettingService) Get() (*SiteSettings, error) {
	keys := make([]string, 0, len(knownSettingKeys))
	for key := range knownSettingKeys {
		keys = append(keys, key)
	}
	rows, err := s.settingRepo.ListByKeys(keys)
	if err != nil {
		return nil, err
	}

	settings := s.defaults
	for _, row := range rows {
		value := strings.TrimSpace(row.Value)
		switch row.Key {
		case constants.SettingKeySiteName:
			if value != "" {
				settings.SiteName = value
			}
		case constants.SettingKeySiteDescription:
			if value != "" {
				settings.SiteDescription = value
			}
		case constants.SettingKeySiteIcon:
			settings.SiteIcon = value
		case constants.SettingKeyOrderExpireMinutes:
			if minutes := cast.ToInt(value); minutes > 0 {
				settings.OrderExpireMinutes = minutes
			} else if value != "" {
				logger.Warnw("setting_value_invalid_fallback",
					"key", row.Key,
					"value", row.Value,
					"fallback", s.defaults.OrderExpireMinutes,
				)
			}
		}
	}
	return &settings, nil
}

// Update 批量更新设置
// 仅接受已知键；保存后整体失效店面缓存。
func (s *SettingService) Update(ctx context.Context, values map[string]string) (*SiteSettings, error) {
	for key := range values {
		if _, ok := knownSettingKeys[key]; !ok {
			return nil, ErrUnknownSettingKey
		}
	}
	for key, value := range values {
		if _, err := s.settingRepo.Upsert(key, strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}

	if err := cache.InvalidateStore(ctx); err != nil {
		logger.Warnw("setting_update_cache_invalidate_failed", "error", err)
	}

	return s.Get()
}
