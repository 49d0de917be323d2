package admin

import (
	"errors"

	"github.com/ldc-store/internal/http/response"
	"github.com/ldc-store/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSettings 获取站点设置
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.SettingService.Get()
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	response.Success(c, settings)
}

// UpdateSettings 批量更新站点设置
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if len(req) == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	settings, err := h.SettingService.Update(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSettingKey) {
			respondError(c, response.CodeBadRequest, "error.setting_key_unknown", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.setting_save_failed", err)
		return
	}

	requestLog(c).Infow("settings_updated", "keys", len(req))
	response.Success(c, settings)
}
