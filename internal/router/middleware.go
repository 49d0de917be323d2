package router

import (
	"strings"
	"time"

	"github.com/ldc-store/internal/authz"
	"github.com/ldc-store/internal/config"
	"github.com/ldc-store/internal/http/response"
	"github.com/ldc-store/internal/i18n"
	"github.com/ldc-store/internal/logger"
	"github.com/ldc-store/internal/repository"
	"github.com/ldc-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware 为每个请求注入 request_id
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func getRequestID(c *gin.Context) string {
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// LoggerMiddleware 请求访问日志
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Infow("http_request",
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

func resolveAllowedOrigin(origin string, allowed []string) string {
	if origin == "" {
		return ""
	}
	for _, candidate := range allowed {
		if candidate == "*" {
			return "*"
		}
		if strings.EqualFold(candidate, origin) {
			return origin
		}
	}
	return ""
}

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	allowedMethods := strings.Join(cfg.AllowedMethods, ", ")
	allowedHeaders := strings.Join(cfg.AllowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowOrigin := resolveAllowedOrigin(origin, cfg.AllowedOrigins)
		if allowOrigin != "" {
			c.Header("Access-Control-Allow-Origin", allowOrigin)
			if allowOrigin != "*" {
				c.Header("Vary", "Origin")
			}
			if cfg.AllowCredentials && allowOrigin != "*" {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
			c.Header("Access-Control-Allow-Methods", allowedMethods)
			c.Header("Access-Control-Allow-Headers", allowedHeaders)
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// JWTAuthMiddleware 管理端认证中间件
// 校验 Token 签名与版本号；改密后旧 Token 立即失效。
func JWTAuthMiddleware(authService *service.AuthService, adminRepo repository.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.ResolveLocale(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, i18n.T(locale, "error.auth_header_missing"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, i18n.T(locale, "error.auth_header_invalid"))
			c.Abort()
			return
		}

		claims, err := authService.ParseJWT(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Unauthorized(c, i18n.T(locale, "error.token_invalid"))
			c.Abort()
			return
		}

		admin, err := adminRepo.GetByID(claims.AdminID)
		if err != nil || admin == nil {
			response.Unauthorized(c, i18n.T(locale, "error.token_invalid"))
			c.Abort()
			return
		}
		if claims.TokenVersion != admin.TokenVersion {
			response.Unauthorized(c, i18n.T(locale, "error.token_revoked"))
			c.Abort()
			return
		}

		c.Set("admin_id", admin.ID)
		c.Set("username", admin.Username)
		c.Set("admin_is_super", admin.IsSuper)
		c.Next()
	}
}

// AdminRBACMiddleware 管理端权限中间件
// 超级管理员直接放行，其余按 Casbin 策略判定。
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.ResolveLocale(c)

		if isSuper, ok := c.Get("admin_is_super"); ok {
			if super, ok := isSuper.(bool); ok && super {
				c.Next()
				return
			}
		}

		adminIDValue, ok := c.Get("admin_id")
		if !ok {
			response.Unauthorized(c, i18n.T(locale, "error.unauthorized"))
			c.Abort()
			return
		}
		adminID, ok := adminIDValue.(uint)
		if !ok {
			response.Unauthorized(c, i18n.T(locale, "error.unauthorized"))
			c.Abort()
			return
		}

		obj := c.FullPath()
		if obj == "" {
			obj = c.Request.URL.Path
		}
		allowed, err := authzService.EnforceAdmin(adminID, obj, c.Request.Method)
		if err != nil {
			logger.Errorw("rbac_enforce_failed",
				"request_id", getRequestID(c),
				"admin_id", adminID,
				"path", obj,
				"error", err,
			)
			response.Forbidden(c, i18n.T(locale, "error.forbidden"))
			c.Abort()
			return
		}
		if !allowed {
			response.Forbidden(c, i18n.T(locale, "error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}
