package router

import (
	"fmt"
	"time"

	"github.com/ldc-store/internal/http/response"
	"github.com/ldc-store/internal/i18n"
	"github.com/ldc-store/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string // Redis 键前缀
	WindowSeconds int    // 统计窗口（秒）
	MaxRequests   int    // 窗口内最大请求数
	MessageKey    string // 超限提示的 i18n 键（需要一个等待秒数参数）
}

// 固定窗口计数：INCR 后首个请求设置过期时间，返回当前计数与剩余 TTL。
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// KeyByIP 按客户端 IP 生成限流键
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

func toInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}

// RateLimitMiddleware Redis 固定窗口限流
// Redis 不可用时放行并记录告警，不阻断业务。
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", rule.Prefix, keyFn(c))
		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds).Result()
		if err != nil {
			logger.Warnw("rate_limit_unavailable",
				"request_id", getRequestID(c),
				"key", key,
				"error", err,
			)
			c.Next()
			return
		}

		values, ok := result.([]interface{})
		if !ok || len(values) != 2 {
			c.Next()
			return
		}
		current := toInt64(values[0])
		ttl := toInt64(values[1])

		if current > int64(rule.MaxRequests) {
			waitSeconds := ttl
			if waitSeconds <= 0 {
				waitSeconds = int64(rule.WindowSeconds)
			}
			logger.Warnw("rate_limit_exceeded",
				"request_id", getRequestID(c),
				"key", key,
				"count", current,
				"wait_seconds", waitSeconds,
			)
			locale := i18n.ResolveLocale(c)
			response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(locale, rule.MessageKey, waitSeconds))
			c.Abort()
			return
		}
		c.Next()
	}
}

// adminLoginRule 登录限流规则（窗口与阈值来自配置）
func adminLoginRule(windowSeconds, maxAttempts int) RateLimitRule {
	if windowSeconds <= 0 {
		windowSeconds = int((5 * time.Minute).Seconds())
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return RateLimitRule{
		Prefix:        "rate:admin_login",
		WindowSeconds: windowSeconds,
		MaxRequests:   maxAttempts,
		MessageKey:    "error.login_too_many",
	}
}
