package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
)

const defaultLocale = LocaleZhCN

var messages = map[string]map[string]string{
	LocaleZhCN: zhCN,
	LocaleEnUS: enUS,
}

// T 返回指定语言下的文案，缺失时回退默认语言，再回退 key 本身。
func T(locale, key string) string {
	if table, ok := messages[normalizeLocale(locale)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 返回带格式化参数的文案。
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// ResolveLocale 从请求解析语言，优先 query 参数，其次 Accept-Language。
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return normalizeLocale(lang)
	}
	accept := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if accept == "" {
		return defaultLocale
	}
	first := strings.TrimSpace(strings.Split(accept, ",")[0])
	return normalizeLocale(first)
}

func normalizeLocale(locale string) string {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(normalized, "en"):
		return LocaleEnUS
	case strings.HasPrefix(normalized, "zh"):
		return LocaleZhCN
	default:
		return defaultLocale
	}
}
