package i18n

var zhCN = map[string]string{
	"error.bad_request":         "请求参数错误",
	"error.unauthorized":        "请先登录",
	"error.forbidden":           "没有操作权限",
	"error.internal":            "服务器内部错误",
	"error.not_found":           "资源不存在",
	"error.jwt_secret_missing":  "服务端未配置签名密钥",
	"error.auth_header_missing": "缺少认证信息",
	"error.auth_header_invalid": "认证信息格式错误",
	"error.token_invalid":       "登录状态无效，请重新登录",
	"error.token_revoked":       "登录状态已失效，请重新登录",
	"error.invalid_credentials": "用户名或密码错误",
	"error.password_invalid":    "原密码错误",
	"error.password_weak":       "新密码不符合安全要求",
	"error.login_too_many":      "登录尝试过于频繁，请 %d 秒后再试",
	"error.rate_limited":        "请求过于频繁，请 %d 秒后再试",
	"error.rate_limit_unavailable": "限流服务暂不可用",
	"error.admin_id_invalid":       "管理员身份无效",
	"error.admin_id_type_invalid":  "管理员身份解析失败",

	"error.category_fetch_failed":  "获取分类失败",
	"error.category_not_found":     "分类不存在",
	"error.category_save_failed":   "保存分类失败",
	"error.category_delete_failed": "删除分类失败",
	"error.category_in_use":        "该分类下还有 %d 个商品，无法删除",
	"error.slug_invalid":           "标识只能包含小写字母、数字和连字符",
	"error.slug_exists":            "该标识已被使用",

	"error.product_fetch_failed":  "获取商品失败",
	"error.product_not_found":     "商品不存在",
	"error.product_save_failed":   "保存商品失败",
	"error.product_delete_failed": "删除商品失败",
	"error.product_has_cards":     "商品下还有未售出卡密，无法删除",

	"error.card_fetch_failed":  "获取卡密失败",
	"error.card_import_failed": "导入卡密失败",
	"error.card_no_valid":      "没有可导入的有效卡密",
	"error.card_all_existing":  "所有卡密均已存在，未导入任何数据",
	"error.card_delete_failed": "删除卡密失败",
	"error.card_reset_failed":  "重置卡密失败",
	"error.card_clean_failed":  "清理重复卡密失败",
	"error.card_export_failed": "导出卡密失败",

	"error.order_fetch_failed":  "获取订单失败",
	"error.order_not_found":     "订单不存在或已删除",
	"error.order_delete_failed": "删除订单失败",
	"error.order_ids_empty":     "请选择要删除的订单",
	"error.order_batch_limit":   "单次最多删除 %d 笔订单",
	"error.order_delete_none":   "所选订单均不存在或已删除",

	"error.setting_fetch_failed": "获取系统设置失败",
	"error.setting_save_failed":  "保存系统设置失败",
	"error.setting_key_unknown":  "不支持的设置项",
}

var enUS = map[string]string{
	"error.bad_request":         "invalid request",
	"error.unauthorized":        "login required",
	"error.forbidden":           "permission denied",
	"error.internal":            "internal server error",
	"error.not_found":           "resource not found",
	"error.jwt_secret_missing":  "signing secret is not configured",
	"error.auth_header_missing": "missing authorization header",
	"error.auth_header_invalid": "malformed authorization header",
	"error.token_invalid":       "invalid session, please sign in again",
	"error.token_revoked":       "session expired, please sign in again",
	"error.invalid_credentials": "invalid username or password",
	"error.password_invalid":    "current password is incorrect",
	"error.password_weak":       "new password does not meet the policy",
	"error.login_too_many":      "too many login attempts, retry in %d seconds",
	"error.rate_limited":        "too many requests, retry in %d seconds",
	"error.rate_limit_unavailable": "rate limiter unavailable",
	"error.admin_id_invalid":       "invalid admin identity",
	"error.admin_id_type_invalid":  "failed to resolve admin identity",

	"error.category_fetch_failed":  "failed to fetch categories",
	"error.category_not_found":     "category not found",
	"error.category_save_failed":   "failed to save category",
	"error.category_delete_failed": "failed to delete category",
	"error.category_in_use":        "category still has %d products and cannot be deleted",
	"error.slug_invalid":           "slug may only contain lowercase letters, digits and hyphens",
	"error.slug_exists":            "slug already in use",

	"error.product_fetch_failed":  "failed to fetch products",
	"error.product_not_found":     "product not found",
	"error.product_save_failed":   "failed to save product",
	"error.product_delete_failed": "failed to delete product",
	"error.product_has_cards":     "product still has unsold cards and cannot be deleted",

	"error.card_fetch_failed":  "failed to fetch cards",
	"error.card_import_failed": "failed to import cards",
	"error.card_no_valid":      "no valid cards to import",
	"error.card_all_existing":  "all cards already exist, nothing imported",
	"error.card_delete_failed": "failed to delete cards",
	"error.card_reset_failed":  "failed to reset cards",
	"error.card_clean_failed":  "failed to clean duplicate cards",
	"error.card_export_failed": "failed to export cards",

	"error.order_fetch_failed":  "failed to fetch orders",
	"error.order_not_found":     "order not found or already deleted",
	"error.order_delete_failed": "failed to delete orders",
	"error.order_ids_empty":     "no orders selected",
	"error.order_batch_limit":   "at most %d orders can be deleted at once",
	"error.order_delete_none":   "none of the selected orders exist",

	"error.setting_fetch_failed": "failed to fetch settings",
	"error.setting_save_failed":  "failed to save settings",
	"error.setting_key_unknown":  "unsupported setting key",
}
