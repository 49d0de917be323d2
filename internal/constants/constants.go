package constants

// ========== 卡密状态 ==========
const (
	CardStatusAvailable = "available" // 可售
	CardStatusLocked    = "locked"    // 已锁定（待支付订单占用）
	CardStatusSold      = "sold"      // 已售出
)

// ========== 订单状态 ==========
const (
	OrderStatusPending       = "pending"        // 待支付
	OrderStatusCompleted     = "completed"      // 已完成
	OrderStatusExpired       = "expired"        // 已过期
	OrderStatusRefundPending = "refund_pending" // 待退款
	OrderStatusRefunded      = "refunded"       // 已退款
)

// ========== 卡密导入分隔符 ==========
const (
	CardDelimiterNewline = "newline" // 按行分隔（默认）
	CardDelimiterComma   = "comma"   // 按逗号分隔
)

// ========== 系统设置键 ==========
const (
	SettingKeySiteName           = "site.name"
	SettingKeySiteDescription    = "site.description"
	SettingKeySiteIcon           = "site.icon"
	SettingKeyOrderExpireMinutes = "order.expire_minutes"
)

// ========== 批量操作上限 ==========
const (
	MaxOrderBatchDelete = 200 // 单次批量删除订单上限
)
