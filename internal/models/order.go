package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
// 商品信息在下单时快照到订单上，商品删除不影响历史订单。
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo           string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	UserID            uint           `gorm:"index;not null;default:0" json:"user_id"`                   // 用户ID（游客订单为 0）
	Username          string         `gorm:"type:varchar(100);index" json:"username"`                   // 下单用户名
	Email             string         `gorm:"type:varchar(200);index" json:"email"`                      // 收货邮箱
	ProductID         *uint          `gorm:"index" json:"product_id,omitempty"`                         // 商品ID
	ProductName       string         `gorm:"type:varchar(200);not null" json:"product_name"`            // 商品名称快照
	Quantity          int            `gorm:"not null;default:1" json:"quantity"`                        // 购买数量
	Price             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 单价快照
	TotalAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 实付金额
	Status            string         `gorm:"type:varchar(30);index;not null" json:"status"`             // 订单状态
	PaymentMethod     string         `gorm:"type:varchar(50);index" json:"payment_method"`              // 支付方式
	TradeNo           string         `gorm:"type:varchar(100);index" json:"trade_no"`                   // 第三方交易号
	Remark            string         `gorm:"type:varchar(500)" json:"remark"`                           // 用户备注
	AdminRemark       string         `gorm:"type:varchar(500)" json:"admin_remark"`                     // 管理员备注
	RefundReason      string         `gorm:"type:varchar(500)" json:"refund_reason"`                    // 退款原因
	PaidAt            *time.Time     `gorm:"index" json:"paid_at"`                                      // 支付时间
	ExpiresAt         *time.Time     `gorm:"index" json:"expires_at"`                                   // 过期时间
	RefundRequestedAt *time.Time     `json:"refund_requested_at"`                                       // 退款申请时间
	RefundedAt        *time.Time     `json:"refunded_at"`                                               // 退款完成时间
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt         time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"-"` // 关联商品（详情接口转摘要输出）
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
