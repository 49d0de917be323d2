package models

import "time"

// Card 卡密库存表
// 生命周期 available -> locked -> sold；删除/去重为物理删除，
// 否则唯一内容无法重新导入。
type Card struct {
	ID        uint       `gorm:"primarykey" json:"id"`                                          // 主键
	ProductID uint       `gorm:"not null;index:idx_cards_product_status" json:"product_id"`     // 商品ID
	Content   string     `gorm:"type:text;not null" json:"content"`                             // 卡密内容
	Status    string     `gorm:"type:varchar(20);not null;index:idx_cards_product_status" json:"status"` // 状态（available/locked/sold）
	OrderID   *uint      `gorm:"index" json:"order_id,omitempty"`                               // 占用该卡密的订单ID
	LockedAt  *time.Time `json:"locked_at"`                                                     // 锁定时间
	SoldAt    *time.Time `json:"sold_at"`                                                       // 售出时间
	CreatedAt time.Time  `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt time.Time  `json:"updated_at"`                                                    // 更新时间
}

// TableName 指定表名
func (Card) TableName() string {
	return "cards"
}
