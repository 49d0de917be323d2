package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
// 库存不单独存储，始终由可用卡密数量推导。
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	CategoryID  *uint          `gorm:"index" json:"category_id,omitempty"`                 // 所属分类ID
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                   // 唯一标识
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`             // 商品名称
	Description string         `gorm:"type:text" json:"description"`                       // 商品描述
	Image       string         `gorm:"type:varchar(500)" json:"image"`                     // 商品主图
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 售价
	IsActive    bool           `gorm:"not null;default:true;index" json:"is_active"`       // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	SalesCount  int            `gorm:"not null;default:0" json:"sales_count"`              // 累计销量
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 所属分类

	Stock int64 `gorm:"-" json:"stock"` // 可售库存（available 卡密数，查询时填充）
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductSummary 订单详情中引用的商品摘要
type ProductSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Summary 转为商品摘要
func (p *Product) Summary() *ProductSummary {
	if p == nil {
		return nil
	}
	return &ProductSummary{ID: p.ID, Name: p.Name, Slug: p.Slug}
}
