package repository

// OrderListFilter 管理端订单列表过滤条件
type OrderListFilter struct {
	Status        string // 订单状态
	PaymentMethod string // 支付方式
	Search        string // 自由文本（订单号/邮箱/用户名/用户ID/交易号/商品名）
}

// CardListFilter 卡密列表过滤条件
type CardListFilter struct {
	ProductID uint   // 商品ID（0 表示不过滤）
	Status    string // 卡密状态
	Search    string // 卡密内容模糊匹配
}

// ProductListFilter 管理端商品列表过滤条件
type ProductListFilter struct {
	CategoryID uint   // 分类ID（0 表示不过滤）
	Search     string // 名称/标识模糊匹配
	IsActive   *bool  // 上架状态
}
