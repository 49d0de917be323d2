package repository

import (
	"errors"
	"time"

	"github.com/ldc-store/internal/constants"
	"github.com/ldc-store/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	ListAdmin(filter OrderListFilter, page, pageSize int) ([]models.Order, int64, error)
	CountByStatus(filter OrderListFilter) (map[string]int64, error)
	GetByID(id uint) (*models.Order, error)
	ListExistingIDs(ids []uint) ([]uint, error)
	DeleteByIDs(ids []uint) (int64, error)
	ListExpiredPendingIDs(now time.Time, limit int) ([]uint, error)
	MarkExpired(ids []uint) (int64, error)
	Update(order *models.Order) error
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 返回绑定事务的仓库
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) applyAdminFilter(query *gorm.DB, filter OrderListFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.Search != "" {
		columns := []string{"order_no", "email", "username", "trade_no", "product_name"}
		condition, argCount := buildLikeCondition(r.db, columns)
		like := "%" + filter.Search + "%"
		args := repeatLikeArgs(like, argCount)
		// 用户ID按精确值匹配拼进同一组 OR 条件
		condition += " OR CAST(user_id AS TEXT) = ?"
		args = append(args, filter.Search)
		query = query.Where(condition, args...)
	}
	return query
}

// ListAdmin 管理端订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter, page, pageSize int) ([]models.Order, int64, error) {
	query := r.applyAdminFilter(r.db.Model(&models.Order{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := applyPagination(query.Order("created_at DESC, id DESC"), page, pageSize).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountByStatus 按状态分组统计（沿用列表过滤条件）
func (r *GormOrderRepository) CountByStatus(filter OrderListFilter) (map[string]int64, error) {
	var rows []statusCountRow
	query := r.applyAdminFilter(r.db.Model(&models.Order{}), filter)
	if err := query.Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// GetByID 根据 ID 获取订单（含商品）
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListExistingIDs 返回给定 ID 中实际存在的订单 ID
func (r *GormOrderRepository) ListExistingIDs(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var existing []uint
	if err := r.db.Model(&models.Order{}).
		Where("id IN ?", ids).
		Pluck("id", &existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteByIDs 按 ID 删除订单
func (r *GormOrderRepository) DeleteByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&models.Order{})
	return result.RowsAffected, result.Error
}

// ListExpiredPendingIDs 返回已超时仍待支付的订单 ID
func (r *GormOrderRepository) ListExpiredPendingIDs(now time.Time, limit int) ([]uint, error) {
	if limit <= 0 {
		limit = 100
	}
	var ids []uint
	if err := r.db.Model(&models.Order{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", constants.OrderStatusPending, now).
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// MarkExpired 将待支付订单标记为已过期
func (r *GormOrderRepository) MarkExpired(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Order{}).
		Where("id IN ? AND status = ?", ids, constants.OrderStatusPending).
		Update("status", constants.OrderStatusExpired)
	return result.RowsAffected, result.Error
}

// Update 更新订单
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}
