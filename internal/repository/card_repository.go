package repository

import (
	"github.com/ldc-store/internal/constants"
	"github.com/ldc-store/internal/models"

	"gorm.io/gorm"
)

// CardRepository 卡密数据访问接口
type CardRepository interface {
	WithTx(tx *gorm.DB) CardRepository
	CreateBatch(cards []models.Card) error
	List(filter CardListFilter, page, pageSize int) ([]models.Card, int64, error)
	ListByOrder(orderID uint) ([]models.Card, error)
	ListExistingContents(productID uint, contents []string) ([]string, error)
	DeleteAvailableByIDs(ids []uint) (int64, error)
	ResetLockedByIDs(ids []uint) (int64, error)
	FindDuplicateAvailableIDs(productID uint) ([]uint, error)
	DeleteByIDs(ids []uint) (int64, error)
	ReleaseLockedByOrderIDs(orderIDs []uint) (int64, error)
	ExportByProduct(productID uint, status string) ([]models.Card, error)
	CountByStatus(productID uint) (map[string]int64, error)
	CountAvailableByProductIDs(productIDs []uint) (map[uint]int64, error)
}

// GormCardRepository GORM 实现
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository 创建卡密仓库
func NewCardRepository(db *gorm.DB) *GormCardRepository {
	return &GormCardRepository{db: db}
}

// WithTx 返回绑定事务的仓库
func (r *GormCardRepository) WithTx(tx *gorm.DB) CardRepository {
	if tx == nil {
		return r
	}
	return &GormCardRepository{db: tx}
}

// CreateBatch 批量插入卡密
func (r *GormCardRepository) CreateBatch(cards []models.Card) error {
	if len(cards) == 0 {
		return nil
	}
	return r.db.CreateInBatches(cards, 200).Error
}

// List 卡密列表
func (r *GormCardRepository) List(filter CardListFilter, page, pageSize int) ([]models.Card, int64, error) {
	query := r.db.Model(&models.Card{})
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		condition, argCount := buildLikeCondition(r.db, []string{"content"})
		like := "%" + filter.Search + "%"
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cards []models.Card
	if err := applyPagination(query.Order("created_at DESC, id DESC"), page, pageSize).
		Find(&cards).Error; err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// ListByOrder 订单关联的卡密（按导入时间升序）
func (r *GormCardRepository) ListByOrder(orderID uint) ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// ListExistingContents 返回指定商品下已存在的卡密内容（任意状态）
func (r *GormCardRepository) ListExistingContents(productID uint, contents []string) ([]string, error) {
	if len(contents) == 0 {
		return nil, nil
	}
	var existing []string
	if err := r.db.Model(&models.Card{}).
		Where("product_id = ? AND content IN ?", productID, contents).
		Pluck("content", &existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteAvailableByIDs 物理删除指定 ID 中仍可售的卡密
func (r *GormCardRepository) DeleteAvailableByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ? AND status = ?", ids, constants.CardStatusAvailable).
		Delete(&models.Card{})
	return result.RowsAffected, result.Error
}

// ResetLockedByIDs 将指定 ID 中处于锁定状态的卡密恢复为可售
func (r *GormCardRepository) ResetLockedByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Card{}).
		Where("id IN ? AND status = ?", ids, constants.CardStatusLocked).
		Updates(map[string]interface{}{
			"status":    constants.CardStatusAvailable,
			"order_id":  nil,
			"locked_at": nil,
		})
	return result.RowsAffected, result.Error
}

// FindDuplicateAvailableIDs 返回商品可售卡密中内容重复的行 ID，
// 每组保留导入最早的一条。
func (r *GormCardRepository) FindDuplicateAvailableIDs(productID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Raw(`
		SELECT id FROM (
			SELECT id,
				ROW_NUMBER() OVER (PARTITION BY content ORDER BY created_at ASC, id ASC) AS rn
			FROM cards
			WHERE product_id = ? AND status = ?
		) ranked
		WHERE ranked.rn > 1`,
		productID, constants.CardStatusAvailable,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteByIDs 按 ID 物理删除卡密
func (r *GormCardRepository) DeleteByIDs(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&models.Card{})
	return result.RowsAffected, result.Error
}

// ReleaseLockedByOrderIDs 释放指定订单占用的锁定卡密
func (r *GormCardRepository) ReleaseLockedByOrderIDs(orderIDs []uint) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Card{}).
		Where("order_id IN ? AND status = ?", orderIDs, constants.CardStatusLocked).
		Updates(map[string]interface{}{
			"status":    constants.CardStatusAvailable,
			"order_id":  nil,
			"locked_at": nil,
		})
	return result.RowsAffected, result.Error
}

// ExportByProduct 导出商品卡密（按导入时间倒序）
func (r *GormCardRepository) ExportByProduct(productID uint, status string) ([]models.Card, error) {
	query := r.db.Where("product_id = ?", productID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var cards []models.Card
	if err := query.Order("created_at DESC, id DESC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

type statusCountRow struct {
	Status string
	Count  int64
}

// CountByStatus 商品卡密按状态分组统计
func (r *GormCardRepository) CountByStatus(productID uint) (map[string]int64, error) {
	var rows []statusCountRow
	if err := r.db.Model(&models.Card{}).
		Select("status, COUNT(*) AS count").
		Where("product_id = ?", productID).
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

type productCountRow struct {
	ProductID uint
	Count     int64
}

// CountAvailableByProductIDs 批量统计商品可售卡密数
func (r *GormCardRepository) CountAvailableByProductIDs(productIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(productIDs))
	if len(productIDs) == 0 {
		return counts, nil
	}
	var rows []productCountRow
	if err := r.db.Model(&models.Card{}).
		Select("product_id, COUNT(*) AS count").
		Where("product_id IN ? AND status = ?", productIDs, constants.CardStatusAvailable).
		Group("product_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ProductID] = row.Count
	}
	return counts, nil
}
