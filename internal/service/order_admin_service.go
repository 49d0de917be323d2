package service

import (
	"time"

	"github.com/ldc-store/internal/constants"
	"github.com/ldc-store/internal/logger"
	"github.com/ldc-store/internal/models"
	"github.com/ldc-store/internal/repository"

	"gorm.io/gorm"
)

// OrderAdminService 管理端订单服务
type OrderAdminService struct {
	orderRepo repository.OrderRepository
	cardRepo  repository.CardRepository
}

// NewOrderAdminService 创建管理端订单服务实例
func NewOrderAdminService(orderRepo repository.OrderRepository, cardRepo repository.CardRepository) *OrderAdminService {
	return &OrderAdminService{
		orderRepo: orderRepo,
		cardRepo:  cardRepo,
	}
}

// OrderStats 订单状态统计
type OrderStats struct {
	Pending       int64 `json:"pending"`
	Completed     int64 `json:"completed"`
	RefundPending int64 `json:"refund_pending"`
}

// expireDuePending 惰性过期：将超时未支付的订单置为已过期并释放其锁定卡密。
// 没有后台任务队列，过期在管理端读取时顺带收敛。
func (s *OrderAdminService) expireDuePending() {
	ids, err := s.orderRepo.ListExpiredPendingIDs(time.Now(), 200)
	if err != nil {
		logger.Warnw("order_expire_scan_failed", "error", err)
		return
	}
	if len(ids) == 0 {
		return
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.cardRepo.WithTx(tx).ReleaseLockedByOrderIDs(ids); err != nil {
			return err
		}
		_, err := s.orderRepo.WithTx(tx).MarkExpired(ids)
		return err
	})
	if err != nil {
		logger.Warnw("order_expire_apply_failed", "error", err, "count", len(ids))
		return
	}
	logger.Infow("order_expire_applied", "count", len(ids))
	invalidateStoreCache("order_expire")
}

// ListAdmin 管理端订单列表，附带状态统计
func (s *OrderAdminService) ListAdmin(filter repository.OrderListFilter, page, pageSize int) ([]models.Order, int64, *OrderStats, error) {
	s.expireDuePending()

	orders, total, err := s.orderRepo.ListAdmin(filter, page, pageSize)
	if err != nil {
		return nil, 0, nil, err
	}

	counts, err := s.orderRepo.CountByStatus(filter)
	if err != nil {
		return nil, 0, nil, err
	}
	stats := &OrderStats{
		Pending:       counts[constants.OrderStatusPending],
		Completed:     counts[constants.OrderStatusCompleted],
		RefundPending: counts[constants.OrderStatusRefundPending],
	}
	return orders, total, stats, nil
}

// AdminOrderDetail 订单详情（含商品摘要与卡密）
type AdminOrderDetail struct {
	Order   *models.Order          `json:"order"`
	Product *models.ProductSummary `json:"product,omitempty"`
	Cards   []models.Card          `json:"cards"`
}

// GetAdminDetail 管理端订单详情
func (s *OrderAdminService) GetAdminDetail(id uint) (*AdminOrderDetail, error) {
	s.expireDuePending()

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	cards, err := s.cardRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []models.Card{}
	}

	return &AdminOrderDetail{
		Order:   order,
		Product: order.Product.Summary(),
		Cards:   cards,
	}, nil
}

// DeleteOrdersResult 批量删除订单统计
type DeleteOrdersResult struct {
	DeletedCount  int64  `json:"deleted_count"`
	NotFoundCount int    `json:"not_found_count"`
	NotFoundIDs   []uint `json:"not_found_ids,omitempty"`
}

// DeleteOrders 批量删除订单
// 同一事务内：先释放这批订单占用的锁定卡密，再删除订单。
// 全部订单都不存在视为失败。
func (s *OrderAdminService) DeleteOrders(ids []uint) (*DeleteOrdersResult, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, ErrEmptyOrderIDs
	}
	if len(ids) > constants.MaxOrderBatchDelete {
		return nil, ErrTooManyOrders
	}

	result := &DeleteOrdersResult{}
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cardRepo := s.cardRepo.WithTx(tx)

		existing, err := orderRepo.ListExistingIDs(ids)
		if err != nil {
			return err
		}
		existingSet := make(map[uint]struct{}, len(existing))
		for _, id := range existing {
			existingSet[id] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := existingSet[id]; !ok {
				result.NotFoundIDs = append(result.NotFoundIDs, id)
			}
		}
		result.NotFoundCount = len(result.NotFoundIDs)

		if len(existing) == 0 {
			return nil
		}

		released, err := cardRepo.ReleaseLockedByOrderIDs(existing)
		if err != nil {
			return err
		}
		if released > 0 {
			logger.Infow("order_delete_released_cards", "orders", len(existing), "cards", released)
		}

		deleted, err := orderRepo.DeleteByIDs(existing)
		if err != nil {
			return err
		}
		result.DeletedCount = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.DeletedCount == 0 {
		return result, ErrNoOrdersDeleted
	}
	// 释放的卡密会改变库存，店面缓存随之失效
	invalidateStoreCache("order_delete")
	return result, nil
}
