package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ldc-store/internal/constants"
	"github.com/ldc-store/internal/models"
	"github.com/ldc-store/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderAdminServiceTest(t *testing.T) (*OrderAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_admin_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Card{}, &models.Order{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewOrderAdminService(repository.NewOrderRepository(db), repository.NewCardRepository(db))
	return svc, db
}

func createTestOrder(t *testing.T, db *gorm.DB, orderNo, status string, expiresAt *time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:     orderNo,
		Email:       orderNo + "@example.com",
		ProductName: "测试商品",
		Quantity:    1,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		TotalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Status:      status,
		ExpiresAt:   expiresAt,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func createLockedCardForOrder(t *testing.T, db *gorm.DB, productID, orderID uint, content string) *models.Card {
	t.Helper()
	lockedAt := time.Now()
	card := &models.Card{
		ProductID: productID,
		Content:   content,
		Status:    constants.CardStatusLocked,
		OrderID:   &orderID,
		LockedAt:  &lockedAt,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("create locked card failed: %v", err)
	}
	return card
}

func TestOrderAdminServiceListExpiresDuePending(t *testing.T) {
	svc, db := setupOrderAdminServiceTest(t)

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)
	expired := createTestOrder(t, db, "ORD-EXPIRED", constants.OrderStatusPending, &past)
	alive := createTestOrder(t, db, "ORD-ALIVE", constants.OrderStatusPending, &future)
	card := createLockedCardForOrder(t, db, 1, expired.ID, "LOCK-EXP")

	orders, total, stats, err := svc.ListAdmin(repository.OrderListFilter{}, 1, 20)
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders, got total=%d len=%d", total, len(orders))
	}
	if stats.Pending != 1 {
		t.Fatalf("expected pending=1 after lazy expiry, got: %d", stats.Pending)
	}

	var reloaded models.Order
	if err := db.First(&reloaded, expired.ID).Error; err != nil {
		t.Fatalf("reload expired order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusExpired {
		t.Fatalf("expected expired status, got: %s", reloaded.Status)
	}

	var aliveReloaded models.Order
	if err := db.First(&aliveReloaded, alive.ID).Error; err != nil {
		t.Fatalf("reload alive order failed: %v", err)
	}
	if aliveReloaded.Status != constants.OrderStatusPending {
		t.Fatalf("alive order should stay pending, got: %s", aliveReloaded.Status)
	}

	var cardReloaded models.Card
	if err := db.First(&cardReloaded, card.ID).Error; err != nil {
		t.Fatalf("reload card failed: %v", err)
	}
	if cardReloaded.Status != constants.CardStatusAvailable || cardReloaded.OrderID != nil {
		t.Fatalf("expected card released, got: %+v", cardReloaded)
	}
}

func TestOrderAdminServiceListStats(t *testing.T) {
	svc, db := setupOrderAdminServiceTest(t)
	future := time.Now().Add(time.Hour)
	createTestOrder(t, db, "ORD-P1", constants.OrderStatusPending, &future)
	createTestOrder(t, db, "ORD-C1", constants.OrderStatusCompleted, nil)
	createTestOrder(t, db, "ORD-C2", constants.OrderStatusCompleted, nil)
	createTestOrder(t, db, "ORD-R1", constants.OrderStatusRefundPending, nil)

	_, _, stats, err := svc.ListAdmin(repository.OrderListFilter{}, 1, 20)
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if stats.Pending != 1 || stats.Completed != 2 || stats.RefundPending != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestOrderAdminServiceListSearchFilter(t *testing.T) {
	svc, db := setupOrderAdminServiceTest(t)
	createTestOrder(t, db, "ORD-MATCH", constants.OrderStatusCompleted, nil)
	createTestOrder(t, db, "ORD-OTHER", constants.OrderStatusCompleted, nil)

	orders, total, _, err := svc.ListAdmin(repository.OrderListFilter{Search: "MATCH"}, 1, 20)
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("expected 1 match, got total=%d len=%d", total, len(orders))
	}
	if orders[0].OrderNo != "ORD-MATCH" {
		t.Fatalf("unexpected order: %s", orders[0].OrderNo)
	}
}

func TestOrderAdminServiceGetDetailNotFound(t *testing.T) {
	svc, _ := setupOrderAdminServiceTest(t)
	if _, err := svc.GetAdminDetail(12345); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestOrderAdminServiceGetDetailCardsNeverNil(t *testing.T) {
	svc, db := setupOrderAdminServiceTest(t)
	order := createTestOrder(t, db, "ORD-DETAIL", constants.OrderStatusCompleted, nil)

	detail, err := svc.GetAdminDetail(order.ID)
	if err != nil {
		t.Fatalf("get detail failed: %v", err)
	}
	if detail.Order == nil || detail.Order.OrderNo != "ORD-DETAIL" {
		t.Fatalf("unexpected order in detail: %+v", detail.Order)
	}
	if detail.Cards == nil {
		t.Fatalf("cards should be empty slice, not nil")
	}
}

func TestOrderAdminServiceDeleteOrdersReleasesCards(t *testing.T) {
	svc, db := setupOrderAdminServiceTest(t)
	order := createTestOrder(t, db, "ORD-DEL", constants.OrderStatusPending, nil)
	card := createLockedCardForOrder(t, db, 1, order.ID, "LOCK-DEL")

	result, err := svc.DeleteOrders([]uint{order.ID, 777, order.ID})
	if err != nil {
		t.Fatalf("delete orders failed: %v", err)
	}
	if result.DeletedCount != 1 {
		t.Fatalf("expected deleted_count=1, got: %d", result.DeletedCount)
	}
	if result.NotFoundCount != 1 || len(result.NotFoundIDs) != 1 || result.NotFoundIDs[0] != 777 {
		t.Fatalf("unexpected not-found stats: %+v", result)
	}

	var cardReloaded models.Card
	if err := db.First(&cardReloaded, card.ID).Error; err != nil {
		t.Fatalf("reload card failed: %v", err)
	}
	if cardReloaded.Status != constants.CardStatusAvailable || cardReloaded.OrderID != nil {
		t.Fatalf("expected card released, got: %+v", cardReloaded)
	}

	var count int64
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected order soft-deleted from default scope, got count=%d", count)
	}
}

func TestOrderAdminServiceDeleteOrdersValidation(t *testing.T) {
	svc, _ := setupOrderAdminServiceTest(t)

	if _, err := svc.DeleteOrders(nil); !errors.Is(err, ErrEmptyOrderIDs) {
		t.Fatalf("expected ErrEmptyOrderIDs, got: %v", err)
	}
	if _, err := svc.DeleteOrders([]uint{0, 0}); !errors.Is(err, ErrEmptyOrderIDs) {
		t.Fatalf("expected ErrEmptyOrderIDs for zero ids, got: %v", err)
	}

	tooMany := make([]uint, constants.MaxOrderBatchDelete+1)
	for i := range tooMany {
		tooMany[i] = uint(i + 1)
	}
	if _, err := svc.DeleteOrders(tooMany); !errors.Is(err, ErrTooManyOrders) {
		t.Fatalf("expected ErrTooManyOrders, got: %v", err)
	}
}

func TestOrderAdminServiceDeleteOrdersNoneDeleted(t *testing.T) {
	svc, _ := setupOrderAdminServiceTest(t)

	result, err := svc.DeleteOrders([]uint{111, 222})
	if !errors.Is(err, ErrNoOrdersDeleted) {
		t.Fatalf("expected ErrNoOrdersDeleted, got: %v", err)
	}
	if result == nil || result.NotFoundCount != 2 {
		t.Fatalf("expected not-found stats alongside failure, got: %+v", result)
	}
}
