package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/ldc-store/internal/constants"
	"github.com/ldc-store/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCardRepositoryTest(t *testing.T) (*GormCardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:card_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Card{}); err != nil {
		t.Fatalf("migrate cards failed: %v", err)
	}
	return NewCardRepository(db), db
}

func seedCard(t *testing.T, db *gorm.DB, productID uint, content, status string, createdAt time.Time) *models.Card {
	t.Helper()
	card := &models.Card{
		ProductID: productID,
		Content:   content,
		Status:    status,
		CreatedAt: createdAt,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("seed card failed: %v", err)
	}
	return card
}

func TestCardRepositoryFindDuplicateAvailableIDs(t *testing.T) {
	repo, db := setupCardRepositoryTest(t)
	base := time.Now().Add(-time.Hour)

	first := seedCard(t, db, 1, "DUP", constants.CardStatusAvailable, base)
	second := seedCard(t, db, 1, "DUP", constants.CardStatusAvailable, base.Add(time.Minute))
	third := seedCard(t, db, 1, "DUP", constants.CardStatusAvailable, base.Add(2*time.Minute))
	seedCard(t, db, 1, "UNIQ", constants.CardStatusAvailable, base)
	// 其他状态与其他商品不参与
	seedCard(t, db, 1, "DUP", constants.CardStatusSold, base)
	seedCard(t, db, 2, "DUP", constants.CardStatusAvailable, base)

	ids, err := repo.FindDuplicateAvailableIDs(1)
	if err != nil {
		t.Fatalf("find duplicates failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 duplicate ids, got: %v", ids)
	}
	idSet := map[uint]bool{}
	for _, id := range ids {
		idSet[id] = true
	}
	if idSet[first.ID] {
		t.Fatalf("earliest card %d must be kept", first.ID)
	}
	if !idSet[second.ID] || !idSet[third.ID] {
		t.Fatalf("later duplicates should be removed, got: %v", ids)
	}
}

func TestCardRepositoryListExistingContentsAnyStatus(t *testing.T) {
	repo, db := setupCardRepositoryTest(t)
	now := time.Now()
	seedCard(t, db, 1, "A", constants.CardStatusAvailable, now)
	seedCard(t, db, 1, "B", constants.CardStatusSold, now)
	seedCard(t, db, 2, "C", constants.CardStatusAvailable, now)

	existing, err := repo.ListExistingContents(1, []string{"A", "B", "C", "D"})
	if err != nil {
		t.Fatalf("list existing contents failed: %v", err)
	}
	if len(existing) != 2 {
		t.Fatalf("expected 2 existing contents for product 1, got: %v", existing)
	}
}

func TestCardRepositoryReleaseLockedByOrderIDs(t *testing.T) {
	repo, db := setupCardRepositoryTest(t)
	now := time.Now()

	orderID := uint(10)
	locked := seedCard(t, db, 1, "L1", constants.CardStatusLocked, now)
	if err := db.Model(locked).Updates(map[string]interface{}{"order_id": orderID, "locked_at": now}).Error; err != nil {
		t.Fatalf("bind card to order failed: %v", err)
	}
	sold := seedCard(t, db, 1, "S1", constants.CardStatusSold, now)
	if err := db.Model(sold).Update("order_id", orderID).Error; err != nil {
		t.Fatalf("bind sold card failed: %v", err)
	}

	released, err := repo.ReleaseLockedByOrderIDs([]uint{orderID})
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if released != 1 {
		t.Fatalf("expected 1 released, got: %d", released)
	}

	var soldReloaded models.Card
	if err := db.First(&soldReloaded, sold.ID).Error; err != nil {
		t.Fatalf("reload sold card failed: %v", err)
	}
	if soldReloaded.Status != constants.CardStatusSold {
		t.Fatalf("sold card should keep status, got: %s", soldReloaded.Status)
	}
}

func TestCardRepositoryCountAvailableByProductIDs(t *testing.T) {
	repo, db := setupCardRepositoryTest(t)
	now := time.Now()
	seedCard(t, db, 1, "A1", constants.CardStatusAvailable, now)
	seedCard(t, db, 1, "A2", constants.CardStatusAvailable, now)
	seedCard(t, db, 1, "L1", constants.CardStatusLocked, now)
	seedCard(t, db, 2, "B1", constants.CardStatusAvailable, now)

	counts, err := repo.CountAvailableByProductIDs([]uint{1, 2, 3})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if counts[1] != 2 || counts[2] != 1 || counts[3] != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
