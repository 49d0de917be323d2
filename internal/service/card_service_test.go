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

func setupCardServiceTest(t *testing.T) (*CardService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:card_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Card{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewCardService(repository.NewCardRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func createCardTestProduct(t *testing.T, db *gorm.DB, slug string) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:     slug,
		Name:     "测试商品",
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createCard(t *testing.T, db *gorm.DB, productID uint, content, status string) *models.Card {
	t.Helper()
	card := &models.Card{
		ProductID: productID,
		Content:   content,
		Status:    status,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("create card failed: %v", err)
	}
	return card
}

func TestCardServiceImportDedupesAndCounts(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	product := createCardTestProduct(t, db, "import-dedupe")
	createCard(t, db, product.ID, "EXIST-1", constants.CardStatusSold)

	raw := "KEY-A\r\nKEY-B\n KEY-A \n\nEXIST-1\nKEY-C"
	result, err := svc.Import(product.ID, raw, constants.CardDelimiterNewline)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Total != 5 {
		t.Fatalf("expected total=5, got: %d", result.Total)
	}
	if result.DuplicateInInput != 1 {
		t.Fatalf("expected duplicate_in_input=1, got: %d", result.DuplicateInInput)
	}
	if result.ExistingInDB != 1 {
		t.Fatalf("expected existing_in_db=1, got: %d", result.ExistingInDB)
	}
	if result.Imported != 3 {
		t.Fatalf("expected imported=3, got: %d", result.Imported)
	}

	var count int64
	if err := db.Model(&models.Card{}).
		Where("product_id = ? AND status = ?", product.ID, constants.CardStatusAvailable).
		Count(&count).Error; err != nil {
		t.Fatalf("count cards failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 available cards, got: %d", count)
	}
}

func TestCardServiceImportNoValidContent(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	product := createCardTestProduct(t, db, "import-empty")

	if _, err := svc.Import(product.ID, " \n\r\n  \n ", constants.CardDelimiterNewline); !errors.Is(err, ErrNoValidCards) {
		t.Fatalf("expected ErrNoValidCards, got: %v", err)
	}
	if _, err := svc.Import(product.ID, " , ,, ", constants.CardDelimiterComma); !errors.Is(err, ErrNoValidCards) {
		t.Fatalf("expected ErrNoValidCards, got: %v", err)
	}
}

func TestCardServiceImportNewlineKeepsCommaContent(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	product := createCardTestProduct(t, db, "import-comma-content")

	result, err := svc.Import(product.ID, "KEY-1,PIN-9\nKEY-2,PIN-8", constants.CardDelimiterNewline)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Total != 2 || result.Imported != 2 {
		t.Fatalf("expected total=2 imported=2, got: %+v", result)
	}

	var count int64
	if err := db.Model(&models.Card{}).
		Where("product_id = ? AND content = ?", product.ID, "KEY-1,PIN-9").
		Count(&count).Error; err != nil {
		t.Fatalf("count cards failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("comma-bearing content should stay intact, got %d matching cards", count)
	}
}

func TestCardServiceImportCommaDelimiter(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	product := createCardTestProduct(t, db, "import-comma")

	result, err := svc.Import(product.ID, "KEY-A, KEY-B , KEY-A ,KEY-C", constants.CardDelimiterComma)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Total != 4 || result.DuplicateInInput != 1 || result.Imported != 3 {
		t.Fatalf("unexpected stats: %+v", result)
	}
}

func TestCardServiceImportDefaultDelimiterIsNewline(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	product := createCardTestProduct(t, db, "import-default")

	result, err := svc.Import(product.ID, "KEY-1,PIN-9", "")
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Total != 1 || result.Imported != 1 {
		t.Fatalf("expected one intact card, got: %+v", result)
	}
}

func TestCardServiceImportAllExistingKeepsStats(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	product := createCardTestProduct(t, db, "import-existing")
	createCard(t, db, product.ID, "DUP-1", constants.CardStatusAvailable)
	createCard(t, db, product.ID, "DUP-2", constants.CardStatusLocked)

	result, err := svc.Import(product.ID, "DUP-1\nDUP-2", constants.CardDelimiterNewline)
	if !errors.Is(err, ErrAllCardsExist) {
		t.Fatalf("expected ErrAllCardsExist, got: %v", err)
	}
	if result == nil {
		t.Fatalf("expected stats alongside failure")
	}
	if result.ExistingInDB != 2 || result.Imported != 0 {
		t.Fatalf("unexpected stats: %+v", result)
	}
}

func TestCardServiceImportProductNotFound(t *testing.T) {
	svc, _ := setupCardServiceTest(t)
	if _, err := svc.Import(9999, "KEY", constants.CardDelimiterNewline); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestCardServiceDeleteSkipsNonAvailable(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	product := createCardTestProduct(t, db, "delete-skip")
	available := createCard(t, db, product.ID, "AVAIL", constants.CardStatusAvailable)
	locked := createCard(t, db, product.ID, "LOCKED", constants.CardStatusLocked)
	sold := createCard(t, db, product.ID, "SOLD", constants.CardStatusSold)

	result, err := svc.Delete([]uint{available.ID, locked.ID, sold.ID, available.ID, 0})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if result.DeletedCount != 1 {
		t.Fatalf("expected deleted_count=1, got: %d", result.DeletedCount)
	}

	var remaining int64
	if err := db.Model(&models.Card{}).Where("product_id = ?", product.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("count cards failed: %v", err)
	}
	if remaining != 2 {
		t.Fatalf("expected 2 remaining cards, got: %d", remaining)
	}
}

func TestCardServiceResetLockedClearsOrderBinding(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	product := createCardTestProduct(t, db, "reset-locked")

	orderID := uint(42)
	lockedAt := time.Now()
	locked := &models.Card{
		ProductID: product.ID,
		Content:   "LOCKED-1",
		Status:    constants.CardStatusLocked,
		OrderID:   &orderID,
		LockedAt:  &lockedAt,
	}
	if err := db.Create(locked).Error; err != nil {
		t.Fatalf("create locked card failed: %v", err)
	}
	sold := createCard(t, db, product.ID, "SOLD-1", constants.CardStatusSold)

	result, err := svc.ResetLocked([]uint{locked.ID, sold.ID})
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if result.ResetCount != 1 {
		t.Fatalf("expected reset_count=1, got: %d", result.ResetCount)
	}

	var reloaded models.Card
	if err := db.First(&reloaded, locked.ID).Error; err != nil {
		t.Fatalf("reload card failed: %v", err)
	}
	if reloaded.Status != constants.CardStatusAvailable {
		t.Fatalf("expected available status, got: %s", reloaded.Status)
	}
	if reloaded.OrderID != nil || reloaded.LockedAt != nil {
		t.Fatalf("expected order binding cleared, got: %+v", reloaded)
	}

	var soldReloaded models.Card
	if err := db.First(&soldReloaded, sold.ID).Error; err != nil {
		t.Fatalf("reload sold card failed: %v", err)
	}
	if soldReloaded.Status != constants.CardStatusSold {
		t.Fatalf("sold card should be untouched, got: %s", soldReloaded.Status)
	}
}

func TestCardServiceCleanDuplicatesKeepsEarliest(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	product := createCardTestProduct(t, db, "clean-dup")

	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"DUP", "DUP", "DUP", "UNIQ"} {
		card := &models.Card{
			ProductID: product.ID,
			Content:   content,
			Status:    constants.CardStatusAvailable,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(card).Error; err != nil {
			t.Fatalf("create card failed: %v", err)
		}
	}
	// 已售的重复内容不参与清理
	createCard(t, db, product.ID, "DUP", constants.CardStatusSold)

	result, err := svc.CleanDuplicates(product.ID)
	if err != nil {
		t.Fatalf("clean duplicates failed: %v", err)
	}
	if result.RemovedCount != 2 {
		t.Fatalf("expected removed_count=2, got: %d", result.RemovedCount)
	}

	var kept []models.Card
	if err := db.Where("product_id = ? AND content = ? AND status = ?", product.ID, "DUP", constants.CardStatusAvailable).
		Order("created_at ASC").Find(&kept).Error; err != nil {
		t.Fatalf("load kept cards failed: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("expected 1 kept duplicate, got: %d", len(kept))
	}
	if kept[0].CreatedAt.After(base.Add(30 * time.Second)) {
		t.Fatalf("expected earliest card kept, got created_at: %v", kept[0].CreatedAt)
	}
}

func TestCardServiceCleanDuplicatesNoop(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	product := createCardTestProduct(t, db, "clean-noop")
	createCard(t, db, product.ID, "ONLY", constants.CardStatusAvailable)

	result, err := svc.CleanDuplicates(product.ID)
	if err != nil {
		t.Fatalf("clean duplicates failed: %v", err)
	}
	if result.RemovedCount != 0 {
		t.Fatalf("expected removed_count=0, got: %d", result.RemovedCount)
	}
}

func TestCardServiceStats(t *testing.T) {
	svc, db := setupCardServiceTest(t)
	product := createCardTestProduct(t, db, "stats")
	createCard(t, db, product.ID, "A1", constants.CardStatusAvailable)
	createCard(t, db, product.ID, "A2", constants.CardStatusAvailable)
	createCard(t, db, product.ID, "L1", constants.CardStatusLocked)
	createCard(t, db, product.ID, "S1", constants.CardStatusSold)

	stats, err := svc.Stats(product.ID)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 4 || stats.Available != 2 || stats.Locked != 1 || stats.Sold != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
