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

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Card{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewCardRepository(db),
	)
	return svc, db
}

func TestProductServiceCreateAndStock(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	product, err := svc.Create(ProductInput{
		Slug:  "steam-card",
		Name:  "Steam 充值卡",
		Price: decimal.RequireFromString("48.50"),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	for i, status := range []string{
		constants.CardStatusAvailable,
		constants.CardStatusAvailable,
		constants.CardStatusLocked,
		constants.CardStatusSold,
	} {
		card := models.Card{ProductID: product.ID, Content: fmt.Sprintf("K-%d", i), Status: status}
		if err := db.Create(&card).Error; err != nil {
			t.Fatalf("create card failed: %v", err)
		}
	}

	reloaded, err := svc.Get(product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if reloaded.Stock != 2 {
		t.Fatalf("expected stock=2 (available only), got: %d", reloaded.Stock)
	}
}

func TestProductServiceSlugValidation(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	if _, err := svc.Create(ProductInput{Slug: "UPPER", Name: "x", Price: decimal.NewFromInt(1)}); !errors.Is(err, ErrSlugInvalid) {
		t.Fatalf("expected ErrSlugInvalid, got: %v", err)
	}

	if _, err := svc.Create(ProductInput{Slug: "dup", Name: "first", Price: decimal.NewFromInt(1)}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ProductInput{Slug: "dup", Name: "second", Price: decimal.NewFromInt(1)}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got: %v", err)
	}
}

func TestProductServiceCreateUnknownCategory(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	_, err := svc.Create(ProductInput{
		CategoryID: 999,
		Slug:       "no-category",
		Name:       "x",
		Price:      decimal.NewFromInt(1),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestProductServiceDeleteRejectsUnsoldCards(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	product, err := svc.Create(ProductInput{Slug: "with-cards", Name: "x", Price: decimal.NewFromInt(1)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	card := models.Card{ProductID: product.ID, Content: "LOCKED", Status: constants.CardStatusLocked}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("create card failed: %v", err)
	}

	if err := svc.Delete(product.ID); !errors.Is(err, ErrProductHasCards) {
		t.Fatalf("expected ErrProductHasCards, got: %v", err)
	}
}

func TestProductServiceDeleteWithOnlySoldCards(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	product, err := svc.Create(ProductInput{Slug: "sold-out", Name: "x", Price: decimal.NewFromInt(1)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	card := models.Card{ProductID: product.ID, Content: "SOLD", Status: constants.CardStatusSold}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("create card failed: %v", err)
	}

	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete should succeed with only sold cards, got: %v", err)
	}
	if _, err := svc.Get(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected product gone, got: %v", err)
	}
}

func TestProductServiceListActiveOnly(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	if _, err := svc.Create(ProductInput{Slug: "active", Name: "a", Price: decimal.NewFromInt(1)}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	inactive := false
	if _, err := svc.Create(ProductInput{Slug: "inactive", Name: "b", Price: decimal.NewFromInt(1), IsActive: &inactive}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	products, total, err := svc.ListActive(0, 1, 20)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 1 || len(products) != 1 || products[0].Slug != "active" {
		t.Fatalf("expected only active product, got total=%d products=%+v", total, products)
	}
}
