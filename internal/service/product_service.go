package service

import (
	"strings"

	"github.com/ldc-store/internal/constants"
	"github.com/ldc-store/internal/models"
	"github.com/ldc-store/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cardRepo     repository.CardRepository
}

// NewProductService 创建商品服务实例
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, cardRepo repository.CardRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cardRepo:     cardRepo,
	}
}

// ProductInput 商品创建/更新入参
type ProductInput struct {
	CategoryID  uint
	Slug        string
	Name        string
	Description string
	Image       string
	Price       decimal.Decimal
	IsActive    *bool
	SortOrder   int
}

// fillStock 用可售卡密数填充库存字段
func (s *ProductService) fillStock(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	counts, err := s.cardRepo.CountAvailableByProductIDs(ids)
	if err != nil {
		return err
	}
	for i := range products {
		products[i].Stock = counts[products[i].ID]
	}
	return nil
}

// ListAdmin 管理端商品列表
func (s *ProductService) ListAdmin(filter repository.ProductListFilter, page, pageSize int) ([]models.Product, int64, error) {
	products, total, err := s.productRepo.ListAdmin(filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if err := s.fillStock(products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListActive 店面商品列表
func (s *ProductService) ListActive(categoryID uint, page, pageSize int) ([]models.Product, int64, error) {
	products, total, err := s.productRepo.ListActive(categoryID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if err := s.fillStock(products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Get 商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	single := []models.Product{*product}
	if err := s.fillStock(single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// GetActiveBySlug 店面商品详情
func (s *ProductService) GetActiveBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetActiveBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	single := []models.Product{*product}
	if err := s.fillStock(single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

func (s *ProductService) validateSlug(slug string, excludeID uint) error {
	if !slugPattern.MatchString(slug) {
		return ErrSlugInvalid
	}
	count, err := s.productRepo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}

func (s *ProductService) resolveCategory(categoryID uint) (*uint, error) {
	if categoryID == 0 {
		return nil, nil
	}
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return &category.ID, nil
}

// Create 创建商品
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	slug := strings.TrimSpace(input.Slug)
	if err := s.validateSlug(slug, 0); err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:  categoryID,
		Slug:        slug,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Image:       strings.TrimSpace(input.Image),
		Price:       models.NewMoneyFromDecimal(input.Price),
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	invalidateStoreCache("product_create")
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != "" && slug != product.Slug {
		if err := s.validateSlug(slug, id); err != nil {
			return nil, err
		}
		product.Slug = slug
	}
	categoryID, err := s.resolveCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}
	product.CategoryID = categoryID

	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	product.Description = input.Description
	product.Image = strings.TrimSpace(input.Image)
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	invalidateStoreCache("product_update")
	return product, nil
}

// Delete 删除商品
// 仍有未售出卡密（可售或锁定）时拒绝删除。
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}

	counts, err := s.cardRepo.CountByStatus(id)
	if err != nil {
		return err
	}
	unsold := counts[constants.CardStatusAvailable] + counts[constants.CardStatusLocked]
	if unsold > 0 {
		return ErrProductHasCards
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	invalidateStoreCache("product_delete")
	return nil
}
