package service

import (
	"regexp"
	"strings"

	"github.com/ldc-store/internal/models"
	"github.com/ldc-store/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务实例
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput 分类创建/更新入参
type CategoryInput struct {
	Slug        string
	Name        string
	Description string
	Icon        string
	SortOrder   int
	IsActive    *bool
}

// List 分类列表
func (s *CategoryService) List() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// ListActive 启用中的分类列表
func (s *CategoryService) ListActive() ([]models.Category, error) {
	return s.categoryRepo.ListActive()
}

// Get 分类详情
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	slug := strings.TrimSpace(input.Slug)
	if !slugPattern.MatchString(slug) {
		return nil, ErrSlugInvalid
	}
	count, err := s.categoryRepo.CountBySlug(slug, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category := &models.Category{
		Slug:        slug,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Icon:        strings.TrimSpace(input.Icon),
		SortOrder:   input.SortOrder,
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	invalidateStoreCache("category_create")
	return category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != "" && slug != category.Slug {
		if !slugPattern.MatchString(slug) {
			return nil, ErrSlugInvalid
		}
		count, err := s.categoryRepo.CountBySlug(slug, id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
		category.Slug = slug
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	category.Description = strings.TrimSpace(input.Description)
	category.Icon = strings.TrimSpace(input.Icon)
	category.SortOrder = input.SortOrder
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	invalidateStoreCache("category_update")
	return category, nil
}

// ToggleActive 切换分类启用状态
func (s *CategoryService) ToggleActive(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	category.IsActive = !category.IsActive
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	invalidateStoreCache("category_toggle")
	return category, nil
}

// Delete 删除分类
// 仍有商品引用时拒绝删除。
func (s *CategoryService) Delete(id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}

	productCount, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return &CategoryInUseError{Count: productCount}
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	invalidateStoreCache("category_delete")
	return nil
}
