package admin

import (
	"errors"

	"github.com/ldc-store/internal/http/response"
	"github.com/ldc-store/internal/i18n"
	"github.com/ldc-store/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Icon:        r.Icon,
		SortOrder:   r.SortOrder,
		IsActive:    r.IsActive,
	}
}

func respondCategoryError(c *gin.Context, err error) {
	var inUse *service.CategoryInUseError
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.category_not_found", nil)
	case errors.Is(err, service.ErrSlugInvalid):
		respondError(c, response.CodeBadRequest, "error.slug_invalid", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "error.slug_exists", nil)
	case errors.As(err, &inUse):
		msg := i18n.Sprintf(i18n.ResolveLocale(c), "error.category_in_use", inUse.Count)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
	default:
		respondError(c, response.CodeInternal, "error.category_save_failed", err)
	}
}

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetAdminCategory 获取分类详情 (Admin)
func (h *Handler) GetAdminCategory(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	requestLog(c).Infow("category_created", "category_id", category.ID, "slug", category.Slug)
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, category)
}

// ToggleCategory 切换分类启用状态
func (h *Handler) ToggleCategory(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	category, err := h.CategoryService.ToggleActive(id)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		var inUse *service.CategoryInUseError
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
		case errors.As(err, &inUse):
			msg := i18n.Sprintf(i18n.ResolveLocale(c), "error.category_in_use", inUse.Count)
			respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		default:
			respondError(c, response.CodeInternal, "error.category_delete_failed", err)
		}
		return
	}
	requestLog(c).Infow("category_deleted", "category_id", id)
	response.Success(c, nil)
}
