package public

import (
	"errors"
	"strconv"
	"time"

	"github.com/ldc-store/internal/cache"
	handlershared "github.com/ldc-store/internal/http/handlers/shared"
	"github.com/ldc-store/internal/http/response"
	"github.com/ldc-store/internal/models"
	"github.com/ldc-store/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) storeCacheTTL() time.Duration {
	seconds := 60
	if h.Config != nil && h.Config.Cache.StoreTTLSeconds > 0 {
		seconds = h.Config.Cache.StoreTTLSeconds
	}
	return time.Duration(seconds) * time.Second
}

// GetConfig 店面站点配置
func (h *Handler) GetConfig(c *gin.Context) {
	ctx := c.Request.Context()
	key := cache.StoreConfigKey()

	var cached service.SiteSettings
	if cache.GetStoreJSON(ctx, key, &cached) {
		response.Success(c, cached)
		return
	}

	settings, err := h.SettingService.Get()
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	cache.SetStoreJSON(ctx, key, settings, h.storeCacheTTL())
	response.Success(c, settings)
}

// GetCategories 店面分类列表（仅启用）
func (h *Handler) GetCategories(c *gin.Context) {
	ctx := c.Request.Context()
	key := cache.StoreCategoriesKey()

	var cached []models.Category
	if cache.GetStoreJSON(ctx, key, &cached) {
		response.Success(c, cached)
		return
	}

	categories, err := h.CategoryService.ListActive()
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	cache.SetStoreJSON(ctx, key, categories, h.storeCacheTTL())
	response.Success(c, categories)
}

type storeProductPage struct {
	Items      []models.Product    `json:"items"`
	Pagination response.Pagination `json:"pagination"`
}

// GetProducts 店面商品列表（仅上架）
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize, 100)
	categoryID, _ := strconv.Atoi(c.DefaultQuery("category_id", "0"))
	if categoryID < 0 {
		categoryID = 0
	}

	ctx := c.Request.Context()
	key := cache.StoreProductsKey(categoryID, page, pageSize)

	var cached storeProductPage
	if cache.GetStoreJSON(ctx, key, &cached) {
		response.SuccessWithPage(c, cached.Items, cached.Pagination)
		return
	}

	products, total, err := h.ProductService.ListActive(uint(categoryID), page, pageSize)
	if err != nil {
		handlershared.RespondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	pagination := response.NewPagination(page, pageSize, total)
	cache.SetStoreJSON(ctx, key, storeProductPage{Items: products, Pagination: pagination}, h.storeCacheTTL())
	response.SuccessWithPage(c, products, pagination)
}

// GetProductBySlug 店面商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		handlershared.RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	ctx := c.Request.Context()
	key := cache.StoreProductKey(slug)

	var cached models.Product
	if cache.GetStoreJSON(ctx, key, &cached) {
		response.Success(c, cached)
		return
	}

	product, err := h.ProductService.GetActiveBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			handlershared.RespondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		handlershared.RespondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	cache.SetStoreJSON(ctx, key, product, h.storeCacheTTL())
	response.Success(c, product)
}
