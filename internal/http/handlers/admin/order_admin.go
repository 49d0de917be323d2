package admin

import (
	"errors"
	"strconv"

	"github.com/ldc-store/internal/constants"
	handlershared "github.com/ldc-store/internal/http/handlers/shared"
	"github.com/ldc-store/internal/http/response"
	"github.com/ldc-store/internal/i18n"
	"github.com/ldc-store/internal/repository"
	"github.com/ldc-store/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminOrders 获取订单列表 (Admin)，附带状态统计
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize, 200)

	filter := repository.OrderListFilter{
		Status:        c.Query("status"),
		PaymentMethod: c.Query("payment_method"),
		Search:        c.Query("search"),
	}

	orders, total, stats, err := h.OrderAdminService.ListAdmin(filter, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, gin.H{
		"items": orders,
		"stats": stats,
	}, response.NewPagination(page, pageSize, total))
}

// GetAdminOrder 获取订单详情 (Admin)
func (h *Handler) GetAdminOrder(c *gin.Context) {
	id := parseIDParam(c, "id")
	if id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	detail, err := h.OrderAdminService.GetAdminDetail(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, detail)
}

// BatchDeleteOrdersRequest 批量删除订单请求
type BatchDeleteOrdersRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// BatchDeleteOrders 批量删除订单
func (h *Handler) BatchDeleteOrders(c *gin.Context) {
	var req BatchDeleteOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.OrderAdminService.DeleteOrders(req.IDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrderIDs):
			respondError(c, response.CodeBadRequest, "error.order_ids_empty", nil)
		case errors.Is(err, service.ErrTooManyOrders):
			msg := i18n.Sprintf(i18n.ResolveLocale(c), "error.order_batch_limit", constants.MaxOrderBatchDelete)
			respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		case errors.Is(err, service.ErrNoOrdersDeleted):
			respondErrorWithData(c, response.CodeNotFound, "error.order_delete_none", result)
		default:
			respondError(c, response.CodeInternal, "error.order_delete_failed", err)
		}
		return
	}

	requestLog(c).Infow("orders_deleted",
		"requested", len(req.IDs),
		"deleted", result.DeletedCount,
		"not_found", result.NotFoundCount,
	)
	response.Success(c, result)
}
