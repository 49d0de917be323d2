package admin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	handlershared "github.com/ldc-store/internal/http/handlers/shared"
	"github.com/ldc-store/internal/http/response"
	"github.com/ldc-store/internal/models"
	"github.com/ldc-store/internal/repository"
	"github.com/ldc-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ImportCardsRequest 卡密导入请求
type ImportCardsRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Delimiter string `json:"delimiter" binding:"omitempty,oneof=newline comma"`
}

// ImportCards 导入卡密
func (h *Handler) ImportCards(c *gin.Context) {
	var req ImportCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.CardService.Import(req.ProductID, req.Content, req.Delimiter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		case errors.Is(err, service.ErrNoValidCards):
			respondError(c, response.CodeBadRequest, "error.card_no_valid", nil)
		case errors.Is(err, service.ErrAllCardsExist):
			respondErrorWithData(c, response.CodeBadRequest, "error.card_all_existing", result)
		default:
			respondError(c, response.CodeInternal, "error.card_import_failed", err)
		}
		return
	}

	requestLog(c).Infow("cards_imported",
		"product_id", req.ProductID,
		"total", result.Total,
		"imported", result.Imported,
	)
	response.Success(c, result)
}

// GetAdminCards 获取卡密列表 (Admin)
func (h *Handler) GetAdminCards(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize, 100)

	filter := repository.CardListFilter{
		ProductID: parseQueryUint(c, "product_id"),
		Status:    c.Query("status"),
		Search:    c.Query("search"),
	}

	cards, total, err := h.CardService.List(filter, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.card_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, cards, response.NewPagination(page, pageSize, total))
}

// CardIDsRequest 批量操作请求
type CardIDsRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// BatchDeleteCards 批量删除卡密（仅删除可售状态）
func (h *Handler) BatchDeleteCards(c *gin.Context) {
	var req CardIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.CardService.Delete(req.IDs)
	if err != nil {
		respondError(c, response.CodeInternal, "error.card_delete_failed", err)
		return
	}
	requestLog(c).Infow("cards_deleted", "requested", len(req.IDs), "deleted", result.DeletedCount)
	response.Success(c, result)
}

// BatchResetCards 批量重置锁定卡密为可售
func (h *Handler) BatchResetCards(c *gin.Context) {
	var req CardIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.CardService.ResetLocked(req.IDs)
	if err != nil {
		respondError(c, response.CodeInternal, "error.card_reset_failed", err)
		return
	}
	requestLog(c).Infow("cards_reset", "requested", len(req.IDs), "reset", result.ResetCount)
	response.Success(c, result)
}

// CleanDuplicateCardsRequest 清理重复卡密请求
type CleanDuplicateCardsRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// CleanDuplicateCards 清理商品可售卡密中的重复内容
func (h *Handler) CleanDuplicateCards(c *gin.Context) {
	var req CleanDuplicateCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.CardService.CleanDuplicates(req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.card_clean_failed", err)
		return
	}
	requestLog(c).Infow("cards_deduplicated", "product_id", req.ProductID, "removed", result.RemovedCount)
	response.Success(c, result)
}

// GetCardStats 商品卡密统计
func (h *Handler) GetCardStats(c *gin.Context) {
	productID := parseQueryUint(c, "product_id")
	if productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	stats, err := h.CardService.Stats(productID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.card_fetch_failed", err)
		return
	}
	response.Success(c, stats)
}

var cardExportHeader = []string{"ID", "内容", "状态", "订单ID", "锁定时间", "售出时间", "导入时间"}

func cardExportRow(card models.Card) []string {
	orderID := ""
	if card.OrderID != nil {
		orderID = strconv.FormatUint(uint64(*card.OrderID), 10)
	}
	return []string{
		strconv.FormatUint(uint64(card.ID), 10),
		card.Content,
		card.Status,
		orderID,
		formatExportTime(card.LockedAt),
		formatExportTime(card.SoldAt),
		card.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func formatExportTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

// ExportCards 导出商品卡密（xlsx / csv）
func (h *Handler) ExportCards(c *gin.Context) {
	productID := parseQueryUint(c, "product_id")
	if productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	status := c.Query("status")
	format := c.DefaultQuery("format", "xlsx")

	cards, err := h.CardService.Export(productID, status)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.card_export_failed", err)
		return
	}

	filename := fmt.Sprintf("cards-%d-%s", productID, time.Now().Format("20060102150405"))
	if format == "csv" {
		h.exportCardsCSV(c, filename, cards)
		return
	}
	h.exportCardsXLSX(c, filename, cards)
}

func (h *Handler) exportCardsCSV(c *gin.Context, filename string, cards []models.Card) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, filename))

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(cardExportHeader)
	for _, card := range cards {
		_ = writer.Write(cardExportRow(card))
	}
	writer.Flush()
}

func (h *Handler) exportCardsXLSX(c *gin.Context, filename string, cards []models.Card) {
	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	sheet := "Cards"
	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		respondError(c, response.CodeInternal, "error.card_export_failed", err)
		return
	}

	header := make([]interface{}, len(cardExportHeader))
	for i, col := range cardExportHeader {
		header[i] = col
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		respondError(c, response.CodeInternal, "error.card_export_failed", err)
		return
	}
	for i, card := range cards {
		row := cardExportRow(card)
		values := make([]interface{}, len(row))
		for j, value := range row {
			values[j] = value
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(sheet, cell, &values); err != nil {
			respondError(c, response.CodeInternal, "error.card_export_failed", err)
			return
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, filename))
	if err := file.Write(c.Writer); err != nil {
		requestLog(c).Errorw("card_export_write_failed", "error", err)
	}
}
