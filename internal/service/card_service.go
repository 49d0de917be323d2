package service

import (
	"regexp"
	"strings"

	"github.com/ldc-store/internal/constants"
	"github.com/ldc-store/internal/models"
	"github.com/ldc-store/internal/repository"
)

// 按行分隔时的切分模式
var cardNewlinePattern = regexp.MustCompile(`\r?\n`)

// CardService 卡密服务
type CardService struct {
	cardRepo    repository.CardRepository
	productRepo repository.ProductRepository
}

// NewCardService 创建卡密服务实例
func NewCardService(cardRepo repository.CardRepository, productRepo repository.ProductRepository) *CardService {
	return &CardService{
		cardRepo:    cardRepo,
		productRepo: productRepo,
	}
}

// ImportResult 导入统计
type ImportResult struct {
	Total            int `json:"total"`              // 有效行数（去空白后）
	DuplicateInInput int `json:"duplicate_in_input"` // 输入内部重复
	ExistingInDB     int `json:"existing_in_db"`     // 库中已存在
	Imported         int `json:"imported"`           // 实际入库
}

// splitCardContents 按指定分隔符切分导入文本。
// 按行分隔时逗号保留在卡密内容中，反之亦然。
func splitCardContents(raw, delimiter string) []string {
	if delimiter == constants.CardDelimiterComma {
		return strings.Split(raw, ",")
	}
	return cardNewlinePattern.Split(raw, -1)
}

// normalizeContents 切分导入文本并做输入内去重，保留首次出现顺序。
func normalizeContents(raw, delimiter string) (unique []string, total, duplicated int) {
	seen := make(map[string]struct{})
	for _, line := range splitCardContents(raw, delimiter) {
		content := strings.TrimSpace(line)
		if content == "" {
			continue
		}
		total++
		if _, ok := seen[content]; ok {
			duplicated++
			continue
		}
		seen[content] = struct{}{}
		unique = append(unique, content)
	}
	return unique, total, duplicated
}

// Import 导入卡密
// 规则：按分隔符切分（默认按行）、去空白、输入内去重、跳过该商品下已存在的内容，
// 其余以可售状态入库。
func (s *CardService) Import(productID uint, raw, delimiter string) (*ImportResult, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	unique, total, duplicated := normalizeContents(raw, delimiter)
	if total == 0 {
		return nil, ErrNoValidCards
	}

	existing, err := s.cardRepo.ListExistingContents(productID, unique)
	if err != nil {
		return nil, err
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, content := range existing {
		existingSet[content] = struct{}{}
	}

	cards := make([]models.Card, 0, len(unique))
	existingCount := 0
	for _, content := range unique {
		if _, ok := existingSet[content]; ok {
			existingCount++
			continue
		}
		cards = append(cards, models.Card{
			ProductID: productID,
			Content:   content,
			Status:    constants.CardStatusAvailable,
		})
	}

	result := &ImportResult{
		Total:            total,
		DuplicateInInput: duplicated,
		ExistingInDB:     existingCount,
		Imported:         len(cards),
	}
	if len(cards) == 0 {
		return result, ErrAllCardsExist
	}

	if err := s.cardRepo.CreateBatch(cards); err != nil {
		return nil, err
	}
	invalidateStoreCache("card_import")
	return result, nil
}

// List 卡密列表
func (s *CardService) List(filter repository.CardListFilter, page, pageSize int) ([]models.Card, int64, error) {
	return s.cardRepo.List(filter, page, pageSize)
}

// DeleteResult 批量删除统计
type DeleteResult struct {
	DeletedCount int64 `json:"deleted_count"`
}

// Delete 批量删除卡密
// 只删除仍可售的行，锁定/已售的行静默跳过。
func (s *CardService) Delete(ids []uint) (*DeleteResult, error) {
	deleted, err := s.cardRepo.DeleteAvailableByIDs(dedupeIDs(ids))
	if err != nil {
		return nil, err
	}
	if deleted > 0 {
		invalidateStoreCache("card_delete")
	}
	return &DeleteResult{DeletedCount: deleted}, nil
}

// ResetResult 批量重置统计
type ResetResult struct {
	ResetCount int64 `json:"reset_count"`
}

// ResetLocked 批量重置锁定卡密为可售
// 只处理锁定状态的行，其他状态静默跳过。
func (s *CardService) ResetLocked(ids []uint) (*ResetResult, error) {
	reset, err := s.cardRepo.ResetLockedByIDs(dedupeIDs(ids))
	if err != nil {
		return nil, err
	}
	if reset > 0 {
		invalidateStoreCache("card_reset")
	}
	return &ResetResult{ResetCount: reset}, nil
}

// CleanResult 去重统计
type CleanResult struct {
	RemovedCount int64 `json:"removed_count"`
}

// CleanDuplicates 清理商品可售卡密中的重复内容
// 每组重复保留导入最早的一条。
func (s *CardService) CleanDuplicates(productID uint) (*CleanResult, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	ids, err := s.cardRepo.FindDuplicateAvailableIDs(productID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &CleanResult{}, nil
	}

	removed, err := s.cardRepo.DeleteByIDs(ids)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		invalidateStoreCache("card_clean_duplicates")
	}
	return &CleanResult{RemovedCount: removed}, nil
}

// Export 导出商品卡密
func (s *CardService) Export(productID uint, status string) ([]models.Card, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return s.cardRepo.ExportByProduct(productID, status)
}

// CardStats 商品卡密统计
type CardStats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Locked    int64 `json:"locked"`
	Sold      int64 `json:"sold"`
}

// Stats 商品卡密按状态统计
func (s *CardService) Stats(productID uint) (*CardStats, error) {
	counts, err := s.cardRepo.CountByStatus(productID)
	if err != nil {
		return nil, err
	}
	stats := &CardStats{
		Available: counts[constants.CardStatusAvailable],
		Locked:    counts[constants.CardStatusLocked],
		Sold:      counts[constants.CardStatusSold],
	}
	stats.Total = stats.Available + stats.Locked + stats.Sold
	return stats, nil
}

// dedupeIDs 去除重复与零值 ID，保留顺序。
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
