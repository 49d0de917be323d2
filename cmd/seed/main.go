package main

import (
	"fmt"
	"strings"

	"github.com/ldc-store/internal/config"
	"github.com/ldc-store/internal/constants"
	"github.com/ldc-store/internal/logger"
	"github.com/ldc-store/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "game-cards", Name: "游戏点卡", Description: "主流游戏平台充值点卡", SortOrder: 1, IsActive: true},
		{Slug: "software-keys", Name: "软件激活码", Description: "正版软件授权激活码", SortOrder: 2, IsActive: true},
		{Slug: "memberships", Name: "会员充值", Description: "视频与音乐平台会员", SortOrder: 3, IsActive: true},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"game-cards", "software-keys", "memberships"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品
	products := []struct {
		product      models.Product
		categorySlug string
		cardCount    int
	}{
		{
			product: models.Product{
				Slug:        "steam-50",
				Name:        "Steam 充值卡 50 元",
				Description: "官方渠道，秒发",
				Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(48.50)),
				IsActive:    true,
				SortOrder:   1,
			},
			categorySlug: "game-cards",
			cardCount:    20,
		},
		{
			product: models.Product{
				Slug:        "office-2024",
				Name:        "Office 2024 专业版激活码",
				Description: "一机一码，永久授权",
				Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(199.00)),
				IsActive:    true,
				SortOrder:   2,
			},
			categorySlug: "software-keys",
			cardCount:    10,
		},
		{
			product: models.Product{
				Slug:        "video-vip-month",
				Name:        "视频平台月度会员",
				Description: "填写账号自动充值",
				Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(15.00)),
				IsActive:    true,
				SortOrder:   3,
			},
			categorySlug: "memberships",
			cardCount:    15,
		},
	}

	for _, item := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", item.product.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", item.product.Slug)
			continue
		}

		product := item.product
		if id, ok := categoryIDs[item.categorySlug]; ok {
			categoryID := id
			product.CategoryID = &categoryID
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			continue
		}
		stdLog.Printf("Created product: %s", product.Slug)

		// 生成演示卡密
		cards := make([]models.Card, 0, item.cardCount)
		for i := 1; i <= item.cardCount; i++ {
			content := fmt.Sprintf("%s-%04d-%s", strings.ToUpper(strings.ReplaceAll(product.Slug, "-", "")), i, "DEMO")
			cards = append(cards, models.Card{
				ProductID: product.ID,
				Content:   content,
				Status:    constants.CardStatusAvailable,
			})
		}
		if err := models.DB.CreateInBatches(&cards, 200).Error; err != nil {
			stdLog.Printf("Failed to create cards for %s: %v", product.Slug, err)
		} else {
			stdLog.Printf("Created %d cards for product: %s", len(cards), product.Slug)
		}
	}

	stdLog.Println("Seed completed")
}
