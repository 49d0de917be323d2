package provider

import (
	"fmt"

	"github.com/ldc-store/internal/authz"
	"github.com/ldc-store/internal/cache"
	"github.com/ldc-store/internal/config"
	"github.com/ldc-store/internal/logger"
	"github.com/ldc-store/internal/models"
	"github.com/ldc-store/internal/repository"
	"github.com/ldc-store/internal/service"
)

// Container 应用依赖容器
// 持有仓储、领域服务与授权服务，按初始化顺序组装。
type Container struct {
	Config *config.Config

	AdminRepo    repository.AdminRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	CardRepo     repository.CardRepository
	OrderRepo    repository.OrderRepository
	SettingRepo  repository.SettingRepository

	AuthzService *authz.Service

	AuthService       *service.AuthService
	CategoryService   *service.CategoryService
	ProductService    *service.ProductService
	CardService       *service.CardService
	OrderAdminService *service.OrderAdminService
	SettingService    *service.SettingService
}

// NewContainer 组装依赖容器
// Redis 不可用时降级为无缓存运行；授权服务初始化失败直接返回错误。
func NewContainer(cfg *config.Config) (*Container, error) {
	if models.DB == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("redis_init_failed", "error", err)
	}

	c := &Container{Config: cfg}
	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CardRepo = repository.NewCardRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		return fmt.Errorf("init authz service failed: %w", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		return fmt.Errorf("bootstrap builtin roles failed: %w", err)
	}
	c.AuthzService = authzService

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.CardRepo)
	c.CardService = service.NewCardService(c.CardRepo, c.ProductRepo)
	c.OrderAdminService = service.NewOrderAdminService(c.OrderRepo, c.CardRepo)
	c.SettingService = service.NewSettingService(c.SettingRepo, c.Config)
	return nil
}
