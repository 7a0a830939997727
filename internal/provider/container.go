package provider

import (
	"github.com/greencart-logistics/internal/authz"
	"github.com/greencart-logistics/internal/cache"
	"github.com/greencart-logistics/internal/config"
	"github.com/greencart-logistics/internal/logger"
	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/queue"
	"github.com/greencart-logistics/internal/repository"
	"github.com/greencart-logistics/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	DriverRepo        repository.DriverRepository
	RouteRepo         repository.RouteRepository
	OrderRepo         repository.OrderRepository
	SimulationRunRepo repository.SimulationRunRepository
	FleetRepo         repository.FleetRepository
	DashboardRepo     repository.DashboardRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	CaptchaService    *service.CaptchaService
	DriverService     *service.DriverService
	RouteService      *service.RouteService
	OrderService      *service.OrderService
	SimulationService *service.SimulationService
	DashboardService  *service.DashboardService
	DataIOService     *service.DataIOService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.DriverRepo = repository.NewDriverRepository(db)
	c.RouteRepo = repository.NewRouteRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SimulationRunRepo = repository.NewSimulationRunRepository(db)
	c.FleetRepo = repository.NewFleetRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo, c.AuthzService)
	c.DriverService = service.NewDriverService(c.DriverRepo)
	c.RouteService = service.NewRouteService(c.RouteRepo, c.OrderRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.RouteRepo)
	c.SimulationService = service.NewSimulationService(c.Config, c.FleetRepo, c.SimulationRunRepo)
	c.DashboardService = service.NewDashboardService(c.Config, c.DriverRepo, c.RouteRepo, c.OrderRepo, c.SimulationRunRepo, c.DashboardRepo)
	c.DataIOService = service.NewDataIOService(c.Config, models.DB, c.DriverRepo, c.RouteRepo, c.OrderRepo)
}
