package router

import (
	"fmt"
	"strings"

	"github.com/greencart-logistics/internal/cache"
	"github.com/greencart-logistics/internal/config"
	adminhandlers "github.com/greencart-logistics/internal/http/handlers/admin"
	publichandlers "github.com/greencart-logistics/internal/http/handlers/public"
	"github.com/greencart-logistics/internal/logger"
	"github.com/greencart-logistics/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "gc"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/info", publicHandler.GetAPIInfo)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 仪表盘
				authorized.GET("/dashboard/stats", adminHandler.GetDashboardStats)
				authorized.GET("/dashboard/charts", adminHandler.GetDashboardCharts)

				// 司机管理
				authorized.GET("/drivers", adminHandler.GetDrivers)
				authorized.GET("/drivers/:id", adminHandler.GetDriver)
				authorized.POST("/drivers", adminHandler.CreateDriver)
				authorized.PUT("/drivers/:id", adminHandler.UpdateDriver)
				authorized.DELETE("/drivers/:id", adminHandler.DeleteDriver)

				// 路线管理
				authorized.GET("/routes", adminHandler.GetRoutes)
				authorized.GET("/routes/:id", adminHandler.GetRoute)
				authorized.POST("/routes", adminHandler.CreateRoute)
				authorized.PUT("/routes/:id", adminHandler.UpdateRoute)
				authorized.DELETE("/routes/:id", adminHandler.DeleteRoute)

				// 订单管理
				authorized.GET("/orders", adminHandler.GetOrders)
				authorized.GET("/orders/:id", adminHandler.GetOrder)
				authorized.POST("/orders", adminHandler.CreateOrder)
				authorized.PUT("/orders/:id", adminHandler.UpdateOrder)
				authorized.DELETE("/orders/:id", adminHandler.DeleteOrder)

				// 模拟运行
				authorized.POST("/simulation/run", adminHandler.RunSimulation)
				authorized.GET("/simulation/history", adminHandler.GetSimulationHistory)
				authorized.GET("/simulation/runs/:run_id", adminHandler.GetSimulationRun)

				// 数据导入导出
				authorized.POST("/data/import", adminHandler.ImportData)
				authorized.POST("/data/export", adminHandler.ExportData)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
