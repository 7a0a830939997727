package service

import (
	"context"
	"fmt"
	"time"

	"github.com/greencart-logistics/internal/cache"
	"github.com/greencart-logistics/internal/config"
	"github.com/greencart-logistics/internal/constants"
	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/repository"
)

// DashboardService 仪表盘聚合服务
// 统计结果写入 Redis 缓存，TTL 由配置决定
type DashboardService struct {
	cfg           *config.Config
	driverRepo    repository.DriverRepository
	routeRepo     repository.RouteRepository
	orderRepo     repository.OrderRepository
	runRepo       repository.SimulationRunRepository
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(
	cfg *config.Config,
	driverRepo repository.DriverRepository,
	routeRepo repository.RouteRepository,
	orderRepo repository.OrderRepository,
	runRepo repository.SimulationRunRepository,
	dashboardRepo repository.DashboardRepository,
) *DashboardService {
	return &DashboardService{
		cfg:           cfg,
		driverRepo:    driverRepo,
		routeRepo:     routeRepo,
		orderRepo:     orderRepo,
		runRepo:       runRepo,
		dashboardRepo: dashboardRepo,
	}
}

// DashboardStats 仪表盘核心指标
type DashboardStats struct {
	TotalDrivers      int64                  `json:"total_drivers"`
	TotalRoutes       int64                  `json:"total_routes"`
	TotalOrders       int64                  `json:"total_orders"`
	HighTrafficRoutes int64                  `json:"high_traffic_routes"`
	OverworkedDrivers int                    `json:"overworked_drivers"`
	TotalRuns         int64                  `json:"total_runs"`
	AverageEfficiency float64                `json:"average_efficiency"`
	TotalProfit       string                 `json:"total_profit"`
	RecentRuns        []models.SimulationRun `json:"recent_runs"`
}

// DashboardCharts 仪表盘图表数据
type DashboardCharts struct {
	OnTimeDeliveries int64            `json:"on_time_deliveries"`
	LateDeliveries   int64            `json:"late_deliveries"`
	FuelCostByLevel  models.JSON      `json:"fuel_cost_by_level"`
	Trend            []DashboardTrend `json:"trend"`
}

// DashboardTrend 按天的趋势点
type DashboardTrend struct {
	Day               string  `json:"day"`
	Runs              int64   `json:"runs"`
	TotalProfit       string  `json:"total_profit"`
	AverageEfficiency float64 `json:"average_efficiency"`
}

func dashboardStatsCacheKey(adminID uint) string {
	return fmt.Sprintf("dashboard:stats:%d", adminID)
}

func dashboardChartsCacheKey(adminID uint) string {
	return fmt.Sprintf("dashboard:charts:%d", adminID)
}

func (s *DashboardService) cacheTTL() time.Duration {
	seconds := s.cfg.Simulation.CacheTTLSeconds
	if seconds <= 0 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}

// Stats 仪表盘核心指标，按管理员维度缓存
func (s *DashboardService) Stats(ctx context.Context, adminID uint) (*DashboardStats, error) {
	var cached DashboardStats
	if hit, err := cache.GetJSON(ctx, dashboardStatsCacheKey(adminID), &cached); err == nil && hit {
		return &cached, nil
	}

	totalDrivers, err := s.driverRepo.Count()
	if err != nil {
		return nil, err
	}
	totalRoutes, err := s.routeRepo.Count()
	if err != nil {
		return nil, err
	}
	totalOrders, err := s.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	highTraffic, err := s.routeRepo.CountByTrafficLevel(constants.TrafficLevelHigh)
	if err != nil {
		return nil, err
	}

	drivers, err := s.driverRepo.ListAll()
	if err != nil {
		return nil, err
	}
	overworked := 0
	for i := range drivers {
		if drivers[i].IsOverworked() {
			overworked++
		}
	}

	agg, err := s.dashboardRepo.RunAggregates(adminID)
	if err != nil {
		return nil, err
	}

	recent, err := s.runRepo.ListRecent(adminID, s.cfg.Simulation.RecentRunsLimit)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalDrivers:      totalDrivers,
		TotalRoutes:       totalRoutes,
		TotalOrders:       totalOrders,
		HighTrafficRoutes: highTraffic,
		OverworkedDrivers: overworked,
		TotalRuns:         agg.TotalRuns,
		AverageEfficiency: agg.AverageEfficiency,
		TotalProfit:       agg.TotalProfit.Round(2).StringFixed(2),
		RecentRuns:        recent,
	}

	_ = cache.SetJSON(ctx, dashboardStatsCacheKey(adminID), stats, s.cacheTTL())
	return stats, nil
}

// Charts 仪表盘图表数据，按管理员维度缓存
// 油耗分布取自最近一次运行，趋势为最近 7 天聚合
func (s *DashboardService) Charts(ctx context.Context, adminID uint) (*DashboardCharts, error) {
	var cached DashboardCharts
	if hit, err := cache.GetJSON(ctx, dashboardChartsCacheKey(adminID), &cached); err == nil && hit {
		return &cached, nil
	}

	agg, err := s.dashboardRepo.RunAggregates(adminID)
	if err != nil {
		return nil, err
	}

	fuelByLevel := models.JSON{
		constants.TrafficLevelLow:    0.0,
		constants.TrafficLevelMedium: 0.0,
		constants.TrafficLevelHigh:   0.0,
	}
	latest, err := s.runRepo.ListRecent(adminID, 1)
	if err != nil {
		return nil, err
	}
	if len(latest) > 0 && latest[0].FuelCostBreakdown != nil {
		for level, cost := range latest[0].FuelCostBreakdown {
			fuelByLevel[level] = cost
		}
	}

	rows, err := s.dashboardRepo.DailyTrend(adminID, 7)
	if err != nil {
		return nil, err
	}
	trend := make([]DashboardTrend, 0, len(rows))
	for _, row := range rows {
		trend = append(trend, DashboardTrend{
			Day:               row.Day,
			Runs:              row.Runs,
			TotalProfit:       row.TotalProfit.Round(2).StringFixed(2),
			AverageEfficiency: row.AverageEfficiency,
		})
	}

	charts := &DashboardCharts{
		OnTimeDeliveries: agg.OnTimeDeliveries,
		LateDeliveries:   agg.LateDeliveries,
		FuelCostByLevel:  fuelByLevel,
		Trend:            trend,
	}

	_ = cache.SetJSON(ctx, dashboardChartsCacheKey(adminID), charts, s.cacheTTL())
	return charts, nil
}

// InvalidateCache 在模拟运行后失效仪表盘缓存
func (s *DashboardService) InvalidateCache(ctx context.Context, adminID uint) {
	_ = cache.Del(ctx, dashboardStatsCacheKey(adminID))
	_ = cache.Del(ctx, dashboardChartsCacheKey(adminID))
}
