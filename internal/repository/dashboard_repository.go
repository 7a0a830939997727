package repository

import (
	"github.com/greencart-logistics/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RunAggregates 模拟运行聚合指标
type RunAggregates struct {
	TotalRuns         int64
	AverageEfficiency float64
	TotalProfit       decimal.Decimal
	OnTimeDeliveries  int64
	LateDeliveries    int64
	SkippedOrders     int64
}

// DailyTrendRow 按天聚合的趋势数据
type DailyTrendRow struct {
	Day               string
	Runs              int64
	TotalProfit       decimal.Decimal
	AverageEfficiency float64
}

// DashboardRepository 仪表盘聚合查询接口
type DashboardRepository interface {
	RunAggregates(adminID uint) (*RunAggregates, error)
	DailyTrend(adminID uint, days int) ([]DailyTrendRow, error)
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// RunAggregates 统计某管理员全部运行的汇总指标
func (r *GormDashboardRepository) RunAggregates(adminID uint) (*RunAggregates, error) {
	var row struct {
		TotalRuns         int64
		AverageEfficiency *float64
		TotalProfit       *decimal.Decimal
		OnTimeDeliveries  *int64
		LateDeliveries    *int64
		SkippedOrders     *int64
	}
	query := r.db.Model(&models.SimulationRun{}).
		Select("COUNT(*) AS total_runs, " +
			"AVG(efficiency_score) AS average_efficiency, " +
			"SUM(total_profit) AS total_profit, " +
			"SUM(on_time_deliveries) AS on_time_deliveries, " +
			"SUM(late_deliveries) AS late_deliveries, " +
			"SUM(skipped_orders) AS skipped_orders")
	if adminID > 0 {
		query = query.Where("admin_id = ?", adminID)
	}
	if err := query.Scan(&row).Error; err != nil {
		return nil, err
	}

	agg := &RunAggregates{TotalRuns: row.TotalRuns, TotalProfit: decimal.Zero}
	if row.AverageEfficiency != nil {
		agg.AverageEfficiency = *row.AverageEfficiency
	}
	if row.TotalProfit != nil {
		agg.TotalProfit = *row.TotalProfit
	}
	if row.OnTimeDeliveries != nil {
		agg.OnTimeDeliveries = *row.OnTimeDeliveries
	}
	if row.LateDeliveries != nil {
		agg.LateDeliveries = *row.LateDeliveries
	}
	if row.SkippedOrders != nil {
		agg.SkippedOrders = *row.SkippedOrders
	}
	return agg, nil
}

// DailyTrend 按天聚合最近若干天的运行趋势，日期升序
// DATE() 在 SQLite 与 PostgreSQL 下行为一致
func (r *GormDashboardRepository) DailyTrend(adminID uint, days int) ([]DailyTrendRow, error) {
	if days <= 0 {
		days = 7
	}
	type scanRow struct {
		Day               string
		Runs              int64
		TotalProfit       *decimal.Decimal
		AverageEfficiency *float64
	}
	var scanned []scanRow
	query := r.db.Model(&models.SimulationRun{}).
		Select("DATE(created_at) AS day, " +
			"COUNT(*) AS runs, " +
			"SUM(total_profit) AS total_profit, " +
			"AVG(efficiency_score) AS average_efficiency").
		Group("DATE(created_at)").
		Order("day DESC").
		Limit(days)
	if adminID > 0 {
		query = query.Where("admin_id = ?", adminID)
	}
	if err := query.Scan(&scanned).Error; err != nil {
		return nil, err
	}

	rows := make([]DailyTrendRow, 0, len(scanned))
	for i := len(scanned) - 1; i >= 0; i-- {
		row := DailyTrendRow{Day: scanned[i].Day, Runs: scanned[i].Runs, TotalProfit: decimal.Zero}
		if scanned[i].TotalProfit != nil {
			row.TotalProfit = *scanned[i].TotalProfit
		}
		if scanned[i].AverageEfficiency != nil {
			row.AverageEfficiency = *scanned[i].AverageEfficiency
		}
		rows = append(rows, row)
	}
	return rows, nil
}
