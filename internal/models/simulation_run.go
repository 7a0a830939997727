package models

import "time"

// SimulationRun 模拟运行记录表（创建后不可变）
type SimulationRun struct {
	ID      uint   `gorm:"primarykey" json:"id"`               // 主键
	RunID   string `gorm:"uniqueIndex;not null" json:"run_id"` // 对外运行编号
	AdminID uint   `gorm:"not null;index" json:"admin_id"`     // 发起管理员

	// 场景输入
	AvailableDrivers int    `gorm:"not null" json:"available_drivers"`
	RouteStartTime   string `gorm:"type:varchar(5);not null" json:"route_start_time"`
	MaxHoursPerDay   int    `gorm:"not null" json:"max_hours_per_day"`

	// 运行输出
	TotalProfit       Money   `gorm:"type:decimal(14,2);not null" json:"total_profit"`
	EfficiencyScore   float64 `gorm:"not null" json:"efficiency_score"`
	OnTimeDeliveries  int     `gorm:"not null" json:"on_time_deliveries"`
	LateDeliveries    int     `gorm:"not null" json:"late_deliveries"`
	SkippedOrders     int     `gorm:"not null;default:0" json:"skipped_orders"`
	FuelCostBreakdown JSON      `gorm:"type:json" json:"fuel_cost_breakdown"`
	DriverAssignments JSONArray `gorm:"type:json" json:"driver_assignments"`
	Summary           JSON      `gorm:"type:json" json:"summary"`

	CreatedAt time.Time `gorm:"index" json:"created_at"` // 创建时间
}

// TableName 指定表名
func (SimulationRun) TableName() string {
	return "simulation_runs"
}
