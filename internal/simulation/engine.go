package simulation

import (
	"math"

	"github.com/greencart-logistics/internal/constants"

	"github.com/shopspring/decimal"
)

// Inputs 模拟场景输入
type Inputs struct {
	AvailableDrivers int    `json:"available_drivers"`
	RouteStartTime   string `json:"route_start_time"`
	MaxHoursPerDay   int    `json:"max_hours_per_day"`
}

// DriverSummary 单个司机的分配摘要
type DriverSummary struct {
	DriverID       uint    `json:"driver_id"`
	DriverName     string  `json:"driver_name"`
	AssignedOrders int     `json:"assigned_orders"`
	EstimatedHours float64 `json:"estimated_hours"`
	IsOverworked   bool    `json:"is_overworked"`
}

// Summary 运行汇总统计
type Summary struct {
	TotalOrdersProcessed   int             `json:"total_orders_processed"`
	DriversUsed            int             `json:"drivers_used"`
	TotalPenalties         decimal.Decimal `json:"total_penalties"`
	TotalBonuses           decimal.Decimal `json:"total_bonuses"`
	TotalFuelCost          decimal.Decimal `json:"total_fuel_cost"`
	AverageOrdersPerDriver float64         `json:"average_orders_per_driver"`
}

// Result 模拟运行结果（输入 + 输出 + 汇总）
type Result struct {
	Inputs            Inputs
	TotalProfit       decimal.Decimal
	EfficiencyScore   float64
	OnTimeDeliveries  int
	LateDeliveries    int
	SkippedOrders     int
	FuelCostBreakdown map[string]decimal.Decimal
	DriverAssignments []DriverSummary
	Summary           Summary
}

// Run 对快照执行一次完整模拟
// 中间计算不舍入，只有聚合值在最后一步保留 2 位小数
func Run(snap *Snapshot, in Inputs) (*Result, error) {
	assignments, err := Partition(snap, in.AvailableDrivers, in.MaxHoursPerDay)
	if err != nil {
		return nil, err
	}

	totalProfit := decimal.Zero
	totalPenalties := decimal.Zero
	totalBonuses := decimal.Zero
	totalFuelCost := decimal.Zero

	breakdown := map[string]decimal.Decimal{
		constants.TrafficLevelLow:    decimal.Zero,
		constants.TrafficLevelMedium: decimal.Zero,
		constants.TrafficLevelHigh:   decimal.Zero,
	}

	result := &Result{
		Inputs:            in,
		SkippedOrders:     snap.SkippedOrders,
		DriverAssignments: make([]DriverSummary, 0, len(assignments)),
	}

	for _, assignment := range assignments {
		for _, order := range assignment.Orders {
			outcome := EvaluateOrder(order, assignment.Driver)

			totalProfit = totalProfit.Add(outcome.Profit)
			totalPenalties = totalPenalties.Add(outcome.Penalty)
			totalBonuses = totalBonuses.Add(outcome.Bonus)
			totalFuelCost = totalFuelCost.Add(outcome.FuelCost)
			breakdown[order.Route.TrafficLevel] = breakdown[order.Route.TrafficLevel].Add(outcome.FuelCost)

			if order.Late {
				result.LateDeliveries++
			} else {
				result.OnTimeDeliveries++
			}
		}

		result.DriverAssignments = append(result.DriverAssignments, DriverSummary{
			DriverID:       assignment.Driver.ID,
			DriverName:     assignment.Driver.Name,
			AssignedOrders: len(assignment.Orders),
			EstimatedHours: assignment.EstimatedHours,
			IsOverworked:   assignment.Driver.Overworked,
		})
	}

	totalDeliveries := result.OnTimeDeliveries + result.LateDeliveries
	if totalDeliveries > 0 {
		result.EfficiencyScore = round2(float64(result.OnTimeDeliveries) / float64(totalDeliveries) * 100)
	}

	result.TotalProfit = totalProfit.Round(2)
	for level, cost := range breakdown {
		breakdown[level] = cost.Round(2)
	}
	result.FuelCostBreakdown = breakdown

	result.Summary = Summary{
		TotalOrdersProcessed:   len(snap.Orders),
		DriversUsed:            len(assignments),
		TotalPenalties:         totalPenalties.Round(2),
		TotalBonuses:           totalBonuses.Round(2),
		TotalFuelCost:          totalFuelCost.Round(2),
		AverageOrdersPerDriver: round2(float64(len(snap.Orders)) / float64(len(assignments))),
	}

	return result, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
