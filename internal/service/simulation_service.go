package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/greencart-logistics/internal/config"
	"github.com/greencart-logistics/internal/constants"
	"github.com/greencart-logistics/internal/logger"
	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/repository"
	"github.com/greencart-logistics/internal/simulation"

	"github.com/google/uuid"
)

// SimulationService 模拟运行业务服务
type SimulationService struct {
	cfg       *config.Config
	fleetRepo repository.FleetRepository
	runRepo   repository.SimulationRunRepository
}

// NewSimulationService 创建模拟服务
func NewSimulationService(cfg *config.Config, fleetRepo repository.FleetRepository, runRepo repository.SimulationRunRepository) *SimulationService {
	return &SimulationService{
		cfg:       cfg,
		fleetRepo: fleetRepo,
		runRepo:   runRepo,
	}
}

// RunInput 模拟运行输入
type RunInput struct {
	AvailableDrivers int
	RouteStartTime   string
	MaxHoursPerDay   int
}

// Run 执行一次模拟并持久化运行记录
func (s *SimulationService) Run(adminID uint, input RunInput) (*models.SimulationRun, error) {
	if input.AvailableDrivers < constants.SimulationMinDrivers {
		return nil, ErrInvalidDriverCount
	}
	if !isValidStartTime(input.RouteStartTime) {
		return nil, ErrInvalidStartTime
	}
	if input.MaxHoursPerDay < constants.SimulationMinMaxHours || input.MaxHoursPerDay > constants.SimulationMaxMaxHours {
		return nil, ErrInvalidMaxHours
	}

	drivers, routes, orders, err := s.fleetRepo.LoadSnapshotData()
	if err != nil {
		logger.Errorw("simulation_snapshot_load_failed", "admin_id", adminID, "error", err)
		return nil, fmt.Errorf("%w: %v", simulation.ErrDataUnavailable, err)
	}
	if input.AvailableDrivers > len(drivers) {
		return nil, ErrInvalidDriverCount
	}

	snap := simulation.BuildSnapshot(
		toDriverRecords(drivers),
		toRouteRecords(routes),
		toOrderRecords(orders),
	)

	result, err := simulation.Run(snap, simulation.Inputs{
		AvailableDrivers: input.AvailableDrivers,
		RouteStartTime:   strings.TrimSpace(input.RouteStartTime),
		MaxHoursPerDay:   input.MaxHoursPerDay,
	})
	if err != nil {
		return nil, err
	}

	run := buildRunRecord(adminID, result)
	if err := s.runRepo.Create(run); err != nil {
		return nil, err
	}

	logger.Infow("simulation_run_completed",
		"run_id", run.RunID,
		"admin_id", adminID,
		"drivers_used", result.Summary.DriversUsed,
		"orders_processed", result.Summary.TotalOrdersProcessed,
		"skipped_orders", result.SkippedOrders,
		"efficiency_score", result.EfficiencyScore,
	)
	return run, nil
}

// History 模拟历史分页列表，按发起管理员归属过滤
func (s *SimulationService) History(adminID uint, page, pageSize int) ([]models.SimulationRun, int64, error) {
	filter := repository.SimulationRunListFilter{
		Page:     page,
		PageSize: pageSize,
		AdminID:  adminID,
	}
	return s.runRepo.List(filter)
}

// GetByRunID 获取单次运行详情，归属他人时视为不存在
func (s *SimulationService) GetByRunID(adminID uint, runID string) (*models.SimulationRun, error) {
	trimmed := strings.TrimSpace(runID)
	if trimmed == "" {
		return nil, ErrSimulationNotFound
	}
	run, err := s.runRepo.GetByRunID(trimmed, adminID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrSimulationNotFound
	}
	return run, nil
}

func buildRunRecord(adminID uint, result *simulation.Result) *models.SimulationRun {
	breakdown := make(models.JSON, len(result.FuelCostBreakdown))
	for level, cost := range result.FuelCostBreakdown {
		breakdown[level] = cost.InexactFloat64()
	}

	assignments := make(models.JSONArray, 0, len(result.DriverAssignments))
	for _, item := range result.DriverAssignments {
		assignments = append(assignments, map[string]interface{}{
			"driver_id":       item.DriverID,
			"driver_name":     item.DriverName,
			"assigned_orders": item.AssignedOrders,
			"estimated_hours": item.EstimatedHours,
			"is_overworked":   item.IsOverworked,
		})
	}

	summary := models.JSON{
		"total_orders_processed":    result.Summary.TotalOrdersProcessed,
		"drivers_used":              result.Summary.DriversUsed,
		"total_penalties":           result.Summary.TotalPenalties.InexactFloat64(),
		"total_bonuses":             result.Summary.TotalBonuses.InexactFloat64(),
		"total_fuel_cost":           result.Summary.TotalFuelCost.InexactFloat64(),
		"average_orders_per_driver": result.Summary.AverageOrdersPerDriver,
	}

	return &models.SimulationRun{
		RunID:             newRunID(),
		AdminID:           adminID,
		AvailableDrivers:  result.Inputs.AvailableDrivers,
		RouteStartTime:    result.Inputs.RouteStartTime,
		MaxHoursPerDay:    result.Inputs.MaxHoursPerDay,
		TotalProfit:       models.NewMoneyFromDecimal(result.TotalProfit),
		EfficiencyScore:   result.EfficiencyScore,
		OnTimeDeliveries:  result.OnTimeDeliveries,
		LateDeliveries:    result.LateDeliveries,
		SkippedOrders:     result.SkippedOrders,
		FuelCostBreakdown: breakdown,
		DriverAssignments: assignments,
		Summary:           summary,
	}
}

func newRunID() string {
	compact := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "SIM-" + compact[:12]
}

func toDriverRecords(drivers []models.Driver) []simulation.DriverRecord {
	records := make([]simulation.DriverRecord, 0, len(drivers))
	for _, d := range drivers {
		records = append(records, simulation.DriverRecord{
			ID:            d.ID,
			Name:          d.Name,
			ShiftHours:    d.ShiftHours,
			PastWeekHours: d.PastWeekHours,
		})
	}
	return records
}

func toRouteRecords(routes []models.Route) []simulation.RouteRecord {
	records := make([]simulation.RouteRecord, 0, len(routes))
	for _, r := range routes {
		records = append(records, simulation.RouteRecord{
			ID:           r.ID,
			RouteNo:      r.RouteNo,
			DistanceKM:   r.DistanceKM,
			TrafficLevel: r.TrafficLevel,
			BaseTimeMin:  r.BaseTimeMin,
		})
	}
	return records
}

func toOrderRecords(orders []models.Order) []simulation.OrderRecord {
	records := make([]simulation.OrderRecord, 0, len(orders))
	for _, o := range orders {
		records = append(records, simulation.OrderRecord{
			ID:           o.ID,
			OrderNo:      o.OrderNo,
			Value:        o.Value.Decimal,
			RouteID:      o.RouteID,
			DeliveryTime: o.DeliveryTime,
		})
	}
	return records
}

// isValidStartTime 校验出发时间为 24 小时制 HH:MM
func isValidStartTime(value string) bool {
	trimmed := strings.TrimSpace(value)
	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 {
		return false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return false
	}
	return true
}
