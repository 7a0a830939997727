package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/greencart-logistics/internal/config"
	"github.com/greencart-logistics/internal/constants"
	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/repository"
	"github.com/greencart-logistics/internal/simulation"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupSimulationServiceTest(t *testing.T) (*SimulationService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:simulation_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Driver{},
		&models.Route{},
		&models.Order{},
		&models.SimulationRun{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	cfg := &config.Config{}
	cfg.Simulation.HistoryRetentionDays = 90
	cfg.Simulation.RecentRunsLimit = 5
	fleetRepo := repository.NewFleetRepository(db)
	runRepo := repository.NewSimulationRunRepository(db)
	return NewSimulationService(cfg, fleetRepo, runRepo), db
}

func seedFleet(t *testing.T, db *gorm.DB, driverCount, orderCount int) {
	t.Helper()
	for i := 1; i <= driverCount; i++ {
		driver := models.Driver{
			Name:          fmt.Sprintf("Driver %d", i),
			ShiftHours:    8,
			PastWeekHours: models.FloatArray{6, 7, 6},
		}
		if err := db.Create(&driver).Error; err != nil {
			t.Fatalf("create driver failed: %v", err)
		}
	}
	route := models.Route{RouteNo: 1, DistanceKM: 10, TrafficLevel: constants.TrafficLevelLow, BaseTimeMin: 30}
	if err := db.Create(&route).Error; err != nil {
		t.Fatalf("create route failed: %v", err)
	}
	for i := 1; i <= orderCount; i++ {
		order := models.Order{
			OrderNo:      i,
			Value:        models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
			RouteID:      route.ID,
			DeliveryTime: "00:25",
		}
		if err := db.Create(&order).Error; err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}
}

func TestSimulationRunPersistsRecord(t *testing.T) {
	svc, db := setupSimulationServiceTest(t)
	seedFleet(t, db, 2, 4)

	run, err := svc.Run(1, RunInput{AvailableDrivers: 2, RouteStartTime: "09:00", MaxHoursPerDay: 8})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.HasPrefix(run.RunID, "SIM-") {
		t.Fatalf("run id want SIM- prefix got %s", run.RunID)
	}
	if run.AdminID != 1 {
		t.Fatalf("admin id want 1 got %d", run.AdminID)
	}
	// 4 个准时订单，每单利润 500 - 50 油费 = 450
	if !run.TotalProfit.Equal(decimal.NewFromInt(1800)) {
		t.Fatalf("total profit want 1800 got %s", run.TotalProfit.String())
	}
	if run.EfficiencyScore != 100 {
		t.Fatalf("efficiency want 100 got %.2f", run.EfficiencyScore)
	}
	if run.OnTimeDeliveries != 4 || run.LateDeliveries != 0 {
		t.Fatalf("deliveries want 4/0 got %d/%d", run.OnTimeDeliveries, run.LateDeliveries)
	}
	if got := run.Summary["drivers_used"]; got != 2 {
		t.Fatalf("drivers used want 2 got %v", got)
	}
	if len(run.DriverAssignments) != 2 {
		t.Fatalf("assignments len want 2 got %d", len(run.DriverAssignments))
	}

	var count int64
	if err := db.Model(&models.SimulationRun{}).Count(&count).Error; err != nil {
		t.Fatalf("count runs failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("persisted runs want 1 got %d", count)
	}
}

func TestSimulationRunValidation(t *testing.T) {
	svc, db := setupSimulationServiceTest(t)
	seedFleet(t, db, 2, 4)

	cases := []struct {
		name  string
		input RunInput
		want  error
	}{
		{"zero drivers", RunInput{AvailableDrivers: 0, RouteStartTime: "09:00", MaxHoursPerDay: 8}, ErrInvalidDriverCount},
		{"drivers above fleet", RunInput{AvailableDrivers: 3, RouteStartTime: "09:00", MaxHoursPerDay: 8}, ErrInvalidDriverCount},
		{"bad start time", RunInput{AvailableDrivers: 2, RouteStartTime: "25:00", MaxHoursPerDay: 8}, ErrInvalidStartTime},
		{"not a clock", RunInput{AvailableDrivers: 2, RouteStartTime: "morning", MaxHoursPerDay: 8}, ErrInvalidStartTime},
		{"zero max hours", RunInput{AvailableDrivers: 2, RouteStartTime: "09:00", MaxHoursPerDay: 0}, ErrInvalidMaxHours},
		{"max hours above cap", RunInput{AvailableDrivers: 2, RouteStartTime: "09:00", MaxHoursPerDay: 25}, ErrInvalidMaxHours},
	}
	for _, tc := range cases {
		if _, err := svc.Run(1, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}
}

func TestSimulationRunWithoutOrders(t *testing.T) {
	svc, db := setupSimulationServiceTest(t)
	seedFleet(t, db, 2, 0)

	// 空订单集合是合法输入，直接透传引擎哨兵
	_, err := svc.Run(1, RunInput{AvailableDrivers: 2, RouteStartTime: "09:00", MaxHoursPerDay: 8})
	if !errors.Is(err, simulation.ErrNoOrdersToProcess) {
		t.Fatalf("want ErrNoOrdersToProcess got %v", err)
	}
	if errors.Is(err, simulation.ErrDataUnavailable) {
		t.Fatalf("empty orders must not surface as data unavailable: %v", err)
	}
}

func TestSimulationRunSnapshotLoadFailure(t *testing.T) {
	dsn := fmt.Sprintf("file:simulation_snapshot_failure_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	// 仅迁移运行记录表，车队表缺失时快照加载必然失败
	if err := db.AutoMigrate(&models.SimulationRun{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	svc := NewSimulationService(cfg, repository.NewFleetRepository(db), repository.NewSimulationRunRepository(db))

	_, err = svc.Run(1, RunInput{AvailableDrivers: 2, RouteStartTime: "09:00", MaxHoursPerDay: 8})
	if !errors.Is(err, simulation.ErrDataUnavailable) {
		t.Fatalf("want ErrDataUnavailable got %v", err)
	}
	if errors.Is(err, simulation.ErrNoDriversAvailable) || errors.Is(err, simulation.ErrNoOrdersToProcess) {
		t.Fatalf("storage failure must not surface as an engine input error: %v", err)
	}
}

func TestSimulationHistoryScopedByAdmin(t *testing.T) {
	svc, db := setupSimulationServiceTest(t)
	seedFleet(t, db, 2, 4)

	first, err := svc.Run(1, RunInput{AvailableDrivers: 2, RouteStartTime: "09:00", MaxHoursPerDay: 8})
	if err != nil {
		t.Fatalf("run for admin 1 failed: %v", err)
	}
	if _, err := svc.Run(2, RunInput{AvailableDrivers: 1, RouteStartTime: "10:00", MaxHoursPerDay: 8}); err != nil {
		t.Fatalf("run for admin 2 failed: %v", err)
	}

	runs, total, err := svc.History(1, 1, 10)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if total != 1 || len(runs) != 1 {
		t.Fatalf("history want 1 run got total=%d len=%d", total, len(runs))
	}
	if runs[0].RunID != first.RunID {
		t.Fatalf("history run id want %s got %s", first.RunID, runs[0].RunID)
	}

	if _, err := svc.GetByRunID(2, first.RunID); !errors.Is(err, ErrSimulationNotFound) {
		t.Fatalf("cross-admin lookup want ErrSimulationNotFound got %v", err)
	}
	got, err := svc.GetByRunID(1, first.RunID)
	if err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if got.RunID != first.RunID {
		t.Fatalf("run id want %s got %s", first.RunID, got.RunID)
	}
}
