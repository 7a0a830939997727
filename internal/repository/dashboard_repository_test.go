package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/greencart-logistics/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupDashboardRepositoryTest(t *testing.T) (*GormDashboardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.SimulationRun{}); err != nil {
		t.Fatalf("migrate simulation run model failed: %v", err)
	}
	return NewDashboardRepository(db), db
}

func createTestRun(t *testing.T, db *gorm.DB, adminID uint, runID string, profit int64, efficiency float64, onTime, late int, createdAt time.Time) {
	t.Helper()
	run := &models.SimulationRun{
		RunID:             runID,
		AdminID:           adminID,
		AvailableDrivers:  3,
		RouteStartTime:    "09:00",
		MaxHoursPerDay:    8,
		TotalProfit:       models.NewMoneyFromDecimal(decimal.NewFromInt(profit)),
		EfficiencyScore:   efficiency,
		OnTimeDeliveries:  onTime,
		LateDeliveries:    late,
		FuelCostBreakdown: models.JSON{},
		DriverAssignments: models.JSONArray{},
		Summary:           models.JSON{},
		CreatedAt:         createdAt,
	}
	if err := db.Create(run).Error; err != nil {
		t.Fatalf("create simulation run failed: %v", err)
	}
}

func TestRunAggregatesScopedByAdmin(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)
	now := time.Now()

	createTestRun(t, db, 1, "run-a", 1000, 80, 8, 2, now)
	createTestRun(t, db, 1, "run-b", 500, 60, 6, 4, now)
	createTestRun(t, db, 2, "run-c", 9999, 10, 1, 9, now)

	agg, err := repo.RunAggregates(1)
	if err != nil {
		t.Fatalf("run aggregates failed: %v", err)
	}
	if agg.TotalRuns != 2 {
		t.Fatalf("total runs want 2 got %d", agg.TotalRuns)
	}
	if agg.AverageEfficiency != 70 {
		t.Fatalf("average efficiency want 70 got %.2f", agg.AverageEfficiency)
	}
	if !agg.TotalProfit.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("total profit want 1500 got %s", agg.TotalProfit.String())
	}
	if agg.OnTimeDeliveries != 14 {
		t.Fatalf("on-time deliveries want 14 got %d", agg.OnTimeDeliveries)
	}
	if agg.LateDeliveries != 6 {
		t.Fatalf("late deliveries want 6 got %d", agg.LateDeliveries)
	}
}

func TestRunAggregatesEmpty(t *testing.T) {
	repo, _ := setupDashboardRepositoryTest(t)

	agg, err := repo.RunAggregates(1)
	if err != nil {
		t.Fatalf("run aggregates failed: %v", err)
	}
	if agg.TotalRuns != 0 {
		t.Fatalf("total runs want 0 got %d", agg.TotalRuns)
	}
	if agg.AverageEfficiency != 0 {
		t.Fatalf("average efficiency want 0 got %.2f", agg.AverageEfficiency)
	}
	if !agg.TotalProfit.IsZero() {
		t.Fatalf("total profit want 0 got %s", agg.TotalProfit.String())
	}
}

func TestDailyTrendOrderedByDayAscending(t *testing.T) {
	repo, db := setupDashboardRepositoryTest(t)
	now := time.Now()

	createTestRun(t, db, 1, "run-today-a", 100, 50, 5, 5, now)
	createTestRun(t, db, 1, "run-today-b", 300, 70, 7, 3, now)
	createTestRun(t, db, 1, "run-yesterday", 200, 90, 9, 1, now.AddDate(0, 0, -1))

	rows, err := repo.DailyTrend(1, 7)
	if err != nil {
		t.Fatalf("daily trend failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows len want 2 got %d", len(rows))
	}
	if rows[0].Day >= rows[1].Day {
		t.Fatalf("days not ascending: %s then %s", rows[0].Day, rows[1].Day)
	}
	if rows[0].Runs != 1 {
		t.Fatalf("yesterday runs want 1 got %d", rows[0].Runs)
	}
	if !rows[1].TotalProfit.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("today profit want 400 got %s", rows[1].TotalProfit.String())
	}
	if rows[1].AverageEfficiency != 60 {
		t.Fatalf("today average efficiency want 60 got %.2f", rows[1].AverageEfficiency)
	}
}
