package simulation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/greencart-logistics/internal/constants"

	"github.com/shopspring/decimal"
)

func TestRunEfficiencyScore(t *testing.T) {
	drivers := []DriverRecord{
		{ID: 1, Name: "A", ShiftHours: 8},
		{ID: 2, Name: "B", ShiftHours: 8},
	}
	routes := []RouteRecord{
		{ID: 1, RouteNo: 101, DistanceKM: 10, TrafficLevel: constants.TrafficLevelLow, BaseTimeMin: 60},
	}
	orders := make([]OrderRecord, 0, 10)
	for i := 0; i < 7; i++ {
		orders = append(orders, OrderRecord{ID: uint(i + 1), OrderNo: i + 1, Value: decimal.NewFromInt(500), RouteID: 1, DeliveryTime: "00:50"})
	}
	for i := 7; i < 10; i++ {
		orders = append(orders, OrderRecord{ID: uint(i + 1), OrderNo: i + 1, Value: decimal.NewFromInt(500), RouteID: 1, DeliveryTime: "02:00"})
	}
	snap := BuildSnapshot(drivers, routes, orders)

	result, err := Run(snap, Inputs{AvailableDrivers: 2, RouteStartTime: "09:00", MaxHoursPerDay: 8})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.OnTimeDeliveries != 7 || result.LateDeliveries != 3 {
		t.Fatalf("deliveries want 7/3 got %d/%d", result.OnTimeDeliveries, result.LateDeliveries)
	}
	if result.EfficiencyScore != 70.0 {
		t.Fatalf("efficiency want 70.0 got %.2f", result.EfficiencyScore)
	}
}

func TestRunFuelBreakdownBucketsAlwaysPresent(t *testing.T) {
	drivers := []DriverRecord{{ID: 1, Name: "A", ShiftHours: 8}}
	routes := []RouteRecord{
		{ID: 1, RouteNo: 101, DistanceKM: 10, TrafficLevel: constants.TrafficLevelHigh, BaseTimeMin: 60},
		{ID: 2, RouteNo: 102, DistanceKM: 4, TrafficLevel: constants.TrafficLevelLow, BaseTimeMin: 30},
	}
	orders := []OrderRecord{
		{ID: 1, OrderNo: 1, Value: decimal.NewFromInt(800), RouteID: 1, DeliveryTime: "00:50"},
		{ID: 2, OrderNo: 2, Value: decimal.NewFromInt(300), RouteID: 2, DeliveryTime: "00:20"},
	}
	snap := BuildSnapshot(drivers, routes, orders)

	result, err := Run(snap, Inputs{AvailableDrivers: 1, RouteStartTime: "09:00", MaxHoursPerDay: 8})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, level := range constants.TrafficLevels {
		if _, ok := result.FuelCostBreakdown[level]; !ok {
			t.Fatalf("missing fuel bucket %s", level)
		}
	}

	// 桶合计与汇总燃油一致
	sum := decimal.Zero
	for _, cost := range result.FuelCostBreakdown {
		sum = sum.Add(cost)
	}
	if !sum.Equal(result.Summary.TotalFuelCost) {
		t.Fatalf("fuel buckets sum %s != total %s", sum.String(), result.Summary.TotalFuelCost.String())
	}
	if !result.FuelCostBreakdown[constants.TrafficLevelHigh].Equal(decimal.NewFromInt(70)) {
		t.Fatalf("high bucket want 70 got %s", result.FuelCostBreakdown[constants.TrafficLevelHigh].String())
	}
	if !result.FuelCostBreakdown[constants.TrafficLevelLow].Equal(decimal.NewFromInt(20)) {
		t.Fatalf("low bucket want 20 got %s", result.FuelCostBreakdown[constants.TrafficLevelLow].String())
	}
	if !result.FuelCostBreakdown[constants.TrafficLevelMedium].Equal(decimal.Zero) {
		t.Fatalf("medium bucket want 0 got %s", result.FuelCostBreakdown[constants.TrafficLevelMedium].String())
	}
}

func TestRunCountsSkippedOrders(t *testing.T) {
	drivers := []DriverRecord{{ID: 1, Name: "A", ShiftHours: 8}}
	routes := []RouteRecord{
		{ID: 1, RouteNo: 101, DistanceKM: 10, TrafficLevel: constants.TrafficLevelLow, BaseTimeMin: 60},
	}
	orders := []OrderRecord{
		{ID: 1, OrderNo: 1, Value: decimal.NewFromInt(500), RouteID: 1, DeliveryTime: "00:30"},
		{ID: 2, OrderNo: 2, Value: decimal.NewFromInt(500), RouteID: 99, DeliveryTime: "00:30"},
	}
	snap := BuildSnapshot(drivers, routes, orders)

	result, err := Run(snap, Inputs{AvailableDrivers: 1, RouteStartTime: "09:00", MaxHoursPerDay: 8})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.SkippedOrders != 1 {
		t.Fatalf("skipped orders want 1 got %d", result.SkippedOrders)
	}
	if result.Summary.TotalOrdersProcessed != 1 {
		t.Fatalf("processed orders want 1 got %d", result.Summary.TotalOrdersProcessed)
	}
}

func TestRunSummaryStatistics(t *testing.T) {
	snap := buildTestSnapshot(t, 3, 10)

	result, err := Run(snap, Inputs{AvailableDrivers: 2, RouteStartTime: "08:30", MaxHoursPerDay: 8})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Summary.DriversUsed != 2 {
		t.Fatalf("drivers used want 2 got %d", result.Summary.DriversUsed)
	}
	if result.Summary.AverageOrdersPerDriver != 5 {
		t.Fatalf("avg orders/driver want 5 got %.2f", result.Summary.AverageOrdersPerDriver)
	}
	if len(result.DriverAssignments) != 2 {
		t.Fatalf("assignments want 2 got %d", len(result.DriverAssignments))
	}
	if result.DriverAssignments[0].AssignedOrders != 5 || result.DriverAssignments[1].AssignedOrders != 5 {
		t.Fatalf("unexpected per-driver orders: %+v", result.DriverAssignments)
	}
	// 500 金额、10 公里 Low、准时：单笔利润 450
	if !result.TotalProfit.Equal(decimal.NewFromInt(4500)) {
		t.Fatalf("total profit want 4500 got %s", result.TotalProfit.String())
	}
}

func TestRunIsDeterministic(t *testing.T) {
	snap := buildTestSnapshot(t, 3, 11)
	in := Inputs{AvailableDrivers: 3, RouteStartTime: "09:00", MaxHoursPerDay: 8}

	first, err := Run(snap, in)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	second, err := Run(snap, in)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same snapshot and inputs must produce identical results")
	}
}

func TestRunPropagatesPartitionErrors(t *testing.T) {
	snap := buildTestSnapshot(t, 0, 5)
	if _, err := Run(snap, Inputs{AvailableDrivers: 3, MaxHoursPerDay: 8}); !errors.Is(err, ErrNoDriversAvailable) {
		t.Fatalf("expected ErrNoDriversAvailable, got %v", err)
	}

	snap = buildTestSnapshot(t, 2, 0)
	if _, err := Run(snap, Inputs{AvailableDrivers: 2, MaxHoursPerDay: 8}); !errors.Is(err, ErrNoOrdersToProcess) {
		t.Fatalf("expected ErrNoOrdersToProcess, got %v", err)
	}
}
