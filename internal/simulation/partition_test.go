package simulation

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/greencart-logistics/internal/constants"

	"github.com/shopspring/decimal"
)

func buildTestSnapshot(t *testing.T, driverCount, orderCount int) *Snapshot {
	t.Helper()
	drivers := make([]DriverRecord, 0, driverCount)
	for i := 0; i < driverCount; i++ {
		drivers = append(drivers, DriverRecord{
			ID:            uint(i + 1),
			Name:          fmt.Sprintf("driver-%d", i+1),
			ShiftHours:    8,
			PastWeekHours: []float64{6, 7, 8},
		})
	}
	routes := []RouteRecord{
		{ID: 1, RouteNo: 101, DistanceKM: 10, TrafficLevel: constants.TrafficLevelLow, BaseTimeMin: 60},
	}
	orders := make([]OrderRecord, 0, orderCount)
	for i := 0; i < orderCount; i++ {
		orders = append(orders, OrderRecord{
			ID:           uint(i + 1),
			OrderNo:      i + 1,
			Value:        decimal.NewFromInt(500),
			RouteID:      1,
			DeliveryTime: "00:30",
		})
	}
	return BuildSnapshot(drivers, routes, orders)
}

func TestPartitionBalancesRemainderToFirstDrivers(t *testing.T) {
	snap := buildTestSnapshot(t, 3, 10)

	assignments, err := Partition(snap, 3, 8)
	if err != nil {
		t.Fatalf("partition failed: %v", err)
	}
	if len(assignments) != 3 {
		t.Fatalf("assignments len want 3 got %d", len(assignments))
	}

	counts := []int{len(assignments[0].Orders), len(assignments[1].Orders), len(assignments[2].Orders)}
	if counts[0] != 4 || counts[1] != 3 || counts[2] != 3 {
		t.Fatalf("unexpected split: %v", counts)
	}

	// 连续切分：订单编号保持快照顺序
	next := 1
	for _, assignment := range assignments {
		for _, order := range assignment.Orders {
			if order.OrderNo != next {
				t.Fatalf("order no want %d got %d", next, order.OrderNo)
			}
			next++
		}
	}
}

func TestPartitionIsDeterministic(t *testing.T) {
	snap := buildTestSnapshot(t, 4, 11)

	first, err := Partition(snap, 4, 8)
	if err != nil {
		t.Fatalf("partition failed: %v", err)
	}
	second, err := Partition(snap, 4, 8)
	if err != nil {
		t.Fatalf("partition failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("partition must be idempotent for the same snapshot")
	}
}

func TestPartitionClampsToFleetSize(t *testing.T) {
	snap := buildTestSnapshot(t, 2, 6)

	assignments, err := Partition(snap, 10, 8)
	if err != nil {
		t.Fatalf("partition failed: %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("assignments len want 2 got %d", len(assignments))
	}
	if len(assignments[0].Orders) != 3 || len(assignments[1].Orders) != 3 {
		t.Fatalf("unexpected split: %d/%d", len(assignments[0].Orders), len(assignments[1].Orders))
	}
}

func TestPartitionNilSnapshot(t *testing.T) {
	_, err := Partition(nil, 3, 8)
	if !errors.Is(err, ErrNoDriversAvailable) {
		t.Fatalf("expected ErrNoDriversAvailable, got %v", err)
	}
	if errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("nil snapshot must not surface as data unavailable: %v", err)
	}
}

func TestPartitionNoDrivers(t *testing.T) {
	snap := buildTestSnapshot(t, 3, 5)

	_, err := Partition(snap, 0, 8)
	if !errors.Is(err, ErrNoDriversAvailable) {
		t.Fatalf("expected ErrNoDriversAvailable, got %v", err)
	}
}

func TestPartitionNoOrders(t *testing.T) {
	snap := buildTestSnapshot(t, 3, 0)

	_, err := Partition(snap, 3, 8)
	if !errors.Is(err, ErrNoOrdersToProcess) {
		t.Fatalf("expected ErrNoOrdersToProcess, got %v", err)
	}
}

func TestPartitionEstimatedHoursCappedByMaxHours(t *testing.T) {
	snap := buildTestSnapshot(t, 1, 20)

	assignments, err := Partition(snap, 1, 6)
	if err != nil {
		t.Fatalf("partition failed: %v", err)
	}
	// 20 单 * 0.5 小时 = 10，封顶为 6
	if assignments[0].EstimatedHours != 6 {
		t.Fatalf("estimated hours want 6 got %.2f", assignments[0].EstimatedHours)
	}

	assignments, err = Partition(snap, 1, 24)
	if err != nil {
		t.Fatalf("partition failed: %v", err)
	}
	if assignments[0].EstimatedHours != 10 {
		t.Fatalf("estimated hours want 10 got %.2f", assignments[0].EstimatedHours)
	}
}
