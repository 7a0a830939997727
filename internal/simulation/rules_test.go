package simulation

import (
	"testing"

	"github.com/greencart-logistics/internal/constants"

	"github.com/shopspring/decimal"
)

func buildTestOrder(t *testing.T, value int64, distanceKM int, trafficLevel string, baseTimeMin int, deliveryTime string) Order {
	t.Helper()
	snap := BuildSnapshot(
		nil,
		[]RouteRecord{{ID: 1, RouteNo: 1, DistanceKM: distanceKM, TrafficLevel: trafficLevel, BaseTimeMin: baseTimeMin}},
		[]OrderRecord{{ID: 1, OrderNo: 1, Value: decimal.NewFromInt(value), RouteID: 1, DeliveryTime: deliveryTime}},
	)
	if len(snap.Orders) != 1 {
		t.Fatalf("expected 1 order in snapshot, got %d", len(snap.Orders))
	}
	return snap.Orders[0]
}

func TestEvaluateOrderHighValueOnTime(t *testing.T) {
	// 1200 金额、10 公里 High 路线、准时、司机未疲劳
	order := buildTestOrder(t, 1200, 10, constants.TrafficLevelHigh, 60, "01:00")
	driver := Driver{ID: 1, Name: "A"}

	outcome := EvaluateOrder(order, driver)

	if !outcome.Bonus.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("bonus want 120 got %s", outcome.Bonus.String())
	}
	if !outcome.Penalty.Equal(decimal.Zero) {
		t.Fatalf("penalty want 0 got %s", outcome.Penalty.String())
	}
	if !outcome.FuelCost.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("fuel want 70 got %s", outcome.FuelCost.String())
	}
	if !outcome.Profit.Equal(decimal.NewFromInt(1250)) {
		t.Fatalf("profit want 1250 got %s", outcome.Profit.String())
	}
}

func TestEvaluateOrderOverworkedDriverReducesFuelOnly(t *testing.T) {
	order := buildTestOrder(t, 1200, 10, constants.TrafficLevelHigh, 60, "01:00")
	driver := Driver{ID: 1, Name: "A", Overworked: true}

	outcome := EvaluateOrder(order, driver)

	if !outcome.FuelCost.Equal(decimal.NewFromInt(49)) {
		t.Fatalf("fuel want 49 got %s", outcome.FuelCost.String())
	}
	if !outcome.Bonus.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("bonus want 120 got %s", outcome.Bonus.String())
	}
	if !outcome.Profit.Equal(decimal.NewFromInt(1271)) {
		t.Fatalf("profit want 1271 got %s", outcome.Profit.String())
	}
}

func TestEvaluateOrderLateLosesBonusAndPaysPenalty(t *testing.T) {
	// 基准 60 分钟 + 10 分钟宽限，71 分钟即迟到
	order := buildTestOrder(t, 1200, 10, constants.TrafficLevelHigh, 60, "01:11")
	if !order.Late {
		t.Fatalf("expected order to be late")
	}
	driver := Driver{ID: 1, Name: "A"}

	outcome := EvaluateOrder(order, driver)

	if !outcome.Penalty.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("penalty want 50 got %s", outcome.Penalty.String())
	}
	if !outcome.Bonus.Equal(decimal.Zero) {
		t.Fatalf("late high-value order must not earn bonus, got %s", outcome.Bonus.String())
	}
	if !outcome.Profit.Equal(decimal.NewFromInt(1080)) {
		t.Fatalf("profit want 1080 got %s", outcome.Profit.String())
	}
}

func TestEvaluateOrderLateBoundaryIsOnTime(t *testing.T) {
	// 恰好 base+10 分钟不算迟到
	order := buildTestOrder(t, 500, 10, constants.TrafficLevelLow, 60, "01:10")
	if order.Late {
		t.Fatalf("delivery at base+10 must be on time")
	}

	outcome := EvaluateOrder(order, Driver{ID: 1})
	if !outcome.Penalty.Equal(decimal.Zero) {
		t.Fatalf("penalty want 0 got %s", outcome.Penalty.String())
	}
	if !outcome.FuelCost.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("fuel want 50 got %s", outcome.FuelCost.String())
	}
}

func TestEvaluateOrderValueExactlyFloorIsNotHighValue(t *testing.T) {
	order := buildTestOrder(t, 1000, 5, constants.TrafficLevelMedium, 60, "00:30")
	if order.HighValue {
		t.Fatalf("value of exactly 1000 must not be high value")
	}

	outcome := EvaluateOrder(order, Driver{ID: 1})
	if !outcome.Bonus.Equal(decimal.Zero) {
		t.Fatalf("bonus want 0 got %s", outcome.Bonus.String())
	}
}

func TestParseDeliveryMinutesLenient(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"01:30", 90},
		{"00:00", 0},
		{" 02:05 ", 125},
		{"bogus", 0},
		{"1:2:3", 0},
		{"", 0},
		{"-1:30", 0},
	}
	for _, tc := range cases {
		if got := ParseDeliveryMinutes(tc.input); got != tc.want {
			t.Fatalf("parse %q want %d got %d", tc.input, tc.want, got)
		}
	}
}
