package simulation

import (
	"strconv"
	"strings"

	"github.com/greencart-logistics/internal/constants"

	"github.com/shopspring/decimal"
)

// DriverRecord 快照构建输入：司机
type DriverRecord struct {
	ID            uint
	Name          string
	ShiftHours    int
	PastWeekHours []float64
}

// RouteRecord 快照构建输入：路线
type RouteRecord struct {
	ID           uint
	RouteNo      int
	DistanceKM   int
	TrafficLevel string
	BaseTimeMin  int
}

// OrderRecord 快照构建输入：订单
type OrderRecord struct {
	ID           uint
	OrderNo      int
	Value        decimal.Decimal
	RouteID      uint
	DeliveryTime string
}

// Driver 快照内司机（派生字段在构建时计算一次）
type Driver struct {
	ID                 uint
	Name               string
	ShiftHours         int
	PastWeekHours      []float64
	AverageWeeklyHours float64
	Overworked         bool
}

// Route 快照内路线（派生字段在构建时计算一次）
type Route struct {
	ID            uint
	RouteNo       int
	DistanceKM    int
	TrafficLevel  string
	BaseTimeMin   int
	FuelCostPerKM decimal.Decimal
	BaseFuelCost  decimal.Decimal
}

// Order 快照内订单，路线在构建时解析完毕
type Order struct {
	ID                  uint
	OrderNo             int
	Value               decimal.Decimal
	Route               Route
	DeliveryTimeMinutes int
	Late                bool
	HighValue           bool
}

// Snapshot 一次模拟使用的不可变数据快照
// 集合顺序即数据库读取顺序，决定分配结果
type Snapshot struct {
	Drivers       []Driver
	Orders        []Order
	SkippedOrders int
}

var (
	baseFuelPerKM  = decimal.NewFromInt(constants.SimulationBaseFuelPerKM)
	highSurcharge  = decimal.NewFromInt(constants.SimulationHighSurcharge)
	highValueFloor = decimal.NewFromInt(constants.SimulationHighValueFloor)
)

// BuildSnapshot 构建模拟快照
// 路线缺失的订单不进入快照，只累计 SkippedOrders
func BuildSnapshot(drivers []DriverRecord, routes []RouteRecord, orders []OrderRecord) *Snapshot {
	snap := &Snapshot{
		Drivers: make([]Driver, 0, len(drivers)),
		Orders:  make([]Order, 0, len(orders)),
	}

	for _, record := range drivers {
		snap.Drivers = append(snap.Drivers, buildDriver(record))
	}

	routeMap := make(map[uint]Route, len(routes))
	for _, record := range routes {
		routeMap[record.ID] = buildRoute(record)
	}

	for _, record := range orders {
		route, ok := routeMap[record.RouteID]
		if !ok {
			snap.SkippedOrders++
			continue
		}
		snap.Orders = append(snap.Orders, buildOrder(record, route))
	}

	return snap
}

func buildDriver(record DriverRecord) Driver {
	driver := Driver{
		ID:            record.ID,
		Name:          record.Name,
		ShiftHours:    record.ShiftHours,
		PastWeekHours: record.PastWeekHours,
	}
	if len(record.PastWeekHours) > 0 {
		var total float64
		for _, hours := range record.PastWeekHours {
			total += hours
		}
		driver.AverageWeeklyHours = total / float64(len(record.PastWeekHours))
		driver.Overworked = record.PastWeekHours[len(record.PastWeekHours)-1] > constants.DriverOverworkThreshold
	}
	return driver
}

func buildRoute(record RouteRecord) Route {
	perKM := baseFuelPerKM
	if record.TrafficLevel == constants.TrafficLevelHigh {
		perKM = perKM.Add(highSurcharge)
	}
	distance := decimal.NewFromInt(int64(record.DistanceKM))
	return Route{
		ID:            record.ID,
		RouteNo:       record.RouteNo,
		DistanceKM:    record.DistanceKM,
		TrafficLevel:  record.TrafficLevel,
		BaseTimeMin:   record.BaseTimeMin,
		FuelCostPerKM: perKM,
		BaseFuelCost:  distance.Mul(perKM),
	}
}

func buildOrder(record OrderRecord, route Route) Order {
	minutes := ParseDeliveryMinutes(record.DeliveryTime)
	return Order{
		ID:                  record.ID,
		OrderNo:             record.OrderNo,
		Value:               record.Value,
		Route:               route,
		DeliveryTimeMinutes: minutes,
		Late:                minutes > route.BaseTimeMin+constants.SimulationLateAllowance,
		HighValue:           record.Value.GreaterThan(highValueFloor),
	}
}

// ParseDeliveryMinutes 宽松解析 HH:MM 为分钟数，解析失败返回 0
func ParseDeliveryMinutes(value string) int {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 {
		return 0
	}
	return hours*60 + minutes
}
