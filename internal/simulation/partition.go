package simulation

import (
	"math"

	"github.com/greencart-logistics/internal/constants"
)

// Assignment 单个司机的订单分配
type Assignment struct {
	Driver         Driver
	Orders         []Order
	EstimatedHours float64
}

// Partition 将订单按快照顺序连续切分给前 N 个司机
// 前 total%n 个司机各多承担 1 单，结果确定且可重复
func Partition(snap *Snapshot, availableDrivers, maxHoursPerDay int) ([]Assignment, error) {
	// nil 快照按空车队处理
	if snap == nil {
		return nil, ErrNoDriversAvailable
	}

	selected := snap.Drivers
	if availableDrivers < len(selected) {
		selected = selected[:availableDrivers]
	}
	if len(selected) == 0 {
		return nil, ErrNoDriversAvailable
	}
	if len(snap.Orders) == 0 {
		return nil, ErrNoOrdersToProcess
	}

	base := len(snap.Orders) / len(selected)
	extra := len(snap.Orders) % len(selected)

	assignments := make([]Assignment, 0, len(selected))
	orderIndex := 0
	for i, driver := range selected {
		count := base
		if i < extra {
			count++
		}
		orders := snap.Orders[orderIndex : orderIndex+count]
		orderIndex += count

		assignments = append(assignments, Assignment{
			Driver:         driver,
			Orders:         orders,
			EstimatedHours: estimateHours(count, maxHoursPerDay),
		})
	}

	return assignments, nil
}

// estimateHours 估算工作量（每单 30 分钟），按日上限封顶后保留 2 位小数
// 封顶只影响展示值，不改变分配
func estimateHours(orderCount, maxHoursPerDay int) float64 {
	hours := float64(orderCount) * constants.SimulationHoursPerOrder
	if ceiling := float64(maxHoursPerDay); hours > ceiling {
		hours = ceiling
	}
	return math.Round(hours*100) / 100
}
