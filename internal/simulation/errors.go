package simulation

import "errors"

// 引擎哨兵错误
var (
	// ErrNoDriversAvailable 可用司机数为 0
	ErrNoDriversAvailable = errors.New("no drivers available")
	// ErrNoOrdersToProcess 订单集合为空
	ErrNoOrdersToProcess = errors.New("no orders to process")
	// ErrDataUnavailable 快照数据加载失败，由服务层从存储错误包装而来
	// 引擎本身不返回该错误
	ErrDataUnavailable = errors.New("simulation data unavailable")
)
