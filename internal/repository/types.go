package repository

// DriverListFilter 查询司机列表的过滤条件
type DriverListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// RouteListFilter 查询路线列表的过滤条件
type RouteListFilter struct {
	Page         int
	PageSize     int
	TrafficLevel string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page      int
	PageSize  int
	RouteNo   int
	DriverID  uint
	WithRoute bool
}

// SimulationRunListFilter 查询模拟运行记录的过滤条件
type SimulationRunListFilter struct {
	Page     int
	PageSize int
	AdminID  uint
}
