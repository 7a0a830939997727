package constants

// 路线交通等级常量
const (
	TrafficLevelLow    = "Low"
	TrafficLevelMedium = "Medium"
	TrafficLevelHigh   = "High"
)

// TrafficLevels 全部合法交通等级（固定顺序）
var TrafficLevels = []string{TrafficLevelLow, TrafficLevelMedium, TrafficLevelHigh}

// IsValidTrafficLevel 判断交通等级是否合法
func IsValidTrafficLevel(level string) bool {
	for _, item := range TrafficLevels {
		if item == level {
			return true
		}
	}
	return false
}

// 司机约束常量
const (
	DriverMaxShiftHours     = 12
	DriverMinShiftHours     = 1
	DriverMaxPastWeekDays   = 7
	DriverMaxDailyHours     = 24.0
	DriverOverworkThreshold = 8.0
)

// 模拟参数边界常量
const (
	SimulationMinDrivers     = 1
	SimulationMinMaxHours    = 1
	SimulationMaxMaxHours    = 24
	SimulationHoursPerOrder  = 0.5
	SimulationLateAllowance  = 10
	SimulationLatePenalty    = 50
	SimulationHighValueFloor = 1000
	SimulationBonusRate      = "0.1"
	SimulationFatigueFactor  = "0.7"
	SimulationBaseFuelPerKM  = 5
	SimulationHighSurcharge  = 2
)

// 队列与任务常量
const (
	QueueDefault = "default"

	TaskSimulationPrune = "simulation:prune"
	TaskDataExport      = "data:export"
)

// 验证码场景常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
	CaptchaSceneLogin    = "login"
)

// 预置角色常量
const (
	RoleDispatcher = "dispatcher"
	RoleViewer     = "viewer"
)

// CSV 数据文件常量
const (
	CSVFileDrivers = "drivers.csv"
	CSVFileRoutes  = "routes.csv"
	CSVFileOrders  = "orders.csv"
)
