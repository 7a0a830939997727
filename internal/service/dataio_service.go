package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/greencart-logistics/internal/config"
	"github.com/greencart-logistics/internal/constants"
	"github.com/greencart-logistics/internal/logger"
	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DataIOService CSV 导入导出服务
// 导入为清空重载：路线、司机、订单在一个事务内整体替换
type DataIOService struct {
	cfg        *config.Config
	db         *gorm.DB
	driverRepo repository.DriverRepository
	routeRepo  repository.RouteRepository
	orderRepo  repository.OrderRepository
}

// NewDataIOService 创建数据导入导出服务
func NewDataIOService(
	cfg *config.Config,
	db *gorm.DB,
	driverRepo repository.DriverRepository,
	routeRepo repository.RouteRepository,
	orderRepo repository.OrderRepository,
) *DataIOService {
	return &DataIOService{
		cfg:        cfg,
		db:         db,
		driverRepo: driverRepo,
		routeRepo:  routeRepo,
		orderRepo:  orderRepo,
	}
}

// ImportResult 导入结果统计
type ImportResult struct {
	DriversImported int      `json:"drivers_imported"`
	RoutesImported  int      `json:"routes_imported"`
	OrdersImported  int      `json:"orders_imported"`
	Errors          []string `json:"errors"`
}

// ExportResult 导出生成的文件
type ExportResult struct {
	Files []string `json:"files"`
}

// ImportFromDir 从配置的数据目录导入三个 CSV 文件
func (s *DataIOService) ImportFromDir() (*ImportResult, error) {
	dir := strings.TrimSpace(s.cfg.Data.ImportDir)
	if dir == "" {
		dir = "."
	}
	result := &ImportResult{Errors: make([]string, 0)}

	routes, routeByNo := s.parseRoutesCSV(filepath.Join(dir, constants.CSVFileRoutes), result)
	drivers := s.parseDriversCSV(filepath.Join(dir, constants.CSVFileDrivers), result)
	orders := s.parseOrdersCSV(filepath.Join(dir, constants.CSVFileOrders), routeByNo, result)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 订单引用路线，先清订单再清路线
		if err := s.orderRepo.ReplaceAll(tx, nil); err != nil {
			return err
		}
		if err := s.routeRepo.ReplaceAll(tx, routes); err != nil {
			return err
		}
		if err := s.driverRepo.ReplaceAll(tx, drivers); err != nil {
			return err
		}

		// 路线入库后回填订单外键
		persisted := make([]models.Route, 0)
		if err := tx.Order("id ASC").Find(&persisted).Error; err != nil {
			return err
		}
		idByNo := make(map[int]uint, len(persisted))
		for _, route := range persisted {
			idByNo[route.RouteNo] = route.ID
		}
		linked := make([]models.Order, 0, len(orders))
		for _, order := range orders {
			routeID, ok := idByNo[int(order.RouteID)]
			if !ok {
				continue
			}
			order.RouteID = routeID
			linked = append(linked, order)
		}
		if err := s.orderRepo.ReplaceAll(tx, linked); err != nil {
			return err
		}
		result.OrdersImported = len(linked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.RoutesImported = len(routes)
	result.DriversImported = len(drivers)

	logger.Infow("data_import_completed",
		"drivers", result.DriversImported,
		"routes", result.RoutesImported,
		"orders", result.OrdersImported,
		"row_errors", len(result.Errors),
	)
	return result, nil
}

// parseRoutesCSV 解析 routes.csv（route_id,distance_km,traffic_level,base_time_min）
func (s *DataIOService) parseRoutesCSV(path string, result *ImportResult) ([]models.Route, map[int]struct{}) {
	routes := make([]models.Route, 0)
	seen := make(map[int]struct{})

	rows, ok := readCSVRows(path, result)
	if !ok {
		return routes, seen
	}
	for i, row := range rows {
		if len(row) < 4 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: expected 4 columns", constants.CSVFileRoutes, i+2))
			continue
		}
		routeNo, err1 := strconv.Atoi(strings.TrimSpace(row[0]))
		distance, err2 := strconv.Atoi(strings.TrimSpace(row[1]))
		level := normalizeTrafficLevel(row[2])
		baseTime, err3 := strconv.Atoi(strings.TrimSpace(row[3]))
		if err1 != nil || err2 != nil || err3 != nil || level == "" || routeNo <= 0 || distance <= 0 || baseTime <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: invalid values", constants.CSVFileRoutes, i+2))
			continue
		}
		if _, dup := seen[routeNo]; dup {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: duplicate route %d", constants.CSVFileRoutes, i+2, routeNo))
			continue
		}
		seen[routeNo] = struct{}{}
		routes = append(routes, models.Route{
			RouteNo:      routeNo,
			DistanceKM:   distance,
			TrafficLevel: level,
			BaseTimeMin:  baseTime,
		})
	}
	return routes, seen
}

// parseDriversCSV 解析 drivers.csv（name,shift_hours,past_week_hours），工时用 | 分隔
func (s *DataIOService) parseDriversCSV(path string, result *ImportResult) []models.Driver {
	drivers := make([]models.Driver, 0)

	rows, ok := readCSVRows(path, result)
	if !ok {
		return drivers
	}
	for i, row := range rows {
		if len(row) < 3 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: expected 3 columns", constants.CSVFileDrivers, i+2))
			continue
		}
		name := strings.TrimSpace(row[0])
		shiftHours, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if name == "" || err != nil || shiftHours < constants.DriverMinShiftHours || shiftHours > constants.DriverMaxShiftHours {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: invalid values", constants.CSVFileDrivers, i+2))
			continue
		}
		hours, parseErr := parsePipeHours(row[2])
		if parseErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: %v", constants.CSVFileDrivers, i+2, parseErr))
			continue
		}
		drivers = append(drivers, models.Driver{
			Name:          name,
			ShiftHours:    shiftHours,
			PastWeekHours: models.FloatArray(hours),
		})
	}
	return drivers
}

// parseOrdersCSV 解析 orders.csv（order_id,value_rs,route_id,delivery_time）
// RouteID 暂存业务编号，入库时回填主键
func (s *DataIOService) parseOrdersCSV(path string, routeByNo map[int]struct{}, result *ImportResult) []models.Order {
	orders := make([]models.Order, 0)
	seen := make(map[int]struct{})

	rows, ok := readCSVRows(path, result)
	if !ok {
		return orders
	}
	for i, row := range rows {
		if len(row) < 4 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: expected 4 columns", constants.CSVFileOrders, i+2))
			continue
		}
		orderNo, err1 := strconv.Atoi(strings.TrimSpace(row[0]))
		value, err2 := decimal.NewFromString(strings.TrimSpace(row[1]))
		routeNo, err3 := strconv.Atoi(strings.TrimSpace(row[2]))
		deliveryTime := strings.TrimSpace(row[3])
		if err1 != nil || err2 != nil || err3 != nil || orderNo <= 0 || value.LessThanOrEqual(decimal.Zero) || !isValidClockTime(deliveryTime) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: invalid values", constants.CSVFileOrders, i+2))
			continue
		}
		if _, exists := routeByNo[routeNo]; !exists {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: unknown route %d", constants.CSVFileOrders, i+2, routeNo))
			continue
		}
		if _, dup := seen[orderNo]; dup {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: duplicate order %d", constants.CSVFileOrders, i+2, orderNo))
			continue
		}
		seen[orderNo] = struct{}{}
		orders = append(orders, models.Order{
			OrderNo:      orderNo,
			Value:        models.NewMoneyFromDecimal(value),
			RouteID:      uint(routeNo),
			DeliveryTime: deliveryTime,
		})
	}
	return orders
}

// ExportToDir 将当前车队数据导出为带时间戳的 CSV 文件
func (s *DataIOService) ExportToDir() (*ExportResult, error) {
	dir := strings.TrimSpace(s.cfg.Data.ExportDir)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	stamp := time.Now().Format("20060102_150405")

	drivers, err := s.driverRepo.ListAll()
	if err != nil {
		return nil, err
	}
	routes, err := s.routeRepo.ListAll()
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListAll()
	if err != nil {
		return nil, err
	}
	routeNoByID := make(map[uint]int, len(routes))
	for _, route := range routes {
		routeNoByID[route.ID] = route.RouteNo
	}

	driverRows := [][]string{{"name", "shift_hours", "past_week_hours"}}
	for _, d := range drivers {
		driverRows = append(driverRows, []string{
			d.Name,
			strconv.Itoa(d.ShiftHours),
			formatPipeHours(d.PastWeekHours),
		})
	}

	routeRows := [][]string{{"route_id", "distance_km", "traffic_level", "base_time_min"}}
	for _, r := range routes {
		routeRows = append(routeRows, []string{
			strconv.Itoa(r.RouteNo),
			strconv.Itoa(r.DistanceKM),
			r.TrafficLevel,
			strconv.Itoa(r.BaseTimeMin),
		})
	}

	orderRows := [][]string{{"order_id", "value_rs", "route_id", "delivery_time"}}
	for _, o := range orders {
		orderRows = append(orderRows, []string{
			strconv.Itoa(o.OrderNo),
			o.Value.Decimal.StringFixed(2),
			strconv.Itoa(routeNoByID[o.RouteID]),
			o.DeliveryTime,
		})
	}

	files := make([]string, 0, 3)
	for _, entry := range []struct {
		name string
		rows [][]string
	}{
		{fmt.Sprintf("drivers_%s.csv", stamp), driverRows},
		{fmt.Sprintf("routes_%s.csv", stamp), routeRows},
		{fmt.Sprintf("orders_%s.csv", stamp), orderRows},
	} {
		path := filepath.Join(dir, entry.name)
		if err := writeCSVFile(path, entry.rows); err != nil {
			return nil, err
		}
		files = append(files, path)
	}

	logger.Infow("data_export_completed", "files", files)
	return &ExportResult{Files: files}, nil
}

// readCSVRows 读取 CSV 并去掉表头，文件缺失记入错误列表
func readCSVRows(path string, result *ImportResult) ([][]string, bool) {
	file, err := os.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", filepath.Base(path), err))
		return nil, false
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", filepath.Base(path), err))
		return nil, false
	}
	if len(rows) <= 1 {
		return nil, true
	}
	return rows[1:], true
}

func writeCSVFile(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// parsePipeHours 解析 "6|8|7" 形式的过去一周工时
func parsePipeHours(raw string) ([]float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []float64{}, nil
	}
	parts := strings.Split(trimmed, "|")
	if len(parts) > constants.DriverMaxPastWeekDays {
		return nil, fmt.Errorf("more than %d past week entries", constants.DriverMaxPastWeekDays)
	}
	hours := make([]float64, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || value < 0 || value > constants.DriverMaxDailyHours {
			return nil, fmt.Errorf("invalid hours entry %q", strings.TrimSpace(part))
		}
		hours = append(hours, value)
	}
	return hours, nil
}

func formatPipeHours(hours []float64) string {
	parts := make([]string, 0, len(hours))
	for _, value := range hours {
		parts = append(parts, strconv.FormatFloat(value, 'g', -1, 64))
	}
	return strings.Join(parts, "|")
}
