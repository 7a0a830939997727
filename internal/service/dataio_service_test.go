package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/greencart-logistics/internal/config"
	"github.com/greencart-logistics/internal/constants"
	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDataIOServiceTest(t *testing.T) (*DataIOService, *gorm.DB, string) {
	t.Helper()
	dsn := fmt.Sprintf("file:dataio_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Driver{}, &models.Route{}, &models.Order{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Data.ImportDir = dir
	cfg.Data.ExportDir = filepath.Join(dir, "exports")

	svc := NewDataIOService(
		cfg,
		db,
		repository.NewDriverRepository(db),
		repository.NewRouteRepository(db),
		repository.NewOrderRepository(db),
	)
	return svc, db, dir
}

func writeTestCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s failed: %v", name, err)
	}
}

func TestImportFromDirLoadsFleet(t *testing.T) {
	svc, db, dir := setupDataIOServiceTest(t)

	writeTestCSV(t, dir, constants.CSVFileDrivers,
		"name,shift_hours,past_week_hours\nAmit,8,6|8|7\nPriya,6,10|9\n")
	writeTestCSV(t, dir, constants.CSVFileRoutes,
		"route_id,distance_km,traffic_level,base_time_min\n1,10,Low,30\n2,25,High,80\n")
	writeTestCSV(t, dir, constants.CSVFileOrders,
		"order_id,value_rs,route_id,delivery_time\n1,950.50,1,00:35\n2,1800,2,01:25\n")

	result, err := svc.ImportFromDir()
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.DriversImported != 2 || result.RoutesImported != 2 || result.OrdersImported != 2 {
		t.Fatalf("counts want 2/2/2 got %d/%d/%d",
			result.DriversImported, result.RoutesImported, result.OrdersImported)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected row errors: %v", result.Errors)
	}

	var driver models.Driver
	if err := db.Where("name = ?", "Amit").First(&driver).Error; err != nil {
		t.Fatalf("load driver failed: %v", err)
	}
	if len(driver.PastWeekHours) != 3 || driver.PastWeekHours[1] != 8 {
		t.Fatalf("unexpected past week hours %v", driver.PastWeekHours)
	}

	var order models.Order
	if err := db.Preload("Route").Where("order_no = ?", 2).First(&order).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if order.Route == nil || order.Route.RouteNo != 2 {
		t.Fatalf("order route not linked: %+v", order.Route)
	}
	if order.Value.StringFixed(2) != "1800.00" {
		t.Fatalf("order value want 1800.00 got %s", order.Value.StringFixed(2))
	}
}

func TestImportFromDirReplacesExistingData(t *testing.T) {
	svc, db, dir := setupDataIOServiceTest(t)

	stale := models.Driver{Name: "Old", ShiftHours: 8, PastWeekHours: models.FloatArray{}}
	if err := db.Create(&stale).Error; err != nil {
		t.Fatalf("seed stale driver failed: %v", err)
	}

	writeTestCSV(t, dir, constants.CSVFileDrivers,
		"name,shift_hours,past_week_hours\nAmit,8,6\n")
	writeTestCSV(t, dir, constants.CSVFileRoutes,
		"route_id,distance_km,traffic_level,base_time_min\n1,10,Low,30\n")
	writeTestCSV(t, dir, constants.CSVFileOrders,
		"order_id,value_rs,route_id,delivery_time\n1,500,1,00:25\n")

	if _, err := svc.ImportFromDir(); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.Driver{}).Count(&count).Error; err != nil {
		t.Fatalf("count drivers failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("drivers want 1 after replace got %d", count)
	}
}

func TestImportFromDirCollectsRowErrors(t *testing.T) {
	svc, _, dir := setupDataIOServiceTest(t)

	writeTestCSV(t, dir, constants.CSVFileDrivers,
		"name,shift_hours,past_week_hours\nAmit,8,6\n,9,5\nRavi,99,4\n")
	writeTestCSV(t, dir, constants.CSVFileRoutes,
		"route_id,distance_km,traffic_level,base_time_min\n1,10,Low,30\n2,5,Gridlock,20\n")
	writeTestCSV(t, dir, constants.CSVFileOrders,
		"order_id,value_rs,route_id,delivery_time\n1,500,1,00:25\n2,750,42,00:40\n3,900,1,late\n")

	result, err := svc.ImportFromDir()
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.DriversImported != 1 || result.RoutesImported != 1 || result.OrdersImported != 1 {
		t.Fatalf("counts want 1/1/1 got %d/%d/%d",
			result.DriversImported, result.RoutesImported, result.OrdersImported)
	}
	// 空姓名、超限班次、未知交通等级、未知路线、非法耗时各记一条
	if len(result.Errors) != 5 {
		t.Fatalf("row errors want 5 got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestExportToDirWritesTimestampedFiles(t *testing.T) {
	svc, db, _ := setupDataIOServiceTest(t)

	route := models.Route{RouteNo: 1, DistanceKM: 10, TrafficLevel: constants.TrafficLevelLow, BaseTimeMin: 30}
	if err := db.Create(&route).Error; err != nil {
		t.Fatalf("create route failed: %v", err)
	}
	driver := models.Driver{Name: "Amit", ShiftHours: 8, PastWeekHours: models.FloatArray{6, 7}}
	if err := db.Create(&driver).Error; err != nil {
		t.Fatalf("create driver failed: %v", err)
	}

	result, err := svc.ExportToDir()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(result.Files) != 3 {
		t.Fatalf("files want 3 got %d", len(result.Files))
	}
	for _, path := range result.Files {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("exported file missing: %v", err)
		}
	}

	content, err := os.ReadFile(result.Files[0])
	if err != nil {
		t.Fatalf("read drivers export failed: %v", err)
	}
	if !strings.Contains(string(content), "Amit,8,6|7") {
		t.Fatalf("drivers export missing row, got:\n%s", string(content))
	}
}
