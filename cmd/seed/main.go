package main

import (
	"fmt"

	"github.com/greencart-logistics/internal/config"
	"github.com/greencart-logistics/internal/constants"
	"github.com/greencart-logistics/internal/logger"
	"github.com/greencart-logistics/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加司机
	drivers := []models.Driver{
		{Name: "Amit", ShiftHours: 6, PastWeekHours: models.FloatArray{6, 8, 7, 7, 7, 6, 10}},
		{Name: "Priya", ShiftHours: 6, PastWeekHours: models.FloatArray{10, 9, 6, 6, 6, 7, 7}},
		{Name: "Rahul", ShiftHours: 10, PastWeekHours: models.FloatArray{10, 6, 10, 7, 10, 9, 7}},
		{Name: "Neha", ShiftHours: 9, PastWeekHours: models.FloatArray{10, 8, 6, 7, 10, 8, 8}},
		{Name: "Karan", ShiftHours: 7, PastWeekHours: models.FloatArray{7, 8, 6, 6, 9, 6, 8}},
		{Name: "Sneha", ShiftHours: 8, PastWeekHours: models.FloatArray{10, 8, 6, 9, 10, 6, 9}},
	}

	for _, drv := range drivers {
		var existing models.Driver
		if err := models.DB.Where("name = ?", drv.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&drv).Error; err != nil {
				stdLog.Printf("Failed to create driver %s: %v", drv.Name, err)
			} else {
				stdLog.Printf("Created driver: %s", drv.Name)
			}
		} else {
			existing.ShiftHours = drv.ShiftHours
			existing.PastWeekHours = drv.PastWeekHours
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update driver %s: %v", drv.Name, err)
			} else {
				stdLog.Printf("Updated driver: %s", drv.Name)
			}
		}
	}

	// 添加路线
	routes := []models.Route{
		{RouteNo: 1, DistanceKM: 25, TrafficLevel: constants.TrafficLevelHigh, BaseTimeMin: 125},
		{RouteNo: 2, DistanceKM: 12, TrafficLevel: constants.TrafficLevelHigh, BaseTimeMin: 48},
		{RouteNo: 3, DistanceKM: 6, TrafficLevel: constants.TrafficLevelLow, BaseTimeMin: 18},
		{RouteNo: 4, DistanceKM: 15, TrafficLevel: constants.TrafficLevelMedium, BaseTimeMin: 60},
		{RouteNo: 5, DistanceKM: 7, TrafficLevel: constants.TrafficLevelLow, BaseTimeMin: 35},
		{RouteNo: 6, DistanceKM: 15, TrafficLevel: constants.TrafficLevelLow, BaseTimeMin: 75},
		{RouteNo: 7, DistanceKM: 20, TrafficLevel: constants.TrafficLevelMedium, BaseTimeMin: 100},
		{RouteNo: 8, DistanceKM: 19, TrafficLevel: constants.TrafficLevelLow, BaseTimeMin: 76},
		{RouteNo: 9, DistanceKM: 9, TrafficLevel: constants.TrafficLevelLow, BaseTimeMin: 45},
		{RouteNo: 10, DistanceKM: 22, TrafficLevel: constants.TrafficLevelHigh, BaseTimeMin: 88},
	}

	routeIDs := map[int]uint{}
	for _, rt := range routes {
		var existing models.Route
		if err := models.DB.Where("route_no = ?", rt.RouteNo).First(&existing).Error; err != nil {
			if err := models.DB.Create(&rt).Error; err != nil {
				stdLog.Printf("Failed to create route %d: %v", rt.RouteNo, err)
				continue
			}
			stdLog.Printf("Created route: %d", rt.RouteNo)
			routeIDs[rt.RouteNo] = rt.ID
		} else {
			existing.DistanceKM = rt.DistanceKM
			existing.TrafficLevel = rt.TrafficLevel
			existing.BaseTimeMin = rt.BaseTimeMin
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update route %d: %v", rt.RouteNo, err)
				continue
			}
			stdLog.Printf("Updated route: %d", rt.RouteNo)
			routeIDs[rt.RouteNo] = existing.ID
		}
	}

	// 添加订单
	orders := []struct {
		OrderNo      int
		Value        float64
		RouteNo      int
		DeliveryTime string
	}{
		{OrderNo: 1, Value: 2594, RouteNo: 7, DeliveryTime: "02:07"},
		{OrderNo: 2, Value: 1835, RouteNo: 6, DeliveryTime: "01:19"},
		{OrderNo: 3, Value: 766, RouteNo: 9, DeliveryTime: "01:06"},
		{OrderNo: 4, Value: 572, RouteNo: 1, DeliveryTime: "02:02"},
		{OrderNo: 5, Value: 826, RouteNo: 3, DeliveryTime: "00:35"},
		{OrderNo: 6, Value: 2642, RouteNo: 2, DeliveryTime: "01:02"},
		{OrderNo: 7, Value: 1763, RouteNo: 10, DeliveryTime: "01:47"},
		{OrderNo: 8, Value: 2367, RouteNo: 5, DeliveryTime: "01:00"},
		{OrderNo: 9, Value: 247, RouteNo: 4, DeliveryTime: "01:12"},
		{OrderNo: 10, Value: 1292, RouteNo: 8, DeliveryTime: "01:12"},
		{OrderNo: 11, Value: 1402, RouteNo: 7, DeliveryTime: "02:05"},
		{OrderNo: 12, Value: 2423, RouteNo: 2, DeliveryTime: "00:53"},
	}

	for _, ord := range orders {
		routeID, ok := routeIDs[ord.RouteNo]
		if !ok {
			stdLog.Printf("Skip order %d: route %d missing", ord.OrderNo, ord.RouteNo)
			continue
		}
		record := models.Order{
			OrderNo:      ord.OrderNo,
			Value:        models.NewMoneyFromDecimal(decimal.NewFromFloat(ord.Value)),
			RouteID:      routeID,
			DeliveryTime: ord.DeliveryTime,
		}
		var existing models.Order
		if err := models.DB.Where("order_no = ?", ord.OrderNo).First(&existing).Error; err != nil {
			if err := models.DB.Create(&record).Error; err != nil {
				stdLog.Printf("Failed to create order %d: %v", ord.OrderNo, err)
			} else {
				stdLog.Printf("Created order: %d", ord.OrderNo)
			}
		} else {
			existing.Value = record.Value
			existing.RouteID = record.RouteID
			existing.DeliveryTime = record.DeliveryTime
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update order %d: %v", ord.OrderNo, err)
			} else {
				stdLog.Printf("Updated order: %d", ord.OrderNo)
			}
		}
	}

	fmt.Println("\n✅ Sample fleet data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 6 Drivers")
	fmt.Println("- 10 Routes")
	fmt.Println("- 12 Orders")
}
