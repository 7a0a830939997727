package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDriverServiceTest(t *testing.T) (*DriverService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:driver_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Driver{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewDriverService(repository.NewDriverRepository(db)), db
}

func TestDriverCreateAndGet(t *testing.T) {
	svc, _ := setupDriverServiceTest(t)

	created, err := svc.Create(DriverInput{Name: "Amit", ShiftHours: 8, PastWeekHours: []float64{6, 8, 7.5}})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created driver has no id")
	}

	got, err := svc.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "Amit" || got.ShiftHours != 8 {
		t.Fatalf("unexpected driver %+v", got)
	}
	if len(got.PastWeekHours) != 3 || got.PastWeekHours[2] != 7.5 {
		t.Fatalf("unexpected past week hours %v", got.PastWeekHours)
	}
}

func TestDriverCreateValidation(t *testing.T) {
	svc, _ := setupDriverServiceTest(t)

	cases := []struct {
		name  string
		input DriverInput
		want  error
	}{
		{"empty name", DriverInput{Name: "  ", ShiftHours: 8}, ErrInvalidDriverName},
		{"zero shift", DriverInput{Name: "Amit", ShiftHours: 0}, ErrInvalidShiftHours},
		{"shift above cap", DriverInput{Name: "Amit", ShiftHours: 13}, ErrInvalidShiftHours},
		{"too many entries", DriverInput{Name: "Amit", ShiftHours: 8, PastWeekHours: []float64{1, 2, 3, 4, 5, 6, 7, 8}}, ErrInvalidPastWeekHours},
		{"negative hours", DriverInput{Name: "Amit", ShiftHours: 8, PastWeekHours: []float64{-1}}, ErrInvalidPastWeekHours},
		{"hours above day", DriverInput{Name: "Amit", ShiftHours: 8, PastWeekHours: []float64{25}}, ErrInvalidPastWeekHours},
	}
	for _, tc := range cases {
		if _, err := svc.Create(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}
}

func TestDriverUpdateAndDelete(t *testing.T) {
	svc, _ := setupDriverServiceTest(t)

	created, err := svc.Create(DriverInput{Name: "Amit", ShiftHours: 8, PastWeekHours: []float64{6}})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(created.ID, DriverInput{Name: "Priya", ShiftHours: 10, PastWeekHours: []float64{9, 10}})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Priya" || updated.ShiftHours != 10 {
		t.Fatalf("unexpected driver after update %+v", updated)
	}
	if !updated.IsOverworked() {
		t.Fatal("driver with latest day 10h should be overworked")
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetByID(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete want ErrNotFound got %v", err)
	}

	if err := svc.Delete(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing want ErrNotFound got %v", err)
	}
}

func TestDriverListSearch(t *testing.T) {
	svc, _ := setupDriverServiceTest(t)

	for _, name := range []string{"Amit", "Priya", "Arun"} {
		if _, err := svc.Create(DriverInput{Name: name, ShiftHours: 8}); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}

	drivers, total, err := svc.List("Am", 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(drivers) != 1 {
		t.Fatalf("search want 1 driver got total=%d len=%d", total, len(drivers))
	}
	if drivers[0].Name != "Amit" {
		t.Fatalf("search result want Amit got %s", drivers[0].Name)
	}
}
