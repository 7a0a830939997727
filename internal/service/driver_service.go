package service

import (
	"strings"

	"github.com/greencart-logistics/internal/constants"
	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/repository"
)

// DriverService 司机业务服务
type DriverService struct {
	repo repository.DriverRepository
}

// NewDriverService 创建司机服务
func NewDriverService(repo repository.DriverRepository) *DriverService {
	return &DriverService{repo: repo}
}

// DriverInput 创建/更新司机输入
type DriverInput struct {
	Name          string
	ShiftHours    int
	PastWeekHours []float64
}

// List 司机分页列表
func (s *DriverService) List(search string, page, pageSize int) ([]models.Driver, int64, error) {
	filter := repository.DriverListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(search),
	}
	return s.repo.List(filter)
}

// GetByID 根据 ID 获取司机
func (s *DriverService) GetByID(id uint) (*models.Driver, error) {
	driver, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrNotFound
	}
	return driver, nil
}

// Create 创建司机
func (s *DriverService) Create(input DriverInput) (*models.Driver, error) {
	driver, err := buildDriverEntity(input, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Update 更新司机
func (s *DriverService) Update(id uint, input DriverInput) (*models.Driver, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	driver, err := buildDriverEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Delete 删除司机
func (s *DriverService) Delete(id uint) error {
	driver, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if driver == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func buildDriverEntity(input DriverInput, existing *models.Driver) (*models.Driver, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidDriverName
	}
	if input.ShiftHours < constants.DriverMinShiftHours || input.ShiftHours > constants.DriverMaxShiftHours {
		return nil, ErrInvalidShiftHours
	}
	if err := validatePastWeekHours(input.PastWeekHours); err != nil {
		return nil, err
	}

	driver := existing
	if driver == nil {
		driver = &models.Driver{}
	}
	driver.Name = name
	driver.ShiftHours = input.ShiftHours
	driver.PastWeekHours = models.FloatArray(input.PastWeekHours)
	if driver.PastWeekHours == nil {
		driver.PastWeekHours = models.FloatArray{}
	}
	return driver, nil
}

func validatePastWeekHours(hours []float64) error {
	if len(hours) > constants.DriverMaxPastWeekDays {
		return ErrInvalidPastWeekHours
	}
	for _, h := range hours {
		if h < 0 || h > constants.DriverMaxDailyHours {
			return ErrInvalidPastWeekHours
		}
	}
	return nil
}
