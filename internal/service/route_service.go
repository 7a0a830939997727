package service

import (
	"strings"

	"github.com/greencart-logistics/internal/constants"
	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/repository"
)

// RouteService 路线业务服务
type RouteService struct {
	repo      repository.RouteRepository
	orderRepo repository.OrderRepository
}

// NewRouteService 创建路线服务
func NewRouteService(repo repository.RouteRepository, orderRepo repository.OrderRepository) *RouteService {
	return &RouteService{repo: repo, orderRepo: orderRepo}
}

// RouteInput 创建/更新路线输入
type RouteInput struct {
	RouteNo      int
	DistanceKM   int
	TrafficLevel string
	BaseTimeMin  int
}

// List 路线分页列表
func (s *RouteService) List(trafficLevel string, page, pageSize int) ([]models.Route, int64, error) {
	filter := repository.RouteListFilter{
		Page:         page,
		PageSize:     pageSize,
		TrafficLevel: strings.TrimSpace(trafficLevel),
	}
	return s.repo.List(filter)
}

// GetByID 根据 ID 获取路线
func (s *RouteService) GetByID(id uint) (*models.Route, error) {
	route, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrNotFound
	}
	return route, nil
}

// Create 创建路线
func (s *RouteService) Create(input RouteInput) (*models.Route, error) {
	route, err := buildRouteEntity(input, nil)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByRouteNo(route.RouteNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRouteNo
	}

	if err := s.repo.Create(route); err != nil {
		return nil, err
	}
	return route, nil
}

// Update 更新路线
func (s *RouteService) Update(id uint, input RouteInput) (*models.Route, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	// 路线编号变更时检查唯一性
	if input.RouteNo != existing.RouteNo {
		conflict, err := s.repo.GetByRouteNo(input.RouteNo)
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.ID != id {
			return nil, ErrDuplicateRouteNo
		}
	}

	route, err := buildRouteEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(route); err != nil {
		return nil, err
	}
	return route, nil
}

// Delete 删除路线，被订单引用时拒绝
func (s *RouteService) Delete(id uint) error {
	route, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if route == nil {
		return ErrNotFound
	}

	count, err := s.orderRepo.CountByRouteID(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRouteInUse
	}
	return s.repo.Delete(id)
}

func buildRouteEntity(input RouteInput, existing *models.Route) (*models.Route, error) {
	if input.RouteNo <= 0 || input.DistanceKM <= 0 || input.BaseTimeMin <= 0 {
		return nil, ErrInvalidRouteValues
	}
	level := normalizeTrafficLevel(input.TrafficLevel)
	if level == "" {
		return nil, ErrInvalidTrafficLevel
	}

	route := existing
	if route == nil {
		route = &models.Route{}
	}
	route.RouteNo = input.RouteNo
	route.DistanceKM = input.DistanceKM
	route.TrafficLevel = level
	route.BaseTimeMin = input.BaseTimeMin
	return route, nil
}

func normalizeTrafficLevel(level string) string {
	trimmed := strings.TrimSpace(level)
	for _, valid := range constants.TrafficLevels {
		if strings.EqualFold(trimmed, valid) {
			return valid
		}
	}
	return ""
}
