package service

import (
	"strconv"
	"strings"

	"github.com/greencart-logistics/internal/models"
	"github.com/greencart-logistics/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderService 订单业务服务
type OrderService struct {
	repo      repository.OrderRepository
	routeRepo repository.RouteRepository
}

// NewOrderService 创建订单服务
func NewOrderService(repo repository.OrderRepository, routeRepo repository.RouteRepository) *OrderService {
	return &OrderService{repo: repo, routeRepo: routeRepo}
}

// OrderInput 创建/更新订单输入
type OrderInput struct {
	OrderNo      int
	Value        decimal.Decimal
	RouteNo      int
	DeliveryTime string
}

// List 订单分页列表，可按路线编号与司机过滤
func (s *OrderService) List(routeNo int, driverID uint, page, pageSize int) ([]models.Order, int64, error) {
	filter := repository.OrderListFilter{
		Page:      page,
		PageSize:  pageSize,
		RouteNo:   routeNo,
		DriverID:  driverID,
		WithRoute: true,
	}
	return s.repo.List(filter)
}

// GetByID 根据 ID 获取订单
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// Create 创建订单
func (s *OrderService) Create(input OrderInput) (*models.Order, error) {
	order, err := s.buildOrderEntity(input, nil)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByOrderNo(order.OrderNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateOrderNo
	}

	if err := s.repo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update 更新订单
func (s *OrderService) Update(id uint, input OrderInput) (*models.Order, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if input.OrderNo != existing.OrderNo {
		conflict, err := s.repo.GetByOrderNo(input.OrderNo)
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.ID != id {
			return nil, ErrDuplicateOrderNo
		}
	}

	order, err := s.buildOrderEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete 删除订单
func (s *OrderService) Delete(id uint) error {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func (s *OrderService) buildOrderEntity(input OrderInput, existing *models.Order) (*models.Order, error) {
	if input.OrderNo <= 0 {
		return nil, ErrInvalidOrderValue
	}
	if input.Value.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidOrderValue
	}
	if !isValidClockTime(input.DeliveryTime) {
		return nil, ErrInvalidDeliveryTime
	}

	route, err := s.routeRepo.GetByRouteNo(input.RouteNo)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}

	order := existing
	if order == nil {
		order = &models.Order{}
	}
	order.OrderNo = input.OrderNo
	order.Value = models.NewMoneyFromDecimal(input.Value)
	order.RouteID = route.ID
	order.Route = route
	order.DeliveryTime = strings.TrimSpace(input.DeliveryTime)
	return order, nil
}

// isValidClockTime 校验 HH:MM 格式，小时不限上限（配送耗时可超过 24 小时）
func isValidClockTime(value string) bool {
	trimmed := strings.TrimSpace(value)
	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 {
		return false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return false
	}
	return true
}
