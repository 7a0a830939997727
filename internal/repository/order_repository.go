package repository

import (
	"errors"

	"github.com/greencart-logistics/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	List(filter OrderListFilter) ([]models.Order, int64, error)
	ListAll() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	GetByOrderNo(orderNo int) (*models.Order, error)
	Count() (int64, error)
	CountByRouteID(routeID uint) (int64, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	Delete(id uint) error
	ReplaceAll(tx *gorm.DB, orders []models.Order) error
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// List 订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.RouteNo > 0 {
		query = query.Joins("JOIN routes ON routes.id = orders.route_id").
			Where("routes.route_no = ?", filter.RouteNo)
	}
	if filter.DriverID > 0 {
		query = query.Where("assigned_driver_id = ?", filter.DriverID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithRoute {
		query = query.Preload("Route")
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("orders.order_no ASC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAll 按主键顺序获取全部订单
func (r *GormOrderRepository) ListAll() ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := r.db.Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Route").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo 根据业务编号获取订单
func (r *GormOrderRepository) GetByOrderNo(orderNo int) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Count 统计订单数量
func (r *GormOrderRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByRouteID 统计指定路线的订单数量
func (r *GormOrderRepository) CountByRouteID(routeID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("route_id = ?", routeID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建订单
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// Update 更新订单
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// Delete 删除订单
func (r *GormOrderRepository) Delete(id uint) error {
	return r.db.Delete(&models.Order{}, id).Error
}

// ReplaceAll 清空并批量写入订单（CSV 导入）
func (r *GormOrderRepository) ReplaceAll(tx *gorm.DB, orders []models.Order) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Where("1 = 1").Delete(&models.Order{}).Error; err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}
	return tx.Create(&orders).Error
}
