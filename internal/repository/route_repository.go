package repository

import (
	"errors"
	"strings"

	"github.com/greencart-logistics/internal/models"

	"gorm.io/gorm"
)

// RouteRepository 路线数据访问接口
type RouteRepository interface {
	List(filter RouteListFilter) ([]models.Route, int64, error)
	ListAll() ([]models.Route, error)
	GetByID(id uint) (*models.Route, error)
	GetByRouteNo(routeNo int) (*models.Route, error)
	Count() (int64, error)
	CountByTrafficLevel(level string) (int64, error)
	Create(route *models.Route) error
	Update(route *models.Route) error
	Delete(id uint) error
	ReplaceAll(tx *gorm.DB, routes []models.Route) error
}

// GormRouteRepository GORM 实现
type GormRouteRepository struct {
	db *gorm.DB
}

// NewRouteRepository 创建路线仓库
func NewRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

// List 路线列表
func (r *GormRouteRepository) List(filter RouteListFilter) ([]models.Route, int64, error) {
	var routes []models.Route
	query := r.db.Model(&models.Route{})

	if level := strings.TrimSpace(filter.TrafficLevel); level != "" {
		query = query.Where("traffic_level = ?", level)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("route_no ASC").Find(&routes).Error; err != nil {
		return nil, 0, err
	}
	return routes, total, nil
}

// ListAll 按主键顺序获取全部路线
func (r *GormRouteRepository) ListAll() ([]models.Route, error) {
	routes := make([]models.Route, 0)
	if err := r.db.Order("id ASC").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

// GetByID 根据 ID 获取路线
func (r *GormRouteRepository) GetByID(id uint) (*models.Route, error) {
	var route models.Route
	if err := r.db.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &route, nil
}

// GetByRouteNo 根据业务编号获取路线
func (r *GormRouteRepository) GetByRouteNo(routeNo int) (*models.Route, error) {
	var route models.Route
	if err := r.db.Where("route_no = ?", routeNo).First(&route).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &route, nil
}

// Count 统计路线数量
func (r *GormRouteRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Route{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByTrafficLevel 统计指定交通等级的路线数量
func (r *GormRouteRepository) CountByTrafficLevel(level string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Route{}).Where("traffic_level = ?", level).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建路线
func (r *GormRouteRepository) Create(route *models.Route) error {
	return r.db.Create(route).Error
}

// Update 更新路线
func (r *GormRouteRepository) Update(route *models.Route) error {
	return r.db.Save(route).Error
}

// Delete 删除路线
func (r *GormRouteRepository) Delete(id uint) error {
	return r.db.Delete(&models.Route{}, id).Error
}

// ReplaceAll 清空并批量写入路线（CSV 导入）
func (r *GormRouteRepository) ReplaceAll(tx *gorm.DB, routes []models.Route) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Where("1 = 1").Delete(&models.Route{}).Error; err != nil {
		return err
	}
	if len(routes) == 0 {
		return nil
	}
	return tx.Create(&routes).Error
}
