package repository

import (
	"github.com/greencart-logistics/internal/models"

	"gorm.io/gorm"
)

// FleetRepository 车队快照数据访问接口
// 模拟运行前在单个读事务内取出司机/路线/订单的一致视图
type FleetRepository interface {
	LoadSnapshotData() ([]models.Driver, []models.Route, []models.Order, error)
}

// GormFleetRepository GORM 实现
type GormFleetRepository struct {
	db *gorm.DB
}

// NewFleetRepository 创建车队仓库
func NewFleetRepository(db *gorm.DB) *GormFleetRepository {
	return &GormFleetRepository{db: db}
}

// LoadSnapshotData 在一个事务内读取全部司机、路线与订单
// 集合均按主键升序返回，保证分配顺序稳定
func (r *GormFleetRepository) LoadSnapshotData() ([]models.Driver, []models.Route, []models.Order, error) {
	var (
		drivers []models.Driver
		routes  []models.Route
		orders  []models.Order
	)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id ASC").Find(&drivers).Error; err != nil {
			return err
		}
		if err := tx.Order("id ASC").Find(&routes).Error; err != nil {
			return err
		}
		return tx.Order("id ASC").Find(&orders).Error
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return drivers, routes, orders, nil
}
