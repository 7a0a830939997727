package repository

import (
	"errors"
	"strings"

	"github.com/greencart-logistics/internal/models"

	"gorm.io/gorm"
)

// DriverRepository 司机数据访问接口
type DriverRepository interface {
	List(filter DriverListFilter) ([]models.Driver, int64, error)
	ListAll() ([]models.Driver, error)
	GetByID(id uint) (*models.Driver, error)
	Count() (int64, error)
	Create(driver *models.Driver) error
	Update(driver *models.Driver) error
	Delete(id uint) error
	ReplaceAll(tx *gorm.DB, drivers []models.Driver) error
}

// GormDriverRepository GORM 实现
type GormDriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository 创建司机仓库
func NewDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// List 司机列表
func (r *GormDriverRepository) List(filter DriverListFilter) ([]models.Driver, int64, error) {
	var drivers []models.Driver
	query := r.db.Model(&models.Driver{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id ASC").Find(&drivers).Error; err != nil {
		return nil, 0, err
	}
	return drivers, total, nil
}

// ListAll 按主键顺序获取全部司机
func (r *GormDriverRepository) ListAll() ([]models.Driver, error) {
	drivers := make([]models.Driver, 0)
	if err := r.db.Order("id ASC").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

// GetByID 根据 ID 获取司机
func (r *GormDriverRepository) GetByID(id uint) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// Count 统计司机数量
func (r *GormDriverRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Driver{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建司机
func (r *GormDriverRepository) Create(driver *models.Driver) error {
	return r.db.Create(driver).Error
}

// Update 更新司机
func (r *GormDriverRepository) Update(driver *models.Driver) error {
	return r.db.Save(driver).Error
}

// Delete 删除司机
func (r *GormDriverRepository) Delete(id uint) error {
	return r.db.Delete(&models.Driver{}, id).Error
}

// ReplaceAll 清空并批量写入司机（CSV 导入）
func (r *GormDriverRepository) ReplaceAll(tx *gorm.DB, drivers []models.Driver) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Where("1 = 1").Delete(&models.Driver{}).Error; err != nil {
		return err
	}
	if len(drivers) == 0 {
		return nil
	}
	return tx.Create(&drivers).Error
}
