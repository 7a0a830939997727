package repository

import (
	"errors"
	"time"

	"github.com/greencart-logistics/internal/models"

	"gorm.io/gorm"
)

// SimulationRunRepository 模拟运行记录数据访问接口
type SimulationRunRepository interface {
	Create(run *models.SimulationRun) error
	List(filter SimulationRunListFilter) ([]models.SimulationRun, int64, error)
	ListRecent(adminID uint, limit int) ([]models.SimulationRun, error)
	GetByRunID(runID string, adminID uint) (*models.SimulationRun, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// GormSimulationRunRepository GORM 实现
type GormSimulationRunRepository struct {
	db *gorm.DB
}

// NewSimulationRunRepository 创建模拟运行仓库
func NewSimulationRunRepository(db *gorm.DB) *GormSimulationRunRepository {
	return &GormSimulationRunRepository{db: db}
}

// Create 持久化一次模拟运行
func (r *GormSimulationRunRepository) Create(run *models.SimulationRun) error {
	return r.db.Create(run).Error
}

// List 按管理员分页查询历史记录，最新的在前
func (r *GormSimulationRunRepository) List(filter SimulationRunListFilter) ([]models.SimulationRun, int64, error) {
	var runs []models.SimulationRun
	query := r.db.Model(&models.SimulationRun{})

	if filter.AdminID > 0 {
		query = query.Where("admin_id = ?", filter.AdminID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&runs).Error; err != nil {
		return nil, 0, err
	}
	return runs, total, nil
}

// ListRecent 获取某管理员最近的若干次运行
func (r *GormSimulationRunRepository) ListRecent(adminID uint, limit int) ([]models.SimulationRun, error) {
	if limit <= 0 {
		limit = 5
	}
	runs := make([]models.SimulationRun, 0, limit)
	query := r.db.Model(&models.SimulationRun{})
	if adminID > 0 {
		query = query.Where("admin_id = ?", adminID)
	}
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// GetByRunID 根据运行编号获取记录，按管理员归属过滤
func (r *GormSimulationRunRepository) GetByRunID(runID string, adminID uint) (*models.SimulationRun, error) {
	var run models.SimulationRun
	query := r.db.Where("run_id = ?", runID)
	if adminID > 0 {
		query = query.Where("admin_id = ?", adminID)
	}
	if err := query.First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// DeleteOlderThan 删除早于截止时间的运行记录，返回删除条数
func (r *GormSimulationRunRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.SimulationRun{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
