package queue

import (
	"encoding/json"

	"github.com/greencart-logistics/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskSimulationPrune 清理过期模拟记录任务
	TaskSimulationPrune = constants.TaskSimulationPrune
	// TaskDataExport CSV 数据导出任务
	TaskDataExport = constants.TaskDataExport
)

// SimulationPrunePayload 清理任务载荷
type SimulationPrunePayload struct {
	RetentionDays int `json:"retention_days"`
}

// DataExportPayload 导出任务载荷
type DataExportPayload struct {
	RequestedBy uint `json:"requested_by"`
}

// NewSimulationPruneTask 创建清理过期模拟记录任务
func NewSimulationPruneTask(payload SimulationPrunePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSimulationPrune, body), nil
}

// NewDataExportTask 创建数据导出任务
func NewDataExportTask(payload DataExportPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDataExport, body), nil
}
