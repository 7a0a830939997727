package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/greencart-logistics/internal/logger"
	"github.com/greencart-logistics/internal/provider"
	"github.com/greencart-logistics/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskSimulationPrune, c.handleSimulationPrune)
	mux.HandleFunc(queue.TaskDataExport, c.handleDataExport)
}

func (c *Consumer) handleSimulationPrune(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_simulation_prune_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.SimulationPrunePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_simulation_prune_unmarshal_failed", "error", err)
		return err
	}
	deleted, err := c.pruneExpiredRuns(payload.RetentionDays)
	if err != nil {
		logger.Warnw("worker_simulation_prune_failed", "retention_days", payload.RetentionDays, "error", err)
		return err
	}
	if deleted > 0 {
		logger.Infow("worker_simulation_prune_completed", "deleted", deleted, "retention_days", payload.RetentionDays)
	}
	return nil
}

func (c *Consumer) handleDataExport(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_data_export_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.DataExportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_data_export_unmarshal_failed", "error", err)
		return err
	}
	if c.DataIOService == nil {
		logger.Warnw("worker_data_export_skip_service_nil")
		return nil
	}
	result, err := c.DataIOService.ExportToDir()
	if err != nil {
		logger.Warnw("worker_data_export_failed", "error", err)
		return err
	}
	logger.Infow("worker_data_export_completed", "files", result.Files, "requested_by", payload.RequestedBy)
	return nil
}

// pruneExpiredRuns 删除超出保留期的模拟记录
func (c *Consumer) pruneExpiredRuns(retentionDays int) (int64, error) {
	if c == nil || c.SimulationRunRepo == nil {
		return 0, nil
	}
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
		if c.Config != nil && c.Config.Simulation.HistoryRetentionDays > 0 {
			retentionDays = c.Config.Simulation.HistoryRetentionDays
		}
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return c.SimulationRunRepo.DeleteOlderThan(cutoff)
}
