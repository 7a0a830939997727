package admin

import (
	"github.com/greencart-logistics/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ImportData 从数据目录导入 CSV 车队数据
func (h *Handler) ImportData(c *gin.Context) {
	result, err := h.DataIOService.ImportFromDir()
	if err != nil {
		respondError(c, response.CodeInternal, "data import failed", err)
		return
	}

	requestLog(c).Infow("admin_data_import",
		"drivers", result.DriversImported,
		"routes", result.RoutesImported,
		"orders", result.OrdersImported,
		"row_errors", len(result.Errors),
	)
	response.Success(c, result)
}

// ExportData 导出 CSV 车队数据
// 队列可用时异步执行，否则同步导出
func (h *Handler) ExportData(c *gin.Context) {
	if h.QueueClient != nil && h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueDataExport(c.Request.Context()); err != nil {
			respondError(c, response.CodeInternal, "data export enqueue failed", err)
			return
		}
		response.SuccessWithMsg(c, "export queued", gin.H{"queued": true})
		return
	}

	result, err := h.DataIOService.ExportToDir()
	if err != nil {
		respondError(c, response.CodeInternal, "data export failed", err)
		return
	}
	response.Success(c, result)
}
