package admin

import (
	"github.com/greencart-logistics/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats 获取仪表盘核心指标
func (h *Handler) GetDashboardStats(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	stats, err := h.DashboardService.Stats(c.Request.Context(), adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "dashboard stats fetch failed", err)
		return
	}
	response.Success(c, stats)
}

// GetDashboardCharts 获取仪表盘图表数据
func (h *Handler) GetDashboardCharts(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	charts, err := h.DashboardService.Charts(c.Request.Context(), adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "dashboard charts fetch failed", err)
		return
	}
	response.Success(c, charts)
}
