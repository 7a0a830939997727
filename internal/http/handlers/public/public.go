package public

import (
	"github.com/greencart-logistics/internal/constants"
	"github.com/greencart-logistics/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAPIInfo 获取 API 基本信息与可用端点
func (h *Handler) GetAPIInfo(c *gin.Context) {
	response.Success(c, gin.H{
		"name":    "GreenCart Logistics API",
		"version": "1.0",
		"endpoints": gin.H{
			"login":      "/api/v1/admin/login",
			"drivers":    "/api/v1/admin/drivers",
			"routes":     "/api/v1/admin/routes",
			"orders":     "/api/v1/admin/orders",
			"simulation": "/api/v1/admin/simulation/run",
			"dashboard":  "/api/v1/admin/dashboard/stats",
		},
		"captcha": gin.H{
			"provider":       h.CaptchaService.Provider(),
			"login_required": h.CaptchaService.IsSceneEnabled(constants.CaptchaSceneLogin),
		},
	})
}
