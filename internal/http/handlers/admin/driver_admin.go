package admin

import (
	"errors"
	"strconv"

	"github.com/greencart-logistics/internal/http/response"
	"github.com/greencart-logistics/internal/service"

	"github.com/gin-gonic/gin"
)

// DriverRequest 创建/更新司机请求
type DriverRequest struct {
	Name          string    `json:"name" binding:"required"`
	ShiftHours    int       `json:"shift_hours" binding:"required"`
	PastWeekHours []float64 `json:"past_week_hours"`
}

func (r DriverRequest) toInput() service.DriverInput {
	return service.DriverInput{
		Name:          r.Name,
		ShiftHours:    r.ShiftHours,
		PastWeekHours: r.PastWeekHours,
	}
}

func respondDriverValidationError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrInvalidDriverName):
		respondError(c, response.CodeBadRequest, "driver name required", nil)
	case errors.Is(err, service.ErrInvalidShiftHours):
		respondError(c, response.CodeBadRequest, "shift hours must be between 1 and 12", nil)
	case errors.Is(err, service.ErrInvalidPastWeekHours):
		respondError(c, response.CodeBadRequest, "past week hours invalid", nil)
	default:
		return false
	}
	return true
}

// GetDrivers 获取司机列表
func (h *Handler) GetDrivers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	search := c.Query("search")

	drivers, total, err := h.DriverService.List(search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "driver fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, drivers, pagination)
}

// GetDriver 获取司机详情
func (h *Handler) GetDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	driver, err := h.DriverService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "driver not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "driver fetch failed", err)
		return
	}
	response.Success(c, driver)
}

// CreateDriver 创建司机
func (h *Handler) CreateDriver(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	driver, err := h.DriverService.Create(req.toInput())
	if err != nil {
		if respondDriverValidationError(c, err) {
			return
		}
		respondError(c, response.CodeInternal, "driver create failed", err)
		return
	}
	response.Success(c, driver)
}

// UpdateDriver 更新司机
func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	driver, err := h.DriverService.Update(id, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "driver not found", nil)
			return
		}
		if respondDriverValidationError(c, err) {
			return
		}
		respondError(c, response.CodeInternal, "driver update failed", err)
		return
	}
	response.Success(c, driver)
}

// DeleteDriver 删除司机
func (h *Handler) DeleteDriver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.DriverService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "driver not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "driver delete failed", err)
		return
	}
	response.Success(c, nil)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
