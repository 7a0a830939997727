package admin

import (
	"errors"
	"strconv"

	"github.com/greencart-logistics/internal/http/response"
	"github.com/greencart-logistics/internal/service"
	"github.com/greencart-logistics/internal/simulation"

	"github.com/gin-gonic/gin"
)

// RunSimulationRequest 模拟运行请求
type RunSimulationRequest struct {
	AvailableDrivers int    `json:"available_drivers" binding:"required"`
	RouteStartTime   string `json:"route_start_time" binding:"required"`
	MaxHoursPerDay   int    `json:"max_hours_per_day" binding:"required"`
}

// RunSimulation 发起一次模拟运行
func (h *Handler) RunSimulation(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req RunSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	run, err := h.SimulationService.Run(adminID, service.RunInput{
		AvailableDrivers: req.AvailableDrivers,
		RouteStartTime:   req.RouteStartTime,
		MaxHoursPerDay:   req.MaxHoursPerDay,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDriverCount):
			respondError(c, response.CodeBadRequest, "available drivers out of range", nil)
		case errors.Is(err, service.ErrInvalidStartTime):
			respondError(c, response.CodeBadRequest, "route start time must be HH:MM", nil)
		case errors.Is(err, service.ErrInvalidMaxHours):
			respondError(c, response.CodeBadRequest, "max hours per day must be between 1 and 24", nil)
		case errors.Is(err, simulation.ErrNoDriversAvailable):
			respondError(c, response.CodeBadRequest, "no drivers available for simulation", nil)
		case errors.Is(err, simulation.ErrNoOrdersToProcess):
			respondError(c, response.CodeBadRequest, "no orders to process", nil)
		case errors.Is(err, simulation.ErrDataUnavailable):
			respondError(c, response.CodeInternal, "fleet data unavailable", err)
		default:
			respondError(c, response.CodeInternal, "simulation failed", err)
		}
		return
	}

	if h.DashboardService != nil {
		h.DashboardService.InvalidateCache(c.Request.Context(), adminID)
	}
	response.Success(c, run)
}

// GetSimulationHistory 获取模拟历史
func (h *Handler) GetSimulationHistory(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	runs, total, err := h.SimulationService.History(adminID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "simulation history fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, runs, pagination)
}

// GetSimulationRun 获取单次模拟详情
func (h *Handler) GetSimulationRun(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	run, err := h.SimulationService.GetByRunID(adminID, c.Param("run_id"))
	if err != nil {
		if errors.Is(err, service.ErrSimulationNotFound) {
			respondError(c, response.CodeNotFound, "simulation run not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "simulation fetch failed", err)
		return
	}
	response.Success(c, run)
}
