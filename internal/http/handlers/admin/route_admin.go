package admin

import (
	"errors"
	"strconv"

	"github.com/greencart-logistics/internal/http/response"
	"github.com/greencart-logistics/internal/service"

	"github.com/gin-gonic/gin"
)

// RouteRequest 创建/更新路线请求
type RouteRequest struct {
	RouteNo      int    `json:"route_no" binding:"required"`
	DistanceKM   int    `json:"distance_km" binding:"required"`
	TrafficLevel string `json:"traffic_level" binding:"required"`
	BaseTimeMin  int    `json:"base_time_min" binding:"required"`
}

func (r RouteRequest) toInput() service.RouteInput {
	return service.RouteInput{
		RouteNo:      r.RouteNo,
		DistanceKM:   r.DistanceKM,
		TrafficLevel: r.TrafficLevel,
		BaseTimeMin:  r.BaseTimeMin,
	}
}

func respondRouteValidationError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrInvalidRouteValues):
		respondError(c, response.CodeBadRequest, "route values must be positive", nil)
	case errors.Is(err, service.ErrInvalidTrafficLevel):
		respondError(c, response.CodeBadRequest, "traffic level must be Low, Medium or High", nil)
	case errors.Is(err, service.ErrDuplicateRouteNo):
		respondError(c, response.CodeBadRequest, "route number already exists", nil)
	default:
		return false
	}
	return true
}

// GetRoutes 获取路线列表
func (h *Handler) GetRoutes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	trafficLevel := c.Query("traffic_level")

	routes, total, err := h.RouteService.List(trafficLevel, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "route fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, routes, pagination)
}

// GetRoute 获取路线详情
func (h *Handler) GetRoute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	route, err := h.RouteService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "route not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "route fetch failed", err)
		return
	}
	response.Success(c, route)
}

// CreateRoute 创建路线
func (h *Handler) CreateRoute(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	route, err := h.RouteService.Create(req.toInput())
	if err != nil {
		if respondRouteValidationError(c, err) {
			return
		}
		respondError(c, response.CodeInternal, "route create failed", err)
		return
	}
	response.Success(c, route)
}

// UpdateRoute 更新路线
func (h *Handler) UpdateRoute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	route, err := h.RouteService.Update(id, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "route not found", nil)
			return
		}
		if respondRouteValidationError(c, err) {
			return
		}
		respondError(c, response.CodeInternal, "route update failed", err)
		return
	}
	response.Success(c, route)
}

// DeleteRoute 删除路线
func (h *Handler) DeleteRoute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.RouteService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "route not found", nil)
			return
		}
		if errors.Is(err, service.ErrRouteInUse) {
			respondError(c, response.CodeBadRequest, "route is referenced by orders", nil)
			return
		}
		respondError(c, response.CodeInternal, "route delete failed", err)
		return
	}
	response.Success(c, nil)
}
