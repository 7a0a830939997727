package admin

import (
	"errors"
	"strconv"

	"github.com/greencart-logistics/internal/http/response"
	"github.com/greencart-logistics/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OrderRequest 创建/更新订单请求
type OrderRequest struct {
	OrderNo      int     `json:"order_no" binding:"required"`
	Value        float64 `json:"value" binding:"required"`
	RouteNo      int     `json:"route_no" binding:"required"`
	DeliveryTime string  `json:"delivery_time" binding:"required"`
}

func (r OrderRequest) toInput() service.OrderInput {
	return service.OrderInput{
		OrderNo:      r.OrderNo,
		Value:        decimal.NewFromFloat(r.Value),
		RouteNo:      r.RouteNo,
		DeliveryTime: r.DeliveryTime,
	}
}

func respondOrderValidationError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrInvalidOrderValue):
		respondError(c, response.CodeBadRequest, "order number and value must be positive", nil)
	case errors.Is(err, service.ErrInvalidDeliveryTime):
		respondError(c, response.CodeBadRequest, "delivery time must be HH:MM", nil)
	case errors.Is(err, service.ErrRouteNotFound):
		respondError(c, response.CodeBadRequest, "route not found", nil)
	case errors.Is(err, service.ErrDuplicateOrderNo):
		respondError(c, response.CodeBadRequest, "order number already exists", nil)
	default:
		return false
	}
	return true
}

// GetOrders 获取订单列表
func (h *Handler) GetOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	routeNo, _ := strconv.Atoi(c.Query("route_no"))
	driverID, _ := strconv.ParseUint(c.Query("driver_id"), 10, 64)

	orders, total, err := h.OrderService.List(routeNo, uint(driverID), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}
	response.Success(c, order)
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.OrderService.Create(req.toInput())
	if err != nil {
		if respondOrderValidationError(c, err) {
			return
		}
		respondError(c, response.CodeInternal, "order create failed", err)
		return
	}
	response.Success(c, order)
}

// UpdateOrder 更新订单
func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.OrderService.Update(id, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		if respondOrderValidationError(c, err) {
			return
		}
		respondError(c, response.CodeInternal, "order update failed", err)
		return
	}
	response.Success(c, order)
}

// DeleteOrder 删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.OrderService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "order delete failed", err)
		return
	}
	response.Success(c, nil)
}
