package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/middleware"
	"github.com/guttosm/college-order-service/internal/service"
)

// OrdersHandler provides HTTP handlers for submitted orders.
type OrdersHandler struct {
	orders service.OrderService
}

// NewOrdersHandler creates a new OrdersHandler.
func NewOrdersHandler(orders service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// GetOrder handles GET /api/v1/orders/:id requests.
//
// @Summary      Get an order receipt
// @Description  Returns a submitted order so the storefront can show its receipt again.
// @Tags         Orders
// @Produce      json
// @Param        id path string true "Order number" example(ORD-20240301143000-3FA2)
// @Success      200 {object} dto.SuccessResponse{data=model.Order} "Order"
// @Failure      404 {object} dto.ErrorResponse "Unknown order"
// @Failure      503 {object} dto.ErrorResponse "Order storage disabled"
// @Router       /api/v1/orders/{id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	receipt := *order
	receipt.AdminNotes = ""
	NewResponseBuilder(c).SuccessOK(receipt)
}

// ListOrders handles GET /api/v1/admin/orders requests.
//
// @Summary      List orders
// @Description  Lists orders newest first, optionally narrowed by college and status.
// @Tags         Admin
// @Produce      json
// @Param        college query string false "College id"
// @Param        status query string false "Order status" Enums(pending, completed, cancelled)
// @Param        limit query int false "Maximum orders returned, at most 100"
// @Success      200 {object} dto.SuccessResponse{data=[]model.Order} "Orders"
// @Failure      400 {object} dto.ErrorResponse "Unknown status"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Security     BearerAuth
// @Router       /api/v1/admin/orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	filter := model.OrderFilter{
		College: c.Query("college"),
		Status:  model.OrderStatus(c.Query("status")),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
			return
		}
		filter.Limit = limit
	}

	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(orders)
}

// OrderStats handles GET /api/v1/admin/orders/stats requests.
//
// @Summary      Order statistics
// @Description  Counts orders by status, orders in the last 30 days and ordered units.
// @Tags         Admin
// @Produce      json
// @Param        college query string false "College id"
// @Success      200 {object} dto.SuccessResponse{data=model.OrderStats} "Statistics"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Security     BearerAuth
// @Router       /api/v1/admin/orders/stats [get]
func (h *OrdersHandler) OrderStats(c *gin.Context) {
	stats, err := h.orders.Stats(c.Request.Context(), c.Query("college"))
	if err != nil {
		respondError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(stats)
}

// UpdateOrderStatus handles PATCH /api/v1/admin/orders/:id/status requests.
//
// @Summary      Change order status
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Order number"
// @Param        request body dto.UpdateOrderStatusRequest true "New status"
// @Success      200 {object} dto.SuccessResponse{data=model.Order} "Updated order"
// @Failure      400 {object} dto.ErrorResponse "Unknown status"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} dto.ErrorResponse "Unknown order"
// @Security     BearerAuth
// @Router       /api/v1/admin/orders/{id}/status [patch]
func (h *OrdersHandler) UpdateOrderStatus(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.UpdateOrderStatusRequest](c)
	if err != nil {
		NewResponseBuilder(c).ErrorWithMessage(http.StatusBadRequest, err.Error(), err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	if ls := loggingService(c); ls != nil {
		middleware.AuditLog(ls, c, "order_status_updated", "Order status changed", map[string]interface{}{
			"order_id": order.ID,
			"status":   string(order.Status),
		})
	}
	NewResponseBuilder(c).SuccessOK(order)
}

// DeleteOrder handles DELETE /api/v1/admin/orders/:id requests.
//
// @Summary      Delete an order
// @Tags         Admin
// @Param        id path string true "Order number"
// @Success      204 "Order deleted"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} dto.ErrorResponse "Unknown order"
// @Security     BearerAuth
// @Router       /api/v1/admin/orders/{id} [delete]
func (h *OrdersHandler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	if ls := loggingService(c); ls != nil {
		middleware.AuditLog(ls, c, "order_deleted", "Order deleted", map[string]interface{}{"order_id": id})
	}
	c.Status(http.StatusNoContent)
}
