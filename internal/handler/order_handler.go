package handler

import (
	"net/http"

	"github.com/khendev23/gap-cafe-type/internal/service"
	"github.com/khendev23/gap-cafe-type/pkg/dbrouter"
	"github.com/khendev23/gap-cafe-type/pkg/logger"
)

// OrderHandler serves the kiosk submission endpoint and the back-office
// fulfillment endpoints. Every request carries the client's ipAddress, which
// picks the backing pool for that request.
type OrderHandler struct {
	orderService service.OrderServiceInterface
	router       *dbrouter.Router
	logger       *logger.Logger
}

func NewOrderHandler(orderService service.OrderServiceInterface, router *dbrouter.Router, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		router:       router,
		logger:       log.WithComponent("order_handler"),
	}
}

// SubmitOrder handles POST /api/orders
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitOrderRequest
	if err := parseBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for submit order", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.IPAddress == "" {
		writeError(w, h.logger, http.StatusBadRequest, "IP address is required")
		return
	}

	target := h.router.Resolve(req.IPAddress)

	orderNo, err := h.orderService.SubmitOrder(r.Context(), target, req)
	if err != nil {
		h.logger.Warn("Failed to submit order", "error", err)
		status, msg := statusFor(err)
		writeError(w, h.logger, status, msg)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"success": true,
		"orderNo": orderNo,
	})
}

// OpenOrders handles POST /api/new_orders/orders
func (h *OrderHandler) OpenOrders(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IPAddress string `json:"ipAddress"`
	}
	if err := parseBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for open orders", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.IPAddress == "" {
		writeError(w, h.logger, http.StatusBadRequest, "IP address is required")
		return
	}

	target := h.router.Resolve(req.IPAddress)

	rows, err := h.orderService.OpenOrders(r.Context(), target)
	if err != nil {
		h.logger.Error("Failed to fetch open orders", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to fetch new orders")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, rows)
}

// CompleteOrder handles POST /api/new_orders/complete_order
func (h *OrderHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IPAddress string `json:"ipAddress"`
		OrderNo   string `json:"orderNo"`
	}
	if err := parseBody(r, &req); err != nil {
		h.logger.Warn("Invalid request body for complete order", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.IPAddress == "" {
		writeError(w, h.logger, http.StatusBadRequest, "IP address is required")
		return
	}
	if req.OrderNo == "" {
		writeError(w, h.logger, http.StatusBadRequest, "orderNo is required")
		return
	}

	target := h.router.Resolve(req.IPAddress)

	if err := h.orderService.CompleteOrder(r.Context(), target, req.OrderNo); err != nil {
		h.logger.Warn("Failed to complete order", "order_no", req.OrderNo, "error", err)
		status, msg := statusFor(err)
		writeError(w, h.logger, status, msg)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"success": true,
		"orderNo": req.OrderNo,
	})
}
