package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/campusfood/internal/domain/model"
	"github.com/polkiloo/campusfood/internal/server/http/dto"
	"github.com/polkiloo/campusfood/internal/usecase"
)

// OrderHandler manages order endpoints of both students and vendors.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/student/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid order payload")
		return
	}

	lines := make([]usecase.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, usecase.OrderLine{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}
	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentAccountID(c), usecase.PlaceOrderInput{
		VendorID:      req.VendorID,
		Items:         lines,
		TotalPrice:    *req.TotalPrice,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderResponse(*order))
}

// StudentOrders handles GET /api/student/orders.
func (h *OrderHandler) StudentOrders(c *gin.Context) {
	page, err := h.facade.StudentOrders(c.Request.Context(), CurrentAccountID(c), pageQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.NewOrderResponse))
}

// Resubmit handles PATCH /api/student/orders/:id/resubmit.
func (h *OrderHandler) Resubmit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ResubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid resubmit payload")
		return
	}
	order, err := h.facade.ResubmitOrder(c.Request.Context(), CurrentAccountID(c), id, req.TransactionID)
	h.respond(c, order, err)
}

// Cancel handles DELETE /api/student/orders/:id.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.CancelOrder(c.Request.Context(), CurrentAccountID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}

// Complete handles PATCH /api/student/orders/:id/complete.
func (h *OrderHandler) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.CompleteOrder(c.Request.Context(), CurrentAccountID(c), id)
	h.respond(c, order, err)
}

// VendorOrders handles GET /api/vendor/orders.
func (h *OrderHandler) VendorOrders(c *gin.Context) {
	page, err := h.facade.VendorOrders(c.Request.Context(), CurrentAccountID(c), pageQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.NewOrderResponse))
}

// Verify handles PATCH /api/vendor/orders/:id/verify.
func (h *OrderHandler) Verify(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid action")
		return
	}
	order, err := h.facade.VerifyOrder(c.Request.Context(), CurrentAccountID(c), id, req.Action, req.RejectionReason)
	h.respond(c, order, err)
}

// Advance handles PATCH /api/vendor/orders/:id/status.
func (h *OrderHandler) Advance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid status")
		return
	}
	order, err := h.facade.AdvanceOrder(c.Request.Context(), CurrentAccountID(c), id, model.OrderStatus(req.Status))
	h.respond(c, order, err)
}

func (h *OrderHandler) respond(c *gin.Context, order *model.Order, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}
