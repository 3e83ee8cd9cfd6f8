package handler

import (
	"github.com/ardiansn/cetakflow-api/internal/application/service"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/ardiansn/cetakflow-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductionHandler handles production workflow HTTP requests
type ProductionHandler struct {
	productionService *service.ProductionService
}

// NewProductionHandler creates a new production handler
func NewProductionHandler(productionService *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

// Board handles the kanban board projection
func (h *ProductionHandler) Board(c *gin.Context) {
	board, err := h.productionService.Board(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Production board retrieved successfully", board)
}

// Process handles moving an order into Printing
func (h *ProductionHandler) Process(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	receivable, err := h.productionService.ProcessOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order moved to printing", receivable)
}

// Move handles a board drag between two live production states
func (h *ProductionHandler) Move(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		From enum.ProductionStatus `json:"from"`
		To   enum.ProductionStatus `json:"to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.productionService.Move(c.Request.Context(), id, req.From, req.To); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order moved successfully", nil)
}

// Deliver handles marking an order delivered
func (h *ProductionHandler) Deliver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	// Body is optional; an absent note is fine.
	var req struct {
		Note string `json:"note"`
	}
	_ = c.ShouldBindJSON(&req)

	receivable, err := h.productionService.Deliver(c.Request.Context(), id, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order delivered successfully", receivable)
}

// CancelQueue handles removing a queued order from production
func (h *ProductionHandler) CancelQueue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.productionService.CancelQueue(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
