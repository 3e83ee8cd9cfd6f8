package handler

import (
	"strconv"
	"time"

	"github.com/ardiansn/cetakflow-api/internal/application/service"
	"github.com/ardiansn/cetakflow-api/internal/domain/enum"
	"github.com/ardiansn/cetakflow-api/internal/domain/repository"
	"github.com/ardiansn/cetakflow-api/internal/presentation/http/dto/request"
	"github.com/ardiansn/cetakflow-api/internal/presentation/http/dto/response"
	"github.com/ardiansn/cetakflow-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceivableHandler handles receivable and payment HTTP requests
type ReceivableHandler struct {
	receivableService *service.ReceivableService
}

// NewReceivableHandler creates a new receivable handler
func NewReceivableHandler(receivableService *service.ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{receivableService: receivableService}
}

// List handles listing receivables
func (h *ReceivableHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ReceivableFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	}

	if statusStr := c.Query("payment_status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.PaymentStatus(statusInt)
			params.PaymentStatus = &status
		}
	}

	if statusStr := c.Query("production_status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.ProductionStatus(statusInt)
			params.ProductionStatus = &status
		}
	}

	if dueStr := c.Query("due_before"); dueStr != "" {
		if due, err := time.Parse("2006-01-02", dueStr); err == nil {
			params.DueBefore = &due
		}
	}

	result, err := h.receivableService.ListReceivables(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receivables retrieved successfully", result)
}

// Get handles getting a single receivable with its payment history
func (h *ReceivableHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receivable ID")
		return
	}

	receivable, err := h.receivableService.GetReceivable(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receivable retrieved successfully", receivable)
}

// AddPayment handles recording a payment against an existing receivable
func (h *ReceivableHandler) AddPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receivable ID")
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	opts := service.ProcessPaymentOptions{
		NewDiscount: req.NewDiscount,
		NewTotal:    req.NewTotal,
	}
	if len(req.UpdatedItems) > 0 {
		opts.UpdatedItems = toOrderItems(req.UpdatedItems)
	}

	receivable, err := h.receivableService.ProcessPayment(c.Request.Context(), id, service.PaymentInput{
		Amount:   req.Amount,
		Date:     parseDate(req.Date),
		MethodID: req.MethodID,
	}, opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", receivable)
}

// PayOrder handles the first payment for an order without a receivable
func (h *ReceivableHandler) PayOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receivable, err := h.receivableService.PayUnprocessedOrder(c.Request.Context(), id, service.PaymentInput{
		Amount:   req.Amount,
		Date:     parseDate(req.Date),
		MethodID: req.MethodID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", receivable)
}

// BulkPay handles settling a batch of orders in full
func (h *ReceivableHandler) BulkPay(c *gin.Context) {
	var req request.BulkPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if len(req.OrderIDs) == 0 {
		response.BadRequest(c, "At least one order is required")
		return
	}

	results := h.receivableService.BulkProcessPayment(c.Request.Context(), req.OrderIDs, parseDate(req.Date), req.MethodID)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		response.Success(c, 207, "Bulk payment completed with failures", results)
		return
	}
	response.OK(c, "Bulk payment completed successfully", results)
}

// UpdateDueDate handles setting a receivable's due date
func (h *ReceivableHandler) UpdateDueDate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receivable ID")
		return
	}

	var req request.DueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	due := parseDate(req.DueDate)
	if err := h.receivableService.UpdateDueDate(c.Request.Context(), id, due); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Due date updated successfully", nil)
}

// BulkDueDate handles setting the same due date on a batch of receivables
func (h *ReceivableHandler) BulkDueDate(c *gin.Context) {
	var req request.BulkDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if len(req.OrderIDs) == 0 {
		response.BadRequest(c, "At least one order is required")
		return
	}

	due := parseDate(req.DueDate)
	if due.IsZero() {
		response.BadRequest(c, "Invalid due date")
		return
	}

	results := h.receivableService.BulkUpdateDueDate(c.Request.Context(), req.OrderIDs, due)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		response.Success(c, 207, "Bulk due-date update completed with failures", results)
		return
	}
	response.OK(c, "Due dates updated successfully", results)
}
