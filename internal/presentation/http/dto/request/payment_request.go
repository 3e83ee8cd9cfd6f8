package request

import "github.com/google/uuid"

// PaymentRequest records one payment. Date uses the YYYY-MM-DD form;
// empty means today.
type PaymentRequest struct {
	Amount   int64      `json:"amount"`
	Date     string     `json:"date"`
	MethodID *uuid.UUID `json:"method_id"`

	// Optional checkout-time edits accompanying the payment.
	NewDiscount  *int64             `json:"new_discount"`
	NewTotal     *int64             `json:"new_total"`
	UpdatedItems []OrderItemRequest `json:"updated_items"`
}

// BulkPaymentRequest settles a batch of orders on one date and method.
type BulkPaymentRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required"`
	Date     string      `json:"date"`
	MethodID *uuid.UUID  `json:"method_id"`
}

// DueDateRequest sets a receivable's due date.
type DueDateRequest struct {
	DueDate string `json:"due_date" binding:"required"`
}

// BulkDueDateRequest sets the same due date on a batch of receivables.
type BulkDueDateRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required"`
	DueDate  string      `json:"due_date" binding:"required"`
}
