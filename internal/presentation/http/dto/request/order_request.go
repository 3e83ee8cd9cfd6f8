package request

import "github.com/google/uuid"

// OrderItemRequest is one line of an order payload.
type OrderItemRequest struct {
	LineNo        int        `json:"line_no"`
	ProductID     *uuid.UUID `json:"product_id"`
	FinishingName string     `json:"finishing_name"`
	Description   string     `json:"description"`
	Length        string     `json:"length"`
	Width         string     `json:"width"`
	Quantity      int        `json:"quantity"`
	PriceOverride *int64     `json:"price_override"`
}

// OrderRequest is the create/update order payload. OrderDate uses the
// YYYY-MM-DD form; empty means today.
type OrderRequest struct {
	CustomerID uuid.UUID          `json:"customer_id" binding:"required"`
	OrderDate  string             `json:"order_date"`
	Items      []OrderItemRequest `json:"items" binding:"required"`
}
