package handler

import (
	"time"

	"github.com/ardiansn/cetakflow-api/internal/application/service"
	"github.com/ardiansn/cetakflow-api/internal/domain/entity"
	"github.com/ardiansn/cetakflow-api/internal/presentation/http/dto/request"
)

// parseDate parses a YYYY-MM-DD date, returning the zero time for an
// empty or malformed value. Services treat zero as "today".
func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// toItemInputs converts order item payloads into service inputs,
// assigning sequential line numbers when the client omits them.
func toItemInputs(items []request.OrderItemRequest) []service.OrderItemInput {
	inputs := make([]service.OrderItemInput, len(items))
	for i, item := range items {
		lineNo := item.LineNo
		if lineNo == 0 {
			lineNo = i + 1
		}
		inputs[i] = service.OrderItemInput{
			LineNo:        lineNo,
			ProductID:     item.ProductID,
			FinishingName: item.FinishingName,
			Description:   item.Description,
			Length:        item.Length,
			Width:         item.Width,
			Quantity:      item.Quantity,
			PriceOverride: item.PriceOverride,
		}
	}
	return inputs
}

// toOrderItems converts item payloads straight into entity rows, for
// the checkout-time item revision that accompanies a payment.
func toOrderItems(items []request.OrderItemRequest) []entity.OrderItem {
	rows := make([]entity.OrderItem, len(items))
	for i, item := range items {
		lineNo := item.LineNo
		if lineNo == 0 {
			lineNo = i + 1
		}
		finishing := item.FinishingName
		if finishing == "" {
			finishing = "None"
		}
		rows[i] = entity.OrderItem{
			LineNo:        lineNo,
			ProductID:     item.ProductID,
			FinishingName: finishing,
			Description:   item.Description,
			Length:        item.Length,
			Width:         item.Width,
			Quantity:      item.Quantity,
			PriceOverride: item.PriceOverride,
		}
	}
	return rows
}
