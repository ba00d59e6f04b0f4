package mapper

import (
	"time"

	ordersdomain "github.com/mercora/retail-api/internal/domains/orders/domain"
	ordersports "github.com/mercora/retail-api/internal/domains/orders/ports"
)

// PlaceOrderRequest is the transport shape of a placement request.
type PlaceOrderRequest struct {
	StoreID int64              `json:"storeId" binding:"required"`
	Items   []OrderItemRequest `json:"items" binding:"required"`
}

type OrderItemRequest struct {
	ProductID         int64 `json:"productId"`
	QuantityRequested int64 `json:"quantityRequested"`
}

type OrderLineResponse struct {
	ID                int64 `json:"id"`
	ProductID         int64 `json:"productId"`
	QuantityRequested int64 `json:"quantityRequested"`
}

type OrderResponse struct {
	ID         int64               `json:"id"`
	StoreID    int64               `json:"storeId"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	OrderItems []OrderLineResponse `json:"orderItems"`
	TotalItems int                 `json:"totalItems"`
}

type ShortfallResponse struct {
	ProductID int64 `json:"productId"`
	Available int64 `json:"available"`
	Requested int64 `json:"requested"`
}

// PlaceOrderResponse is the 201 body for both confirmed and rejected
// outcomes.
type PlaceOrderResponse struct {
	Order             OrderResponse       `json:"order"`
	Status            string              `json:"status"`
	Message           string              `json:"message"`
	InsufficientStock []ShortfallResponse `json:"insufficientStock,omitempty"`
}

type StoreOrdersResponse struct {
	StoreID   int64           `json:"storeId"`
	StoreName string          `json:"storeName"`
	Orders    []OrderResponse `json:"orders"`
}

// ToPlaceOrderInput converts the transport request into the service input.
func ToPlaceOrderInput(request PlaceOrderRequest) ordersports.PlaceOrderInput {
	items := make([]ordersports.RequestedItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, ordersports.RequestedItem{
			ProductID:         item.ProductID,
			QuantityRequested: item.QuantityRequested,
		})
	}
	return ordersports.PlaceOrderInput{StoreID: request.StoreID, Items: items}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) OrderResponse {
	if order == nil {
		return OrderResponse{}
	}
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ID:                line.ID,
			ProductID:         line.ProductID,
			QuantityRequested: line.QuantityRequested,
		})
	}
	return OrderResponse{
		ID:         order.ID,
		StoreID:    order.StoreID,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		OrderItems: lines,
		TotalItems: order.TotalItems(),
	}
}

// FromPlaceOrderResult builds the 201 body from a placement outcome.
func FromPlaceOrderResult(result *ordersports.PlaceOrderResult) PlaceOrderResponse {
	response := PlaceOrderResponse{
		Order:  FromDomainOrder(result.Order),
		Status: string(result.Order.Status),
	}
	if result.Order.Status == ordersdomain.StatusRejected {
		response.Message = "Order rejected due to insufficient stock"
		response.InsufficientStock = make([]ShortfallResponse, 0, len(result.Shortfalls))
		for _, shortfall := range result.Shortfalls {
			response.InsufficientStock = append(response.InsufficientStock, ShortfallResponse{
				ProductID: shortfall.ProductID,
				Available: shortfall.Available,
				Requested: shortfall.Requested,
			})
		}
	} else {
		response.Message = "Order confirmed and stock deducted"
	}
	return response
}
