package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mercora/retail-api/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/mercora/retail-api/internal/domains/orders/application"
	ordersports "github.com/mercora/retail-api/internal/domains/orders/ports"
	sharederrors "github.com/mercora/retail-api/internal/shared/errors"
)

// Handler exposes the order use cases over HTTP.
type Handler struct {
	service   ordersports.Service
	stores    ordersports.StoreDirectory
	responder *sharederrors.ChainedResponder
}

func NewHandler(service ordersports.Service, stores ordersports.StoreDirectory) *Handler {
	return &Handler{
		service:   service,
		stores:    stores,
		responder: sharederrors.NewChainedResponder(mapProblem),
	}
}

// PlaceOrder handles POST /orders. Rejection for insufficient stock is a
// 201 with the rejected order attached, not an error response.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var request mapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("storeId and items are required"))
		return
	}
	result, err := h.service.PlaceOrder(c.Request.Context(), mapper.ToPlaceOrderInput(request))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromPlaceOrderResult(result))
}

// GetOrder handles GET /orders/:orderId.
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("orderId must be an integer"))
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order))
}

// ListStoreOrders handles GET /stores/:storeId/orders.
func (h *Handler) ListStoreOrders(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Param("storeId"), 10, 64)
	if err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("storeId must be an integer"))
		return
	}
	orders, err := h.service.ListStoreOrders(c.Request.Context(), storeID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	store, err := h.stores.GetStore(c.Request.Context(), storeID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	response := mapper.StoreOrdersResponse{
		StoreID:   storeID,
		StoreName: store.Name,
		Orders:    make([]mapper.OrderResponse, 0, len(orders)),
	}
	for _, order := range orders {
		response.Orders = append(response.Orders, mapper.FromDomainOrder(order))
	}
	c.JSON(http.StatusOK, response)
}

func mapProblem(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrStoreNotFound), errors.Is(err, ordersports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrConflict):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
