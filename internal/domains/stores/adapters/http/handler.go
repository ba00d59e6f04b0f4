package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	storesapp "github.com/mercora/retail-api/internal/domains/stores/application"
	"github.com/mercora/retail-api/internal/domains/stores/domain"
	storesports "github.com/mercora/retail-api/internal/domains/stores/ports"
	sharederrors "github.com/mercora/retail-api/internal/shared/errors"
)

// Handler exposes the stores use cases over HTTP.
type Handler struct {
	service   storesports.Service
	responder *sharederrors.ChainedResponder
}

func NewHandler(service storesports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: sharederrors.NewChainedResponder(mapProblem),
	}
}

type createStoreRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
}

type storeResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

type addInventoryRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int64 `json:"quantity"`
}

type inventoryResponse struct {
	StoreID   int64                       `json:"storeId"`
	StoreName string                      `json:"storeName"`
	Inventory []storesports.InventoryItem `json:"inventory"`
	FromCache bool                        `json:"fromCache"`
}

// CreateStore handles POST /stores.
func (h *Handler) CreateStore(c *gin.Context) {
	var request createStoreRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("name and location are required"))
		return
	}
	store, err := h.service.CreateStore(c.Request.Context(), &domain.Store{Name: request.Name, Location: request.Location})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStoreResponse(store))
}

// ListStores handles GET /stores.
func (h *Handler) ListStores(c *gin.Context) {
	stores, err := h.service.ListStores(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	response := make([]storeResponse, 0, len(stores))
	for _, store := range stores {
		response = append(response, toStoreResponse(store))
	}
	c.JSON(http.StatusOK, response)
}

// AddInventory handles POST /stores/:storeId/inventory.
func (h *Handler) AddInventory(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Param("storeId"), 10, 64)
	if err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("storeId must be an integer"))
		return
	}
	var request addInventoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("productId is required"))
		return
	}
	record := domain.InventoryRecord{StoreID: storeID, ProductID: request.ProductID, Quantity: request.Quantity}
	if err := h.service.AddInventory(c.Request.Context(), record); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"storeId": storeID, "productId": request.ProductID, "quantity": request.Quantity})
}

// ListInventory handles GET /stores/:storeId/inventory.
func (h *Handler) ListInventory(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Param("storeId"), 10, 64)
	if err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("storeId must be an integer"))
		return
	}
	view, err := h.service.ListInventory(c.Request.Context(), storeID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryResponse{
		StoreID:   view.StoreID,
		StoreName: view.StoreName,
		Inventory: view.Items,
		FromCache: view.FromCache,
	})
}

func toStoreResponse(store *domain.Store) storeResponse {
	return storeResponse{ID: store.ID, Name: store.Name, Location: store.Location}
}

func mapProblem(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, storesapp.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, storesports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, storesports.ErrDuplicateRecord):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
