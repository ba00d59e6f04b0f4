package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mercora/retail-api/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/mercora/retail-api/internal/domains/catalog/application"
	"github.com/mercora/retail-api/internal/domains/catalog/domain"
	catalogports "github.com/mercora/retail-api/internal/domains/catalog/ports"
	sharederrors "github.com/mercora/retail-api/internal/shared/errors"
)

// Handler exposes the catalog use cases over HTTP.
type Handler struct {
	service   catalogports.Service
	responder *sharederrors.ChainedResponder
}

func NewHandler(service catalogports.Service) *Handler {
	return &Handler{
		service:   service,
		responder: sharederrors.NewChainedResponder(mapProblem),
	}
}

// CreateCategory handles POST /categories.
func (h *Handler) CreateCategory(c *gin.Context) {
	var request mapper.CreateCategoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("name is required"))
		return
	}
	category, err := h.service.CreateCategory(c.Request.Context(), &domain.Category{Name: request.Name})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomainCategory(category))
}

// CreateProduct handles POST /products.
func (h *Handler) CreateProduct(c *gin.Context) {
	var request mapper.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("title and categoryId are required"))
		return
	}
	product, err := h.service.CreateProduct(c.Request.Context(), mapper.ToDomainProduct(request))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomainProduct(product))
}

// GetProduct handles GET /products/:productId.
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		sharederrors.Respond(c, sharederrors.ErrBadRequest.WithDetail("productId must be an integer"))
		return
	}
	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainProduct(product))
}

// ListProducts handles GET /products.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	response := make([]mapper.ProductResponse, 0, len(products))
	for _, product := range products {
		response = append(response, mapper.FromDomainProduct(product))
	}
	c.JSON(http.StatusOK, response)
}

// SearchProducts handles GET /search/products.
func (h *Handler) SearchProducts(c *gin.Context) {
	query, problem := parseSearchQuery(c)
	if problem != nil {
		sharederrors.Respond(c, *problem)
		return
	}
	result, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSearchResult(result))
}

// Autocomplete handles GET /search/autocomplete.
func (h *Handler) Autocomplete(c *gin.Context) {
	q := c.Query("q")
	suggestions, err := h.service.Autocomplete(c.Request.Context(), q)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromSuggestions(q, suggestions))
}

func parseSearchQuery(c *gin.Context) (catalogports.SearchQuery, *sharederrors.ProblemDetail) {
	query := catalogports.SearchQuery{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		SortBy:   c.Query("sort_by"),
	}
	var problem sharederrors.ProblemDetail
	if raw := c.Query("min_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			problem = sharederrors.ErrBadRequest.WithDetail("min_price must be a number")
			return query, &problem
		}
		query.MinPrice = &value
	}
	if raw := c.Query("max_price"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			problem = sharederrors.ErrBadRequest.WithDetail("max_price must be a number")
			return query, &problem
		}
		query.MaxPrice = &value
	}
	if raw := c.Query("store_id"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			problem = sharederrors.ErrBadRequest.WithDetail("store_id must be an integer")
			return query, &problem
		}
		query.StoreID = value
	}
	query.InStock = c.Query("in_stock") == "true"
	if raw := c.Query("page"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			problem = sharederrors.ErrBadRequest.WithDetail("page must be an integer")
			return query, &problem
		}
		query.Page = value
	}
	if raw := c.Query("page_size"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			problem = sharederrors.ErrBadRequest.WithDetail("page_size must be an integer")
			return query, &problem
		}
		query.PageSize = value
	}
	return query, nil
}

func mapProblem(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrDuplicateCategory):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
