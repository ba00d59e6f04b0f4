package api

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	cataloghttp "github.com/mercora/retail-api/internal/domains/catalog/adapters/http"
	ordershttp "github.com/mercora/retail-api/internal/domains/orders/adapters/http"
	storeshttp "github.com/mercora/retail-api/internal/domains/stores/adapters/http"
)

// routerDeps carries the HTTP handlers and cross-cutting middleware for
// route registration.
type routerDeps struct {
	serviceName      string
	catalog          *cataloghttp.Handler
	stores           *storeshttp.Handler
	orders           *ordershttp.Handler
	autocompleteGate gin.HandlerFunc
}

// NewRouter registers all versioned routes.
func NewRouter(deps routerDeps) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(deps.serviceName))

	v2 := router.Group("/v2")

	v2.POST("/categories", deps.catalog.CreateCategory)
	v2.POST("/products", deps.catalog.CreateProduct)
	v2.GET("/products", deps.catalog.ListProducts)
	v2.GET("/products/:productId", deps.catalog.GetProduct)

	v2.GET("/search/products", deps.catalog.SearchProducts)
	if deps.autocompleteGate != nil {
		v2.GET("/search/autocomplete", deps.autocompleteGate, deps.catalog.Autocomplete)
	} else {
		v2.GET("/search/autocomplete", deps.catalog.Autocomplete)
	}

	v2.POST("/stores", deps.stores.CreateStore)
	v2.GET("/stores", deps.stores.ListStores)
	v2.POST("/stores/:storeId/inventory", deps.stores.AddInventory)
	v2.GET("/stores/:storeId/inventory", deps.stores.ListInventory)

	v2.POST("/orders", deps.orders.PlaceOrder)
	v2.GET("/orders/:orderId", deps.orders.GetOrder)
	v2.GET("/stores/:storeId/orders", deps.orders.ListStoreOrders)

	return router
}
