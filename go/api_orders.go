package restaurantserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	ordershttpmapper "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-restaurant-api/internal/domains/orders/ports"
)

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Get /api/orders
// List all orders, newest first
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomainList(orders))
}

// Get /api/orders/:id
// Find order by ID
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomain(order))
}

// Post /api/orders
// Place an order for a table
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload ordershttpmapper.PlaceOrder
	if !bindJSON(c, &payload) {
		return
	}
	order, err := api.placeOrder(c.Request.Context(), ordershttpmapper.ToPlaceOrderInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordershttpmapper.FromDomain(order))
}

func (api *OrderAPI) placeOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Put /api/orders/:id/status
// Move an order through the kitchen workflow
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload ordershttpmapper.StatusChange
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := api.service.UpdateStatus(c.Request.Context(), id, ordersdomain.Status(payload.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordershttpmapper.FromDomain(order))
}
