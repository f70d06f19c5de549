package restaurantserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	menuhttpmapper "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/adapters/http/mapper"
	menuports "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
)

// MenuAPI wires HTTP transport with the menu bounded context service.
type MenuAPI struct {
	service menuports.Service
}

// NewMenuAPI creates a MenuAPI backed by the provided service.
func NewMenuAPI(service menuports.Service) MenuAPI {
	return MenuAPI{service: service}
}

// Get /api/menu
// List menu items by category, then id
func (api *MenuAPI) ListMenu(c *gin.Context) {
	items, err := api.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomainList(items))
}

// Get /api/menu/:id
// Find menu item by ID
func (api *MenuAPI) GetMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomain(item))
}

// Post /api/menu
// Create a menu item, or update the provided fields of the item with the same name
func (api *MenuAPI) UpsertMenuItem(c *gin.Context) {
	var payload menuhttpmapper.MutationItem
	if !bindJSON(c, &payload) {
		return
	}
	result, err := api.service.Upsert(c.Request.Context(), menuhttpmapper.ToUpsertInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, menuhttpmapper.FromUpsertResult(result))
}

// Put /api/menu/:id
// Update any subset of an item's fields
func (api *MenuAPI) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload menuhttpmapper.MutationItem
	if !bindJSON(c, &payload) {
		return
	}
	item, err := api.service.Update(c.Request.Context(), id, menuhttpmapper.ToPatch(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomain(item))
}

// Put /api/menu/:id/availability
// Mark an item available or unavailable
func (api *MenuAPI) SetAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload menuhttpmapper.Availability
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := api.service.SetAvailability(c.Request.Context(), id, *payload.Available)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, menuhttpmapper.FromDomain(item))
}

// bindJSON decodes the body into payload. An empty body leaves payload untouched.
func bindJSON(c *gin.Context, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondBindError(c, errors.New("invalid "+name))
		return 0, false
	}
	return id, true
}
