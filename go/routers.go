// Package restaurantserver exposes the restaurant API and pages over gin.
package restaurantserver

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API surface.
type ApiHandleFunctions struct {
	MenuAPI   MenuAPI
	OrderAPI  OrderAPI
	ReportAPI ReportAPI
	PageAPI   PageAPI
}

// NewRouter returns a new router. Middleware is installed before the routes so
// every route's handler chain includes it.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine adds the routes and page templates to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl")))
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},
		{"MenuPage", http.MethodGet, "/", handleFunctions.PageAPI.MenuPage},
		{"KitchenPage", http.MethodGet, "/kitchen", handleFunctions.PageAPI.KitchenPage},
		{"SummaryPage", http.MethodGet, "/summary", handleFunctions.PageAPI.SummaryPage},
		{"ReportsPage", http.MethodGet, "/reports", handleFunctions.PageAPI.ReportsPage},
		{"ListMenu", http.MethodGet, "/api/menu", handleFunctions.MenuAPI.ListMenu},
		{"GetMenuItem", http.MethodGet, "/api/menu/:id", handleFunctions.MenuAPI.GetMenuItem},
		{"UpsertMenuItem", http.MethodPost, "/api/menu", handleFunctions.MenuAPI.UpsertMenuItem},
		{"UpdateMenuItem", http.MethodPut, "/api/menu/:id", handleFunctions.MenuAPI.UpdateMenuItem},
		{"SetMenuAvailability", http.MethodPut, "/api/menu/:id/availability", handleFunctions.MenuAPI.SetAvailability},
		{"ListOrders", http.MethodGet, "/api/orders", handleFunctions.OrderAPI.ListOrders},
		{"GetOrder", http.MethodGet, "/api/orders/:id", handleFunctions.OrderAPI.GetOrder},
		{"PlaceOrder", http.MethodPost, "/api/orders", handleFunctions.OrderAPI.PlaceOrder},
		{"UpdateOrderStatus", http.MethodPut, "/api/orders/:id/status", handleFunctions.OrderAPI.UpdateOrderStatus},
		{"GetReport", http.MethodGet, "/api/reports", handleFunctions.ReportAPI.GetReport},
	}
}
