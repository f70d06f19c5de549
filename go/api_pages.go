package restaurantserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	menuhttpmapper "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/adapters/http/mapper"
	menuports "github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
)

// PageAPI renders the HTML views. The kitchen, summary and reports pages load
// their data from the JSON API in the browser.
type PageAPI struct {
	menu menuports.Service
}

func NewPageAPI(menu menuports.Service) PageAPI {
	return PageAPI{menu: menu}
}

// Get /
func (api *PageAPI) MenuPage(c *gin.Context) {
	items, err := api.menu.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.tmpl", gin.H{"menu": menuhttpmapper.FromDomainList(items)})
}

// Get /kitchen
func (api *PageAPI) KitchenPage(c *gin.Context) {
	c.HTML(http.StatusOK, "kitchen.tmpl", nil)
}

// Get /summary
func (api *PageAPI) SummaryPage(c *gin.Context) {
	c.HTML(http.StatusOK, "summary.tmpl", nil)
}

// Get /reports
func (api *PageAPI) ReportsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "reports.tmpl", nil)
}
