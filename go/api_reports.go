package restaurantserver

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	reportshttpmapper "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/adapters/http/mapper"
	reportsports "github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/ports"
)

// ReportAPI wires HTTP transport with the reports bounded context service.
type ReportAPI struct {
	service reportsports.Service
}

// NewReportAPI creates a ReportAPI backed by the provided service.
func NewReportAPI(service reportsports.Service) ReportAPI {
	return ReportAPI{service: service}
}

// Get /api/reports?period=day|week|month&range=N
// Aggregate orders, items and revenue per bucket
func (api *ReportAPI) GetReport(c *gin.Context) {
	report, err := api.service.Generate(c.Request.Context(), c.Query("period"), parseRange(c.Query("range")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reportshttpmapper.FromDomain(report))
}

// parseRange falls back to the period default for anything that is not an integer.
// Values too large for an int saturate so the range bound still rejects them.
func parseRange(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return n
}
