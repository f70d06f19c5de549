package mapper

import (
	"encoding/json"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/reports/domain"
)

// Entry is one bucket in the report response.
type Entry struct {
	Period  string      `json:"period"`
	Orders  int         `json:"orders"`
	Items   int         `json:"items"`
	Revenue json.Number `json:"revenue"`
}

// Report is the HTTP representation of a sales report.
type Report struct {
	Period string  `json:"period"`
	Data   []Entry `json:"data"`
}

// FromDomain renders revenue with exactly two decimal places.
func FromDomain(report *domain.Report) Report {
	if report == nil {
		return Report{Data: []Entry{}}
	}
	data := make([]Entry, 0, len(report.Entries))
	for _, entry := range report.Entries {
		data = append(data, Entry{
			Period:  entry.Label,
			Orders:  entry.Orders,
			Items:   entry.Items,
			Revenue: json.Number(entry.Revenue.StringFixed(2)),
		})
	}
	return Report{Period: string(report.Period), Data: data}
}
