package application

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/menu/ports"
)

// DefaultSeed is the starter menu inserted into an empty store.
func DefaultSeed() []ports.SeedItem {
	return []ports.SeedItem{
		{Name: "Idli", Price: decimal.RequireFromString("1.50"), Description: "Steamed rice cake"},
		{Name: "Dosa", Price: decimal.RequireFromString("2.50"), Description: "Crispy lentil crepe"},
		{Name: "Chole Bhature", Price: decimal.RequireFromString("4.00"), Description: "Spicy chickpeas with fried bread"},
		{Name: "Thali", Price: decimal.RequireFromString("6.50"), Description: "Mixed dishes served on a platter"},
	}
}
