package catalog

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryGarment   Category = "garment"
	CategoryHousehold Category = "household"
)

// ServiceItem is a single orderable laundry service. Items are configuration
// data and never change after construction.
type ServiceItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category Category        `json:"category"`
}

type Catalog struct {
	items []ServiceItem
	byID  map[string]ServiceItem
}

// New returns the fixed service catalog.
func New() *Catalog {
	items := []ServiceItem{
		{ID: "1", Name: "Shirt (Wash & Press)", Price: decimal.RequireFromString("3.50"), Category: CategoryGarment},
		{ID: "2", Name: "Shirt (Dry Clean)", Price: decimal.RequireFromString("5.00"), Category: CategoryGarment},
		{ID: "3", Name: "Trousers", Price: decimal.RequireFromString("6.00"), Category: CategoryGarment},
		{ID: "4", Name: "Comforter (Queen)", Price: decimal.RequireFromString("25.00"), Category: CategoryHousehold},
		{ID: "5", Name: "Wash & Fold (per lb)", Price: decimal.RequireFromString("1.75"), Category: CategoryGarment},
		{ID: "6", Name: "Suit (2-piece)", Price: decimal.RequireFromString("15.00"), Category: CategoryGarment},
	}

	byID := make(map[string]ServiceItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &Catalog{items: items, byID: byID}
}

// All returns the offerable services in display order.
func (c *Catalog) All() []ServiceItem {
	out := make([]ServiceItem, len(c.items))
	copy(out, c.items)
	return out
}

// Get looks a service up by id. Order pricing always goes through this,
// never through caller-supplied prices.
func (c *Catalog) Get(id string) (ServiceItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}
