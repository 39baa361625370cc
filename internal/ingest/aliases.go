package ingest

import "github.com/maxzihq/maxzi-analytics/internal/models"

// AliasSet maps each canonical field to the ordered list of header names
// that may carry it. Resolution walks the list in order and takes the
// first header present in the row.
type AliasSet struct {
	Date     []string
	Revenue  []string
	Orders   []string
	OrderID  []string
	Location []string
	Rating   []string
}

// baseAliases covers the column names shared across exports.
var baseAliases = AliasSet{
	Date:     []string{"Date", "date", "Order Date", "order_date"},
	Revenue:  []string{"Revenue", "revenue", "Total", "total", "Amount", "amount", "Net Sales", "net_sales"},
	Orders:   []string{"Orders", "orders"},
	OrderID:  []string{"Order ID", "order_id", "id"},
	Location: []string{"Location", "location", "Restaurant", "Branch"},
	Rating:   []string{"Rating", "rating"},
}

// platformAliases carries the extra column names each platform's export
// actually uses. They are appended after the shared names so an export
// that also carries a generic column keeps the generic resolution order.
var platformAliases = map[models.Platform]AliasSet{
	models.PlatformDeliveroo: {
		Date:     []string{"date_submitted"},
		Revenue:  []string{"subtotal"},
		OrderID:  []string{"order_number"},
		Location: []string{"location_name"},
	},
	models.PlatformTalabat: {
		Date:    []string{"transaction_date"},
		Revenue: []string{"order_value"},
		Orders:  []string{"order_count"},
	},
	models.PlatformNoon: {
		Date:    []string{"transaction_date"},
		Revenue: []string{"order_value"},
		Orders:  []string{"order_count"},
	},
	models.PlatformSapaad: {
		Date:     []string{"sale_date"},
		Revenue:  []string{"total_sales"},
		Orders:   []string{"order_count"},
		Location: []string{"location_name"},
	},
}

// AliasesFor combines the shared alias lists with the platform extras.
func AliasesFor(platform models.Platform) AliasSet {
	extra := platformAliases[platform]
	return AliasSet{
		Date:     append(append([]string{}, baseAliases.Date...), extra.Date...),
		Revenue:  append(append([]string{}, baseAliases.Revenue...), extra.Revenue...),
		Orders:   append(append([]string{}, baseAliases.Orders...), extra.Orders...),
		OrderID:  append(append([]string{}, baseAliases.OrderID...), extra.OrderID...),
		Location: append(append([]string{}, baseAliases.Location...), extra.Location...),
		Rating:   append(append([]string{}, baseAliases.Rating...), extra.Rating...),
	}
}
