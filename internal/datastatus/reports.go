package datastatus

import "github.com/maxzihq/maxzi-analytics/internal/models"

// Frequency is how often a platform publishes a given report.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// ReportKind separates revenue-bearing reports from operational ones.
type ReportKind string

const (
	Financial   ReportKind = "financial"
	Operational ReportKind = "operational"
)

// ReportSpec describes one report a platform is expected to deliver.
type ReportSpec struct {
	Name            string     `json:"report"`
	Kind            ReportKind `json:"-"`
	Frequency       Frequency  `json:"frequency"`
	FileFormat      string     `json:"file_format"`
	Description     string     `json:"description"`
	ExpectedColumns []string   `json:"expected_columns,omitempty"`
}

// platformReports mirrors the report catalogue each platform actually
// publishes, including cadence: noon only delivers monthly summaries, so
// its freshness threshold differs from the daily platforms.
var platformReports = map[models.Platform][]ReportSpec{
	models.PlatformDeliveroo: {
		{
			Name:            "order_history",
			Kind:            Financial,
			Frequency:       Daily,
			FileFormat:      "CSV",
			Description:     "Daily order transactions with revenue and commission data",
			ExpectedColumns: []string{"date_submitted", "order_number", "subtotal", "commission", "location_name"},
		},
		{
			Name:            "delivery_performance",
			Kind:            Operational,
			Frequency:       Weekly,
			FileFormat:      "CSV",
			Description:     "Delivery times and operational metrics",
			ExpectedColumns: []string{"delivery_duration_minutes", "order_status"},
		},
	},
	models.PlatformTalabat: {
		{
			Name:            "transaction_history",
			Kind:            Financial,
			Frequency:       Daily,
			FileFormat:      "CSV/API",
			Description:     "Daily transactions with order values and commissions",
			ExpectedColumns: []string{"transaction_date", "order_value", "commission_amount", "order_count"},
		},
		{
			Name:            "preparation_time",
			Kind:            Operational,
			Frequency:       Monthly,
			FileFormat:      "Excel",
			Description:     "Kitchen preparation times and delay metrics",
			ExpectedColumns: []string{"avg_prep_time_minutes", "avoidable_delay_count", "location_name"},
		},
		{
			Name:        "order_rejections",
			Kind:        Operational,
			Frequency:   Monthly,
			FileFormat:  "Excel",
			Description: "Rejected orders and reasons",
		},
	},
	models.PlatformNoon: {
		{
			Name:            "transaction_history",
			Kind:            Financial,
			Frequency:       Monthly,
			FileFormat:      "CSV/API",
			Description:     "Monthly transaction summary",
			ExpectedColumns: []string{"transaction_date", "order_value", "order_count"},
		},
		{
			Name:        "order_status",
			Kind:        Operational,
			Frequency:   Monthly,
			FileFormat:  "CSV",
			Description: "Order status tracking",
		},
	},
	models.PlatformSapaad: {
		{
			Name:            "location_sales",
			Kind:            Financial,
			Frequency:       Daily,
			FileFormat:      "CSV/Database Export",
			Description:     "Daily sales by location from POS system",
			ExpectedColumns: []string{"sale_date", "location_name", "total_sales", "order_count", "avg_per_check"},
		},
		{
			Name:            "payment_methods",
			Kind:            Operational,
			Frequency:       Daily,
			FileFormat:      "CSV/Database Export",
			Description:     "Payment method breakdown by day",
			ExpectedColumns: []string{"payment_visa", "payment_mastercard", "payment_cash", "payment_qlub"},
		},
	},
}

// ReportsFor returns the expected report catalogue for a platform.
func ReportsFor(platform models.Platform) []ReportSpec {
	return platformReports[platform]
}
