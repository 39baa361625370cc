package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// dateLayouts are tried in order when parsing a date cell.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Normalizer converts raw parsed CSV rows into canonical OrderRecords.
// Normalisation is a total function: malformed input degrades to zero
// values, it never fails. The clock is injected so the date fallback is
// testable.
type Normalizer struct {
	Now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{Now: time.Now}
}

// Normalize maps one raw row to an OrderRecord. The platform tag comes
// from which upload target received the file, never from row content.
func (n *Normalizer) Normalize(row map[string]string, platform models.Platform) models.OrderRecord {
	aliases := AliasesFor(platform)

	revenue := parseAmount(lookup(row, aliases.Revenue))
	orders := parseOrders(row, aliases.Orders)

	rec := models.OrderRecord{
		Platform: platform,
		Date:     n.parseDate(lookup(row, aliases.Date)),
		OrderID:  strings.TrimSpace(lookup(row, aliases.OrderID)),
		Location: strings.TrimSpace(lookup(row, aliases.Location)),
		Revenue:  revenue,
		Orders:   orders,
		Rating:   parseRating(lookup(row, aliases.Rating)),
		Raw:      row,
	}
	if orders > 0 {
		rec.AOV = revenue / float64(orders)
	}
	return rec
}

// NormalizeAll maps every row, preserving file order.
func (n *Normalizer) NormalizeAll(rows []map[string]string, platform models.Platform) []models.OrderRecord {
	records := make([]models.OrderRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, n.Normalize(row, platform))
	}
	return records
}

func lookup(row map[string]string, aliases []string) string {
	for _, name := range aliases {
		if v, ok := row[name]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func (n *Normalizer) parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t
			}
		}
	}
	// unparseable or missing dates fall back to "now"; this is a known
	// accuracy gap of uncontrolled exports, not an error
	return n.Now()
}

// parseAmount strips everything but digits, '.' and '-' (currency symbols,
// thousand separators) and parses the remainder. Anything unparseable is
// 0; amounts are never negative.
func parseAmount(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseOrders defaults to 1 when the column is absent: one CSV row is
// assumed to represent one order unless the file states otherwise.
func parseOrders(row map[string]string, aliases []string) int {
	raw := lookup(row, aliases)
	if strings.TrimSpace(raw) == "" {
		return 1
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		f := parseAmount(raw)
		v = int(f)
	}
	if v < 0 {
		return 0
	}
	return v
}

func parseRating(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}
