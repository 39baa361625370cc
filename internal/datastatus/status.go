package datastatus

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// Freshness state for a platform's data.
const (
	StatusCurrent  = "current"
	StatusOutdated = "outdated"
	StatusNoData   = "no_data"
)

// Report priority levels.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// NeededReport is a report the platform should deliver to catch up.
type NeededReport struct {
	Report      string   `json:"report"`
	Frequency   string   `json:"frequency"`
	Priority    string   `json:"priority"`
	FileFormat  string   `json:"file_format"`
	Description string   `json:"description"`
	Columns     []string `json:"expected_columns,omitempty"`
}

// NeededReports groups needed reports by kind.
type NeededReports struct {
	Financial   []NeededReport `json:"financial"`
	Operational []NeededReport `json:"operational"`
}

// PlatformStatus is the freshness report for one platform.
type PlatformStatus struct {
	Platform     models.Platform `json:"platform"`
	DisplayName  string          `json:"display_name"`
	Status       string          `json:"status"`
	LastUpdated  string          `json:"last_updated,omitempty"`
	DaysBehind   int             `json:"days_behind"`
	TotalOrders  int             `json:"total_orders"`
	MissingDates []string        `json:"missing_dates,omitempty"`
	Needed       NeededReports   `json:"reports_needed"`
}

// Overview is the full data-status report across all platforms.
type Overview struct {
	GeneratedAt string                              `json:"generated_at"`
	Platforms   map[models.Platform]*PlatformStatus `json:"platforms"`
}

// freshnessThresholdDays returns how stale a platform's newest record may
// be before the platform is flagged outdated. Noon reports monthly.
func freshnessThresholdDays(platform models.Platform) int {
	if platform == models.PlatformNoon {
		return 30
	}
	return 1
}

// Evaluate inspects per-platform record buckets and reports how far behind
// each platform's data is, which calendar dates are missing, and which
// reports are needed to catch up.
func Evaluate(buckets map[models.Platform][]models.OrderRecord, now time.Time) *Overview {
	out := &Overview{
		GeneratedAt: now.Format(time.RFC3339),
		Platforms:   make(map[models.Platform]*PlatformStatus, len(models.AllPlatforms())),
	}
	for _, p := range models.AllPlatforms() {
		out.Platforms[p] = evaluatePlatform(p, buckets[p], now)
	}
	return out
}

func evaluatePlatform(platform models.Platform, records []models.OrderRecord, now time.Time) *PlatformStatus {
	st := &PlatformStatus{
		Platform:    platform,
		DisplayName: platform.DisplayName(),
		Status:      StatusNoData,
	}
	threshold := freshnessThresholdDays(platform)

	var latest time.Time
	seen := make(map[string]bool)
	for _, r := range records {
		st.TotalOrders += r.Orders
		if r.Date.After(latest) {
			latest = r.Date
		}
		seen[r.Date.Format("2006-01-02")] = true
	}

	if !latest.IsZero() {
		st.LastUpdated = latest.Format("2006-01-02")
		st.DaysBehind = daysBetween(latest, now)
		if st.DaysBehind <= threshold {
			st.Status = StatusCurrent
		} else {
			st.Status = StatusOutdated
		}
		st.MissingDates = missingDates(seen, latest, now, threshold)
	}

	st.Needed = neededReports(platform, st.DaysBehind, st.Status)
	return st
}

// missingDates lists calendar dates between the newest record and now,
// inclusive of today, that have no records. Monthly platforms are not
// expected to have every day covered, so gaps wider than the threshold
// are reported only up to a sane cap.
func missingDates(seen map[string]bool, latest, now time.Time, threshold int) []string {
	const maxListed = 31
	var missing []string
	day := dayOf(latest).AddDate(0, 0, 1)
	end := dayOf(now)
	for !day.After(end) && len(missing) < maxListed {
		key := day.Format("2006-01-02")
		if !seen[key] {
			missing = append(missing, key)
		}
		day = day.AddDate(0, 0, 1)
	}
	if threshold >= 30 {
		// Monthly cadence: individual missing days are noise.
		return nil
	}
	return missing
}

func neededReports(platform models.Platform, daysBehind int, status string) NeededReports {
	var out NeededReports
	if status == StatusCurrent {
		return out
	}
	for _, spec := range ReportsFor(platform) {
		if status == StatusOutdated && !frequencyOverdue(spec.Frequency, daysBehind) {
			continue
		}
		need := NeededReport{
			Report:      spec.Name,
			Frequency:   string(spec.Frequency),
			Priority:    reportPriority(spec, daysBehind),
			FileFormat:  spec.FileFormat,
			Description: spec.Description,
			Columns:     spec.ExpectedColumns,
		}
		if spec.Kind == Financial {
			out.Financial = append(out.Financial, need)
		} else {
			out.Operational = append(out.Operational, need)
		}
	}
	return out
}

func frequencyOverdue(freq Frequency, daysBehind int) bool {
	switch freq {
	case Daily:
		return daysBehind >= 1
	case Weekly:
		return daysBehind > 7
	case Monthly:
		return daysBehind > 30
	}
	return false
}

func reportPriority(spec ReportSpec, daysBehind int) string {
	if spec.Kind == Financial {
		switch spec.Frequency {
		case Daily:
			if daysBehind > 3 {
				return PriorityHigh
			}
			return PriorityMedium
		case Weekly:
			return PriorityMedium
		default:
			return PriorityLow
		}
	}
	if spec.Frequency == Daily {
		return PriorityMedium
	}
	return PriorityLow
}

// Summary renders a human-readable digest of the overview, one platform
// per section, suitable for logs or a plain-text endpoint.
func Summary(ov *Overview) string {
	var b strings.Builder
	b.WriteString("DATA STATUS SUMMARY\n")
	b.WriteString("Generated: " + ov.GeneratedAt + "\n\n")

	platforms := make([]models.Platform, 0, len(ov.Platforms))
	for p := range ov.Platforms {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })

	for _, p := range platforms {
		st := ov.Platforms[p]
		fmt.Fprintf(&b, "%s [%s]\n", st.DisplayName, strings.ToUpper(st.Status))
		if st.LastUpdated != "" {
			fmt.Fprintf(&b, "  last updated: %s (%d days behind)\n", st.LastUpdated, st.DaysBehind)
		} else {
			b.WriteString("  no data uploaded yet\n")
		}
		fmt.Fprintf(&b, "  total orders: %d\n", st.TotalOrders)
		if n := len(st.MissingDates); n > 0 {
			fmt.Fprintf(&b, "  missing dates: %d\n", n)
		}
		for _, need := range st.Needed.Financial {
			fmt.Fprintf(&b, "  needs %s (%s, %s)\n", need.Report, need.Frequency, need.Priority)
		}
		for _, need := range st.Needed.Operational {
			fmt.Fprintf(&b, "  needs %s (%s, %s)\n", need.Report, need.Frequency, need.Priority)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func daysBetween(from, to time.Time) int {
	d := int(dayOf(to).Sub(dayOf(from)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
