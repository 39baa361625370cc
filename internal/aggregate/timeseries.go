package aggregate

import (
	"fmt"
	"time"

	"github.com/maxzihq/maxzi-analytics/internal/models"
)

// TimeSeries builds one bucket per calendar day from now-days+1 to now
// inclusive, every day initialised to zero, then accumulates each record's
// revenue into the bucket matching its date. Records outside the window
// are dropped from the series only; the scalar totals elsewhere stay
// unwindowed.
func TimeSeries(records []models.OrderRecord, days int, now time.Time) models.TrendSeries {
	if days <= 0 {
		days = models.DefaultFilterWindowDays
	}

	series := models.TrendSeries{
		WindowDays: days,
		Points:     make([]models.TrendPoint, days),
	}
	index := make(map[string]int, days)
	start := dayOf(now.AddDate(0, 0, -(days - 1)))
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		series.Points[i] = models.TrendPoint{
			Date:  day,
			Label: DayLabel(day, days),
		}
		index[day.Format("2006-01-02")] = i
	}

	for _, r := range records {
		key := dayOf(r.Date.In(now.Location())).Format("2006-01-02")
		if i, ok := index[key]; ok {
			series.Points[i].Revenue += r.Revenue
			series.Points[i].Orders += r.Orders
		}
	}
	return series
}

// DayLabel formats a bucket label the way the revenue chart expects:
// weekday abbreviation for windows of a week or less, month/day up to a
// month, "Mon day" beyond that.
func DayLabel(day time.Time, windowDays int) string {
	switch {
	case windowDays <= 7:
		return day.Format("Mon")
	case windowDays <= 30:
		return fmt.Sprintf("%d/%d", int(day.Month()), day.Day())
	default:
		return fmt.Sprintf("%s %d", day.Format("Jan"), day.Day())
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
