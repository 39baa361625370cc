package models

import "time"

// DefaultFilterWindowDays is the date range applied before the user makes
// any selection.
const DefaultFilterWindowDays = 7

// FilterSelection holds the active date/location/platform selection.
// Locations and Platforms are inclusion sets: an empty set means "no
// restriction", not "nothing passes".
type FilterSelection struct {
	Start     time.Time  `json:"start_date"`
	End       time.Time  `json:"end_date"`
	Locations []string   `json:"locations"`
	Platforms []Platform `json:"platforms"`
}

// DefaultFilter returns the hard-coded default selection: last 7 days
// ending at now, all locations, all platforms. The anchor is fixed at the
// moment it is built and is not re-evaluated as days roll over.
func DefaultFilter(now time.Time) FilterSelection {
	return FilterSelection{
		Start: now.AddDate(0, 0, -DefaultFilterWindowDays),
		End:   now,
	}
}

// Matches reports whether the record passes every active restriction.
// The date test is inclusive on both ends.
func (f FilterSelection) Matches(r OrderRecord) bool {
	if !f.Start.IsZero() && r.Date.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && r.Date.After(f.End) {
		return false
	}
	if len(f.Locations) > 0 && !containsString(f.Locations, r.Location) {
		return false
	}
	if len(f.Platforms) > 0 && !containsPlatform(f.Platforms, r.Platform) {
		return false
	}
	return true
}

// Apply filters records, preserving input order.
func (f FilterSelection) Apply(records []OrderRecord) []OrderRecord {
	out := make([]OrderRecord, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsPlatform(set []Platform, v Platform) bool {
	for _, p := range set {
		if p == v {
			return true
		}
	}
	return false
}
