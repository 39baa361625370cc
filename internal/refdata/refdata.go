// Package refdata serves reference datasets that do not flow through the
// CSV ingestion pipeline: social media metrics, Google My Business stats
// and menu category performance. Each loads from an optional JSON file and
// falls back to a built-in sample set so the dashboard renders out of the
// box.
package refdata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// ChannelMetrics holds one social channel's numbers.
type ChannelMetrics struct {
	Followers      int    `json:"followers,omitempty"`
	Growth         string `json:"growth,omitempty"`
	Views          int    `json:"views,omitempty"`
	Reach          int    `json:"reach,omitempty"`
	Engagement     int    `json:"engagement,omitempty"`
	EngagementRate string `json:"engagement_rate,omitempty"`
	TopContent     string `json:"top_content,omitempty"`
	Clicks         int    `json:"clicks,omitempty"`
	CTR            string `json:"ctr,omitempty"`
	TopDestination string `json:"top_destination,omitempty"`
	TopSource      string `json:"top_source,omitempty"`
}

// SocialMetrics is the cross-channel social media report.
type SocialMetrics struct {
	Instagram ChannelMetrics `json:"instagram"`
	Facebook  ChannelMetrics `json:"facebook"`
	Linktree  ChannelMetrics `json:"linktree"`
}

// GMBLocation is one branch's Google My Business performance.
type GMBLocation struct {
	Name           string  `json:"name"`
	Views          int     `json:"views"`
	Calls          int     `json:"calls"`
	Directions     int     `json:"directions"`
	ConversionRate float64 `json:"conversion_rate"`
}

// GMBMetrics aggregates Google My Business performance.
type GMBMetrics struct {
	TotalViews      int           `json:"total_views"`
	TotalCalls      int           `json:"total_calls"`
	TotalDirections int           `json:"total_directions"`
	WebsiteClicks   int           `json:"website_clicks"`
	Locations       []GMBLocation `json:"locations"`
}

// CategoryPerformance is one menu category's revenue contribution.
type CategoryPerformance struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
	Share    float64 `json:"share"`
	Growth   float64 `json:"growth"`
}

// Store resolves reference datasets, preferring configured JSON files over
// the built-in samples.
type Store struct {
	socialFile string
	gmbFile    string
	logger     zerolog.Logger
}

func NewStore(socialFile, gmbFile string, logger zerolog.Logger) *Store {
	return &Store{socialFile: socialFile, gmbFile: gmbFile, logger: logger}
}

// Social returns social media metrics, reading the configured file when
// present.
func (s *Store) Social() SocialMetrics {
	out := defaultSocial()
	if s.socialFile == "" {
		return out
	}
	if err := loadJSON(s.socialFile, &out); err != nil {
		s.logger.Warn().Err(err).Str("file", s.socialFile).Msg("using built-in social media sample")
		return defaultSocial()
	}
	return out
}

// GMB returns Google My Business metrics, reading the configured file when
// present.
func (s *Store) GMB() GMBMetrics {
	out := defaultGMB()
	if s.gmbFile == "" {
		return out
	}
	if err := loadJSON(s.gmbFile, &out); err != nil {
		s.logger.Warn().Err(err).Str("file", s.gmbFile).Msg("using built-in GMB sample")
		return defaultGMB()
	}
	return out
}

// Categories returns menu category performance. There is no upload path
// for category data yet, so this is always the sample set.
func (s *Store) Categories() []CategoryPerformance {
	return []CategoryPerformance{
		{Category: "Burgers (Smash & Sear)", Revenue: 202909, Share: 29.86, Growth: -5.4},
		{Category: "Grill & BBQ Collection", Revenue: 144893, Share: 21.33, Growth: 0.3},
		{Category: "Starters", Revenue: 82464, Share: 12.14, Growth: -2.1},
		{Category: "Cold Beverages", Revenue: 63911, Share: 9.41, Growth: 0.7},
		{Category: "Rice & Pasta", Revenue: 57102, Share: 8.40, Growth: 22.8},
	}
}

func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func defaultSocial() SocialMetrics {
	return SocialMetrics{
		Instagram: ChannelMetrics{
			Followers:      27190,
			Growth:         "+15.9%",
			Views:          169900,
			Reach:          8377,
			Engagement:     402,
			EngagementRate: "4.8%",
			TopContent:     "Reels",
		},
		Facebook: ChannelMetrics{
			Followers:      2569,
			Growth:         "+13.0%",
			Views:          80253,
			Reach:          24207,
			Engagement:     163,
			EngagementRate: "6.3%",
			TopContent:     "Videos",
		},
		Linktree: ChannelMetrics{
			Views:          543,
			Clicks:         716,
			CTR:            "131.8%",
			TopDestination: "View Our Menu",
			TopSource:      "Instagram",
		},
	}
}

func defaultGMB() GMBMetrics {
	return GMBMetrics{
		TotalViews:      20103,
		TotalCalls:      896,
		TotalDirections: 2066,
		WebsiteClicks:   137,
		Locations: []GMBLocation{
			{Name: "Al Quoz", Views: 7149, Calls: 262, Directions: 1057, ConversionRate: 18.4},
			{Name: "Yas Mall", Views: 3859, Calls: 95, Directions: 71, ConversionRate: 4.3},
		},
	}
}
