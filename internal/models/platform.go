package models

import (
	"fmt"
	"strings"
)

// Platform identifies one of the ordering channels whose exports we ingest.
type Platform string

const (
	PlatformDeliveroo Platform = "deliveroo"
	PlatformTalabat   Platform = "talabat"
	PlatformNoon      Platform = "noon"
	PlatformSapaad    Platform = "sapaad"
)

// AllPlatforms returns the supported platforms in display order.
func AllPlatforms() []Platform {
	return []Platform{PlatformDeliveroo, PlatformTalabat, PlatformNoon, PlatformSapaad}
}

// ParsePlatform resolves a platform tag from user input.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformDeliveroo:
		return PlatformDeliveroo, nil
	case PlatformTalabat:
		return PlatformTalabat, nil
	case PlatformNoon:
		return PlatformNoon, nil
	case PlatformSapaad:
		return PlatformSapaad, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// DisplayName returns the label shown on dashboard cards.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformDeliveroo:
		return "Deliveroo"
	case PlatformTalabat:
		return "Talabat"
	case PlatformNoon:
		return "Noon Food"
	case PlatformSapaad:
		return "Dine-In (SAPAAD)"
	}
	return string(p)
}

// BrandColor returns the accent colour used for the platform card.
func (p Platform) BrandColor() string {
	switch p {
	case PlatformDeliveroo:
		return "#00CCBC"
	case PlatformTalabat:
		return "#EF4444"
	case PlatformNoon:
		return "#F97316"
	case PlatformSapaad:
		return "#8B5CF6"
	}
	return "#A0AEC0"
}
