package service

import (
	"math"
	"strconv"
	"strings"

	"placepilot/internal/model"
)

// Crowd confidence tier thresholds.
const (
	crowdMediumThreshold = 0.4
	crowdHighThreshold   = 0.7
)

// CrowdEstimator converts popularity, review-volume, and time-of-day
// signals into a crowd tier with a confidence value. Signals are added,
// not averaged, then clamped to 1.0: one strong indicator can dominate
// while the estimate degrades gracefully when signals are missing.
type CrowdEstimator struct{}

// NewCrowdEstimator creates a new crowd estimator
func NewCrowdEstimator() *CrowdEstimator {
	return &CrowdEstimator{}
}

// Estimate returns the crowd tier and confidence for a venue at an
// optional time of day (empty string = unknown).
func (c *CrowdEstimator) Estimate(venue *model.Venue, timeOfDay string) (string, float64) {
	confidence := 0.0

	// Popular-times signal, 0-100 scaled down to 0-1.
	if venue.Popularity != nil {
		confidence += *venue.Popularity / 100
	}

	// Review density heuristic.
	if venue.ReviewCount != nil && *venue.ReviewCount > 0 {
		switch {
		case *venue.ReviewCount > 2000:
			confidence += 0.4
		case *venue.ReviewCount > 500:
			confidence += 0.2
		default:
			confidence += 0.1
		}
	}

	// Time-of-day heuristic.
	if timeOfDay != "" {
		switch classifyTimeOfDay(timeOfDay) {
		case "lunch":
			confidence += 0.3
		case "evening":
			confidence += 0.4
		default:
			confidence += 0.1
		}
	}

	confidence = math.Min(confidence, 1.0)
	confidence = math.Round(confidence*100) / 100

	level := model.LevelHigh
	switch {
	case confidence < crowdMediumThreshold:
		level = model.LevelLow
	case confidence < crowdHighThreshold:
		level = model.LevelMedium
	}

	return level, confidence
}

// classifyTimeOfDay maps a free-form time-of-day string onto the rush
// windows. Accepts an hour ("13", "19:30") or a named window; anything
// else classifies as "other".
func classifyTimeOfDay(timeOfDay string) string {
	s := strings.ToLower(strings.TrimSpace(timeOfDay))

	if hour, ok := parseHour(s); ok {
		switch {
		case hour >= 12 && hour <= 14:
			return "lunch"
		case hour >= 18 && hour <= 21:
			return "evening"
		default:
			return "other"
		}
	}

	switch s {
	case "lunch", "noon", "midday":
		return "lunch"
	case "evening", "dinner":
		return "evening"
	default:
		return "other"
	}
}

// parseHour extracts the hour from "13" or "13:45" style strings.
func parseHour(s string) (int, bool) {
	if idx := strings.Index(s, ":"); idx > 0 {
		s = s[:idx]
	}
	hour, err := strconv.Atoi(s)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}
