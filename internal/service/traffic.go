package service

import (
	"math"

	"placepilot/internal/model"
)

// Traffic ratio and absolute-time tier boundaries. A ratio exactly on a
// boundary resolves to the higher tier.
const (
	trafficRatioMedium = 1.3
	trafficRatioHigh   = 1.7

	trafficAbsLowMins    = 10
	trafficAbsMediumMins = 20

	penaltyMedium = 0.2
	penaltyHigh   = 0.4
)

// TrafficResult is the normalized traffic assessment for one venue.
type TrafficResult struct {
	Level            string
	Penalty          float64
	EffectiveMinutes *int
	TravelScore      *float64 // 0-1, nil when no timing is available
}

// TrafficNormalizer converts raw travel timings into a severity tier,
// a penalty, and a bounded closeness score. The score is deliberately
// punitive for congestion: user-perceived nearness is traffic-adjusted,
// not straight-line distance.
type TrafficNormalizer struct {
	maxAcceptableMinutes int
}

// NewTrafficNormalizer creates a traffic normalizer with the worst
// acceptable travel time in minutes.
func NewTrafficNormalizer(maxAcceptableMinutes int) *TrafficNormalizer {
	if maxAcceptableMinutes <= 0 {
		maxAcceptableMinutes = 30
	}
	return &TrafficNormalizer{maxAcceptableMinutes: maxAcceptableMinutes}
}

// Normalize tiers the traffic level from the aware/free ratio when both
// timings exist, or from the absolute traffic-aware time when only that
// is known. With no timing at all the result is the low tier with a nil
// score.
func (t *TrafficNormalizer) Normalize(awareMinutes, freeMinutes *int) TrafficResult {
	result := TrafficResult{Level: model.LevelLow}

	switch {
	case awareMinutes != nil && freeMinutes != nil && *freeMinutes > 0:
		ratio := float64(*awareMinutes) / float64(*freeMinutes)
		switch {
		case ratio < trafficRatioMedium:
			result.Level = model.LevelLow
		case ratio < trafficRatioHigh:
			result.Level = model.LevelMedium
			result.Penalty = penaltyMedium
		default:
			result.Level = model.LevelHigh
			result.Penalty = penaltyHigh
		}

	case awareMinutes != nil:
		switch {
		case *awareMinutes <= trafficAbsLowMins:
			result.Level = model.LevelLow
		case *awareMinutes <= trafficAbsMediumMins:
			result.Level = model.LevelMedium
			result.Penalty = penaltyMedium
		default:
			result.Level = model.LevelHigh
			result.Penalty = penaltyHigh
		}
	}

	if awareMinutes != nil {
		effective := int(math.Floor(float64(*awareMinutes) * (1 + result.Penalty)))
		result.EffectiveMinutes = &effective

		score := 1 - float64(effective)/float64(t.maxAcceptableMinutes)
		if score < 0 {
			score = 0
		}
		score = math.Round(score*100) / 100
		result.TravelScore = &score
	}

	return result
}
