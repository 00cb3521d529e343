package service

import (
	"math"
	"sort"

	"placepilot/internal/config"
	"placepilot/internal/model"
)

// neutralPreference is what a missing preference dimension counts as
// during scoring (the planner treats missing dimensions differently).
const neutralPreference = 0.5

// Scorer combines rating, travel closeness, crowd tier, and stored
// affinity into one weighted score per venue. The weight table is
// configuration, not code: tuning it is a config change.
type Scorer struct {
	weights config.ScoringConfig
}

// NewScorer creates a scorer with the given weight table.
func NewScorer(weights config.ScoringConfig) *Scorer {
	if weights.MaxAcceptableMinutes <= 0 {
		weights.MaxAcceptableMinutes = 30
	}
	return &Scorer{weights: weights}
}

// Score computes the final 0-1 score for a single venue. Missing
// signals contribute zero; the sum is clamped to 1.0 and rounded to
// two decimals.
func (s *Scorer) Score(venue *model.Venue, intent *model.UserIntent, prefs *model.UserPreferenceRecord) float64 {
	score := 0.0

	// Rating term, weighted by how much the user cares about food.
	if venue.Rating != nil {
		foodQuality := intent.Preference(model.PrefFoodQuality, neutralPreference)
		score += (*venue.Rating / 5.0) * foodQuality * s.weights.WeightRating
	}

	// Travel term: closeness matters more the less the user tolerates
	// travel.
	if venue.TravelTimeMinutes != nil {
		closeness := 1 - float64(*venue.TravelTimeMinutes)/float64(s.weights.MaxAcceptableMinutes)
		if closeness < 0 {
			closeness = 0
		}
		tolerance := intent.Preference(model.PrefTravelTolerance, neutralPreference)
		score += closeness * (1 - tolerance) * s.weights.WeightTravel
	}

	// Affinity term: a small nudge from the stored per-category counter,
	// never a dominant signal.
	if prefs != nil {
		score += prefs.Affinity(venue.Category) * s.weights.WeightAffinity
	}

	// Crowd term: quiet venues reward quiet-seeking users; medium
	// crowds earn half the crowd weight; busy venues earn nothing.
	switch venue.CrowdLevel {
	case model.LevelLow:
		quietness := intent.Preference(model.PrefCrowdQuietness, neutralPreference)
		score += quietness * s.weights.WeightCrowd
	case model.LevelMedium:
		score += s.weights.WeightCrowd / 2
	}

	if score > 1.0 {
		score = 1.0
	}
	return math.Round(score*100) / 100
}

// Rank scores every venue and returns them sorted by descending final
// score. The sort is stable: ties keep their input order.
func (s *Scorer) Rank(venues []*model.Venue, intent *model.UserIntent, prefs *model.UserPreferenceRecord) []*model.Venue {
	for _, v := range venues {
		v.FinalScore = s.Score(v, intent, prefs)
	}

	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].FinalScore > venues[j].FinalScore
	})

	return venues
}
