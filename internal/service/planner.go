package service

import (
	"placepilot/internal/model"
)

// Priority tags a plan can carry, in precedence order of insertion.
const (
	PriorityDistance = "distance"
	PriorityRating   = "rating"
	PriorityLowCrowd = "low_crowd"
)

// Planner base values. Preference signals adjust the radius upward;
// a low travel tolerance clamps it back down.
const (
	baseRadiusKm       = 2.0
	quietRadiusBonusKm = 1.0
	maxClampedRadiusKm = 2.0
)

// Planner maps an intent into a concrete search plan. Pure computation,
// no I/O, deterministic.
type Planner struct{}

// NewPlanner creates a new planner
func NewPlanner() *Planner {
	return &Planner{}
}

// Build derives the search plan from an intent. Rules are additive and
// applied in a fixed order; missing preference dimensions never fire a
// rule.
func (p *Planner) Build(intent *model.UserIntent) *model.SearchPlan {
	plan := &model.SearchPlan{
		PlaceTypes:    append([]string{}, intent.PlaceTypes...),
		RadiusKm:      baseRadiusKm,
		Priorities:    []string{PriorityDistance, PriorityRating},
		BookingLikely: intent.BookingRequired,
	}

	if intent.Preference(model.PrefCrowdQuietness, 0) > 0.7 {
		plan.Priorities = appendUnique(plan.Priorities, PriorityLowCrowd)
		plan.RadiusKm += quietRadiusBonusKm
	}

	if intent.Preference(model.PrefFoodQuality, 0) > 0.7 {
		plan.Priorities = appendUnique(plan.Priorities, PriorityRating)
	}

	// Applied last: can only shrink the radius, never grow it. An
	// absent dimension leaves the radius alone.
	if tt, ok := intent.Preferences[model.PrefTravelTolerance]; ok && tt < 0.4 {
		if plan.RadiusKm > maxClampedRadiusKm {
			plan.RadiusKm = maxClampedRadiusKm
		}
	}

	return plan
}

// appendUnique appends tag unless it is already present, keeping
// first-seen order.
func appendUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
