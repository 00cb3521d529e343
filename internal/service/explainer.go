package service

import (
	"fmt"
	"strings"

	"placepilot/internal/model"
)

// fallbackExplanation is returned when no clause applies.
const fallbackExplanation = "This place matches your preferences."

// crowdCommentary holds category-specific phrasing per crowd tier.
// Categories without an entry fall back to the generic phrasing.
var crowdCommentary = map[string]map[string]string{
	"cafe": {
		model.LevelLow:    "the cafe should be calm enough to settle in",
		model.LevelMedium: "the cafe has a steady but manageable buzz",
		model.LevelHigh:   "the cafe tends to fill up around this time",
	},
	"restaurant": {
		model.LevelLow:    "the dining room is usually quiet right now",
		model.LevelMedium: "the restaurant sees a moderate dinner crowd",
		model.LevelHigh:   "the restaurant can get packed, so expect a wait",
	},
	"bar": {
		model.LevelLow:    "the bar is still on its quiet side",
		model.LevelMedium: "the bar has a lively but comfortable crowd",
		model.LevelHigh:   "the bar gets crowded at this hour",
	},
	"fast_food": {
		model.LevelLow:    "the counter queue should be short",
		model.LevelMedium: "there is usually a modest queue at the counter",
		model.LevelHigh:   "the queue can get long during the rush",
	},
	"park": {
		model.LevelLow:    "the park should be peaceful right now",
		model.LevelMedium: "the park draws a fair number of visitors",
		model.LevelHigh:   "the park gets busy at this time of day",
	},
	"library": {
		model.LevelLow:    "the library is reliably quiet",
		model.LevelMedium: "the library has a moderate number of readers",
		model.LevelHigh:   "the library study areas fill up around now",
	},
}

var genericCrowdCommentary = map[string]string{
	model.LevelLow:    "it is usually quiet at this time",
	model.LevelMedium: "it has a moderate crowd level",
	model.LevelHigh:   "it can be a bit crowded right now",
}

// Explainer renders a short natural-language justification per venue
// from the same signals the scorer used. It never fails: absent fields
// simply drop their clause.
type Explainer struct{}

// NewExplainer creates a new explainer
func NewExplainer() *Explainer {
	return &Explainer{}
}

// Explain builds the explanation sentence for one venue. Clause order
// is fixed: novelty, travel, crowd, descriptors, affinity.
func (e *Explainer) Explain(venue *model.Venue, intent *model.UserIntent, prefs *model.UserPreferenceRecord, visitedNames []string) string {
	var parts []string

	// Novelty: only meaningful when the user has any history at all.
	if len(visitedNames) > 0 {
		visited := false
		for _, name := range visitedNames {
			if name == venue.Name {
				visited = true
				break
			}
		}
		if visited {
			parts = append(parts, "you have been here before and it still fits what you asked for")
		} else {
			parts = append(parts, "it is a new spot you have not tried yet")
		}
	}

	if venue.TravelTimeMinutes != nil {
		parts = append(parts, fmt.Sprintf("it is about %d minutes away considering current traffic", *venue.TravelTimeMinutes))
	}

	if venue.CrowdLevel != "" {
		if byCategory, ok := crowdCommentary[venue.Category]; ok {
			if phrase, ok := byCategory[venue.CrowdLevel]; ok {
				parts = append(parts, phrase)
			}
		} else if phrase, ok := genericCrowdCommentary[venue.CrowdLevel]; ok {
			parts = append(parts, phrase)
		}
	}

	if intent != nil && len(intent.Descriptors) > 0 {
		descriptors := intent.Descriptors
		if len(descriptors) > 2 {
			descriptors = descriptors[:2]
		}
		parts = append(parts, fmt.Sprintf("it lines up with your ask for %s", strings.Join(descriptors, " and ")))
	}

	if prefs != nil && prefs.Affinity(venue.Category) > 0 {
		parts = append(parts, fmt.Sprintf("you tend to enjoy %s spots", strings.ReplaceAll(venue.Category, "_", " ")))
	}

	if len(parts) == 0 {
		return fallbackExplanation
	}

	return "I recommended this place because " + strings.Join(parts, ", ") + "."
}
