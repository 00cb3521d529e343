package service

import (
	"reflect"
	"testing"

	"placepilot/internal/model"
)

func TestPlanner_Build(t *testing.T) {
	planner := NewPlanner()

	tests := []struct {
		name           string
		prefs          map[string]float64
		booking        bool
		wantRadius     float64
		wantPriorities []string
	}{
		{
			name:           "no preferences uses defaults",
			prefs:          map[string]float64{},
			wantRadius:     2.0,
			wantPriorities: []string{"distance", "rating"},
		},
		{
			name:           "quiet seeker widens radius and adds low_crowd",
			prefs:          map[string]float64{model.PrefCrowdQuietness: 0.8},
			wantRadius:     3.0,
			wantPriorities: []string{"distance", "rating", "low_crowd"},
		},
		{
			name:           "quietness exactly 0.7 does not fire",
			prefs:          map[string]float64{model.PrefCrowdQuietness: 0.7},
			wantRadius:     2.0,
			wantPriorities: []string{"distance", "rating"},
		},
		{
			name:           "food quality rule dedupes against base rating",
			prefs:          map[string]float64{model.PrefFoodQuality: 0.9},
			wantRadius:     2.0,
			wantPriorities: []string{"distance", "rating"},
		},
		{
			name: "low tolerance clamps the quiet radius bump back",
			prefs: map[string]float64{
				model.PrefCrowdQuietness:  0.8,
				model.PrefTravelTolerance: 0.3,
			},
			wantRadius:     2.0,
			wantPriorities: []string{"distance", "rating", "low_crowd"},
		},
		{
			name:           "low tolerance alone leaves the base radius",
			prefs:          map[string]float64{model.PrefTravelTolerance: 0.2},
			wantRadius:     2.0,
			wantPriorities: []string{"distance", "rating"},
		},
		{
			name: "quiet plus foodie keeps insertion order",
			prefs: map[string]float64{
				model.PrefCrowdQuietness: 0.9,
				model.PrefFoodQuality:    0.9,
			},
			wantRadius:     3.0,
			wantPriorities: []string{"distance", "rating", "low_crowd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := &model.UserIntent{
				PlaceTypes:      []string{"cafe"},
				Preferences:     tt.prefs,
				BookingRequired: tt.booking,
			}

			plan := planner.Build(intent)

			if plan.RadiusKm != tt.wantRadius {
				t.Errorf("radius = %.1f, want %.1f", plan.RadiusKm, tt.wantRadius)
			}
			if !reflect.DeepEqual(plan.Priorities, tt.wantPriorities) {
				t.Errorf("priorities = %v, want %v", plan.Priorities, tt.wantPriorities)
			}
			if !reflect.DeepEqual(plan.PlaceTypes, intent.PlaceTypes) {
				t.Errorf("place types = %v, want %v", plan.PlaceTypes, intent.PlaceTypes)
			}
		})
	}
}

func TestPlanner_BuildCarriesBookingFlag(t *testing.T) {
	planner := NewPlanner()

	intent := &model.UserIntent{
		PlaceTypes:      []string{"restaurant"},
		Preferences:     map[string]float64{},
		BookingRequired: true,
	}

	if plan := planner.Build(intent); !plan.BookingLikely {
		t.Error("expected booking_likely to carry through from the intent")
	}
}

func TestPlanner_BuildCopiesPlaceTypes(t *testing.T) {
	planner := NewPlanner()

	intent := &model.UserIntent{
		PlaceTypes:  []string{"cafe", "bar"},
		Preferences: map[string]float64{},
	}

	plan := planner.Build(intent)
	plan.PlaceTypes[0] = "mutated"

	if intent.PlaceTypes[0] != "cafe" {
		t.Error("plan must not alias the intent's place type slice")
	}
}
