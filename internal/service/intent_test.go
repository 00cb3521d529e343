package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"placepilot/internal/model"
)

// fakeCompleter is a canned text-completion backend for tests.
type fakeCompleter struct {
	response string
	err      error
	disabled bool
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func (f *fakeCompleter) IsEnabled() bool {
	return !f.disabled
}

func TestIntentNormalizer_FallbackPaths(t *testing.T) {
	tests := []struct {
		name  string
		llm   TextCompleter
		query string
	}{
		{name: "empty query", llm: &fakeCompleter{}, query: "   "},
		{name: "nil backend", llm: nil, query: "quiet cafe"},
		{name: "disabled backend", llm: &fakeCompleter{disabled: true}, query: "quiet cafe"},
		{name: "backend error", llm: &fakeCompleter{err: errors.New("upstream down")}, query: "quiet cafe"},
		{name: "no JSON in response", llm: &fakeCompleter{response: "I could not understand the request."}, query: "quiet cafe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalizer := NewIntentNormalizer(tt.llm)
			intent := normalizer.Normalize(context.Background(), tt.query)

			if !reflect.DeepEqual(intent.PlaceTypes, model.DefaultPlaceTypes()) {
				t.Errorf("place types = %v, want default pair", intent.PlaceTypes)
			}
			if intent.BookingRequired {
				t.Error("fallback intent must not require booking")
			}
			if len(intent.Preferences) != 0 {
				t.Errorf("fallback preferences = %v, want empty", intent.Preferences)
			}
		})
	}
}

func TestIntentNormalizer_ValidExtraction(t *testing.T) {
	llm := &fakeCompleter{response: `{
		"descriptors": ["quiet", "good coffee"],
		"preferences": {"crowd_quietness": 0.8, "food_quality": 0.6},
		"place_types": ["cafe"],
		"constraints": ["open late"],
		"time_of_day": "evening",
		"booking_required": false
	}`}
	normalizer := NewIntentNormalizer(llm)

	intent := normalizer.Normalize(context.Background(), "a quiet cafe with good coffee, open late")

	if !reflect.DeepEqual(intent.PlaceTypes, []string{"cafe"}) {
		t.Errorf("place types = %v, want [cafe]", intent.PlaceTypes)
	}
	if !reflect.DeepEqual(intent.Descriptors, []string{"quiet", "good coffee"}) {
		t.Errorf("descriptors = %v", intent.Descriptors)
	}
	if intent.Preferences[model.PrefCrowdQuietness] != 0.8 {
		t.Errorf("crowd_quietness = %v, want 0.8", intent.Preferences[model.PrefCrowdQuietness])
	}
	if intent.TimeOfDay != "evening" {
		t.Errorf("time_of_day = %q, want evening", intent.TimeOfDay)
	}
}

func TestIntentNormalizer_MarkdownFencedOutput(t *testing.T) {
	llm := &fakeCompleter{response: "```json\n{\"place_types\": [\"bar\"], \"preferences\": {}, \"descriptors\": [], \"constraints\": [], \"booking_required\": true}\n```"}
	normalizer := NewIntentNormalizer(llm)

	intent := normalizer.Normalize(context.Background(), "book me a bar for tonight")

	if !reflect.DeepEqual(intent.PlaceTypes, []string{"bar"}) {
		t.Errorf("place types = %v, want [bar]", intent.PlaceTypes)
	}
	if !intent.BookingRequired {
		t.Error("booking_required should survive extraction")
	}
}

func TestIntentNormalizer_Sanitize(t *testing.T) {
	normalizer := NewIntentNormalizer(nil)

	tests := []struct {
		name           string
		payload        intentPayload
		wantPlaceTypes []string
		wantPrefs      map[string]float64
	}{
		{
			name: "unknown place types are dropped",
			payload: intentPayload{
				PlaceTypes: []string{"casino", "Cafe", "speakeasy"},
			},
			wantPlaceTypes: []string{"cafe"},
			wantPrefs:      map[string]float64{},
		},
		{
			name: "all place types invalid falls back to default pair",
			payload: intentPayload{
				PlaceTypes: []string{"casino", "arcade"},
			},
			wantPlaceTypes: model.DefaultPlaceTypes(),
			wantPrefs:      map[string]float64{},
		},
		{
			name: "duplicate place types are collapsed",
			payload: intentPayload{
				PlaceTypes: []string{"cafe", "CAFE", "cafe"},
			},
			wantPlaceTypes: []string{"cafe"},
			wantPrefs:      map[string]float64{},
		},
		{
			name: "preferences are clamped into the unit interval",
			payload: intentPayload{
				PlaceTypes: []string{"restaurant"},
				Preferences: map[string]float64{
					"food_quality":     1.5,
					"crowd_quietness":  -0.2,
					"travel_tolerance": 0.4,
				},
			},
			wantPlaceTypes: []string{"restaurant"},
			wantPrefs: map[string]float64{
				"food_quality":     1,
				"crowd_quietness":  0,
				"travel_tolerance": 0.4,
			},
		},
		{
			name: "unknown dimensions are carried through",
			payload: intentPayload{
				PlaceTypes:  []string{"park"},
				Preferences: map[string]float64{"outdoorsiness": 0.9},
			},
			wantPlaceTypes: []string{"park"},
			wantPrefs:      map[string]float64{"outdoorsiness": 0.9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := normalizer.sanitize(&tt.payload)

			if !reflect.DeepEqual(intent.PlaceTypes, tt.wantPlaceTypes) {
				t.Errorf("place types = %v, want %v", intent.PlaceTypes, tt.wantPlaceTypes)
			}
			if !reflect.DeepEqual(intent.Preferences, tt.wantPrefs) {
				t.Errorf("preferences = %v, want %v", intent.Preferences, tt.wantPrefs)
			}
			if intent.Descriptors == nil || intent.Constraints == nil {
				t.Error("descriptors and constraints must never be nil")
			}
		})
	}
}
