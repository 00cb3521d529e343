package service

import (
	"testing"

	"placepilot/internal/model"
)

func TestTrafficNormalizer_RatioTiers(t *testing.T) {
	normalizer := NewTrafficNormalizer(30)

	tests := []struct {
		name          string
		aware         int
		free          int
		wantLevel     string
		wantPenalty   float64
		wantEffective int
		wantScore     float64
	}{
		{
			name:  "ratio below 1.3 is low",
			aware: 12, free: 10,
			wantLevel: model.LevelLow, wantPenalty: 0,
			wantEffective: 12, wantScore: 0.6,
		},
		{
			name:  "ratio exactly 1.3 resolves to medium",
			aware: 13, free: 10,
			wantLevel: model.LevelMedium, wantPenalty: 0.2,
			wantEffective: 15, wantScore: 0.5,
		},
		{
			name:  "ratio between 1.3 and 1.7 is medium",
			aware: 15, free: 10,
			wantLevel: model.LevelMedium, wantPenalty: 0.2,
			wantEffective: 18, wantScore: 0.4,
		},
		{
			name:  "ratio exactly 1.7 resolves to high",
			aware: 17, free: 10,
			wantLevel: model.LevelHigh, wantPenalty: 0.4,
			wantEffective: 23, wantScore: 0.23,
		},
		{
			name:  "ratio above 1.7 is high",
			aware: 20, free: 10,
			wantLevel: model.LevelHigh, wantPenalty: 0.4,
			wantEffective: 28, wantScore: 0.07,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizer.Normalize(&tt.aware, &tt.free)

			if result.Level != tt.wantLevel {
				t.Errorf("level = %s, want %s", result.Level, tt.wantLevel)
			}
			if result.Penalty != tt.wantPenalty {
				t.Errorf("penalty = %.2f, want %.2f", result.Penalty, tt.wantPenalty)
			}
			if result.EffectiveMinutes == nil || *result.EffectiveMinutes != tt.wantEffective {
				t.Errorf("effective minutes = %v, want %d", result.EffectiveMinutes, tt.wantEffective)
			}
			if result.TravelScore == nil || *result.TravelScore != tt.wantScore {
				t.Errorf("travel score = %v, want %.2f", result.TravelScore, tt.wantScore)
			}
		})
	}
}

func TestTrafficNormalizer_AbsoluteFallback(t *testing.T) {
	normalizer := NewTrafficNormalizer(30)

	tests := []struct {
		name        string
		aware       int
		wantLevel   string
		wantPenalty float64
	}{
		{name: "10 minutes is low", aware: 10, wantLevel: model.LevelLow, wantPenalty: 0},
		{name: "11 minutes is medium", aware: 11, wantLevel: model.LevelMedium, wantPenalty: 0.2},
		{name: "20 minutes is medium", aware: 20, wantLevel: model.LevelMedium, wantPenalty: 0.2},
		{name: "21 minutes is high", aware: 21, wantLevel: model.LevelHigh, wantPenalty: 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizer.Normalize(&tt.aware, nil)

			if result.Level != tt.wantLevel {
				t.Errorf("level = %s, want %s", result.Level, tt.wantLevel)
			}
			if result.Penalty != tt.wantPenalty {
				t.Errorf("penalty = %.2f, want %.2f", result.Penalty, tt.wantPenalty)
			}
		})
	}
}

func TestTrafficNormalizer_ScoreFloorsAtZero(t *testing.T) {
	normalizer := NewTrafficNormalizer(30)

	aware := 40
	result := normalizer.Normalize(&aware, nil)

	if result.EffectiveMinutes == nil || *result.EffectiveMinutes != 56 {
		t.Errorf("effective minutes = %v, want 56", result.EffectiveMinutes)
	}
	if result.TravelScore == nil || *result.TravelScore != 0 {
		t.Errorf("travel score = %v, want 0", result.TravelScore)
	}
}

func TestTrafficNormalizer_NoTiming(t *testing.T) {
	normalizer := NewTrafficNormalizer(30)

	free := 10
	tests := []struct {
		name  string
		aware *int
		free  *int
	}{
		{name: "nothing at all", aware: nil, free: nil},
		{name: "free-flow only", aware: nil, free: &free},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizer.Normalize(tt.aware, tt.free)

			if result.Level != model.LevelLow {
				t.Errorf("level = %s, want low", result.Level)
			}
			if result.TravelScore != nil {
				t.Errorf("travel score = %v, want nil", result.TravelScore)
			}
			if result.EffectiveMinutes != nil {
				t.Errorf("effective minutes = %v, want nil", result.EffectiveMinutes)
			}
		})
	}
}

// Helper functions

func float64Ptr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}
