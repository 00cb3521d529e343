package utils

import (
	"reflect"
	"testing"
)

func TestParseLLMJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "Pure JSON",
			input: `{"place_types": ["cafe"], "booking_required": false}`,
			want: map[string]interface{}{
				"place_types":      []interface{}{"cafe"},
				"booking_required": false,
			},
			wantErr: false,
		},
		{
			name: "JSON in markdown code block",
			input: "```json\n" +
				`{"descriptors": ["cozy"], "time_of_day": "evening"}` + "\n```",
			want: map[string]interface{}{
				"descriptors": []interface{}{"cozy"},
				"time_of_day": "evening",
			},
			wantErr: false,
		},
		{
			name: "Plain code block",
			input: "```\n" +
				`{"place_types": ["bar"]}` + "\n```",
			want: map[string]interface{}{
				"place_types": []interface{}{"bar"},
			},
			wantErr: false,
		},
		{
			name:  "JSON with surrounding commentary",
			input: `Sure! Here is the extracted intent: {"booking_required": true, "constraints": []} hope that helps.`,
			want: map[string]interface{}{
				"booking_required": true,
				"constraints":      []interface{}{},
			},
			wantErr: false,
		},
		{
			name:  "Trailing comma",
			input: `{"place_types": ["cafe", "bar",], "booking_required": false,}`,
			want: map[string]interface{}{
				"place_types":      []interface{}{"cafe", "bar"},
				"booking_required": false,
			},
			wantErr: false,
		},
		{
			name:  "Unquoted keys",
			input: `{descriptors: ["quiet"], booking_required: false}`,
			want: map[string]interface{}{
				"descriptors":      []interface{}{"quiet"},
				"booking_required": false,
			},
			wantErr: false,
		},
		{
			name:  "Nested object inside text",
			input: `reasoning... {"preferences": {"food_quality": 0.8}} done`,
			want: map[string]interface{}{
				"preferences": map[string]interface{}{"food_quality": 0.8},
			},
			wantErr: false,
		},
		{
			name:    "No JSON at all",
			input:   "I could not understand that request, sorry.",
			wantErr: true,
		},
		{
			name:    "Empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "Unbalanced braces",
			input:   `{"place_types": ["cafe"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := ParseLLMJSON(tt.input, &got)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got result %v", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLLMJSON_IgnoresBracesInsideStrings(t *testing.T) {
	input := `note: {"question": "open {today}?", "answer": "yes"}`

	var got map[string]interface{}
	if err := ParseLLMJSON(input, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["question"] != "open {today}?" {
		t.Errorf("string content mangled: %v", got["question"])
	}
}
