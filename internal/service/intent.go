package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"placepilot/internal/model"
	"placepilot/internal/utils"
)

// IntentNormalizer turns free-text queries into structured intents
// using the text-completion service. It never fails outward: any
// extraction or parse failure degrades to the deterministic fallback
// intent.
type IntentNormalizer struct {
	llm TextCompleter
}

// NewIntentNormalizer creates a new intent normalizer
func NewIntentNormalizer(llm TextCompleter) *IntentNormalizer {
	return &IntentNormalizer{llm: llm}
}

const intentPromptTemplate = `You are an intent extraction agent for a venue recommendation system.

Your task:
1. Extract descriptive phrases exactly as the user says them.
2. Project them into abstract preference dimensions with values between 0 and 1.
3. Pick matching place types ONLY from the allowed list.

Allowed place_types: "restaurant", "cafe", "bar", "fast_food", "bakery", "park", "library", "coworking_space"

Known preference dimensions (use these names when they apply):
- food_quality: how much the user cares about great food
- crowd_quietness: how much the user wants a quiet, uncrowded place
- travel_tolerance: how far the user is willing to travel

Rules:
- Do NOT invent information
- Be conservative with scores
- Output ONLY valid JSON, no explanations or markdown

Return JSON strictly in this format:

{
  "descriptors": string[],
  "preferences": { "<dimension>": number },
  "place_types": string[],
  "constraints": string[],
  "time_of_day": string | null,
  "booking_required": boolean
}

User query:
"%s"`

// intentPayload mirrors the JSON schema the prompt demands. Everything
// is optional on the wire; sanitization fills the gaps.
type intentPayload struct {
	Descriptors     []string           `json:"descriptors"`
	Preferences     map[string]float64 `json:"preferences"`
	PlaceTypes      []string           `json:"place_types"`
	Constraints     []string           `json:"constraints"`
	TimeOfDay       *string            `json:"time_of_day"`
	BookingRequired bool               `json:"booking_required"`
}

// Normalize extracts a structured intent from a free-text query. The
// returned intent always has a non-empty place-type set.
func (n *IntentNormalizer) Normalize(ctx context.Context, query string) *model.UserIntent {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.FallbackIntent()
	}

	if n.llm == nil || !n.llm.IsEnabled() {
		log.Printf("Text completion is not enabled, using fallback intent. Set GEMINI_API_KEY to enable extraction.")
		return model.FallbackIntent()
	}

	raw, err := n.llm.Complete(ctx, fmt.Sprintf(intentPromptTemplate, query))
	if err != nil {
		log.Printf("Intent extraction call failed: %v, using fallback intent", err)
		return model.FallbackIntent()
	}

	var payload intentPayload
	if err := utils.ParseLLMJSON(raw, &payload); err != nil {
		log.Printf("Intent extraction returned unparseable output: %v, using fallback intent", err)
		return model.FallbackIntent()
	}

	return n.sanitize(&payload)
}

// sanitize validates the extracted payload against the allowed
// vocabulary and value ranges. It cannot fail: invalid pieces are
// dropped or defaulted individually.
func (n *IntentNormalizer) sanitize(p *intentPayload) *model.UserIntent {
	intent := &model.UserIntent{
		Descriptors:     p.Descriptors,
		Constraints:     p.Constraints,
		Preferences:     map[string]float64{},
		BookingRequired: p.BookingRequired,
	}
	if intent.Descriptors == nil {
		intent.Descriptors = []string{}
	}
	if intent.Constraints == nil {
		intent.Constraints = []string{}
	}
	if p.TimeOfDay != nil {
		intent.TimeOfDay = strings.TrimSpace(*p.TimeOfDay)
	}

	// Preference values are clamped into [0,1] rather than rejected.
	for name, value := range p.Preferences {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		if value < 0 {
			value = 0
		}
		if value > 1 {
			value = 1
		}
		intent.Preferences[name] = value
	}

	// Place types outside the vocabulary are dropped; an empty result
	// falls back to the default pair.
	seen := map[string]bool{}
	for _, pt := range p.PlaceTypes {
		pt = strings.TrimSpace(strings.ToLower(pt))
		if !model.AllowedPlaceTypes[pt] || seen[pt] {
			continue
		}
		seen[pt] = true
		intent.PlaceTypes = append(intent.PlaceTypes, pt)
	}
	if len(intent.PlaceTypes) == 0 {
		intent.PlaceTypes = model.DefaultPlaceTypes()
	}

	return intent
}
