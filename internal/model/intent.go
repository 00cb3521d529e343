package model

// AllowedPlaceTypes is the fixed vocabulary of venue categories the
// system knows how to search for. Anything the extraction step returns
// outside this set is dropped.
var AllowedPlaceTypes = map[string]bool{
	"restaurant":      true,
	"cafe":            true,
	"bar":             true,
	"fast_food":       true,
	"bakery":          true,
	"park":            true,
	"library":         true,
	"coworking_space": true,
}

// DefaultPlaceTypes is substituted whenever extraction yields no valid
// category at all.
func DefaultPlaceTypes() []string {
	return []string{"restaurant", "cafe"}
}

// UserIntent is the structured form of a free-text query.
type UserIntent struct {
	Descriptors     []string           `json:"descriptors"`
	Preferences     map[string]float64 `json:"preferences"`
	PlaceTypes      []string           `json:"place_types"`
	Constraints     []string           `json:"constraints"`
	TimeOfDay       string             `json:"time_of_day,omitempty"`
	BookingRequired bool               `json:"booking_required"`
}

// Preference dimension names the planner and scorer understand. The
// extraction prompt is free to emit other dimensions; they are carried
// but not interpreted.
const (
	PrefFoodQuality     = "food_quality"
	PrefCrowdQuietness  = "crowd_quietness"
	PrefTravelTolerance = "travel_tolerance"
)

// Preference returns the named dimension or the given default when the
// dimension is absent.
func (i *UserIntent) Preference(name string, fallback float64) float64 {
	if i == nil || i.Preferences == nil {
		return fallback
	}
	if v, ok := i.Preferences[name]; ok {
		return v
	}
	return fallback
}

// FallbackIntent is the guaranteed-safe intent used whenever extraction
// fails: the default category pair and otherwise empty fields.
func FallbackIntent() *UserIntent {
	return &UserIntent{
		Descriptors: []string{},
		Preferences: map[string]float64{},
		PlaceTypes:  DefaultPlaceTypes(),
		Constraints: []string{},
	}
}

// SearchPlan is the concrete search strategy derived from an intent.
// Priorities are insertion-ordered and duplicate-free; RadiusKm is a
// hint for the venue source, not a post-filter.
type SearchPlan struct {
	PlaceTypes    []string `json:"place_types"`
	RadiusKm      float64  `json:"radius_km"`
	Priorities    []string `json:"priorities"`
	BookingLikely bool     `json:"booking_likely"`
}
