package model

// Venue is a candidate place moving through the recommendation
// pipeline. The venue source fills the identity and static fields;
// each enrichment stage writes its own derived fields and leaves the
// rest alone. Identity fields are never overwritten after creation.
type Venue struct {
	PlaceID   string  `json:"place_id"`
	Name      string  `json:"name"`
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Category  string  `json:"category"`
	Website   string  `json:"website,omitempty"`
	Phone     string  `json:"phone,omitempty"`

	// Static attributes, absent when the source does not supply them.
	Rating      *float64 `json:"rating,omitempty"`       // 0-5
	ReviewCount *int     `json:"review_count,omitempty"` // non-negative
	Popularity  *float64 `json:"popularity,omitempty"`   // 0-100 popular-times signal

	// Travel enrichment (venue source + traffic normalizer).
	DistanceKm           *float64 `json:"distance_km,omitempty"`
	TravelTimeMinutes    *int     `json:"travel_time_minutes,omitempty"`
	EffectiveTravelMins  *int     `json:"effective_travel_minutes,omitempty"`
	TrafficLevel         string   `json:"traffic_level,omitempty"`
	TravelScore          *float64 `json:"travel_score,omitempty"` // 0-1

	// Crowd enrichment.
	CrowdLevel      string  `json:"crowd_level,omitempty"` // low / medium / high
	CrowdConfidence float64 `json:"crowd_confidence"`      // 0-1

	// Scoring and explanation.
	FinalScore  float64 `json:"final_score"`
	Explanation string  `json:"explanation,omitempty"`
}

// TravelMetrics is the raw travel measurement for one venue. Nil fields
// mean the directions call failed or returned nothing usable.
type TravelMetrics struct {
	DistanceKm      *float64 `json:"distance_km"`
	Minutes         *int     `json:"minutes"`
	FreeFlowMinutes *int     `json:"free_flow_minutes,omitempty"`
}

// Traffic and crowd tier values shared across stages.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)
