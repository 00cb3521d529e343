package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// UserPreferenceRecord is the persisted per-user personalization state.
// The pipeline reads it once per request and never writes it; affinity
// counters and visited places are updated through the user endpoints.
type UserPreferenceRecord struct {
	PlaceTypeAffinity map[string]float64 `json:"place_type_affinity"`
	VisitedPlaces     []string           `json:"visited_places"`
}

// Affinity returns the stored weight for a category, 0 when absent.
func (r *UserPreferenceRecord) Affinity(category string) float64 {
	if r == nil || r.PlaceTypeAffinity == nil {
		return 0
	}
	return r.PlaceTypeAffinity[category]
}

// Value implements driver.Valuer so the record can live in a JSONB column.
func (r UserPreferenceRecord) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner.
func (r *UserPreferenceRecord) Scan(value interface{}) error {
	if value == nil {
		*r = UserPreferenceRecord{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported preference column type %T", value)
	}
}

// User is an account record. The ID doubles as the login username.
type User struct {
	ID             string    `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Booking is a stored booking hand-off record.
type Booking struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	PlaceID   string    `json:"place_id" db:"place_id"`
	PlaceName string    `json:"place_name" db:"place_name"`
	Address   string    `json:"address" db:"address"`
	Time      string    `json:"time" db:"booking_time"`
	People    int       `json:"people" db:"people"`
	Provider  string    `json:"provider" db:"provider"`
	ActionURL string    `json:"action_url" db:"action_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RecommendationLog is one pipeline run recorded for analytics.
type RecommendationLog struct {
	ID          string    `json:"id" db:"id"`
	UserID      *string   `json:"user_id,omitempty" db:"user_id"`
	Query       string    `json:"query" db:"query"`
	PlaceTypes  []string  `json:"place_types" db:"-"`
	ResultCount int       `json:"result_count" db:"result_count"`
	TookMs      int64     `json:"took_ms" db:"took_ms"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
