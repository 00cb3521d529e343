package model

// RecommendRequest is the body of POST /api/v1/places/recommend.
type RecommendRequest struct {
	Query     string  `json:"query" binding:"required"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// RecommendResponse is the pipeline output returned to the client.
type RecommendResponse struct {
	Intent       *UserIntent `json:"intent"`
	StrategyUsed *SearchPlan `json:"strategy_used"`
	TotalFound   int         `json:"total_found"`
	Results      []*Venue    `json:"results"`
	Took         int64       `json:"took_ms"`
}

// SignupRequest creates a new account.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest authenticates by username or email.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
}

// VisitedRequest marks a place as visited for the current user.
type VisitedRequest struct {
	PlaceName string `json:"place_name" binding:"required"`
}

// AffinityRequest bumps the stored affinity counter for a category.
// Amount defaults to 0.1 when omitted.
type AffinityRequest struct {
	PlaceType string   `json:"place_type" binding:"required"`
	Amount    *float64 `json:"amount,omitempty"`
}

// BookingEvaluateRequest asks the booking stage whether a booking can
// proceed and, if not, what is still missing.
type BookingEvaluateRequest struct {
	Place         *BookingPlace `json:"place"`
	Time          string        `json:"time"`
	People        int           `json:"people"`
	UserConfirmed bool          `json:"user_confirmed"`
}

// BookingPlace is the minimal venue identity needed for a booking.
type BookingPlace struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name" binding:"required"`
	Address string `json:"address,omitempty"`
	Website string `json:"website,omitempty"`
}

// BookingState describes the next step in the booking conversation.
type BookingState struct {
	Status   string `json:"status"` // error / need_info / need_confirmation / ready
	Field    string `json:"field,omitempty"`
	Question string `json:"question,omitempty"`
	Message  string `json:"message,omitempty"`
}

// BookingCreateRequest records a booking hand-off for the current user.
type BookingCreateRequest struct {
	Place  *BookingPlace `json:"place" binding:"required"`
	Time   string        `json:"time" binding:"required"`
	People int           `json:"people"`
}

// BookingAction is the structured hand-off the client executes. The
// service never performs the booking itself.
type BookingAction struct {
	Status     string `json:"status"` // handoff / fallback
	Provider   string `json:"provider"`
	Confidence string `json:"confidence"` // high / medium / low
	ActionURL  string `json:"action_url"`
	Message    string `json:"message"`
}

// BookingCreateResponse returns the stored booking and its action.
type BookingCreateResponse struct {
	BookingID string         `json:"booking_id"`
	Action    *BookingAction `json:"action"`
}
