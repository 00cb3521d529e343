package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"placepilot/internal/model"
)

// Booking conversation states.
const (
	BookingStatusError            = "error"
	BookingStatusNeedInfo         = "need_info"
	BookingStatusNeedConfirmation = "need_confirmation"
	BookingStatusReady            = "ready"
)

// BookingService decides whether a booking can proceed and prepares a
// structured hand-off action. It never executes the booking itself.
type BookingService struct{}

// NewBookingService creates a new booking service
func NewBookingService() *BookingService {
	return &BookingService{}
}

// EvaluateState determines the next step in the booking conversation:
// missing place, missing details, pending confirmation, or ready.
func (s *BookingService) EvaluateState(place *model.BookingPlace, bookingTime string, people int, userConfirmed bool) *model.BookingState {
	if place == nil || place.Name == "" {
		return &model.BookingState{
			Status:  BookingStatusError,
			Message: "No place has been selected for booking.",
		}
	}

	if bookingTime == "" {
		return &model.BookingState{
			Status:   BookingStatusNeedInfo,
			Field:    "time",
			Question: "At what time should I book the table?",
		}
	}

	if people <= 0 {
		return &model.BookingState{
			Status:   BookingStatusNeedInfo,
			Field:    "people",
			Question: "For how many people should I book the table?",
		}
	}

	if !userConfirmed {
		return &model.BookingState{
			Status: BookingStatusNeedConfirmation,
			Question: fmt.Sprintf(
				"Should I proceed with booking a table at %s for %d people at %s?",
				place.Name, people, bookingTime,
			),
		}
	}

	return &model.BookingState{Status: BookingStatusReady}
}

// BuildAction selects the best hand-off strategy for a confirmed
// booking: a provider deep link when the venue's website points at a
// known reservation platform, the website itself otherwise, or a
// reservation web search as the last resort.
func (s *BookingService) BuildAction(place *model.BookingPlace, bookingTime string, people int) *model.BookingAction {
	formattedTime, readableTime := parseBookingTime(bookingTime)

	if place.Website != "" {
		site := strings.ToLower(place.Website)

		if strings.Contains(site, "opentable") {
			if people <= 0 {
				people = 2
			}
			return &model.BookingAction{
				Status:     "handoff",
				Provider:   "OpenTable",
				Confidence: "high",
				ActionURL:  fmt.Sprintf("%s?dateTime=%s&covers=%d", place.Website, formattedTime, people),
				Message:    fmt.Sprintf("Opening OpenTable for %s at %s...", place.Name, readableTime),
			}
		}

		if strings.Contains(site, "resy") {
			return &model.BookingAction{
				Status:     "handoff",
				Provider:   "Resy",
				Confidence: "high",
				ActionURL:  place.Website,
				Message:    fmt.Sprintf("Redirecting to Resy for %s...", place.Name),
			}
		}

		return &model.BookingAction{
			Status:     "handoff",
			Provider:   "Direct Website",
			Confidence: "medium",
			ActionURL:  place.Website,
			Message:    fmt.Sprintf("Checking %s's official website...", place.Name),
		}
	}

	query := url.QueryEscape(fmt.Sprintf("reservations at %s %s", place.Name, place.Address))
	return &model.BookingAction{
		Status:     "fallback",
		Provider:   "Web Search",
		Confidence: "low",
		ActionURL:  "https://www.google.com/search?q=" + query,
		Message:    fmt.Sprintf("No direct booking link found. Searching reservations for %s...", place.Name),
	}
}

// parseBookingTime turns an RFC 3339 timestamp into the deep-link and
// human-readable forms. Unparseable input degrades to empty / generic.
func parseBookingTime(bookingTime string) (formatted, readable string) {
	t, err := time.Parse(time.RFC3339, bookingTime)
	if err != nil {
		return "", "requested time"
	}
	return t.Format("2006-01-02T15:04"), t.Format("3:04 PM")
}
