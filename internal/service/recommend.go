package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"placepilot/internal/model"
)

// PreferenceStore is the read side of the user personalization state
// plus the analytics sink. The pipeline never writes preferences.
type PreferenceStore interface {
	// GetPreferences returns the stored record, or nil when the user
	// has none.
	GetPreferences(ctx context.Context, userID string) (*model.UserPreferenceRecord, error)

	// LogRecommendation records one pipeline run.
	LogRecommendation(ctx context.Context, entry *model.RecommendationLog) error
}

// RecommendService owns one instance of every pipeline stage and runs
// them in order: intent, plan, venue fan-out, per-venue enrichment,
// visited filter, ranking, explanation. Each invocation works on its
// own venue list; nothing is shared between requests except the
// read-only preference store.
type RecommendService struct {
	intent       *IntentNormalizer
	planner      *Planner
	venues       VenueSource
	traffic      *TrafficNormalizer
	crowd        *CrowdEstimator
	personalizer *Personalizer
	scorer       *Scorer
	explainer    *Explainer
	store        PreferenceStore

	perCategoryLimit int
	maxResults       int
}

// NewRecommendService wires the pipeline stages together. store may be
// nil, in which case every request is anonymous.
func NewRecommendService(
	intent *IntentNormalizer,
	planner *Planner,
	venues VenueSource,
	traffic *TrafficNormalizer,
	crowd *CrowdEstimator,
	personalizer *Personalizer,
	scorer *Scorer,
	explainer *Explainer,
	store PreferenceStore,
	perCategoryLimit, maxResults int,
) *RecommendService {
	if perCategoryLimit <= 0 {
		perCategoryLimit = 10
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	return &RecommendService{
		intent:           intent,
		planner:          planner,
		venues:           venues,
		traffic:          traffic,
		crowd:            crowd,
		personalizer:     personalizer,
		scorer:           scorer,
		explainer:        explainer,
		store:            store,
		perCategoryLimit: perCategoryLimit,
		maxResults:       maxResults,
	}
}

// GetRecommendations runs the full pipeline for one query. No
// data-quality failure is fatal: a failed category search or travel
// call degrades that slice of the result, never the whole request.
func (s *RecommendService) GetRecommendations(ctx context.Context, query string, lat, lng float64, userID string) (*model.RecommendResponse, error) {
	startTime := time.Now()

	// User preferences are read once, up front, and never written.
	var prefs *model.UserPreferenceRecord
	if userID != "" && s.store != nil {
		record, err := s.store.GetPreferences(ctx, userID)
		if err != nil {
			log.Printf("Failed to load preferences for user %s: %v, continuing without personalization", userID, err)
		} else {
			prefs = record
		}
	}

	intent := s.intent.Normalize(ctx, query)
	plan := s.planner.Build(intent)

	// Fan out over the planned categories.
	var allVenues []*model.Venue
	for _, category := range plan.PlaceTypes {
		venues, err := s.venues.SearchVenues(ctx, lat, lng, category, plan.RadiusKm, s.perCategoryLimit)
		if err != nil {
			log.Printf("Venue search failed for category %s: %v, skipping", category, err)
			continue
		}
		allVenues = append(allVenues, venues...)
	}

	// Enrich each venue: travel metrics, traffic tier, crowd estimate.
	for _, venue := range allVenues {
		s.enrich(ctx, venue, lat, lng, intent.TimeOfDay)
	}

	var visited []string
	if prefs != nil {
		visited = prefs.VisitedPlaces
	}

	filtered := s.personalizer.Filter(allVenues, visited)
	ranked := s.scorer.Rank(filtered, intent, prefs)

	for _, venue := range ranked {
		venue.Explanation = s.explainer.Explain(venue, intent, prefs, visited)
	}

	results := ranked
	if len(results) > s.maxResults {
		results = results[:s.maxResults]
	}

	took := time.Since(startTime).Milliseconds()

	// Log the run (non-blocking).
	if s.store != nil {
		entry := &model.RecommendationLog{
			ID:          uuid.NewString(),
			Query:       query,
			PlaceTypes:  plan.PlaceTypes,
			ResultCount: len(ranked),
			TookMs:      took,
		}
		if userID != "" {
			entry.UserID = &userID
		}
		go func() {
			if err := s.store.LogRecommendation(context.Background(), entry); err != nil {
				log.Printf("Failed to log recommendation: %v", err)
			}
		}()
	}

	return &model.RecommendResponse{
		Intent:       intent,
		StrategyUsed: plan,
		TotalFound:   len(ranked),
		Results:      results,
		Took:         took,
	}, nil
}

// enrich fills the derived travel and crowd fields on one venue. A
// failed travel call leaves the travel fields nil; scoring treats that
// as a missing signal.
func (s *RecommendService) enrich(ctx context.Context, venue *model.Venue, originLat, originLng float64, timeOfDay string) {
	metrics, err := s.venues.TravelTime(ctx, originLat, originLng, venue.Latitude, venue.Longitude)
	if err != nil {
		log.Printf("Travel time lookup failed for %s: %v", venue.Name, err)
		metrics = &model.TravelMetrics{}
	}

	venue.DistanceKm = metrics.DistanceKm
	venue.TravelTimeMinutes = metrics.Minutes

	traffic := s.traffic.Normalize(metrics.Minutes, metrics.FreeFlowMinutes)
	venue.TrafficLevel = traffic.Level
	venue.EffectiveTravelMins = traffic.EffectiveMinutes
	venue.TravelScore = traffic.TravelScore

	level, confidence := s.crowd.Estimate(venue, timeOfDay)
	venue.CrowdLevel = level
	venue.CrowdConfidence = confidence
}
