package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"placepilot/internal/config"
	"placepilot/internal/model"
)

// VenueSource is the interface for venue discovery and travel metrics.
// The live implementation talks to Mapbox; tests inject fakes.
type VenueSource interface {
	// SearchVenues returns candidate venues near a point for one
	// category. radiusKm is a hint only; the source decides how to
	// honor it.
	SearchVenues(ctx context.Context, lat, lng float64, category string, radiusKm float64, limit int) ([]*model.Venue, error)

	// TravelTime returns distance and traffic-aware travel time from
	// origin to destination. A nil-valued result means the directions
	// call failed; callers must treat that as a missing signal.
	TravelTime(ctx context.Context, originLat, originLng, destLat, destLng float64) (*model.TravelMetrics, error)
}

// MapboxClient implements VenueSource against the Mapbox category
// search and driving-traffic directions APIs.
type MapboxClient struct {
	config     *config.MapboxConfig
	httpClient *http.Client
}

// NewMapboxClient creates a new Mapbox client
func NewMapboxClient(cfg *config.MapboxConfig) *MapboxClient {
	return &MapboxClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// categorySearchResponse is the subset of the Mapbox category search
// response the pipeline consumes.
type categorySearchResponse struct {
	Features []struct {
		ID       string `json:"id"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
		Properties struct {
			MapboxID    string   `json:"mapbox_id"`
			FeatureName string   `json:"feature_name"`
			Name        string   `json:"name"`
			PlaceName   string   `json:"place_name"`
			Description string   `json:"description"`
			POICategory []string `json:"poi_category"`
			Metadata    struct {
				Website string `json:"website"`
				Phone   string `json:"phone"`
			} `json:"metadata"`
		} `json:"properties"`
	} `json:"features"`
}

// SearchVenues fetches venues for one category near the given point.
// Mapbox has no radius parameter on category search; radiusKm only
// biases the proximity ordering, which is why the plan treats it as a
// hint rather than a guarantee.
func (c *MapboxClient) SearchVenues(ctx context.Context, lat, lng float64, category string, radiusKm float64, limit int) ([]*model.Venue, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("Mapbox is not enabled (missing token)")
	}

	params := url.Values{}
	params.Set("proximity", fmt.Sprintf("%f,%f", lng, lat))
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("language", "en")
	params.Set("access_token", c.config.Token)

	reqURL := fmt.Sprintf("%s/category/%s?%s", c.config.SearchBase, url.PathEscape(category), params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result categorySearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	venues := make([]*model.Venue, 0, len(result.Features))
	for _, f := range result.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}

		placeID := f.Properties.MapboxID
		if placeID == "" {
			placeID = f.ID
		}
		name := f.Properties.FeatureName
		if name == "" {
			name = f.Properties.Name
		}
		address := f.Properties.PlaceName
		if address == "" {
			address = f.Properties.Description
		}

		venues = append(venues, &model.Venue{
			PlaceID:   placeID,
			Name:      name,
			Address:   address,
			Latitude:  f.Geometry.Coordinates[1],
			Longitude: f.Geometry.Coordinates[0],
			Category:  category,
			Website:   f.Properties.Metadata.Website,
			Phone:     f.Properties.Metadata.Phone,
		})
	}

	return venues, nil
}

// directionsResponse is the subset of the directions response we use.
// duration_typical is only present on the driving-traffic profile and
// gives the free-flow baseline for the traffic ratio.
type directionsResponse struct {
	Routes []struct {
		Distance        float64  `json:"distance"` // meters
		Duration        float64  `json:"duration"` // seconds, traffic-aware
		DurationTypical *float64 `json:"duration_typical,omitempty"`
	} `json:"routes"`
}

// TravelTime fetches distance and traffic-aware travel time for one
// origin/destination pair. On any failure it returns a nil-valued
// metrics struct so a single bad venue never aborts the pipeline.
func (c *MapboxClient) TravelTime(ctx context.Context, originLat, originLng, destLat, destLng float64) (*model.TravelMetrics, error) {
	if !c.config.Enabled {
		return &model.TravelMetrics{}, nil
	}

	params := url.Values{}
	params.Set("geometries", "geojson")
	params.Set("overview", "simplified")
	params.Set("annotations", "duration")
	params.Set("access_token", c.config.Token)

	reqURL := fmt.Sprintf("%s/%f,%f;%f,%f?%s",
		c.config.RoutesBase, originLng, originLat, destLng, destLat, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return &model.TravelMetrics{}, nil
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &model.TravelMetrics{}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return &model.TravelMetrics{}, nil
	}

	var result directionsResponse
	if err := json.Unmarshal(body, &result); err != nil || len(result.Routes) == 0 {
		return &model.TravelMetrics{}, nil
	}

	route := result.Routes[0]
	distanceKm := math.Round(route.Distance/1000*100) / 100
	minutes := int(route.Duration / 60)

	metrics := &model.TravelMetrics{
		DistanceKm: &distanceKm,
		Minutes:    &minutes,
	}
	if route.DurationTypical != nil {
		freeFlow := int(*route.DurationTypical / 60)
		metrics.FreeFlowMinutes = &freeFlow
	}

	return metrics, nil
}

// Ensure MapboxClient implements VenueSource
var _ VenueSource = (*MapboxClient)(nil)
