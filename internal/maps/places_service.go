package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

const placesBaseURL = "https://places.googleapis.com/v1"

// metersPerMile converts the client's radius into the unit the API expects.
// The API caps circle biases at 50km.
const (
	metersPerMile   = 1609.34
	maxRadiusMeters = 50000
	maxSearchCount  = 20
)

var (
	// ErrGeocode is returned when an address cannot be resolved to coordinates.
	ErrGeocode = errors.New("address could not be geocoded")
	// ErrPlaceNotFound is returned when the provider has no record for a place id.
	ErrPlaceNotFound = errors.New("place not found")
)

// geocoder is the slice of the Google Maps client used here, extracted so
// tests can substitute a stub.
type geocoder interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// PlacesService talks to the Places API (New) and the classic Geocoding API.
// The v1 surface (searchText, place details, autocomplete, photo media) is not
// covered by the googlemaps client, so those calls go over plain HTTP with the
// X-Goog-Api-Key / X-Goog-FieldMask header scheme.
type PlacesService struct {
	apiKey     string
	baseURL    string
	appBaseURL string
	httpClient *http.Client
	geo        geocoder
	logger     *zap.Logger
}

// NewPlacesService creates a PlacesService with the given API key. appBaseURL
// is this service's own public address, used to build photo-proxy links that
// keep the key off the frontend.
func NewPlacesService(apiKey, appBaseURL string, logger *zap.Logger) (*PlacesService, error) {
	if apiKey == "" {
		return nil, errors.New("places api key is required")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{
		apiKey:     apiKey,
		baseURL:    placesBaseURL,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		geo:        client,
		logger:     logger,
	}, nil
}

// GeocodeAddress resolves an address to (lat, lng) via the Geocoding API.
func (s *PlacesService) GeocodeAddress(ctx context.Context, address string) (float64, float64, error) {
	results, err := s.geo.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrGeocode, err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrGeocode, address)
	}
	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

type searchTextRequest struct {
	TextQuery      string       `json:"textQuery"`
	LocationBias   locationBias `json:"locationBias"`
	MaxResultCount int          `json:"maxResultCount"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center LatLng  `json:"center"`
	Radius float64 `json:"radius"`
}

var searchFieldMask = strings.Join([]string{
	"places.id",
	"places.displayName",
	"places.formattedAddress",
	"places.location",
	"places.rating",
	"places.userRatingCount",
	"places.priceLevel",
	"places.websiteUri",
	"places.nationalPhoneNumber",
	"places.currentOpeningHours",
	"places.photos",
	"places.types",
}, ",")

// SearchPizzaPlaces runs a center-biased text search for pizza restaurants.
// Dietary restrictions are prefixed to the query ("Vegan Gluten-Free pizza
// restaurant"). minRating is part of the search identity; the provider does
// not support it as a filter.
func (s *PlacesService) SearchPizzaPlaces(ctx context.Context, lat, lng, radiusMiles, minRating float64, maxResults int, dietaryRestrictions []string) ([]Place, error) {
	query := "pizza restaurant"
	if len(dietaryRestrictions) > 0 {
		query = strings.Join(dietaryRestrictions, " ") + " " + query
	}

	radius := radiusMiles * metersPerMile
	if radius > maxRadiusMeters {
		radius = maxRadiusMeters
	}
	if maxResults > maxSearchCount {
		maxResults = maxSearchCount
	}

	body := searchTextRequest{
		TextQuery: query,
		LocationBias: locationBias{Circle: circle{
			Center: LatLng{Latitude: lat, Longitude: lng},
			Radius: radius,
		}},
		MaxResultCount: maxResults,
	}

	var resp struct {
		Places []Place `json:"places"`
	}
	if err := s.postJSON(ctx, "/places:searchText", searchFieldMask, body, &resp); err != nil {
		return nil, err
	}

	s.logger.Info("places text search completed",
		zap.String("query", query),
		zap.Int("results", len(resp.Places)))
	return resp.Places, nil
}

var detailsFieldMask = strings.Join([]string{
	"id",
	"displayName",
	"formattedAddress",
	"location",
	"rating",
	"userRatingCount",
	"priceLevel",
	"websiteUri",
	"nationalPhoneNumber",
	"internationalPhoneNumber",
	"currentOpeningHours",
	"regularOpeningHours",
	"types",
	"editorialSummary",
	"reviews",
}, ",")

// GetPlaceDetails fetches the full detail record for a place id. The id may
// arrive with or without the "places/" resource prefix.
func (s *PlacesService) GetPlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	if !strings.HasPrefix(placeID, "places/") {
		placeID = "places/" + placeID
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+placeID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Goog-Api-Key", s.apiKey)
	req.Header.Set("X-Goog-FieldMask", detailsFieldMask)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPlaceNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, upstreamError(resp)
	}

	var details PlaceDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("places api: decode details: %w", err)
	}
	return &details, nil
}

type autocompleteRequest struct {
	Input        string `json:"input"`
	SessionToken string `json:"sessionToken,omitempty"`
}

// GetAutocompletePredictions returns place predictions for partial input.
// Autocomplete is non-critical UX, so every failure collapses to an empty
// list instead of an error.
func (s *PlacesService) GetAutocompletePredictions(ctx context.Context, input, sessionToken string) []Prediction {
	var resp struct {
		Suggestions []struct {
			PlacePrediction struct {
				PlaceID string        `json:"placeId"`
				Text    LocalizedText `json:"text"`
				Format  struct {
					MainText      LocalizedText `json:"mainText"`
					SecondaryText LocalizedText `json:"secondaryText"`
				} `json:"structuredFormat"`
			} `json:"placePrediction"`
		} `json:"suggestions"`
	}

	body := autocompleteRequest{Input: input, SessionToken: sessionToken}
	if err := s.postJSON(ctx, "/places:autocomplete", "", body, &resp); err != nil {
		s.logger.Warn("autocomplete request failed", zap.Error(err))
		return []Prediction{}
	}

	predictions := make([]Prediction, 0, len(resp.Suggestions))
	for _, sug := range resp.Suggestions {
		pp := sug.PlacePrediction
		if pp.PlaceID == "" {
			continue
		}
		predictions = append(predictions, Prediction{
			PlaceID:       pp.PlaceID,
			Description:   pp.Text.Text,
			MainText:      pp.Format.MainText.Text,
			SecondaryText: pp.Format.SecondaryText.Text,
		})
	}
	return predictions
}

// FetchPhoto streams a place photo through the provider's media endpoint.
// The caller owns the returned body.
func (s *PlacesService) FetchPhoto(ctx context.Context, resourceName string) (io.ReadCloser, string, error) {
	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("maxHeightPx", "400")
	params.Set("maxWidthPx", "400")

	mediaURL := s.baseURL + "/" + resourceName + "/media?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("places media: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, "", upstreamError(resp)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return resp.Body, contentType, nil
}

// postJSON posts a body to a places v1 endpoint and decodes the response.
func (s *PlacesService) postJSON(ctx context.Context, path, fieldMask string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", s.apiKey)
	if fieldMask != "" {
		req.Header.Set("X-Goog-FieldMask", fieldMask)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return upstreamError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func upstreamError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("places api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
}
