// README: Recommendation orchestrator: resolve location, cache, search, select, paginate.
package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Loganocm/Parlor/internal/ai"
	"github.com/Loganocm/Parlor/internal/maps"
	"github.com/Loganocm/Parlor/internal/types"
)

const (
	// searchResultLimit is how many raw places one search requests.
	searchResultLimit = 20
	// topPoolSize is the size of the rating-sorted pool the page is drawn from.
	topPoolSize = 7
	// pageSize is how many restaurants one response carries.
	pageSize = 3
)

// Places is the slice of the places gateway the orchestrator needs.
type Places interface {
	GeocodeAddress(ctx context.Context, address string) (float64, float64, error)
	SearchPizzaPlaces(ctx context.Context, lat, lng, radiusMiles, minRating float64, maxResults int, dietaryRestrictions []string) ([]maps.Place, error)
	GetPlaceDetails(ctx context.Context, placeID string) (*maps.PlaceDetails, error)
	ConvertToRestaurant(place maps.Place, userLat, userLng float64) types.Restaurant
}

// Summarizer produces a summary for one restaurant; it never fails.
type Summarizer interface {
	GenerateRestaurantSummary(ctx context.Context, restaurant types.Restaurant, reviews []ai.Review, prefs *types.UserPreferences) types.AIGeneratedSummary
}

type Service struct {
	places    Places
	summaries Summarizer
	store     *Store
	logger    *zap.Logger

	// rng is injected so tests can seed the 3-of-7 sampling step.
	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewService(places Places, summaries Summarizer, store *Store, rng *rand.Rand, logger *zap.Logger) *Service {
	return &Service{
		places:    places,
		summaries: summaries,
		store:     store,
		rng:       rng,
		logger:    logger,
	}
}

// Recommend returns one page of at most three restaurants for the request,
// along with the session id the results are cached under. A search that finds
// nothing yields an empty page, not an error.
func (s *Service) Recommend(ctx context.Context, req types.SearchRequest) ([]types.Restaurant, string, error) {
	lat, lng, err := s.resolveLocation(ctx, req)
	if err != nil {
		return nil, "", err
	}

	maxDistance := types.DefaultMaxDistance
	minRating := types.DefaultMinRating
	var dietary []string
	if req.Preferences != nil {
		if req.Preferences.MaxDistance > 0 {
			maxDistance = req.Preferences.MaxDistance
		}
		if req.Preferences.MinRating > 0 {
			minRating = req.Preferences.MinRating
		}
		dietary = req.Preferences.DietaryRestrictions
	}

	fingerprint := searchFingerprint(lat, lng, maxDistance, minRating, dietary)

	sessionID := req.SessionID
	var ranked []types.Restaurant
	if sessionID != "" {
		if entry, ok := s.store.Get(sessionID); ok && entry.Fingerprint == fingerprint {
			ranked = entry.Restaurants
			s.logger.Info("using cached results", zap.String("session_id", sessionID))
		}
	}

	if ranked == nil {
		places, err := s.places.SearchPizzaPlaces(ctx, lat, lng, float64(maxDistance), minRating, searchResultLimit, dietary)
		if err != nil {
			return nil, "", err
		}
		if len(places) == 0 {
			s.logger.Warn("no pizza places found matching criteria",
				zap.Float64("lat", lat), zap.Float64("lng", lng))
			return []types.Restaurant{}, sessionID, nil
		}

		restaurants := make([]types.Restaurant, 0, len(places))
		for _, p := range places {
			restaurants = append(restaurants, s.places.ConvertToRestaurant(p, lat, lng))
		}

		ranked = s.selectPage(restaurants)

		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		s.store.Put(sessionID, Entry{Fingerprint: fingerprint, Restaurants: ranked})
		s.logger.Info("selected and cached restaurants",
			zap.String("session_id", sessionID),
			zap.Int("found", len(places)),
			zap.Int("selected", len(ranked)))
	}

	return paginate(ranked, req.Offset), sessionID, nil
}

func (s *Service) resolveLocation(ctx context.Context, req types.SearchRequest) (float64, float64, error) {
	if req.Latitude != nil && req.Longitude != nil {
		return *req.Latitude, *req.Longitude, nil
	}
	if strings.TrimSpace(req.Address) == "" {
		return 0, 0, fmt.Errorf("%w: address or coordinates required", ErrValidation)
	}
	lat, lng, err := s.places.GeocodeAddress(ctx, req.Address)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	s.logger.Info("geocoded address",
		zap.String("address", req.Address), zap.Float64("lat", lat), zap.Float64("lng", lng))
	return lat, lng, nil
}

// selectPage sorts by rating desc / distance asc, keeps the top seven, and
// draws three of them uniformly at random. Seven or fewer restaurants with
// three or fewer survivors are kept as-is.
func (s *Service) selectPage(restaurants []types.Restaurant) []types.Restaurant {
	sorted := make([]types.Restaurant, len(restaurants))
	copy(sorted, restaurants)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].Distance < sorted[j].Distance
	})

	top := sorted
	if len(top) > topPoolSize {
		top = top[:topPoolSize]
	}
	if len(top) <= pageSize {
		return top
	}

	s.rngMu.Lock()
	perm := s.rng.Perm(len(top))
	s.rngMu.Unlock()

	selected := make([]types.Restaurant, 0, pageSize)
	for _, idx := range perm[:pageSize] {
		selected = append(selected, top[idx])
	}
	return selected
}

// paginate takes a window of pageSize starting at offset mod len, wrapping
// past the end so sequential offsets loop through the list forever.
func paginate(list []types.Restaurant, offset int) []types.Restaurant {
	if len(list) == 0 {
		return []types.Restaurant{}
	}

	start := offset % len(list)
	if start < 0 {
		start += len(list)
	}

	n := pageSize
	if n > len(list) {
		n = len(list)
	}
	page := make([]types.Restaurant, 0, n)
	for i := 0; i < n; i++ {
		page = append(page, list[(start+i)%len(list)])
	}
	return page
}

// searchFingerprint digests the parameters that define a search so cached
// results can be invalidated when any of them change.
func searchFingerprint(lat, lng float64, maxDistance int, minRating float64, dietary []string) string {
	key := fmt.Sprintf("%.6f_%.6f_%d_%.2f_%s",
		lat, lng, maxDistance, minRating, strings.Join(dietary, ","))
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// SummaryForPlace fetches place details and produces an AI summary from up to
// seven reviews. Only the details fetch can fail; summary generation always
// degrades to a deterministic fallback.
func (s *Service) SummaryForPlace(ctx context.Context, placeID string) (types.AIGeneratedSummary, error) {
	details, err := s.places.GetPlaceDetails(ctx, placeID)
	if err != nil {
		if errors.Is(err, maps.ErrPlaceNotFound) {
			return types.AIGeneratedSummary{}, fmt.Errorf("%w: %s", ErrNotFound, placeID)
		}
		return types.AIGeneratedSummary{}, err
	}

	name := details.DisplayName.Text
	if name == "" {
		name = "Unknown"
	}
	address := details.FormattedAddress
	if address == "" {
		address = "N/A"
	}

	restaurant := types.Restaurant{
		ID:         strings.TrimPrefix(placeID, "places/"),
		Name:       name,
		Address:    address,
		Rating:     details.Rating,
		PriceLevel: 2,
		Cuisine:    []string{"Pizza"},
		Latitude:   details.Location.Latitude,
		Longitude:  details.Location.Longitude,
	}

	reviews := make([]ai.Review, 0, len(details.Reviews))
	for _, rv := range details.Reviews {
		reviews = append(reviews, ai.Review{Rating: rv.Rating, Text: rv.Text.Text})
	}

	summary := s.summaries.GenerateRestaurantSummary(ctx, restaurant, reviews, nil)
	s.logger.Info("generated restaurant summary", zap.String("restaurant_id", restaurant.ID))
	return summary, nil
}
