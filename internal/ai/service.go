package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Loganocm/Parlor/internal/types"
)

// Review is the fragment of a customer review fed into summary prompts.
type Review struct {
	Rating float64
	Text   string
}

// maxPromptReviews caps how many reviews are embedded in a summary prompt.
const maxPromptReviews = 7

// Service turns restaurant data into AI rankings and summaries. Every public
// method degrades deterministically: a provider or parse failure never reaches
// the caller as an error.
type Service struct {
	gen    TextGenerator
	logger *zap.Logger
}

func NewService(gen TextGenerator, logger *zap.Logger) *Service {
	return &Service{gen: gen, logger: logger}
}

// RankRestaurants asks the model to order restaurants best-first for the given
// preferences. When the model's answer does not cover every restaurant, or
// anything else goes wrong, the order falls back to rating desc / distance asc.
func (s *Service) RankRestaurants(ctx context.Context, restaurants []types.Restaurant, prefs *types.UserPreferences) []types.Restaurant {
	if len(restaurants) <= 1 {
		return restaurants
	}

	prompt := buildRankingPrompt(restaurants, prefs)

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("ranking generation failed, falling back to rating sort", zap.Error(err))
		return sortByRating(restaurants)
	}

	rankedIDs, err := parseRankingResponse(text, restaurants)
	if err != nil || len(rankedIDs) < len(restaurants) {
		s.logger.Warn("ranking response unusable, falling back to rating sort",
			zap.Error(err), zap.Int("ranked", len(rankedIDs)), zap.Int("total", len(restaurants)))
		return sortByRating(restaurants)
	}

	byID := make(map[string]types.Restaurant, len(restaurants))
	for _, r := range restaurants {
		byID[r.ID] = r
	}

	ranked := make([]types.Restaurant, 0, len(restaurants))
	seen := make(map[string]bool, len(rankedIDs))
	for _, id := range rankedIDs {
		if r, ok := byID[id]; ok && !seen[id] {
			ranked = append(ranked, r)
			seen[id] = true
		}
	}
	// Stragglers keep their original relative order.
	for _, r := range restaurants {
		if !seen[r.ID] {
			ranked = append(ranked, r)
		}
	}
	return ranked
}

func sortByRating(restaurants []types.Restaurant) []types.Restaurant {
	out := make([]types.Restaurant, len(restaurants))
	copy(out, restaurants)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Distance < out[j].Distance
	})
	return out
}

func buildRankingPrompt(restaurants []types.Restaurant, prefs *types.UserPreferences) string {
	lines := make([]string, 0, len(restaurants))
	for i, r := range restaurants {
		lines = append(lines, fmt.Sprintf("%d. %s | %.1f★ | %s | %.2fmi | ID:%s",
			i+1, r.Name, r.Rating, strings.Repeat("$", r.PriceLevel), r.Distance, r.ID))
	}

	preferencesText := "balanced quality and distance"
	if prefs != nil {
		var parts []string
		if len(prefs.DietaryRestrictions) > 0 {
			parts = append(parts, "dietary: "+strings.Join(prefs.DietaryRestrictions, ", "))
		}
		if prefs.MinRating > 0 {
			parts = append(parts, fmt.Sprintf("min %.1f★", prefs.MinRating))
		}
		if prefs.MaxDistance > 0 {
			parts = append(parts, fmt.Sprintf("max %dmi", prefs.MaxDistance))
		}
		if len(parts) > 0 {
			preferencesText = strings.Join(parts, ", ")
		}
	}

	return fmt.Sprintf(`Rank these pizza restaurants from best to worst for a user prioritizing %s.

Restaurants:
%s

Return ONLY a JSON array of restaurant IDs in ranked order (best first).
Format: ["id1", "id2", "id3", ...]

Response:`, preferencesText, strings.Join(lines, "\n"))
}

// parseRankingResponse extracts the ordered id list from the model output and
// drops anything that is not an id of an input restaurant.
func parseRankingResponse(text string, restaurants []types.Restaurant) ([]string, error) {
	// Single-quote normalization is safe here: valid ids never contain quotes.
	cleaned := strings.ReplaceAll(normalizeJSONText(text, "["), "'", `"`)

	var ids []string
	if err := json.Unmarshal([]byte(cleaned), &ids); err != nil {
		return nil, fmt.Errorf("parse ranking response: %w", err)
	}

	valid := make(map[string]bool, len(restaurants))
	for _, r := range restaurants {
		valid[r.ID] = true
	}

	filtered := ids[:0]
	for _, id := range ids {
		if valid[id] {
			filtered = append(filtered, id)
		}
	}
	return filtered, nil
}

// summaryPayload is the schema the summary prompt asks the model to emit.
type summaryPayload struct {
	Summary         string   `json:"summary"`
	Highlights      []string `json:"highlights"`
	Recommendations []string `json:"recommendations"`
}

// GenerateRestaurantSummary produces a review-grounded summary for one
// restaurant. On any failure it returns a deterministic summary built from the
// restaurant's own fields; it never returns an error.
func (s *Service) GenerateRestaurantSummary(ctx context.Context, restaurant types.Restaurant, reviews []Review, prefs *types.UserPreferences) types.AIGeneratedSummary {
	prompt := buildSummaryPrompt(restaurant, reviews)

	text, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn("summary generation failed, using fallback",
			zap.String("restaurant_id", restaurant.ID), zap.Error(err))
		return fallbackSummary(restaurant)
	}

	var payload summaryPayload
	if err := json.Unmarshal([]byte(normalizeJSONText(text, "{")), &payload); err != nil {
		s.logger.Warn("summary response unparsable, using fallback",
			zap.String("restaurant_id", restaurant.ID), zap.Error(err))
		return fallbackSummary(restaurant)
	}

	// Per-field defaults for partially filled responses.
	if payload.Summary == "" {
		payload.Summary = "A great pizza place worth trying!"
	}
	if len(payload.Highlights) == 0 {
		payload.Highlights = []string{"Great pizza", "Good service"}
	}
	if len(payload.Recommendations) == 0 {
		payload.Recommendations = []string{"Try their signature pizza"}
	}

	return types.AIGeneratedSummary{
		RestaurantID:    restaurant.ID,
		Summary:         payload.Summary,
		Highlights:      payload.Highlights,
		Recommendations: payload.Recommendations,
	}
}

func buildSummaryPrompt(restaurant types.Restaurant, reviews []Review) string {
	reviewsText := "No reviews available."
	if len(reviews) > 0 {
		if len(reviews) > maxPromptReviews {
			reviews = reviews[:maxPromptReviews]
		}
		var lines []string
		for _, r := range reviews {
			if r.Text == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("- %.0f/5 stars: %s", r.Rating, r.Text))
		}
		if len(lines) > 0 {
			reviewsText = strings.Join(lines, "\n")
		}
	}

	return fmt.Sprintf(`Create a focused, authentic summary for this pizza restaurant based heavily on the following real-world customer reviews.

Restaurant: %s
Details: %.1f/5 stars, %s, %.2f miles away, %s

Real Customer Reviews:
%s

Provide:
1. A 2-3 sentence summary synthesizing the consensus from the reviews (be honest about pros and cons mentioned).
2. 2-3 key highlights mentioned repeatedly in reviews (array).
3. 1-2 specific food/drink recommendations mentioned in reviews (array).

Format your response as valid JSON with keys: "summary", "highlights" (array), "recommendations" (array)
Example:
{
  "summary": "Reviews consistently praise the wood-fired crust but note the service can be slow...",
  "highlights": ["Amazing crust", "Loud atmosphere"],
  "recommendations": ["Pepperoni slice", "Garlic knots"]
}
`, restaurant.Name, restaurant.Rating, strings.Repeat("$", restaurant.PriceLevel), restaurant.Distance, restaurant.Address, reviewsText)
}

// fallbackSummary builds the deterministic summary used whenever the model
// path fails.
func fallbackSummary(restaurant types.Restaurant) types.AIGeneratedSummary {
	return types.AIGeneratedSummary{
		RestaurantID: restaurant.ID,
		Summary: fmt.Sprintf("%s is a highly-rated pizza restaurant with a %.1f/5 star rating.",
			restaurant.Name, restaurant.Rating),
		Highlights: []string{
			fmt.Sprintf("Rated %.1f/5 stars", restaurant.Rating),
			fmt.Sprintf("Only %.2f miles away", restaurant.Distance),
		},
		Recommendations: []string{"Check out their menu online before visiting"},
	}
}

// normalizeJSONText strips markdown code fences from model output. wantOpen
// is the opening bracket of the expected JSON value ("[" or "{").
func normalizeJSONText(input, wantOpen string) string {
	cleaned := strings.TrimSpace(input)
	if strings.Contains(cleaned, "```") {
		for _, part := range strings.Split(cleaned, "```") {
			if strings.Contains(part, wantOpen) {
				cleaned = strings.TrimSpace(part)
				cleaned = strings.TrimPrefix(cleaned, "json")
				cleaned = strings.TrimSpace(cleaned)
				break
			}
		}
	}
	return cleaned
}
