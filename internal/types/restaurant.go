// README: Shared domain models used across modules.
package types

// Restaurant is the domain shape returned to clients. It is built once from a
// places-provider record and never mutated afterwards.
type Restaurant struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Address    string              `json:"address"`
	Distance   float64             `json:"distance"`
	Rating     float64             `json:"rating"`
	PriceLevel int                 `json:"priceLevel"`
	Cuisine    []string            `json:"cuisine"`
	Phone      string              `json:"phone,omitempty"`
	Website    string              `json:"website,omitempty"`
	OpenNow    *bool               `json:"openNow,omitempty"`
	Latitude   float64             `json:"latitude"`
	Longitude  float64             `json:"longitude"`
	PhotoURL   string              `json:"photoUrl,omitempty"`
	AISummary  *AIGeneratedSummary `json:"aiSummary,omitempty"`
}

// UserPreferences narrows a restaurant search.
type UserPreferences struct {
	MaxDistance         int      `json:"maxDistance"`
	MinRating           float64  `json:"minRating"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	FavoriteStyles      []string `json:"favoriteStyles"`
}

// DefaultMaxDistance and DefaultMinRating apply when no preferences are sent.
const (
	DefaultMaxDistance = 10
	DefaultMinRating   = 3.0
)

// SearchRequest is the body of a recommendation request. When Latitude and
// Longitude are nil the Address must be geocodable.
type SearchRequest struct {
	Address     string           `json:"address"`
	Latitude    *float64         `json:"latitude,omitempty"`
	Longitude   *float64         `json:"longitude,omitempty"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
	Offset      int              `json:"offset"`
	SessionID   string           `json:"sessionId,omitempty"`
}

// AIGeneratedSummary is the model-produced (or fallback) summary of one restaurant.
type AIGeneratedSummary struct {
	RestaurantID    string   `json:"restaurantId"`
	Summary         string   `json:"summary"`
	Highlights      []string `json:"highlights"`
	Recommendations []string `json:"recommendations"`
}
