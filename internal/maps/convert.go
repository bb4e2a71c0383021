package maps

import (
	"strings"

	"github.com/Loganocm/Parlor/internal/geo"
	"github.com/Loganocm/Parlor/internal/types"
)

// priceLevels maps the API's price enum onto the 1–4 scale clients expect.
// Anything unrecognized falls back to 2 (moderate).
var priceLevels = map[string]int{
	"PRICE_LEVEL_FREE":           1,
	"PRICE_LEVEL_INEXPENSIVE":    1,
	"PRICE_LEVEL_MODERATE":       2,
	"PRICE_LEVEL_EXPENSIVE":      3,
	"PRICE_LEVEL_VERY_EXPENSIVE": 4,
}

// cuisineTypes are the provider type tags surfaced as cuisine labels, in the
// order they appear after the leading "Pizza".
var cuisineTypes = []struct {
	placeType string
	label     string
}{
	{"italian_restaurant", "Italian"},
	{"vegan_restaurant", "Vegan"},
	{"vegetarian_restaurant", "Vegetarian"},
}

// ConvertToRestaurant maps a raw place record into the domain Restaurant,
// computing the distance from the user's resolved location.
func (s *PlacesService) ConvertToRestaurant(place Place, userLat, userLng float64) types.Restaurant {
	distance := geo.DistanceMiles(userLat, userLng, place.Location.Latitude, place.Location.Longitude)

	name := place.DisplayName.Text
	if name == "" {
		name = "Unknown"
	}

	address := place.FormattedAddress
	if address == "" {
		address = "N/A"
	}

	cuisine := []string{"Pizza"}
	for _, ct := range cuisineTypes {
		for _, t := range place.Types {
			if t == ct.placeType {
				cuisine = append(cuisine, ct.label)
				break
			}
		}
	}

	priceLevel := 2
	if lvl, ok := priceLevels[place.PriceLevel]; ok {
		priceLevel = lvl
	}

	var openNow *bool
	if place.CurrentOpeningHours != nil {
		openNow = place.CurrentOpeningHours.OpenNow
	}

	id := strings.TrimPrefix(place.ID, "places/")

	// Photos are served through this service's own media proxy so the API key
	// never reaches the frontend.
	var photoURL string
	if len(place.Photos) > 0 && place.Photos[0].Name != "" {
		photoURL = s.appBaseURL + "/api/media/" + place.Photos[0].Name
	}

	return types.Restaurant{
		ID:         id,
		Name:       name,
		Address:    address,
		Distance:   distance,
		Rating:     place.Rating,
		PriceLevel: priceLevel,
		Cuisine:    cuisine,
		Phone:      place.NationalPhoneNumber,
		Website:    place.WebsiteURI,
		OpenNow:    openNow,
		Latitude:   place.Location.Latitude,
		Longitude:  place.Location.Longitude,
		PhotoURL:   photoURL,
	}
}
