package maps

// Wire shapes for the Places API (New) at places.googleapis.com/v1.

// LocalizedText is the API's {text, languageCode} wrapper.
type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// LatLng is a coordinate pair in decimal degrees.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OpeningHours carries the subset of opening-hours data the service reads.
type OpeningHours struct {
	OpenNow *bool `json:"openNow,omitempty"`
}

// Photo identifies a place photo resource.
type Photo struct {
	Name     string `json:"name"`
	WidthPx  int    `json:"widthPx,omitempty"`
	HeightPx int    `json:"heightPx,omitempty"`
}

// Place is a single text-search result.
type Place struct {
	ID                  string        `json:"id"`
	DisplayName         LocalizedText `json:"displayName"`
	FormattedAddress    string        `json:"formattedAddress"`
	Location            LatLng        `json:"location"`
	Rating              float64       `json:"rating"`
	UserRatingCount     int           `json:"userRatingCount"`
	PriceLevel          string        `json:"priceLevel,omitempty"`
	WebsiteURI          string        `json:"websiteUri,omitempty"`
	NationalPhoneNumber string        `json:"nationalPhoneNumber,omitempty"`
	CurrentOpeningHours *OpeningHours `json:"currentOpeningHours,omitempty"`
	Photos              []Photo       `json:"photos,omitempty"`
	Types               []string      `json:"types,omitempty"`
}

// Review is one customer review from the place-details endpoint.
type Review struct {
	Rating float64       `json:"rating"`
	Text   LocalizedText `json:"text"`
}

// PlaceDetails is the full detail record, a superset of Place.
type PlaceDetails struct {
	Place
	InternationalPhoneNumber string        `json:"internationalPhoneNumber,omitempty"`
	RegularOpeningHours      *OpeningHours `json:"regularOpeningHours,omitempty"`
	EditorialSummary         LocalizedText `json:"editorialSummary,omitempty"`
	Reviews                  []Review      `json:"reviews,omitempty"`
}

// Prediction is one autocomplete suggestion, flattened for the frontend.
type Prediction struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}
