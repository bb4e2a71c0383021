// README: Recommendation module errors and cache entry shape.
package recommend

import (
	"errors"

	"github.com/Loganocm/Parlor/internal/types"
)

var (
	// ErrValidation covers bad input, including ungeocodable addresses.
	ErrValidation = errors.New("invalid search request")
	// ErrNotFound is returned for unknown restaurant ids.
	ErrNotFound = errors.New("restaurant not found")
)

// Entry is one session's cached result set together with the fingerprint of
// the search parameters that produced it.
type Entry struct {
	Fingerprint string
	Restaurants []types.Restaurant
}
