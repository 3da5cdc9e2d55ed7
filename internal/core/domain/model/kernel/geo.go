package kernel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// GeoPointMinLatitude is the southernmost valid latitude in degrees.
	GeoPointMinLatitude float64 = -90
	// GeoPointMaxLatitude is the northernmost valid latitude in degrees.
	GeoPointMaxLatitude float64 = 90
	// GeoPointMinLongitude is the westernmost valid longitude in degrees.
	GeoPointMinLongitude float64 = -180
	// GeoPointMaxLongitude is the easternmost valid longitude in degrees.
	GeoPointMaxLongitude float64 = 180
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. Points must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable pair of WGS84 coordinates. It carries no distance
// semantics of its own: route and distance computation belong to an external
// collaborator that consumes plain points.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(-23.5505, -46.6333)
//	if err != nil {
//	    // out-of-range coordinates
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with validated coordinates. Latitude must be
// within [-90, 90] and longitude within [-180, 180] degrees.
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks the point was created through NewGeoPoint.
// The zero value fails this check.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// IsEqual compares two points coordinate-by-coordinate. Both points must be
// properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}
	return p.lat == other.lat && p.lng == other.lng, nil
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%g,%g)", p.lat, p.lng)
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoPointMinLatitude || lat > GeoPointMaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, GeoPointMinLatitude, GeoPointMaxLatitude)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < GeoPointMinLongitude || lng > GeoPointMaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, GeoPointMinLongitude, GeoPointMaxLongitude)
	}
	p.lng = lng
	return nil
}
