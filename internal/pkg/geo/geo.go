package geo

import "math"

const earthRadiusMeters = 6371000

// Distance returns the Haversine great-circle distance between two points in
// meters. Identical coordinates return exactly 0 so a zero radius check never
// trips on floating-point noise.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Zone is an allowed punch-in area configured per tenant.
type Zone struct {
	Enabled      bool
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// Point is an observed worker location.
type Point struct {
	Latitude  float64
	Longitude float64
}

type Reason string

const (
	ReasonAllowed    Reason = "allowed"
	ReasonDisabled   Reason = "geofence_disabled"
	ReasonNoLocation Reason = "no_location_provided"
	ReasonOutOfRange Reason = "out_of_range"
)

// Result carries the decision plus the computed distance for diagnostics.
type Result struct {
	Allowed        bool
	DistanceMeters float64
	Reason         Reason
}

// Evaluate decides whether a punch from point is allowed by zone.
// A disabled zone always allows. An enabled zone with no observed location
// denies with a distinct reason so callers can ask the client for coordinates
// instead of telling the worker they are out of range. The radius boundary is
// inclusive.
func Evaluate(zone Zone, point *Point) Result {
	if !zone.Enabled {
		return Result{Allowed: true, Reason: ReasonDisabled}
	}

	if point == nil {
		return Result{Allowed: false, Reason: ReasonNoLocation}
	}

	distance := Distance(zone.Latitude, zone.Longitude, point.Latitude, point.Longitude)
	if distance <= zone.RadiusMeters {
		return Result{Allowed: true, DistanceMeters: distance, Reason: ReasonAllowed}
	}

	return Result{Allowed: false, DistanceMeters: distance, Reason: ReasonOutOfRange}
}
