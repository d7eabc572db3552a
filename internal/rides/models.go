package rides

// MaxSeatsPerRide caps how many seats a driver can publish on one ride
const MaxSeatsPerRide = 8

// CreateRideRequest is the payload for publishing a ride. DepartureTime is
// accepted as a raw string so zoned and naive timestamps can be told apart.
type CreateRideRequest struct {
	Origin           string   `json:"origin" binding:"required" validate:"max=255"`
	Destination      string   `json:"destination" binding:"required" validate:"max=255"`
	OriginLat        *float64 `json:"origin_lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	OriginLng        *float64 `json:"origin_lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
	DestinationLat   *float64 `json:"destination_lat,omitempty" validate:"omitempty,gte=-90,lte=90"`
	DestinationLng   *float64 `json:"destination_lng,omitempty" validate:"omitempty,gte=-180,lte=180"`
	DepartureTime    string   `json:"departure_time" binding:"required"`
	TotalSeats       int      `json:"total_seats" binding:"required" validate:"gte=1,lte=8"`
	PricePerSeat     float64  `json:"price_per_seat" validate:"gte=0"`
	GenderPreference string   `json:"gender_preference" validate:"omitempty,oneof=any male female"`
	UniversityID     *string  `json:"university_id,omitempty"`
	Direction        *string  `json:"direction,omitempty" validate:"omitempty,oneof=to_university from_university"`
}

// SearchFilters narrows a ride search. Zero values mean the filter is off.
// Limit == 0 tells the repository to skip the LIMIT clause; the service
// uses that when it has to post-filter by radius before paginating.
type SearchFilters struct {
	UniversityID     string
	Direction        string
	GenderPreference string
	Date             string // YYYY-MM-DD, matches the departure day
	MinSeats         int
	NearLat          *float64
	NearLng          *float64
	RadiusKm         float64
	Limit            int
	Offset           int
}

// HasRadius reports whether an origin-radius filter was requested
func (f *SearchFilters) HasRadius() bool {
	return f.NearLat != nil && f.NearLng != nil && f.RadiusKm > 0
}
