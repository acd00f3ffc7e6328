package amadeus

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// FlightOffersQuery parameterizes GET /v2/shopping/flight-offers.
type FlightOffersQuery struct {
	Origin        string
	Destination   string
	DepartureDate string // YYYY-MM-DD
	ReturnDate    string
	TravelClass   string // ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST
	NonStop       bool
	Adults        int
	Max           int
	CurrencyCode  string
}

// FlightOffersResponse is the flight-offers search payload.
type FlightOffersResponse struct {
	Data []FlightOffer `json:"data"`
}

// FlightOffer is one priced offer.
type FlightOffer struct {
	ID               string            `json:"id"`
	Price            Price             `json:"price"`
	Itineraries      []Itinerary       `json:"itineraries"`
	TravelerPricings []TravelerPricing `json:"travelerPricings"`
}

// Price carries the offer total as a decimal string.
type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// Itinerary is one direction of travel.
type Itinerary struct {
	Duration string    `json:"duration"` // ISO 8601, e.g. "PT5H30M"
	Segments []Segment `json:"segments"`
}

// Segment is one flight leg.
type Segment struct {
	Departure   SegmentPoint `json:"departure"`
	Arrival     SegmentPoint `json:"arrival"`
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
}

// SegmentPoint is an airport plus local timestamp.
type SegmentPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

// TravelerPricing carries the fare details per traveler.
type TravelerPricing struct {
	FareDetailsBySegment []FareDetails `json:"fareDetailsBySegment"`
}

// FareDetails is the per-segment fare info.
type FareDetails struct {
	Cabin string `json:"cabin"`
}

// FlightOffers calls GET /v2/shopping/flight-offers.
func (c *httpClient) FlightOffers(ctx context.Context, q FlightOffersQuery) (*FlightOffersResponse, error) {
	params := url.Values{
		"originLocationCode":      {strings.ToUpper(q.Origin)},
		"destinationLocationCode": {strings.ToUpper(q.Destination)},
		"departureDate":           {q.DepartureDate},
	}
	adults := q.Adults
	if adults <= 0 {
		adults = 1
	}
	params.Set("adults", strconv.Itoa(adults))
	if q.Max > 0 {
		params.Set("max", strconv.Itoa(q.Max))
	}
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}
	if q.TravelClass != "" {
		params.Set("travelClass", strings.ToUpper(q.TravelClass))
	}
	if q.NonStop {
		params.Set("nonStop", "true")
	}
	if q.CurrencyCode != "" {
		params.Set("currencyCode", q.CurrencyCode)
	}

	var out FlightOffersResponse
	if err := c.get(ctx, "/v2/shopping/flight-offers", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HotelListResponse is the hotel-list-by-city payload.
type HotelListResponse struct {
	Data []HotelListing `json:"data"`
}

// HotelListing is one hotel's static metadata.
type HotelListing struct {
	HotelID   string   `json:"hotelId"`
	Name      string   `json:"name"`
	Rating    string   `json:"rating"`
	GeoCode   GeoCode  `json:"geoCode"`
	Address   Address  `json:"address"`
	Amenities []string `json:"amenities"`
}

// GeoCode is a coordinate pair.
type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address is a structured postal address.
type Address struct {
	Lines       []string `json:"lines"`
	PostalCode  string   `json:"postalCode"`
	CityName    string   `json:"cityName"`
	CountryCode string   `json:"countryCode"`
}

// Format joins the populated address parts into one line.
func (a Address) Format() string {
	parts := append([]string{}, a.Lines...)
	for _, p := range []string{a.PostalCode, a.CityName, a.CountryCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// HotelsByCity calls GET /v1/reference-data/locations/hotels/by-city.
func (c *httpClient) HotelsByCity(ctx context.Context, cityCode string) (*HotelListResponse, error) {
	params := url.Values{"cityCode": {strings.ToUpper(cityCode)}}

	var out HotelListResponse
	if err := c.get(ctx, "/v1/reference-data/locations/hotels/by-city", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HotelOffersQuery parameterizes GET /v3/shopping/hotel-offers.
type HotelOffersQuery struct {
	HotelIDs     []string
	CheckInDate  string // YYYY-MM-DD
	CheckOutDate string
	Adults       int
	RoomQuantity int
	CurrencyCode string
}

// HotelOffersResponse is the hotel-offers payload.
type HotelOffersResponse struct {
	Data []HotelOfferItem `json:"data"`
}

// HotelOfferItem pairs a hotel with its available offers.
type HotelOfferItem struct {
	Hotel  OfferHotel   `json:"hotel"`
	Offers []HotelOffer `json:"offers"`
}

// OfferHotel is the hotel metadata embedded in an offer response.
type OfferHotel struct {
	HotelID   string   `json:"hotelId"`
	Name      string   `json:"name"`
	Rating    string   `json:"rating"`
	GeoCode   GeoCode  `json:"geoCode"`
	Address   Address  `json:"address"`
	Amenities []string `json:"amenities"`
	Distance  Distance `json:"distance"`
}

// Distance is the hotel's distance from the search center.
type Distance struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// HotelOffer is one bookable rate.
type HotelOffer struct {
	ID           string `json:"id"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Price        Price  `json:"price"`
}

// HotelOffers calls GET /v3/shopping/hotel-offers.
func (c *httpClient) HotelOffers(ctx context.Context, q HotelOffersQuery) (*HotelOffersResponse, error) {
	params := url.Values{
		"hotelIds":     {strings.Join(q.HotelIDs, ",")},
		"checkInDate":  {q.CheckInDate},
		"checkOutDate": {q.CheckOutDate},
	}
	adults := q.Adults
	if adults <= 0 {
		adults = 1
	}
	rooms := q.RoomQuantity
	if rooms <= 0 {
		rooms = 1
	}
	params.Set("adults", strconv.Itoa(adults))
	params.Set("roomQuantity", strconv.Itoa(rooms))
	if q.CurrencyCode != "" {
		params.Set("currencyCode", q.CurrencyCode)
	}

	var out HotelOffersResponse
	if err := c.get(ctx, "/v3/shopping/hotel-offers", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
