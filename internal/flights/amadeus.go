package flights

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tripdeck/travelsearch/internal/model"
	"github.com/tripdeck/travelsearch/pkg/amadeus"
)

// offersFetchMax asks the API for more offers than the result cap so the
// ranker has something to choose from.
const offersFetchMax = 20

// AmadeusProvider sources flight options from the Amadeus Flight Offers
// Search API.
type AmadeusProvider struct {
	client   amadeus.Client
	currency string
}

// NewAmadeusProvider creates the provider. Currency may be empty to accept
// the API default.
func NewAmadeusProvider(client amadeus.Client, currency string) *AmadeusProvider {
	return &AmadeusProvider{client: client, currency: currency}
}

func (p *AmadeusProvider) Name() string { return "amadeus" }

// Search maps Flight Offers Search responses into Options. Malformed offers
// are dropped item-wise; siblings from the same response still go through.
func (p *AmadeusProvider) Search(ctx context.Context, req SearchRequest) ([]Option, error) {
	resp, err := p.client.FlightOffers(ctx, amadeus.FlightOffersQuery{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		TravelClass:   req.CabinClass,
		NonStop:       req.NonStopOnly,
		Max:           offersFetchMax,
		CurrencyCode:  p.currency,
	})
	if err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(resp.Data))
	for _, offer := range resp.Data {
		opt, ok := p.parseOffer(offer, req.DepartureDate)
		if !ok {
			zap.L().Debug("skipping malformed flight offer",
				zap.String("provider", p.Name()),
				zap.String("offer_id", offer.ID),
			)
			continue
		}
		options = append(options, opt)
	}
	return options, nil
}

// parseOffer reads the first (outbound) itinerary only; stops are the
// segment count minus one.
func (p *AmadeusProvider) parseOffer(offer amadeus.FlightOffer, requestedDate string) (Option, bool) {
	amount, err := parseAmount(offer.Price.Total)
	if err != nil {
		return Option{}, false
	}
	if len(offer.Itineraries) == 0 {
		return Option{}, false
	}

	outbound := offer.Itineraries[0]
	if len(outbound.Segments) == 0 {
		return Option{}, false
	}
	first := outbound.Segments[0]
	last := outbound.Segments[len(outbound.Segments)-1]

	currency := offer.Price.Currency
	if currency == "" {
		currency = p.currency
	}

	depDate := requestedDate
	if first.Departure.At != "" {
		if t, err := time.Parse("2006-01-02T15:04:05", first.Departure.At); err == nil {
			depDate = t.Format("2006-01-02")
		}
	}

	fareClass := "UNKNOWN"
	if len(offer.TravelerPricings) > 0 {
		if fd := offer.TravelerPricings[0].FareDetailsBySegment; len(fd) > 0 && fd[0].Cabin != "" {
			fareClass = fd[0].Cabin
		}
	}

	return Option{
		ID:            offer.ID,
		Provider:      p.Name(),
		Price:         &model.Money{Amount: amount, Currency: currency},
		FareClass:     fareClass,
		Duration:      outbound.Duration,
		Stops:         len(outbound.Segments) - 1,
		CarrierCode:   first.CarrierCode,
		FlightNumber:  first.Number,
		Origin:        first.Departure.IataCode,
		Destination:   last.Arrival.IataCode,
		DepartureDate: depDate,
	}, true
}

func parseAmount(total string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(total), 64)
}
