package hotels

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tripdeck/travelsearch/internal/model"
	"github.com/tripdeck/travelsearch/pkg/amadeus"
)

const (
	// maxHotelIDs caps how many properties one search prices; the hotel
	// offers API rate-limits aggressively.
	maxHotelIDs = 12
	// offersChunkSize is how many hotel IDs go into one offers request.
	offersChunkSize = 3
	// offersConcurrency bounds parallel offers requests.
	offersConcurrency = 3
)

// AmadeusProvider sources hotel options from the Amadeus Hotel List (v1)
// and Hotel Offers (v3) APIs: city code to hotel IDs first, then chunked
// offer lookups.
type AmadeusProvider struct {
	client   amadeus.Client
	currency string
}

// NewAmadeusProvider creates the provider.
func NewAmadeusProvider(client amadeus.Client, currency string) *AmadeusProvider {
	return &AmadeusProvider{client: client, currency: currency}
}

func (p *AmadeusProvider) Name() string { return "amadeus" }

// Search resolves the destination to hotel IDs and prices them in chunks.
// A chunk that fails with a business error degrades to partial options
// (metadata without price) instead of poisoning the whole call, so a city
// with mostly sold-out properties still returns something rankable.
func (p *AmadeusProvider) Search(ctx context.Context, req SearchRequest) ([]Option, error) {
	if req.Destination == "" {
		return nil, nil
	}

	list, err := p.client.HotelsByCity(ctx, req.Destination)
	if err != nil {
		return nil, err
	}
	if len(list.Data) == 0 {
		return nil, nil
	}

	meta := make(map[string]amadeus.HotelListing, len(list.Data))
	ids := make([]string, 0, len(list.Data))
	for _, h := range list.Data {
		if h.HotelID == "" {
			continue
		}
		meta[h.HotelID] = h
		ids = append(ids, h.HotelID)
	}
	if len(ids) > maxHotelIDs {
		ids = ids[:maxHotelIDs]
	}

	log := zap.L().With(zap.String("provider", p.Name()), zap.String("city", req.Destination))
	log.Debug("pricing hotels", zap.Int("ids", len(ids)))

	var (
		mu      sync.Mutex
		options []Option
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(offersConcurrency)

	for start := 0; start < len(ids); start += offersChunkSize {
		chunk := ids[start:min(start+offersChunkSize, len(ids))]
		g.Go(func() error {
			chunkOpts := p.priceChunk(gctx, req, chunk, meta, log)
			mu.Lock()
			options = append(options, chunkOpts...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return options, nil
}

// priceChunk fetches offers for one chunk of hotel IDs. All failure modes
// collapse to "fewer options", never an error: invalid properties are
// skipped, sold-out properties become partial options.
func (p *AmadeusProvider) priceChunk(ctx context.Context, req SearchRequest, chunk []string, meta map[string]amadeus.HotelListing, log *zap.Logger) []Option {
	resp, err := p.client.HotelOffers(ctx, amadeus.HotelOffersQuery{
		HotelIDs:     chunk,
		CheckInDate:  req.CheckinDate,
		CheckOutDate: req.CheckoutDate,
		CurrencyCode: p.currency,
	})

	if err != nil {
		var apiErr *amadeus.APIError
		if errors.As(err, &apiErr) {
			body := strings.ToUpper(apiErr.Body)
			switch {
			case strings.Contains(body, "INVALID PROPERTY"):
				log.Debug("chunk contains invalid property codes, skipping", zap.Strings("ids", chunk))
				return nil
			case strings.Contains(body, "NO ROOMS"),
				strings.Contains(body, "RATE NOT AVAILABLE"),
				strings.Contains(body, "RESTRICTED"),
				strings.Contains(body, "UNABLE TO PROCESS"):
				log.Debug("chunk has no bookable rates, returning partial options", zap.Strings("ids", chunk))
				return p.partials(chunk, meta)
			}
		}
		log.Warn("hotel offers chunk failed", zap.Strings("ids", chunk), zap.Error(err))
		return nil
	}

	priced := make(map[string]bool, len(chunk))
	var out []Option
	for _, item := range resp.Data {
		opt, ok := p.parseItem(item)
		if !ok {
			continue
		}
		priced[item.Hotel.HotelID] = true
		out = append(out, opt)
	}

	// IDs the API accepted but returned no offer for are treated as "no
	// rooms": keep the property as a partial option.
	for _, id := range chunk {
		if !priced[id] {
			if partial, ok := p.partialFromMeta(id, meta); ok {
				out = append(out, partial)
			}
		}
	}
	return out
}

func (p *AmadeusProvider) partials(ids []string, meta map[string]amadeus.HotelListing) []Option {
	out := make([]Option, 0, len(ids))
	for _, id := range ids {
		if opt, ok := p.partialFromMeta(id, meta); ok {
			out = append(out, opt)
		}
	}
	return out
}

// partialFromMeta builds a price-less option from hotel-list metadata.
func (p *AmadeusProvider) partialFromMeta(id string, meta map[string]amadeus.HotelListing) (Option, bool) {
	h, ok := meta[id]
	if !ok {
		return Option{}, false
	}
	return Option{
		ID:        id,
		Provider:  p.Name(),
		Rating:    parseRating(h.Rating),
		Amenities: h.Amenities,
		Location:  model.GeoPoint{Lat: h.GeoCode.Latitude, Lon: h.GeoCode.Longitude},
		Name:      h.Name,
		Address:   h.Address.Format(),
	}, true
}

// parseItem maps one offers item to an Option, picking the cheapest offer.
func (p *AmadeusProvider) parseItem(item amadeus.HotelOfferItem) (Option, bool) {
	if len(item.Offers) == 0 {
		return Option{}, false
	}

	cheapest := item.Offers[0]
	cheapestAmount, err := strconv.ParseFloat(cheapest.Price.Total, 64)
	if err != nil {
		return Option{}, false
	}
	for _, offer := range item.Offers[1:] {
		amount, err := strconv.ParseFloat(offer.Price.Total, 64)
		if err != nil {
			continue
		}
		if amount < cheapestAmount {
			cheapest, cheapestAmount = offer, amount
		}
	}

	currency := cheapest.Price.Currency
	if currency == "" {
		currency = p.currency
	}

	opt := Option{
		ID:        item.Hotel.HotelID,
		Provider:  p.Name(),
		Price:     &model.Money{Amount: cheapestAmount, Currency: currency},
		Rating:    parseRating(item.Hotel.Rating),
		Amenities: item.Hotel.Amenities,
		Location:  model.GeoPoint{Lat: item.Hotel.GeoCode.Latitude, Lon: item.Hotel.GeoCode.Longitude},
		Name:      item.Hotel.Name,
		Address:   item.Hotel.Address.Format(),
		Stay: &StayTimes{
			Checkin:  cheapest.CheckInDate,
			Checkout: cheapest.CheckOutDate,
		},
	}
	if item.Hotel.Distance.Value > 0 {
		d := item.Hotel.Distance.Value
		opt.DistanceFromCenterKM = &d
	}
	return opt, true
}

func parseRating(s string) float64 {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return r
}
