package hotels

import (
	"context"
	"fmt"
	"time"

	"github.com/tripdeck/travelsearch/internal/model"
)

// DemoProvider serves a small fixed inventory without any network, for the
// CLI --demo mode and tests.
type DemoProvider struct {
	ProviderName string
	Inventory    []Option
	Latency      time.Duration
	Err          error
}

// NewDemoProvider builds a demo provider with a deterministic inventory.
func NewDemoProvider(name string) *DemoProvider {
	return &DemoProvider{ProviderName: name}
}

func (p *DemoProvider) Name() string {
	if p.ProviderName == "" {
		return "demo"
	}
	return p.ProviderName
}

func (p *DemoProvider) Search(ctx context.Context, req SearchRequest) ([]Option, error) {
	if p.Latency > 0 {
		timer := time.NewTimer(p.Latency)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if p.Err != nil {
		return nil, p.Err
	}
	if p.Inventory != nil {
		return p.Inventory, nil
	}
	return demoInventory(p.Name(), req), nil
}

func demoInventory(provider string, req SearchRequest) []Option {
	km := func(v float64) *float64 { return &v }
	hotel := func(id, name, address string, rating, price, dist float64, amenities ...string) Option {
		return Option{
			ID:                   fmt.Sprintf("%s-%s", provider, id),
			Provider:             provider,
			Price:                &model.Money{Amount: price, Currency: "USD"},
			Rating:               rating,
			Amenities:            amenities,
			Location:             model.GeoPoint{Lat: 48.857, Lon: 2.352},
			Name:                 name,
			Address:              address,
			DistanceFromCenterKM: km(dist),
			Stay:                 &StayTimes{Checkin: req.CheckinDate, Checkout: req.CheckoutDate},
		}
	}
	return []Option{
		hotel("h1", "Grand Meridian", "1 Plaza Way", 4.6, 310.00, 0.4, "free wifi", "spa", "pets allowed"),
		hotel("h2", "Station Inn", "22 Rail St", 3.8, 95.00, 1.2, "free wifi"),
		hotel("h3", "Harborview Suites", "7 Quay Rd", 4.2, 185.50, 2.8, "free wifi", "pool"),
		hotel("h4", "Old Town Lodge", "14 Cobble Ln", 3.5, 120.00, 0.9, "breakfast", "pet friendly"),
	}
}
