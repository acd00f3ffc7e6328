package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/tripdeck/travelsearch/internal/model"
)

// DemoProvider serves a small fixed inventory without any network. It backs
// the CLI --demo mode and integration-style tests; Latency and Err make
// slow or broken providers reproducible.
type DemoProvider struct {
	ProviderName string
	Inventory    []Option
	Latency      time.Duration
	Err          error
}

// NewDemoProvider builds a demo provider with a deterministic inventory for
// the requested route.
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
	route := func(carrier, number, duration string, stops int, price float64) Option {
		return Option{
			ID:            fmt.Sprintf("%s-%s%s", provider, carrier, number),
			Provider:      provider,
			Price:         &model.Money{Amount: price, Currency: "USD"},
			FareClass:     "ECONOMY",
			Duration:      duration,
			Stops:         stops,
			CarrierCode:   carrier,
			FlightNumber:  number,
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureDate: req.DepartureDate,
		}
	}
	return []Option{
		route("DL", "402", "PT6H15M", 0, 412.50),
		route("UA", "1188", "PT8H05M", 1, 289.00),
		route("AA", "77", "PT6H40M", 0, 365.20),
		route("B6", "915", "PT9H30M", 1, 241.75),
	}
}
