// Package carriers defines the rate-provider contract shared by all
// carrier modules and a registry the aggregator resolves providers from.
// A provider with no applicable service for a destination returns an
// empty quote list, which is "no offer", not an error.
package carriers

import (
	"context"

	"github.com/shopspring/decimal"

	"printcost/shipping"
)

// RateQuote is a single shipping-rate offer
type RateQuote struct {
	// Provider is the quoting provider's id
	Provider string `json:"provider"`

	// ServiceName names the delivery service, e.g. "FedEx Ground"
	ServiceName string `json:"service_name"`

	// Amount is the customer-facing rate, markup applied
	Amount decimal.Decimal `json:"amount"`

	// TransitDescription estimates delivery time
	TransitDescription string `json:"transit_description"`

	// Guaranteed marks carrier-guaranteed delivery windows
	Guaranteed bool `json:"guaranteed"`
}

// RateProvider is the capability interface every carrier module
// implements. The aggregator depends only on this interface.
type RateProvider interface {
	// ID returns the stable provider identifier
	ID() string

	// Name returns a human-readable provider name
	Name() string

	// TestMode reports whether the provider returns stub quotes
	TestMode() bool

	// Quote returns rate offers for a package and destination.
	// An empty slice means no offer; an error means the provider failed.
	Quote(ctx context.Context, pkg shipping.Package, dest shipping.Destination) ([]RateQuote, error)
}

// Registry holds the available carrier modules
type Registry struct {
	providers []RateProvider
	byID      map[string]RateProvider
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]RateProvider),
	}
}

// Register adds a provider. Later registrations with the same id replace
// earlier ones.
func (r *Registry) Register(p RateProvider) {
	if _, exists := r.byID[p.ID()]; exists {
		for i, existing := range r.providers {
			if existing.ID() == p.ID() {
				r.providers[i] = p
				break
			}
		}
	} else {
		r.providers = append(r.providers, p)
	}
	r.byID[p.ID()] = p
}

// Get returns the provider with the given id
func (r *Registry) Get(id string) (RateProvider, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// All returns every registered provider in registration order
func (r *Registry) All() []RateProvider {
	out := make([]RateProvider, len(r.providers))
	copy(out, r.providers)
	return out
}
