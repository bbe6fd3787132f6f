// Package engine is the caller-facing facade over the pricing and
// shipping subsystems. It resolves catalog ids into configurations,
// delegates to the calculator and aggregator, and owns no pricing logic
// of its own.
package engine

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"printcost/carriers"
	"printcost/carriers/fedex"
	"printcost/carriers/southwestcargo"
	"printcost/catalog"
	"printcost/internal/config"
	"printcost/internal/errors"
	"printcost/internal/logging"
	"printcost/pricing"
	"printcost/rates"
	"printcost/shipping"
)

// AddOnSelection selects an add-on by id with sub-option values
type AddOnSelection struct {
	ID              string            `json:"id"`
	SubOptionValues map[string]string `json:"sub_option_values,omitempty"`
}

// PriceRequest identifies a product configuration by catalog ids
type PriceRequest struct {
	// PaperID selects the stock (required)
	PaperID string `json:"paper_id"`

	// SizeID selects a preset size; CustomWidth/CustomHeight override it
	SizeID       string          `json:"size_id,omitempty"`
	CustomWidth  decimal.Decimal `json:"custom_width,omitempty"`
	CustomHeight decimal.Decimal `json:"custom_height,omitempty"`

	// CoatingID and SidesID are optional multipliers
	CoatingID string `json:"coating_id,omitempty"`
	SidesID   string `json:"sides_id,omitempty"`

	// TurnaroundID selects a tier; empty uses the catalog default
	TurnaroundID string `json:"turnaround_id,omitempty"`

	// AddOns are the selected add-ons in order
	AddOns []AddOnSelection `json:"addons,omitempty"`

	// Quantity is the piece count
	Quantity int `json:"quantity"`
}

// Engine composes the catalog, calculator, and rate aggregator
type Engine struct {
	catalog    *catalog.Catalog
	settings   config.ShippingConfig
	calculator *pricing.Calculator
	aggregator *rates.Aggregator
	logger     *zap.Logger
}

// New creates an engine with the default carrier modules registered
func New(cat *catalog.Catalog, settings config.ShippingConfig) *Engine {
	markup := decimal.NewFromFloat(settings.MarkupPercentage)

	registry := carriers.NewRegistry()
	registry.Register(fedex.New(fedex.Config{
		EnabledServices: []string{
			fedex.ServiceGround,
			fedex.ServiceHomeDelivery,
			fedex.ServiceExpressSaver,
			fedex.ServiceTwoDay,
			fedex.ServiceStandardOvernight,
			fedex.ServicePriorityOvernight,
		},
		TestMode: settings.TestMode,
		Markup:   markup,
	}))
	registry.Register(southwestcargo.New(southwestcargo.Config{
		Markup:   markup,
		TestMode: settings.TestMode,
	}))

	return NewWithRegistry(cat, settings, registry)
}

// NewWithRegistry creates an engine over a caller-supplied registry,
// used by tests to inject providers.
func NewWithRegistry(cat *catalog.Catalog, settings config.ShippingConfig, registry *carriers.Registry) *Engine {
	return &Engine{
		catalog:    cat,
		settings:   settings,
		calculator: pricing.NewCalculator(),
		aggregator: rates.NewAggregator(registry),
		logger:     logging.Logger.Named("engine"),
	}
}

// ComputePrice resolves a price request against the catalog and returns
// the full breakdown, or a configuration error naming the bad field.
func (e *Engine) ComputePrice(req PriceRequest) (*pricing.PriceBreakdown, error) {
	cfg, err := e.resolveConfiguration(req)
	if err != nil {
		return nil, err
	}
	return e.calculator.Calculate(*cfg, req.Quantity)
}

// ComputeShippingWeight sums line-item weights plus packaging overhead
func (e *Engine) ComputeShippingWeight(items []shipping.LineItem) decimal.Decimal {
	overhead := decimal.NewFromFloat(e.settings.PackagingOverheadLbs)
	return shipping.EstimateWeight(items, overhead)
}

// GetShippingRates aggregates quotes from the enabled carrier modules
func (e *Engine) GetShippingRates(ctx context.Context, pkg shipping.Package, dest shipping.Destination, requestedProviderIDs []string) *rates.AggregationResult {
	return e.aggregator.GetRates(ctx, e.settings, pkg, dest, requestedProviderIDs)
}

// PackageFor builds the shippable package for a set of line items
func (e *Engine) PackageFor(items []shipping.LineItem) shipping.Package {
	weight := e.ComputeShippingWeight(items)
	return shipping.NewPackage(weight, e.settings.OriginState, e.settings.IntelligentPackingEnabled)
}

func (e *Engine) resolveConfiguration(req PriceRequest) (*pricing.ProductConfiguration, error) {
	if req.PaperID == "" {
		return nil, errors.Configuration("paper_id", "no paper selected")
	}

	paper, err := e.catalog.PaperByID(req.PaperID)
	if err != nil {
		return nil, err
	}

	cfg := &pricing.ProductConfiguration{Paper: paper}

	switch {
	case req.CustomWidth.IsPositive() && req.CustomHeight.IsPositive():
		size := catalog.CustomSize(req.CustomWidth, req.CustomHeight)
		cfg.Size = &size
	case req.SizeID != "":
		if cfg.Size, err = e.catalog.SizeByID(req.SizeID); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Configuration("size_id", "no size selected")
	}

	if req.CoatingID != "" {
		if cfg.Coating, err = e.catalog.CoatingByID(req.CoatingID); err != nil {
			return nil, err
		}
	}
	if req.SidesID != "" {
		if cfg.Sides, err = e.catalog.SidesByID(req.SidesID); err != nil {
			return nil, err
		}
	}

	if req.TurnaroundID != "" {
		cfg.Turnaround, err = e.catalog.TurnaroundByID(req.TurnaroundID)
	} else {
		cfg.Turnaround, err = e.catalog.DefaultTurnaround()
	}
	if err != nil {
		return nil, err
	}

	for _, sel := range req.AddOns {
		addon, err := e.catalog.AddOnByID(sel.ID)
		if err != nil {
			return nil, err
		}
		cfg.AddOns = append(cfg.AddOns, pricing.SelectedAddOn{
			AddOn:           addon,
			SubOptionValues: sel.SubOptionValues,
		})
	}

	return cfg, nil
}
