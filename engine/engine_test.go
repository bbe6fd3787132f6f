package engine

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printcost/catalog"
	"printcost/internal/config"
	"printcost/internal/errors"
	"printcost/shipping"
)

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Papers: []catalog.Paper{{
			ID: "gloss-14pt", Name: "14pt Gloss Cover",
			PricePerSquareInch:  decimal.NewFromFloat(0.002),
			WeightPerSquareInch: decimal.NewFromFloat(0.0004),
		}},
		Sizes: []catalog.Size{{
			ID: "4x6", Name: "4\" x 6\"",
			Width: decimal.NewFromInt(4), Height: decimal.NewFromInt(6),
		}},
		Coatings: []catalog.CoatingOption{{
			ID: "uv", Name: "UV", Multiplier: decimal.NewFromFloat(1.25),
		}},
		Sides: []catalog.SidesOption{{
			ID: "double", Name: "Double Sided", Multiplier: decimal.NewFromFloat(1.5),
		}},
		AddOns: []catalog.AddOn{{
			ID: "banding", Name: "Banding",
			Pricing: catalog.AddonPricingModel{
				Kind:                  catalog.PricingPerUnit,
				PricePerUnit:          decimal.NewFromFloat(0.75),
				UnitName:              "bundle",
				UnitsPerBundleOption:  "items_per_bundle",
				DefaultUnitsPerBundle: 100,
			},
			SubOptions: []catalog.SubOption{{
				ID: "items_per_bundle", Label: "Items Per Bundle",
				Required: true, AffectsPricing: true, Default: "100",
			}},
		}},
		Turnarounds: []catalog.TurnaroundTier{{
			ID: "economy", Name: "Economy", DaysMin: 5, DaysMax: 7, IsDefault: true,
			Pricing: catalog.TurnaroundPricing{
				Kind:       catalog.TurnaroundPercentage,
				Multiplier: decimal.NewFromInt(1),
			},
		}},
	}
}

func testSettings() config.ShippingConfig {
	return config.ShippingConfig{
		EnabledProviders:          []string{"fedex", "southwest-cargo"},
		ProviderPriority:          map[string]int{"southwest-cargo": 1, "fedex": 2},
		MarkupPercentage:          1.0,
		TestMode:                  true,
		IntelligentPackingEnabled: true,
		ProviderTimeoutSeconds:    2,
		OriginState:               "TX",
		PackagingOverheadLbs:      1.0,
	}
}

func TestComputePriceResolvesCatalogIDs(t *testing.T) {
	eng := New(testCatalog(), testSettings())

	breakdown, err := eng.ComputePrice(PriceRequest{
		PaperID:  "gloss-14pt",
		SizeID:   "4x6",
		Quantity: 5000,
		AddOns: []AddOnSelection{{
			ID:              "banding",
			SubOptionValues: map[string]string{"items_per_bundle": "50"},
		}},
	})
	require.NoError(t, err)

	// base: 0.002 * 24 * 5000 = 240.00; banding: ceil(5000/50) * 0.75 = 75.00
	assert.Equal(t, "240.00", breakdown.BasePrice.StringFixed(2))
	require.Len(t, breakdown.AddonCosts, 1)
	assert.Equal(t, "75.00", breakdown.AddonCosts[0].Cost.StringFixed(2))
	assert.Equal(t, "315.00", breakdown.FinalPrice.StringFixed(2))
}

func TestComputePriceDefaultsTurnaround(t *testing.T) {
	eng := New(testCatalog(), testSettings())

	breakdown, err := eng.ComputePrice(PriceRequest{
		PaperID: "gloss-14pt", SizeID: "4x6", Quantity: 1000,
	})
	require.NoError(t, err)
	assert.Contains(t, breakdown.TurnaroundDescription, "Economy")
}

func TestComputePriceCustomSize(t *testing.T) {
	eng := New(testCatalog(), testSettings())

	breakdown, err := eng.ComputePrice(PriceRequest{
		PaperID:      "gloss-14pt",
		CustomWidth:  decimal.NewFromInt(5),
		CustomHeight: decimal.NewFromInt(7),
		Quantity:     1000,
	})
	require.NoError(t, err)

	// 0.002 * 35 * 1000 = $70.00
	assert.Equal(t, "70.00", breakdown.BasePrice.StringFixed(2))
}

func TestComputePriceUnknownIDsFail(t *testing.T) {
	eng := New(testCatalog(), testSettings())

	_, err := eng.ComputePrice(PriceRequest{PaperID: "vellum", SizeID: "4x6", Quantity: 100})
	assert.True(t, errors.IsType(err, errors.TypeNotFound))

	_, err = eng.ComputePrice(PriceRequest{PaperID: "gloss-14pt", Quantity: 100})
	assert.True(t, errors.IsType(err, errors.TypeConfiguration), "missing size must name the field")
}

func TestComputeShippingWeight(t *testing.T) {
	eng := New(testCatalog(), testSettings())

	weight := eng.ComputeShippingWeight([]shipping.LineItem{{
		PaperWeightPerSquareInch: decimal.NewFromFloat(0.0004),
		Width:                    decimal.NewFromInt(4),
		Height:                   decimal.NewFromInt(6),
		Quantity:                 5000,
	}})
	assert.Equal(t, "49.0", weight.StringFixed(1))
}

// TestRatesDallasVersusNewYork pins the provider behavior split: a
// Dallas destination gets Southwest Cargo and FedEx quotes, a New York
// destination gets FedEx only.
func TestRatesDallasVersusNewYork(t *testing.T) {
	eng := New(testCatalog(), testSettings())
	pkg := shipping.NewPackage(decimal.NewFromInt(5), "TX", true)

	dallas := eng.GetShippingRates(context.Background(), pkg,
		shipping.Destination{State: "TX", City: "Dallas"}, nil)

	providers := map[string]int{}
	for _, q := range dallas.Quotes {
		providers[q.Provider]++
	}
	assert.Equal(t, 2, providers["southwest-cargo"], "Dallas gets Pickup and Dash")
	assert.Greater(t, providers["fedex"], 0, "Dallas gets FedEx quotes too")
	assert.Empty(t, dallas.Metadata.Errors)

	newYork := eng.GetShippingRates(context.Background(), pkg,
		shipping.Destination{State: "NY", City: "New York"}, nil)

	providers = map[string]int{}
	for _, q := range newYork.Quotes {
		providers[q.Provider]++
	}
	assert.Zero(t, providers["southwest-cargo"], "New York is outside the service area")
	assert.Greater(t, providers["fedex"], 0, "FedEx still quotes New York")
	assert.Empty(t, newYork.Metadata.Errors, "no offer is not an error")
}

func TestPackageForUsesConfiguredOrigin(t *testing.T) {
	eng := New(testCatalog(), testSettings())

	pkg := eng.PackageFor([]shipping.LineItem{{
		PaperWeightPerSquareInch: decimal.NewFromFloat(0.0004),
		Width:                    decimal.NewFromInt(4),
		Height:                   decimal.NewFromInt(6),
		Quantity:                 5000,
	}})

	assert.Equal(t, "TX", pkg.OriginState)
	assert.Equal(t, "49.0", pkg.Weight.StringFixed(1))
}
