package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printcost/catalog"
	"printcost/internal/errors"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestFlatAddOn(t *testing.T) {
	sel := SelectedAddOn{AddOn: &catalog.AddOn{
		ID: "rounded-corners", Name: "Rounded Corners",
		Pricing: catalog.AddonPricingModel{Kind: catalog.PricingFlat, Amount: dec(15)},
	}}

	resolved, err := ResolveAddOn(sel, 1000, dec(500))
	require.NoError(t, err)
	assert.Equal(t, "15.00", resolved.Cost.StringFixed(2))
}

func TestPercentageAddOnUsesRunningSubtotal(t *testing.T) {
	sel := SelectedAddOn{AddOn: &catalog.AddOn{
		ID: "design-review", Name: "Design Review",
		Pricing: catalog.AddonPricingModel{Kind: catalog.PricingPercentage, Rate: dec(0.10)},
	}}

	resolved, err := ResolveAddOn(sel, 1000, dec(220))
	require.NoError(t, err)
	assert.Equal(t, "22.00", resolved.Cost.StringFixed(2))
}

func TestBandingBundleCount(t *testing.T) {
	// 5000 pieces at 50 per bundle is 100 bundles at $0.75 = $75.00
	banding := &catalog.AddOn{
		ID: "banding", Name: "Banding",
		Pricing: catalog.AddonPricingModel{
			Kind:                  catalog.PricingPerUnit,
			PricePerUnit:          dec(0.75),
			UnitName:              "bundle",
			UnitsPerBundleOption:  "items_per_bundle",
			DefaultUnitsPerBundle: 100,
		},
		SubOptions: []catalog.SubOption{
			{ID: "items_per_bundle", Label: "Items Per Bundle", Required: true, AffectsPricing: true, Default: "100"},
		},
	}

	resolved, err := ResolveAddOn(SelectedAddOn{
		AddOn:           banding,
		SubOptionValues: map[string]string{"items_per_bundle": "50"},
	}, 5000, dec(0))
	require.NoError(t, err)
	assert.Equal(t, "75.00", resolved.Cost.StringFixed(2))

	// Default bundle size applies when the caller supplies nothing:
	// ceil(5000/100) = 50 bundles at $0.75 = $37.50
	resolved, err = ResolveAddOn(SelectedAddOn{AddOn: banding}, 5000, dec(0))
	require.NoError(t, err)
	assert.Equal(t, "37.50", resolved.Cost.StringFixed(2))
}

func TestBandingPartialBundleRoundsUp(t *testing.T) {
	banding := &catalog.AddOn{
		ID: "banding", Name: "Banding",
		Pricing: catalog.AddonPricingModel{
			Kind:                  catalog.PricingPerUnit,
			PricePerUnit:          dec(0.75),
			UnitsPerBundleOption:  "items_per_bundle",
			DefaultUnitsPerBundle: 100,
		},
	}

	// 101 pieces is two bundles, not one
	resolved, err := ResolveAddOn(SelectedAddOn{AddOn: banding}, 101, dec(0))
	require.NoError(t, err)
	assert.Equal(t, "1.50", resolved.Cost.StringFixed(2))
}

func TestPerUnitWithoutBundleOptionBillsPerPiece(t *testing.T) {
	shrinkWrap := &catalog.AddOn{
		ID: "shrink-wrap", Name: "Shrink Wrap",
		Pricing: catalog.AddonPricingModel{Kind: catalog.PricingPerUnit, PricePerUnit: dec(0.02)},
	}

	resolved, err := ResolveAddOn(SelectedAddOn{AddOn: shrinkWrap}, 500, dec(0))
	require.NoError(t, err)
	assert.Equal(t, "10.00", resolved.Cost.StringFixed(2))
}

func TestVariableDataFormula(t *testing.T) {
	// 60 + 0.02 * 1000 = $80.00, and adds 2 production days
	vd := &catalog.AddOn{
		ID: "variable-data", Name: "Variable Data",
		ExtraTurnaroundDays: 2,
		Pricing: catalog.AddonPricingModel{
			Kind:    catalog.PricingCustom,
			Formula: catalog.FormulaVariableData,
		},
	}

	resolved, err := ResolveAddOn(SelectedAddOn{AddOn: vd}, 1000, dec(0))
	require.NoError(t, err)
	assert.Equal(t, "80.00", resolved.Cost.StringFixed(2))
	assert.Equal(t, 2, resolved.ExtraTurnaroundDays)
}

func TestPerforationFormula(t *testing.T) {
	perf := &catalog.AddOn{
		ID: "perforation", Name: "Perforation",
		ExtraTurnaroundDays: 1,
		Pricing: catalog.AddonPricingModel{
			Kind:    catalog.PricingCustom,
			Formula: catalog.FormulaPerforation,
		},
	}

	resolved, err := ResolveAddOn(SelectedAddOn{AddOn: perf}, 1000, dec(0))
	require.NoError(t, err)
	assert.Equal(t, "30.00", resolved.Cost.StringFixed(2))
	assert.Equal(t, 1, resolved.ExtraTurnaroundDays)
}

func holeDrilling() *catalog.AddOn {
	return &catalog.AddOn{
		ID: "hole-drilling", Name: "Hole Drilling",
		Pricing: catalog.AddonPricingModel{
			Kind:    catalog.PricingCustom,
			Formula: catalog.FormulaHoleDrilling,
			Params: map[string]decimal.Decimal{
				"1":                   dec(1.00),
				"2":                   dec(1.50),
				"3":                   dec(2.00),
				"4 Hole Binder Punch": dec(5.00),
			},
		},
		SubOptions: []catalog.SubOption{
			{ID: "holes", Label: "Number of Holes", Required: true, AffectsPricing: true,
				Values: []string{"1", "2", "3", "4 Hole Binder Punch"}},
		},
	}
}

func TestHoleDrillingFormula(t *testing.T) {
	// 20 + 0.02 * 500 + holePricing["3"] = 20 + 10 + 2 = $32.00
	resolved, err := ResolveAddOn(SelectedAddOn{
		AddOn:           holeDrilling(),
		SubOptionValues: map[string]string{"holes": "3"},
	}, 500, dec(0))
	require.NoError(t, err)
	assert.Equal(t, "32.00", resolved.Cost.StringFixed(2))
}

func TestHoleDrillingUnknownOptionFails(t *testing.T) {
	_, err := ResolveAddOn(SelectedAddOn{
		AddOn:           holeDrilling(),
		SubOptionValues: map[string]string{"holes": "17"},
	}, 500, dec(0))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfiguration),
		"unknown hole option must be a configuration error, not a silent zero")
}

func TestBlankEnvelopesSentinel(t *testing.T) {
	env := &catalog.AddOn{
		ID: "blank-envelopes", Name: "Blank Envelopes",
		Pricing: catalog.AddonPricingModel{
			Kind:    catalog.PricingCustom,
			Formula: catalog.FormulaBlankEnvelopes,
		},
		SubOptions: []catalog.SubOption{
			{ID: "envelope_size", Label: "Envelope Size", Required: true, AffectsPricing: true,
				Values: []string{"No Envelopes", "#10", "A7"}},
		},
	}

	resolved, err := ResolveAddOn(SelectedAddOn{
		AddOn:           env,
		SubOptionValues: map[string]string{"envelope_size": "No Envelopes"},
	}, 1000, dec(0))
	require.NoError(t, err)
	assert.True(t, resolved.Cost.IsZero(), "sentinel size must price to zero")

	resolved, err = ResolveAddOn(SelectedAddOn{
		AddOn:           env,
		SubOptionValues: map[string]string{"envelope_size": "#10"},
	}, 1000, dec(0))
	require.NoError(t, err)
	assert.Equal(t, "250.00", resolved.Cost.StringFixed(2))
}

func TestMissingRequiredSubOptionFails(t *testing.T) {
	_, err := ResolveAddOn(SelectedAddOn{AddOn: holeDrilling()}, 500, dec(0))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfiguration))
}

func TestUnparseableBundleSizeFails(t *testing.T) {
	banding := &catalog.AddOn{
		ID: "banding", Name: "Banding",
		Pricing: catalog.AddonPricingModel{
			Kind:                 catalog.PricingPerUnit,
			PricePerUnit:         dec(0.75),
			UnitsPerBundleOption: "items_per_bundle",
		},
	}

	_, err := ResolveAddOn(SelectedAddOn{
		AddOn:           banding,
		SubOptionValues: map[string]string{"items_per_bundle": "a dozen"},
	}, 5000, dec(0))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfiguration))
}
