package catalog

import (
	"testing"

	"github.com/shopspring/decimal"

	"printcost/internal/errors"
)

func TestValidateRejectsUnknownPricingKind(t *testing.T) {
	cat := &Catalog{
		AddOns: []AddOn{
			{ID: "mystery", Name: "Mystery", Pricing: AddonPricingModel{Kind: "bogus"}},
		},
	}

	err := cat.Validate()
	if err == nil {
		t.Fatal("expected unknown pricing kind to be rejected at load time")
	}
	if !errors.IsType(err, errors.TypeConfiguration) {
		t.Errorf("expected CONFIGURATION_ERROR, got %v", err)
	}
}

func TestValidateRejectsUnknownFormula(t *testing.T) {
	cat := &Catalog{
		AddOns: []AddOn{
			{ID: "scoring", Name: "Scoring", Pricing: AddonPricingModel{
				Kind:    PricingCustom,
				Formula: "scoring_magic",
			}},
		},
	}

	if err := cat.Validate(); err == nil {
		t.Fatal("expected unknown custom formula to be rejected at load time")
	}
}

func TestValidateRejectsUnknownTurnaroundKind(t *testing.T) {
	cat := &Catalog{
		Turnarounds: []TurnaroundTier{
			{ID: "warp", Name: "Warp", Pricing: TurnaroundPricing{Kind: "exponential"}},
		},
	}

	if err := cat.Validate(); err == nil {
		t.Fatal("expected unknown turnaround pricing kind to be rejected")
	}
}

func TestQuantityGroupAllows(t *testing.T) {
	g := QuantityGroup{
		Choices:     []int{250, 500, 1000},
		AllowCustom: true,
		CustomMin:   100,
		CustomMax:   10000,
	}

	cases := []struct {
		quantity int
		want     bool
	}{
		{500, true},    // preset choice
		{750, true},    // custom within bounds
		{100, true},    // custom at lower bound
		{10000, true},  // custom at upper bound
		{50, false},    // below custom min
		{20000, false}, // above custom max
	}
	for _, tc := range cases {
		if got := g.Allows(tc.quantity); got != tc.want {
			t.Errorf("Allows(%d) = %v, want %v", tc.quantity, got, tc.want)
		}
	}

	fixed := QuantityGroup{Choices: []int{250}}
	if fixed.Allows(300) {
		t.Error("group without custom quantities allowed a non-preset quantity")
	}
}

func TestLookupsReturnNotFound(t *testing.T) {
	cat := &Catalog{}

	if _, err := cat.PaperByID("missing"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("PaperByID: expected NOT_FOUND, got %v", err)
	}
	if _, err := cat.AddOnByID("missing"); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("AddOnByID: expected NOT_FOUND, got %v", err)
	}
	if _, err := cat.DefaultTurnaround(); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("DefaultTurnaround: expected NOT_FOUND, got %v", err)
	}
}

func TestDefaultTurnaroundFallsBackToFirst(t *testing.T) {
	cat := &Catalog{
		Turnarounds: []TurnaroundTier{
			{ID: "economy", Name: "Economy", Pricing: TurnaroundPricing{Kind: TurnaroundPercentage, Multiplier: decimal.NewFromInt(1)}},
			{ID: "rush", Name: "Rush", Pricing: TurnaroundPricing{Kind: TurnaroundPercentage, Multiplier: decimal.NewFromFloat(1.5)}},
		},
	}

	tier, err := cat.DefaultTurnaround()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tier.ID != "economy" {
		t.Errorf("expected first tier as fallback default, got %s", tier.ID)
	}
}

func TestSizeSquareInches(t *testing.T) {
	s := Size{Width: decimal.NewFromInt(4), Height: decimal.NewFromInt(6)}
	if !s.SquareInches().Equal(decimal.NewFromInt(24)) {
		t.Errorf("SquareInches() = %s, want 24", s.SquareInches())
	}
}
