package fedex

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"printcost/shipping"
)

func testPackage() shipping.Package {
	return shipping.Package{Weight: decimal.NewFromInt(5), OriginState: "TX"}
}

func commercialDest() shipping.Destination {
	return shipping.Destination{State: "NY", City: "New York", PostalCode: "10001"}
}

func TestStubQuotesAreDeterministic(t *testing.T) {
	p := New(Config{
		EnabledServices: []string{ServiceGround, ServiceTwoDay},
		TestMode:        true,
	})

	first, err := p.Quote(context.Background(), testPackage(), commercialDest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Quote(context.Background(), testPackage(), commercialDest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 quotes per call, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Amount.Equal(second[i].Amount) {
			t.Errorf("stub quote %d not deterministic: %s vs %s", i, first[i].Amount, second[i].Amount)
		}
	}

	// Ground at 5 lbs: 8.50 + 0.45*5 = 10.75
	if first[0].ServiceName != "FedEx Ground" || first[0].Amount.StringFixed(2) != "10.75" {
		t.Errorf("ground stub = %s at %s, want FedEx Ground at 10.75",
			first[0].ServiceName, first[0].Amount.StringFixed(2))
	}
}

func TestAllowlistFiltersServices(t *testing.T) {
	p := New(Config{
		EnabledServices: []string{ServicePriorityOvernight},
		TestMode:        true,
	})

	quotes, err := p.Quote(context.Background(), testPackage(), commercialDest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 || quotes[0].ServiceName != "FedEx Priority Overnight" {
		t.Fatalf("allowlist not honored: %+v", quotes)
	}
}

func TestNoEnabledServicesIsNoOffer(t *testing.T) {
	p := New(Config{TestMode: true})

	quotes, err := p.Quote(context.Background(), testPackage(), commercialDest())
	if err != nil {
		t.Fatalf("no enabled services must be no offer, not an error: %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("expected zero quotes, got %d", len(quotes))
	}
}

func TestResidentialSwapsGroundForHomeDelivery(t *testing.T) {
	p := New(Config{
		EnabledServices: []string{ServiceGround, ServiceHomeDelivery},
		TestMode:        true,
	})

	residential := shipping.Destination{State: "TX", City: "Austin", Residential: true}
	quotes, err := p.Quote(context.Background(), testPackage(), residential)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 || quotes[0].ServiceName != "FedEx Home Delivery" {
		t.Fatalf("residential destination should get Home Delivery only, got %+v", quotes)
	}

	commercial := commercialDest()
	quotes, err = p.Quote(context.Background(), testPackage(), commercial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 || quotes[0].ServiceName != "FedEx Ground" {
		t.Fatalf("commercial destination should get Ground only, got %+v", quotes)
	}
}

func TestMissingCredentialsFallBackToTestMode(t *testing.T) {
	p := New(Config{
		EnabledServices: []string{ServiceGround},
		TestMode:        false,
		// Credentials deliberately empty
	})

	if !p.TestMode() {
		t.Fatal("provider without credentials must report test mode")
	}
}

func TestLiveModeWithoutClientIsProviderError(t *testing.T) {
	p := New(Config{
		EnabledServices: []string{ServiceGround},
		TestMode:        false,
		Credentials: Credentials{
			AccountNumber: "123", MeterNumber: "456", Key: "k", Secret: "s",
		},
	})

	_, err := p.Quote(context.Background(), testPackage(), commercialDest())
	if err == nil {
		t.Fatal("live mode without a rate API client must fail as a provider error")
	}
}

func TestMarkupApplied(t *testing.T) {
	p := New(Config{
		EnabledServices: []string{ServiceGround},
		TestMode:        true,
		Markup:          decimal.NewFromFloat(1.05),
	})

	quotes, err := p.Quote(context.Background(), testPackage(), commercialDest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (8.50 + 0.45*5) * 1.05 = 11.29 (rounded from 11.2875)
	if quotes[0].Amount.StringFixed(2) != "11.29" {
		t.Errorf("marked-up ground = %s, want 11.29", quotes[0].Amount.StringFixed(2))
	}
}
