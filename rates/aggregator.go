// Package rates aggregates shipping-rate quotes across carrier modules.
// Providers are queried concurrently and independently; one provider
// failing is recorded in metadata and never aborts the aggregation.
package rates

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"printcost/carriers"
	"printcost/internal/config"
	"printcost/internal/logging"
	"printcost/shipping"
)

// ModuleStatus describes one provider's configuration during a request
type ModuleStatus struct {
	// Enabled reports whether the provider was globally enabled
	Enabled bool `json:"enabled"`

	// Priority is the configured display priority (lower sorts first)
	Priority int `json:"priority"`

	// TestMode reports whether the provider ran with stub quotes
	TestMode bool `json:"test_mode"`
}

// Metadata carries aggregation diagnostics
type Metadata struct {
	// ModulesUsed lists the provider ids that were queried
	ModulesUsed []string `json:"modules_used"`

	// TotalWeight is the package weight the providers rated
	TotalWeight decimal.Decimal `json:"total_weight"`

	// ModuleStatus maps provider id to its status
	ModuleStatus map[string]ModuleStatus `json:"module_status"`

	// Errors maps provider id to its failure message. Providers absent
	// from this map either succeeded or had no offer.
	Errors map[string]string `json:"errors,omitempty"`
}

// AggregationResult is the full outcome of a rate request
type AggregationResult struct {
	// RequestID identifies this aggregation
	RequestID string `json:"request_id"`

	// Quotes are all successful offers, grouped by provider in priority
	// order, ascending by amount within each group
	Quotes []carriers.RateQuote `json:"quotes"`

	// Cheapest is the lowest-priced quote across all providers, nil
	// when no provider offered anything
	Cheapest *carriers.RateQuote `json:"cheapest,omitempty"`

	// Metadata carries per-provider diagnostics
	Metadata Metadata `json:"metadata"`
}

// Aggregator fans a rate request out to the enabled providers
type Aggregator struct {
	registry *carriers.Registry
	logger   *zap.Logger
}

// NewAggregator creates an aggregator over a provider registry
func NewAggregator(registry *carriers.Registry) *Aggregator {
	return &Aggregator{
		registry: registry,
		logger:   logging.Logger.Named("rates"),
	}
}

// providerOutcome is one provider's result, collected for merging
type providerOutcome struct {
	providerID string
	quotes     []carriers.RateQuote
	err        error
}

// GetRates queries every effective provider concurrently and merges the
// results. The effective set is the intersection of the globally enabled
// providers and, when supplied, the caller's requested subset. The
// shipping settings are read once here and held for the whole request.
func (a *Aggregator) GetRates(ctx context.Context, settings config.ShippingConfig, pkg shipping.Package, dest shipping.Destination, requestedIDs []string) *AggregationResult {
	result := &AggregationResult{
		RequestID: uuid.NewString(),
		Quotes:    []carriers.RateQuote{},
		Metadata: Metadata{
			ModulesUsed:  []string{},
			TotalWeight:  pkg.Weight,
			ModuleStatus: make(map[string]ModuleStatus),
			Errors:       make(map[string]string),
		},
	}

	requested := make(map[string]bool, len(requestedIDs))
	for _, id := range requestedIDs {
		requested[id] = true
	}

	var effective []carriers.RateProvider
	for _, p := range a.registry.All() {
		enabled := settings.IsProviderEnabled(p.ID())
		result.Metadata.ModuleStatus[p.ID()] = ModuleStatus{
			Enabled:  enabled,
			Priority: settings.PriorityFor(p.ID()),
			TestMode: p.TestMode(),
		}
		if !enabled {
			continue
		}
		if len(requested) > 0 && !requested[p.ID()] {
			continue
		}
		effective = append(effective, p)
		result.Metadata.ModulesUsed = append(result.Metadata.ModulesUsed, p.ID())
	}

	timeout := time.Duration(settings.ProviderTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	outcomes := make([]providerOutcome, len(effective))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range effective {
		g.Go(func() error {
			quotes, err := a.quoteWithTimeout(gctx, p, pkg, dest, timeout)
			outcomes[i] = providerOutcome{providerID: p.ID(), quotes: quotes, err: err}
			// Provider failures are recorded, never propagated: a group
			// error would cancel the sibling providers.
			return nil
		})
	}
	_ = g.Wait()

	a.merge(result, effective, outcomes, settings)
	return result
}

// quoteWithTimeout bounds a single provider call. A timeout is a
// provider error, not a hang.
func (a *Aggregator) quoteWithTimeout(ctx context.Context, p carriers.RateProvider, pkg shipping.Package, dest shipping.Destination, timeout time.Duration) ([]carriers.RateQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type reply struct {
		quotes []carriers.RateQuote
		err    error
	}
	ch := make(chan reply, 1)

	go func() {
		quotes, err := p.Quote(ctx, pkg, dest)
		ch <- reply{quotes: quotes, err: err}
	}()

	select {
	case r := <-ch:
		return r.quotes, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// merge flattens provider outcomes into the result: quotes grouped by
// provider in priority order, sorted ascending by amount within each
// group, and the single cheapest quote surfaced across all providers.
func (a *Aggregator) merge(result *AggregationResult, effective []carriers.RateProvider, outcomes []providerOutcome, settings config.ShippingConfig) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		return settings.PriorityFor(outcomes[i].providerID) < settings.PriorityFor(outcomes[j].providerID)
	})

	for _, outcome := range outcomes {
		if outcome.err != nil {
			result.Metadata.Errors[outcome.providerID] = outcome.err.Error()
			a.logger.Warn("provider failed",
				zap.String("provider", outcome.providerID),
				zap.Error(outcome.err),
			)
			continue
		}

		group := outcome.quotes
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Amount.LessThan(group[j].Amount)
		})

		for _, q := range group {
			result.Quotes = append(result.Quotes, q)
			if result.Cheapest == nil || q.Amount.LessThan(result.Cheapest.Amount) {
				cheapest := q
				result.Cheapest = &cheapest
			}
		}
	}

	a.logger.Info("rates aggregated",
		zap.String("request_id", result.RequestID),
		zap.Int("providers", len(effective)),
		zap.Int("quotes", len(result.Quotes)),
		zap.Int("errors", len(result.Metadata.Errors)),
	)
}
