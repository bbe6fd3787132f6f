// Package api - Request and response shapes
package api

import (
	"github.com/shopspring/decimal"

	"printcost/engine"
	"printcost/pricing"
	"printcost/rates"
	"printcost/shipping"
)

// PriceRequest is the POST /price request body
type PriceRequest struct {
	engine.PriceRequest
}

// PriceResponse is the POST /price response body
type PriceResponse struct {
	RequestID string                  `json:"request_id"`
	Breakdown *pricing.PriceBreakdown `json:"breakdown"`
}

// WeightRequest is the POST /weight request body
type WeightRequest struct {
	Items []shipping.LineItem `json:"items"`
}

// WeightResponse is the POST /weight response body
type WeightResponse struct {
	RequestID      string          `json:"request_id"`
	TotalWeightLbs decimal.Decimal `json:"total_weight_lbs"`
}

// RatesRequest is the POST /rates request body. Either Package or Items
// must be supplied; Items are weighed and boxed when Package is absent.
type RatesRequest struct {
	Package     *shipping.Package    `json:"package,omitempty"`
	Items       []shipping.LineItem  `json:"items,omitempty"`
	Destination shipping.Destination `json:"destination"`
	ProviderIDs []string             `json:"provider_ids,omitempty"`
}

// RatesResponse is the POST /rates response body
type RatesResponse struct {
	*rates.AggregationResult
}

// ErrorResponse is the error envelope for all endpoints
type ErrorResponse struct {
	RequestID string                 `json:"request_id"`
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
}
