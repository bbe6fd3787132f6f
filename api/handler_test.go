package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printcost/catalog"
	"printcost/engine"
	"printcost/internal/config"
)

func testServer() *Server {
	cat := &catalog.Catalog{
		Papers: []catalog.Paper{{
			ID: "gloss-14pt", Name: "14pt Gloss Cover",
			PricePerSquareInch:  decimal.NewFromFloat(0.002),
			WeightPerSquareInch: decimal.NewFromFloat(0.0004),
		}},
		Sizes: []catalog.Size{{
			ID: "4x6", Name: "4 x 6",
			Width: decimal.NewFromInt(4), Height: decimal.NewFromInt(6),
		}},
		Turnarounds: []catalog.TurnaroundTier{{
			ID: "economy", Name: "Economy", DaysMin: 5, DaysMax: 7, IsDefault: true,
			Pricing: catalog.TurnaroundPricing{
				Kind:       catalog.TurnaroundPercentage,
				Multiplier: decimal.NewFromInt(1),
			},
		}},
	}
	settings := config.ShippingConfig{
		EnabledProviders:          []string{"fedex", "southwest-cargo"},
		MarkupPercentage:          1.0,
		TestMode:                  true,
		IntelligentPackingEnabled: true,
		ProviderTimeoutSeconds:    2,
		OriginState:               "TX",
		PackagingOverheadLbs:      1.0,
	}
	return NewServer(engine.New(cat, settings), "test")
}

func TestPriceEndpoint(t *testing.T) {
	srv := testServer()

	body := `{"paper_id":"gloss-14pt","size_id":"4x6","quantity":1000}`
	req := httptest.NewRequest(http.MethodPost, "/price", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp PriceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, "48", resp.Breakdown.FinalPrice.String())
}

func TestPriceEndpointConfigurationErrorIs400(t *testing.T) {
	srv := testServer()

	body := `{"paper_id":"gloss-14pt","size_id":"4x6","quantity":0}`
	req := httptest.NewRequest(http.MethodPost, "/price", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CONFIGURATION_ERROR", resp.Code)
	assert.Equal(t, "quantity", resp.Context["field"])
}

func TestPriceEndpointUnknownPaperIs404(t *testing.T) {
	srv := testServer()

	body := `{"paper_id":"vellum","size_id":"4x6","quantity":100}`
	req := httptest.NewRequest(http.MethodPost, "/price", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWeightEndpoint(t *testing.T) {
	srv := testServer()

	body := `{"items":[{"paper_weight_per_square_inch":"0.0004","width":"4","height":"6","quantity":5000}]}`
	req := httptest.NewRequest(http.MethodPost, "/weight", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp WeightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "49.0", resp.TotalWeightLbs.StringFixed(1))
}

func TestRatesEndpoint(t *testing.T) {
	srv := testServer()

	body := `{
		"items":[{"paper_weight_per_square_inch":"0.0004","width":"4","height":"6","quantity":500}],
		"destination":{"state":"TX","city":"Dallas"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/rates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		RequestID string `json:"request_id"`
		Quotes    []struct {
			Provider string `json:"provider"`
		} `json:"quotes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Quotes)
}

func TestRatesEndpointRequiresDestination(t *testing.T) {
	srv := testServer()

	body := `{"items":[{"paper_weight_per_square_inch":"0.0004","width":"4","height":"6","quantity":500}]}`
	req := httptest.NewRequest(http.MethodPost, "/rates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
