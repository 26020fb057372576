package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/optionedge/analyzer/internal/analysis"
	"github.com/optionedge/analyzer/internal/config"
	"github.com/optionedge/analyzer/internal/logger"
	"github.com/optionedge/analyzer/internal/models"
)

func newTestHandler(t *testing.T) *OptionsHandler {
	t.Helper()

	if err := logger.InitWithConfig("error", filepath.Join(t.TempDir(), "test.log")); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	cfg := &config.Config{
		Port: "8080",
		Defaults: config.FormDefaults{
			RiskFreeRate: 5.0,
			Volatility:   20.0,
			DaysToExpiry: 30,
		},
	}

	h := NewOptionsHandler(cfg, analysis.NewEvaluator(logger.Error))
	h.templates = "../../web/templates"
	return h
}

func validForm() url.Values {
	return url.Values{
		"symbol":         {"AAPL"},
		"option_type":    {"call"},
		"spot_price":     {"100"},
		"strike_price":   {"100"},
		"market_price":   {"10.50"},
		"volatility":     {"20"},
		"risk_free_rate": {"5"},
		"time_to_expiry": {"365"},
		"expiry_date":    {"2026-09-18"},
	}
}

func TestHomeHandlerGet(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.HomeHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="spot_price"`) {
		t.Error("Form should contain a spot_price input")
	}
	if !strings.Contains(body, `value="20"`) {
		t.Error("Volatility input should be pre-filled from config defaults")
	}
}

func TestHomeHandlerPostRendersResult(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(validForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HomeHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "$10.45") {
		t.Errorf("Expected theoretical price $10.45 in page, body:\n%s", body)
	}
	if !strings.Contains(body, "Consider Sell") {
		t.Error("Expected Consider Sell recommendation in page")
	}
	if !strings.Contains(body, "AAPL") {
		t.Error("Expected symbol echoed in result block")
	}
}

func TestHomeHandlerPostRendersError(t *testing.T) {
	h := newTestHandler(t)

	form := validForm()
	form.Set("option_type", "straddle")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.HomeHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Error still renders the form page, expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid option type") {
		t.Error("Expected option type error message in page")
	}
}

func TestEvaluateHandlerSuccess(t *testing.T) {
	h := newTestHandler(t)

	payload := map[string]string{
		"option_type":    "call",
		"spot_price":     "100",
		"strike_price":   "100",
		"market_price":   "10.50",
		"volatility":     "20",
		"risk_free_rate": "5",
		"time_to_expiry": "365",
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.EvaluateHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.EvaluationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if !resp.Success || resp.Result == nil {
		t.Fatalf("Expected success with result, got %+v", resp)
	}
	if resp.Result.TheoreticalPrice != 10.45 {
		t.Errorf("Expected theoretical price 10.45, got %v", resp.Result.TheoreticalPrice)
	}
	if resp.Result.Edge != 0.05 {
		t.Errorf("Expected edge 0.05, got %v", resp.Result.Edge)
	}
	if string(resp.Result.Recommendation) != "Consider Sell" {
		t.Errorf("Expected Consider Sell, got %q", resp.Result.Recommendation)
	}
}

func TestEvaluateHandlerMissingField(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", strings.NewReader(`{"spot_price":"100"}`))
	rec := httptest.NewRecorder()
	h.EvaluateHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	var resp models.EvaluationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.Success {
		t.Error("Expected success=false")
	}
	if resp.Error != "All fields are required" {
		t.Errorf("Expected missing-field message, got %q", resp.Error)
	}
}

func TestEvaluateHandlerBadBody(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.EvaluateHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestEvaluateHandlerPreflight(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/evaluate", nil)
	rec := httptest.NewRecorder()
	h.EvaluateHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS origin header on preflight response")
	}
}
