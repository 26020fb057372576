package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/optionedge/analyzer/internal/pricing"
	"github.com/optionedge/analyzer/internal/signal"
)

// Form field names accepted by Evaluate.
const (
	FieldSpotPrice    = "spot_price"
	FieldStrikePrice  = "strike_price"
	FieldVolatility   = "volatility"
	FieldRiskFreeRate = "risk_free_rate"
	FieldTimeToExpiry = "time_to_expiry"
	FieldMarketPrice  = "market_price"
	FieldOptionType   = "option_type"
	FieldSymbol       = "symbol"
	FieldExpiryDate   = "expiry_date"
)

// requiredFields in the order they are parsed; symbol and expiry_date are
// display pass-throughs and may be absent.
var requiredFields = []string{
	FieldSpotPrice,
	FieldStrikePrice,
	FieldVolatility,
	FieldRiskFreeRate,
	FieldTimeToExpiry,
	FieldMarketPrice,
	FieldOptionType,
}

var fieldLabels = map[string]string{
	FieldSpotPrice:    "Spot price",
	FieldStrikePrice:  "Strike price",
	FieldVolatility:   "Volatility",
	FieldRiskFreeRate: "Risk-free rate",
	FieldTimeToExpiry: "Time to expiry",
	FieldMarketPrice:  "Market price",
	FieldOptionType:   "Option type",
}

// Result is one completed evaluation, rounded for presentation.
type Result struct {
	TheoreticalPrice float64               `json:"theoretical_price"`
	Edge             float64               `json:"edge"`
	Recommendation   signal.Recommendation `json:"recommendation"`
	Symbol           string                `json:"symbol,omitempty"`
	ExpirationDate   string                `json:"expiration_date,omitempty"`
	OptionType       string                `json:"option_type"`
}

// Logger is the diagnostic collaborator the evaluator reports failures to.
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Evaluator turns raw form text into a priced, classified result. Stateless
// apart from the injected diagnostic logger; safe for concurrent use.
type Evaluator struct {
	diag Logger
}

func NewEvaluator(diag Logger) *Evaluator {
	return &Evaluator{diag: diag}
}

// Evaluate runs the full pipeline over raw textual field values:
// presence check, numeric parse, percent/day-count normalization,
// positivity validation, variant dispatch, edge classification. The form
// supplies volatility and rate as whole percent and time as whole days;
// the pricer always sees fractional, annualized units.
func (ev *Evaluator) Evaluate(fields map[string]string) (*Result, error) {
	for _, field := range requiredFields {
		if _, ok := fields[field]; !ok {
			return nil, &MissingFieldError{Field: field}
		}
	}

	parsed := make(map[string]float64, len(requiredFields)-1)
	for _, field := range requiredFields {
		if field == FieldOptionType {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(fields[field]), 64)
		if err != nil {
			return nil, &ParseError{Field: field, Value: fields[field]}
		}
		parsed[field] = value
	}

	in := pricing.Inputs{
		Spot:       parsed[FieldSpotPrice],
		Strike:     parsed[FieldStrikePrice],
		Volatility: parsed[FieldVolatility] / 100,
		Rate:       parsed[FieldRiskFreeRate] / 100,
		Time:       parsed[FieldTimeToExpiry] / 365,
	}
	marketPrice := parsed[FieldMarketPrice]

	if in.Spot <= 0 || in.Strike <= 0 || in.Volatility <= 0 || in.Time <= 0 {
		return nil, &InvalidInputError{Reason: "spot, strike, volatility, and time to expiry must all be positive"}
	}

	var displayType string
	switch strings.ToLower(strings.TrimSpace(fields[FieldOptionType])) {
	case "call":
		in.Type = pricing.Call
		displayType = "Call"
	case "put":
		in.Type = pricing.Put
		displayType = "Put"
	default:
		return nil, &InvalidOptionTypeError{Value: fields[FieldOptionType]}
	}

	theoretical, err := pricing.Price(in)
	if err != nil {
		if ev.diag != nil {
			ev.diag.Printf("Black-Scholes rejected inputs %+v: %v", in, err)
		}
		if pe, ok := err.(*pricing.InvalidInputError); ok {
			return nil, &InvalidInputError{Reason: pe.Reason}
		}
		return nil, &InternalError{Err: err}
	}

	// Classification runs on the full-precision edge; rounding below is
	// for display only.
	edge := marketPrice - theoretical

	return &Result{
		TheoreticalPrice: round2(theoretical),
		Edge:             round2(edge),
		Recommendation:   signal.Classify(edge),
		Symbol:           strings.ToUpper(strings.TrimSpace(fields[FieldSymbol])),
		ExpirationDate:   strings.TrimSpace(fields[FieldExpiryDate]),
		OptionType:       displayType,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
