package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// OptionType selects between the two European exercise styles
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// Inputs holds the five market parameters for a Black-Scholes evaluation.
// Volatility and Rate are annualized fractions (0.20 = 20%), Time is in years.
type Inputs struct {
	Spot       float64
	Strike     float64
	Volatility float64
	Rate       float64
	Time       float64
	Type       OptionType
}

// InvalidInputError reports inputs the Black-Scholes formula is not defined for.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid pricing input: %s", e.Reason)
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// Price computes the Black-Scholes fair value of a European call or put.
// No dividends, risk-neutral measure. The result is full precision -
// rounding for display is the caller's job.
func Price(in Inputs) (float64, error) {
	if err := validate(in); err != nil {
		return 0, err
	}

	sqrtT := math.Sqrt(in.Time)
	d1 := (math.Log(in.Spot/in.Strike) + (in.Rate+in.Volatility*in.Volatility/2)*in.Time) /
		(in.Volatility * sqrtT)
	d2 := d1 - in.Volatility*sqrtT

	discount := math.Exp(-in.Rate * in.Time)

	var price float64
	switch in.Type {
	case Call:
		price = in.Spot*stdNormal.CDF(d1) - in.Strike*discount*stdNormal.CDF(d2)
	case Put:
		price = in.Strike*discount*stdNormal.CDF(-d2) - in.Spot*stdNormal.CDF(-d1)
	default:
		return 0, &InvalidInputError{Reason: fmt.Sprintf("unknown option type %q", in.Type)}
	}

	// Pathological but finite-looking inputs (huge rates, tiny strikes) can
	// still overflow the intermediate exponentials.
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, &InvalidInputError{Reason: "parameters produce a non-finite price"}
	}

	return price, nil
}

// validate rejects everything the closed form is undefined for before any
// arithmetic runs. Positive volatility and time together guarantee a
// nonzero d1 denominator, so no division fault can occur past this point.
func validate(in Inputs) error {
	switch {
	case in.Spot <= 0:
		return &InvalidInputError{Reason: fmt.Sprintf("spot price must be positive, got %g", in.Spot)}
	case in.Strike <= 0:
		return &InvalidInputError{Reason: fmt.Sprintf("strike price must be positive, got %g", in.Strike)}
	case in.Volatility <= 0:
		return &InvalidInputError{Reason: fmt.Sprintf("volatility must be positive, got %g", in.Volatility)}
	case in.Time <= 0:
		return &InvalidInputError{Reason: fmt.Sprintf("time to expiry must be positive, got %g", in.Time)}
	}
	if math.IsNaN(in.Rate) || math.IsInf(in.Rate, 0) {
		return &InvalidInputError{Reason: "risk-free rate must be finite"}
	}
	return nil
}
