// Package indicator computes technical indicators over a bar series. Every
// function is pure: it reads the close column of its input and holds no state
// between calls.
package indicator

import (
	"fmt"

	"github.com/finquery/finquery/types"
)

// Kind names a supported indicator.
type Kind string

const (
	KindSMA Kind = "sma"
	KindEMA Kind = "ema"
	KindRSI Kind = "rsi"
)

// Spec selects an indicator and its window length.
type Spec struct {
	Kind   Kind
	Period int
}

// Calculate dispatches on spec and runs the indicator over the series.
func Calculate(series *types.InstrumentSeries, spec Spec) ([]float64, error) {
	if spec.Period <= 0 {
		return nil, types.NewValidationError(fmt.Sprintf("indicator period must be positive, got %d", spec.Period))
	}
	switch spec.Kind {
	case KindSMA:
		return SMA(series.Bars, spec.Period), nil
	case KindEMA:
		return EMA(series.Bars, spec.Period), nil
	case KindRSI:
		return RSI(series.Bars, spec.Period), nil
	default:
		return nil, types.NewValidationError("unknown indicator: " + string(spec.Kind))
	}
}

// SMA returns the simple moving average of closes: one value per period-sized
// window, n-period+1 values for n bars. Fewer bars than the period yields an
// empty result, not an error.
func SMA(bars []types.Bar, period int) []float64 {
	closes := extractCloses(bars)
	if period <= 0 || len(closes) < period {
		return nil
	}

	out := make([]float64, 0, len(closes)-period+1)
	var sum float64
	for i, c := range closes {
		sum += c
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out
}

// EMA returns the exponential moving average of closes with smoothing factor
// k = 2/(period+1). The first value is the simple average of the seed window;
// each later close folds in with ema = close*k + prev*(1-k). Output length
// matches SMA for the same input.
func EMA(bars []types.Bar, period int) []float64 {
	closes := extractCloses(bars)
	if period <= 0 || len(closes) < period {
		return nil
	}

	var seed float64
	for _, c := range closes[:period] {
		seed += c
	}
	seed /= float64(period)

	k := 2.0 / float64(period+1)
	out := make([]float64, 0, len(closes)-period+1)
	out = append(out, seed)

	prev := seed
	for _, c := range closes[period:] {
		prev = c*k + prev*(1-k)
		out = append(out, prev)
	}
	return out
}

// RSI returns the rolling relative strength index over closes using Wilder
// smoothing. The seed window averages gains and losses over the first period
// close-to-close deltas; each later delta folds in with weight 1/period. One
// value is emitted per window, n-period values for n bars; fewer than
// period+1 bars yields an empty result. A window with zero average loss
// clamps to 100.
func RSI(bars []types.Bar, period int) []float64 {
	closes := extractCloses(bars)
	if period <= 0 || len(closes) < period+1 {
		return nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	out := make([]float64, 0, len(closes)-period)
	out = append(out, rsiValue(avgGain, avgLoss))

	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out = append(out, rsiValue(avgGain, avgLoss))
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

func extractCloses(bars []types.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
