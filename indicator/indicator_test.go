package indicator

import (
	"math"
	"testing"

	"github.com/finquery/finquery/types"
)

func barsFromCloses(closes ...float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{Timestamp: int64(i + 1), Close: c}
	}
	return bars
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestSMA(t *testing.T) {
	t.Run("Example", func(t *testing.T) {
		got := SMA(barsFromCloses(103, 106, 108, 110, 112), 3)
		want := []float64{105.666667, 108.0, 110.0}

		if len(got) != len(want) {
			t.Fatalf("Expected %d values, got %d", len(want), len(got))
		}
		for i := range want {
			if !almostEqual(got[i], want[i]) {
				t.Errorf("Value %d: expected %v, got %v", i, want[i], got[i])
			}
		}
	})

	t.Run("OutputLength", func(t *testing.T) {
		closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
		for period := 1; period <= len(closes); period++ {
			got := SMA(barsFromCloses(closes...), period)
			want := len(closes) - period + 1
			if len(got) != want {
				t.Errorf("Period %d: expected %d values, got %d", period, want, len(got))
			}
		}
	})

	t.Run("PeriodOne", func(t *testing.T) {
		got := SMA(barsFromCloses(5, 7, 9), 1)
		for i, want := range []float64{5, 7, 9} {
			if !almostEqual(got[i], want) {
				t.Errorf("Value %d: expected %v, got %v", i, want, got[i])
			}
		}
	})

	t.Run("InsufficientData", func(t *testing.T) {
		if got := SMA(barsFromCloses(1, 2), 3); len(got) != 0 {
			t.Errorf("Expected empty output, got %v", got)
		}
		if got := SMA(nil, 3); len(got) != 0 {
			t.Errorf("Expected empty output for no bars, got %v", got)
		}
	})
}

func TestEMA(t *testing.T) {
	t.Run("SeedIsSimpleAverage", func(t *testing.T) {
		got := EMA(barsFromCloses(103, 106, 108), 3)
		if len(got) != 1 {
			t.Fatalf("Expected 1 value, got %d", len(got))
		}
		if !almostEqual(got[0], 105.666667) {
			t.Errorf("Expected seed 105.666667, got %v", got[0])
		}
	})

	t.Run("Recurrence", func(t *testing.T) {
		// k = 2/(3+1) = 0.5
		got := EMA(barsFromCloses(103, 106, 108, 110, 112), 3)
		want := []float64{105.666667, 107.833333, 109.916667}

		if len(got) != len(want) {
			t.Fatalf("Expected %d values, got %d", len(want), len(got))
		}
		for i := range want {
			if !almostEqual(got[i], want[i]) {
				t.Errorf("Value %d: expected %v, got %v", i, want[i], got[i])
			}
		}
	})

	t.Run("LengthMatchesSMA", func(t *testing.T) {
		bars := barsFromCloses(10, 11, 9, 12, 14, 13, 15, 16, 12, 11)
		for period := 1; period <= len(bars); period++ {
			if len(EMA(bars, period)) != len(SMA(bars, period)) {
				t.Errorf("Period %d: EMA and SMA output lengths differ", period)
			}
		}
	})

	t.Run("InsufficientData", func(t *testing.T) {
		if got := EMA(barsFromCloses(1, 2), 5); len(got) != 0 {
			t.Errorf("Expected empty output, got %v", got)
		}
	})
}

func TestRSI(t *testing.T) {
	t.Run("RollingValues", func(t *testing.T) {
		got := RSI(barsFromCloses(10, 11, 12, 11, 12, 13), 3)
		want := []float64{66.666667, 77.777778, 85.185185}

		if len(got) != len(want) {
			t.Fatalf("Expected %d values, got %d", len(want), len(got))
		}
		for i := range want {
			if !almostEqual(got[i], want[i]) {
				t.Errorf("Value %d: expected %v, got %v", i, want[i], got[i])
			}
		}
	})

	t.Run("AllGainsClampTo100", func(t *testing.T) {
		got := RSI(barsFromCloses(1, 2, 3, 4, 5, 6), 3)
		if len(got) == 0 {
			t.Fatal("Expected values for monotonic input")
		}
		for i, v := range got {
			if v != 100.0 {
				t.Errorf("Value %d: expected exactly 100, got %v", i, v)
			}
		}
	})

	t.Run("AllLossesAreZero", func(t *testing.T) {
		got := RSI(barsFromCloses(6, 5, 4, 3, 2, 1), 3)
		for i, v := range got {
			if !almostEqual(v, 0) {
				t.Errorf("Value %d: expected 0, got %v", i, v)
			}
		}
	})

	t.Run("Bounded", func(t *testing.T) {
		bars := barsFromCloses(50, 53, 49, 55, 52, 58, 51, 60, 57, 62, 44, 70)
		for _, v := range RSI(bars, 4) {
			if v < 0 || v > 100 {
				t.Errorf("RSI out of bounds: %v", v)
			}
		}
	})

	t.Run("OutputLength", func(t *testing.T) {
		bars := barsFromCloses(1, 2, 1, 2, 1, 2, 1, 2)
		for period := 1; period < len(bars); period++ {
			got := RSI(bars, period)
			want := len(bars) - period
			if len(got) != want {
				t.Errorf("Period %d: expected %d values, got %d", period, want, len(got))
			}
		}
	})

	t.Run("InsufficientData", func(t *testing.T) {
		// RSI needs period+1 closes to form period deltas.
		if got := RSI(barsFromCloses(1, 2, 3), 3); len(got) != 0 {
			t.Errorf("Expected empty output, got %v", got)
		}
	})
}

func TestCalculate(t *testing.T) {
	series := &types.InstrumentSeries{Bars: barsFromCloses(103, 106, 108, 110, 112)}

	t.Run("Dispatch", func(t *testing.T) {
		for _, kind := range []Kind{KindSMA, KindEMA, KindRSI} {
			got, err := Calculate(series, Spec{Kind: kind, Period: 3})
			if err != nil {
				t.Errorf("%s: expected success, got %v", kind, err)
			}
			if len(got) == 0 {
				t.Errorf("%s: expected values", kind)
			}
		}
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := Calculate(series, Spec{Kind: "macd", Period: 3})
		if types.KindOf(err) != types.ErrValidation {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("InvalidPeriod", func(t *testing.T) {
		for _, period := range []int{0, -3} {
			_, err := Calculate(series, Spec{Kind: KindSMA, Period: period})
			if types.KindOf(err) != types.ErrValidation {
				t.Errorf("Period %d: expected validation error, got %v", period, err)
			}
		}
	})
}
