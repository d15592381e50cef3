package sampler

import (
	"math"
	"sync"
)

const sincTaps = 7

// Interpolation coefficient tables, shared by all voices. Built once on
// first use and read-only afterwards, so concurrent render workers need no
// synchronization beyond the init guard.
var (
	tablesOnce  sync.Once
	coeffLinear [tableRows][2]float32
	coeffCubic  [tableRows][4]float32
	coeffSinc7  [sincTaps][tableRows]float32
)

func ensureTables() {
	tablesOnce.Do(initTables)
}

func initTables() {
	for i := 0; i < tableRows; i++ {
		x := float64(i) / tableRows

		coeffLinear[i][0] = float32(1.0 - x)
		coeffLinear[i][1] = float32(x)

		// Catmull-Rom spline through four consecutive samples,
		// interpolating between the middle two.
		coeffCubic[i][0] = float32(x * (-0.5 + x*(1.0-0.5*x)))
		coeffCubic[i][1] = float32(1.0 + x*x*(1.5*x-2.5))
		coeffCubic[i][2] = float32(x * (0.5 + x*(2.0-1.5*x)))
		coeffCubic[i][3] = float32(0.5 * x * x * (x - 1.0))
	}

	// 7-tap Hann-windowed sinc, one kernel per quantized fractional phase.
	// The kernel center sits between taps 3 and 4, so the seven taps cover
	// six samples of look-ahead from the phase index.
	for i := 0; i < tableRows; i++ {
		x := float64(i) / tableRows
		var sum float64
		var w [sincTaps]float64
		for tap := 0; tap < sincTaps; tap++ {
			d := float64(tap) - float64(sincTaps)/2.0 + 0.5 - x
			v := 1.0
			if math.Abs(d) > 1e-9 {
				arg := math.Pi * d
				v = math.Sin(arg) / arg
				v *= 0.5 * (1.0 + math.Cos(2.0*arg/sincTaps))
			}
			w[tap] = v
			sum += v
		}
		// Normalize each row to exactly unity DC gain, so a constant
		// input stays constant regardless of fractional phase.
		for tap := 0; tap < sincTaps; tap++ {
			coeffSinc7[tap][i] = float32(w[tap] / sum)
		}
	}
}
