package sampler

import (
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"
)

// rampLength is the number of samples over which new filter coefficients
// are faded in. Matches the audio block size, so a modulated cutoff settles
// within one block.
const rampLength = 64

// maxCutoffFraction of the output rate above which the lowpass is fully
// open and the whole filter stage is skipped.
const maxCutoffFraction = 0.45

// ResFilter is the time-varying resonant lowpass applied in place to the
// resampler output. It is a single second-order section in Direct Form II
// Transposed, with two persistent history values:
//
//	y  = b0*x + d0
//	d0 = b1*x - a1*y + d1
//	d1 = b2*x - a2*y
//
// Coefficient changes are ramped linearly over rampCount samples to avoid
// audible discontinuities from cutoff or resonance modulation.
type ResFilter struct {
	enabled bool

	b0, b1, b2, a1, a2                     float32
	b0Incr, b1Incr, b2Incr, a1Incr, a2Incr float32
	tgtB0, tgtB1, tgtB2, tgtA1, tgtA2      float32
	rampCount                              int

	d0, d1 float32

	cutoffHz float32
	q        float32
	lastFres float32
	startup  bool
	dirty    bool
}

// newResFilter returns a filter at its fully-open (disabled) setting.
func newResFilter() ResFilter {
	return ResFilter{q: 1.0, startup: true}
}

// Reset clears the filter history and forces the next coefficient update
// to apply instantly instead of ramping.
func (f *ResFilter) Reset() {
	f.d0, f.d1 = 0, 0
	f.rampCount = 0
	f.startup = true
	f.dirty = true
}

// SetCutoff sets the cutoff frequency in Hz. The new coefficients take
// effect at the next block, ramped if the voice is already sounding.
func (f *ResFilter) SetCutoff(hz float32) {
	f.cutoffHz = hz
	f.dirty = true
}

// SetQ sets the resonance (linear Q). Values at or below zero leave the
// filter non-resonant.
func (f *ResFilter) SetQ(q float32) {
	if q <= 0 {
		q = 1e-3
	}
	f.q = q
	f.dirty = true
}

// Enabled reports whether the filter stage runs at all. When the cutoff is
// at or above the fully-open limit the stage is skipped, which is
// bit-identical to running an identity filter.
func (f *ResFilter) Enabled() bool {
	return f.enabled
}

// calc recomputes coefficients for the given output rate and a cutoff
// modulation offset in cents. Called once per block before Apply. The last
// effective (offset-applied) cutoff is tracked so a modulation returning
// to zero restores the base coefficients instead of freezing the sweep.
func (f *ResFilter) calc(outputRate, centsOffset float32) {
	fres := f.cutoffHz
	if fres > 0 && centsOffset != 0 {
		fres *= float32(math.Exp2(float64(centsOffset) / 1200.0))
	}
	if !f.dirty && fres == f.lastFres {
		return
	}
	f.lastFres = fres
	f.dirty = false

	if f.cutoffHz <= 0 {
		// No cutoff configured: fully open.
		f.enabled = false
		return
	}
	if fres > maxCutoffFraction*outputRate {
		// Fully open: most instrument sounds never engage the filter.
		f.enabled = false
		return
	}
	if fres < 5 {
		fres = 5
	}
	f.enabled = true

	omega := 2.0 * math.Pi * float64(fres) / float64(outputRate)
	sinC := math.Sin(omega)
	cosC := math.Cos(omega)
	alpha := sinC / (2.0 * float64(f.q))
	a0Inv := 1.0 / (1.0 + alpha)

	a1 := float32(-2.0 * cosC * a0Inv)
	a2 := float32((1.0 - alpha) * a0Inv)
	b1 := float32((1.0 - cosC) * a0Inv)
	b0 := b1 * 0.5
	b2 := b0

	f.tgtB0, f.tgtB1, f.tgtB2, f.tgtA1, f.tgtA2 = b0, b1, b2, a1, a2
	if f.startup {
		f.b0, f.b1, f.b2, f.a1, f.a2 = b0, b1, b2, a1, a2
		f.rampCount = 0
		f.startup = false
	} else {
		f.b0Incr = (b0 - f.b0) / rampLength
		f.b1Incr = (b1 - f.b1) / rampLength
		f.b2Incr = (b2 - f.b2) / rampLength
		f.a1Incr = (a1 - f.a1) / rampLength
		f.a2Incr = (a2 - f.a2) / rampLength
		f.rampCount = rampLength
	}
}

// Apply filters buf in place. The fixed-coefficient loop is kept separate
// from the ramping loop; most voices are not actively modulating their
// filter and take the cheaper path.
func (f *ResFilter) Apply(buf []float32) {
	if !f.enabled {
		return
	}

	// Break denormal recursion before it drags the whole block down
	// during long silent tails.
	f.d0 = float32(dspcore.FlushDenormals(float64(f.d0)))

	b0, b1, b2, a1, a2 := f.b0, f.b1, f.b2, f.a1, f.a2
	d0, d1 := f.d0, f.d1

	if f.rampCount > 0 {
		count := f.rampCount
		for i, x := range buf {
			y := b0*x + d0
			d0 = b1*x - a1*y + d1
			d1 = b2*x - a2*y
			buf[i] = y

			if count > 0 {
				count--
				if count == 0 {
					// The last ramp step lands exactly on the targets;
					// incremental adds only approximate them.
					b0, b1, b2 = f.tgtB0, f.tgtB1, f.tgtB2
					a1, a2 = f.tgtA1, f.tgtA2
				} else {
					b0 += f.b0Incr
					b1 += f.b1Incr
					b2 += f.b2Incr
					a1 += f.a1Incr
					a2 += f.a2Incr
				}
			}
		}
		f.rampCount = count
	} else {
		for i, x := range buf {
			y := b0*x + d0
			d0 = b1*x - a1*y + d1
			d1 = b2*x - a2*y
			buf[i] = y
		}
	}

	f.b0, f.b1, f.b2, f.a1, f.a2 = b0, b1, b2, a1, a2
	f.d0, f.d1 = d0, d1
}
