package sampler

// Interp selects the resampling quality of a voice.
type Interp int

const (
	// InterpNone takes the sample nearest the playback pointer.
	// Questionable quality, but very cheap.
	InterpNone Interp = iota

	// InterpLinear is two-tap straight-line interpolation.
	InterpLinear

	// Interp4thOrder is a four-tap Catmull-Rom spline, one sample of
	// look-behind context and two of look-ahead.
	Interp4thOrder

	// Interp7thOrder is seven-tap windowed-sinc interpolation, six samples
	// of look-ahead context. Highest fidelity, highest cost.
	Interp7thOrder
)

// renderFunc produces one run of interpolated, amplitude-enveloped output.
// The strategy is resolved once per block; the inner loops never branch on
// the interpolation method.
type renderFunc func(v *Voice, out []float32)

// resolveRender picks the render strategy for this block. The root-pitch
// fast path applies to every method: when the phase falls exactly on a
// source sample and the increment is exactly one sample, interpolation of
// any order degenerates to an amplitude-scaled copy, and the copy loop is
// required to produce that exact result rather than going through the
// coefficient tables.
func (v *Voice) resolveRender() renderFunc {
	if isRootPitch(v.phase, v.phaseIncr) {
		return renderRootPitch
	}
	switch v.interp {
	case InterpNone:
		return renderNearest
	case InterpLinear:
		if v.batched {
			return renderLinearBatch
		}
		return renderLinear
	case Interp7thOrder:
		return renderSinc7
	default:
		if v.batched {
			return renderCubicBatch
		}
		return renderCubic
	}
}

func renderRootPitch(v *Voice, out []float32) {
	data := v.sample
	idx := v.phase.Index()
	amp, ampIncr := v.amp, v.ampIncr
	for i := range out {
		out[i] = amp * data.at(idx)
		idx++
		amp += ampIncr
	}
	v.phase = PhaseFromIndex(idx)
	v.amp = amp
}

func renderNearest(v *Voice, out []float32) {
	data := v.sample
	phase, incr := v.phase, v.phaseIncr
	amp, ampIncr := v.amp, v.ampIncr
	for i := range out {
		out[i] = amp * data.at(phase.Index())
		phase += incr
		amp += ampIncr
	}
	v.phase, v.amp = phase, amp
}

func renderLinear(v *Voice, out []float32) {
	data := v.sample
	phase, incr := v.phase, v.phaseIncr
	amp, ampIncr := v.amp, v.ampIncr
	for i := range out {
		idx := phase.Index()
		c := &coeffLinear[phase.TableRow()]
		out[i] = amp * (c[0]*data.at(idx) + c[1]*data.at(idx+1))
		phase += incr
		amp += ampIncr
	}
	v.phase, v.amp = phase, amp
}

func renderCubic(v *Voice, out []float32) {
	data := v.sample
	phase, incr := v.phase, v.phaseIncr
	amp, ampIncr := v.amp, v.ampIncr
	for i := range out {
		idx := phase.Index()
		c := &coeffCubic[phase.TableRow()]
		out[i] = amp * (c[0]*data.at(idx) +
			c[1]*data.at(idx+1) +
			c[2]*data.at(idx+2) +
			c[3]*data.at(idx+3))
		phase += incr
		amp += ampIncr
	}
	v.phase, v.amp = phase, amp
}

func renderSinc7(v *Voice, out []float32) {
	data := v.sample
	phase, incr := v.phase, v.phaseIncr
	amp, ampIncr := v.amp, v.ampIncr
	for i := range out {
		idx := phase.Index()
		row := phase.TableRow()
		out[i] = amp * (coeffSinc7[0][row]*data.at(idx) +
			coeffSinc7[1][row]*data.at(idx+1) +
			coeffSinc7[2][row]*data.at(idx+2) +
			coeffSinc7[3][row]*data.at(idx+3) +
			coeffSinc7[4][row]*data.at(idx+4) +
			coeffSinc7[5][row]*data.at(idx+5) +
			coeffSinc7[6][row]*data.at(idx+6))
		phase += incr
		amp += ampIncr
	}
	v.phase, v.amp = phase, amp
}
