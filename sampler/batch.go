package sampler

// Batched execution variants. These process four output samples per
// iteration with per-lane amplitudes, mirroring a 4-wide SIMD layout.
// They are functionally equivalent to the scalar loops but accumulate the
// amplitude ramp per lane instead of serially, so rounding is not
// bit-identical. That divergence is acceptable for audio output.
//
// A trailing remainder shorter than the batch width falls back to the
// scalar loop of the same order.

func renderLinearBatch(v *Voice, out []float32) {
	data := v.sample
	phase, incr := v.phase, v.phaseIncr
	amp, ampIncr := v.amp, v.ampIncr

	n4 := len(out) &^ 3
	for i := 0; i < n4; i += 4 {
		a0 := amp
		a1 := amp + ampIncr
		a2 := amp + 2*ampIncr
		a3 := amp + 3*ampIncr

		i0 := phase.Index()
		c0 := &coeffLinear[phase.TableRow()]
		phase += incr
		i1 := phase.Index()
		c1 := &coeffLinear[phase.TableRow()]
		phase += incr
		i2 := phase.Index()
		c2 := &coeffLinear[phase.TableRow()]
		phase += incr
		i3 := phase.Index()
		c3 := &coeffLinear[phase.TableRow()]
		phase += incr

		out[i] = a0 * (c0[0]*data.at(i0) + c0[1]*data.at(i0+1))
		out[i+1] = a1 * (c1[0]*data.at(i1) + c1[1]*data.at(i1+1))
		out[i+2] = a2 * (c2[0]*data.at(i2) + c2[1]*data.at(i2+1))
		out[i+3] = a3 * (c3[0]*data.at(i3) + c3[1]*data.at(i3+1))

		amp += 4 * ampIncr
	}
	v.phase, v.amp = phase, amp

	if n4 < len(out) {
		renderLinear(v, out[n4:])
	}
}

func renderCubicBatch(v *Voice, out []float32) {
	data := v.sample
	phase, incr := v.phase, v.phaseIncr
	amp, ampIncr := v.amp, v.ampIncr

	n4 := len(out) &^ 3
	for i := 0; i < n4; i += 4 {
		a0 := amp
		a1 := amp + ampIncr
		a2 := amp + 2*ampIncr
		a3 := amp + 3*ampIncr

		i0 := phase.Index()
		c0 := &coeffCubic[phase.TableRow()]
		phase += incr
		i1 := phase.Index()
		c1 := &coeffCubic[phase.TableRow()]
		phase += incr
		i2 := phase.Index()
		c2 := &coeffCubic[phase.TableRow()]
		phase += incr
		i3 := phase.Index()
		c3 := &coeffCubic[phase.TableRow()]
		phase += incr

		out[i] = a0 * (c0[0]*data.at(i0) + c0[1]*data.at(i0+1) +
			c0[2]*data.at(i0+2) + c0[3]*data.at(i0+3))
		out[i+1] = a1 * (c1[0]*data.at(i1) + c1[1]*data.at(i1+1) +
			c1[2]*data.at(i1+2) + c1[3]*data.at(i1+3))
		out[i+2] = a2 * (c2[0]*data.at(i2) + c2[1]*data.at(i2+1) +
			c2[2]*data.at(i2+2) + c2[3]*data.at(i2+3))
		out[i+3] = a3 * (c3[0]*data.at(i3) + c3[1]*data.at(i3+1) +
			c3[2]*data.at(i3+2) + c3[3]*data.at(i3+3))

		amp += 4 * ampIncr
	}
	v.phase, v.amp = phase, amp

	if n4 < len(out) {
		renderCubic(v, out[n4:])
	}
}
