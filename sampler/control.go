package sampler

import (
	"math"

	"github.com/cwbudde/algo-approx"
)

// Control-rate interface of a voice. Everything here runs between render
// calls, never concurrently with an in-progress Write on the same voice.

// SetSample assigns the sample store and the playback window [start, end).
func (v *Voice) SetSample(s *Sample, start, end int) {
	v.sample = s
	v.start = start
	v.end = end
	v.phase = PhaseFromIndex(start)
	v.hasLooped = false
}

// SetStart moves the playback window start.
func (v *Voice) SetStart(start int) { v.start = start }

// SetEnd moves the playback window end (exclusive).
func (v *Voice) SetEnd(end int) { v.end = end }

// SetLoop sets the loop window [loopStart, loopEnd).
func (v *Voice) SetLoop(loopStart, loopEnd int) {
	v.loopStart = loopStart
	v.loopEnd = loopEnd
}

// SetLoopMode sets the loop behavior. Unknown or reserved values behave
// like LoopNone.
func (v *Voice) SetLoopMode(m LoopMode) { v.loopMode = m }

// SetInterpMethod selects one of the four resampling strategies. Takes
// effect at the next block; the method is never re-branched per sample.
func (v *Voice) SetInterpMethod(m Interp) { v.interp = m }

// SetBatched toggles the 4-wide batched execution variants for the linear
// and 4th-order strategies.
func (v *Voice) SetBatched(on bool) { v.batched = on }

// SetPitch sets the target pitch in midicents (6900 = A4 at 440 Hz).
func (v *Voice) SetPitch(cents float32) {
	v.pitch = cents
	v.updatePhaseIncr()
}

// SetRootPitchHz sets the pitch, in Hz, at which the sample data plays
// back one source sample per output sample. The caller pre-scales this by
// sampleRate/outputRate when sample and output rates differ.
func (v *Voice) SetRootPitchHz(hz float32) {
	v.rootPitchHz = hz
	v.updatePhaseIncr()
}

// SetOutputRate sets the synth output sample rate in Hz.
func (v *Voice) SetOutputRate(rate float32) {
	v.outputRate = rate
	v.filter.dirty = true
}

// SetSynthGain sets the synth-wide master gain.
func (v *Voice) SetSynthGain(gain float32) { v.synthGain = gain }

// SetAttenuation sets the voice attenuation in centibels.
func (v *Voice) SetAttenuation(cb float32) { v.attenuation = cb }

// SetMinAttenuation records the lifetime estimate of the smallest possible
// attenuation, in centibels. The lifecycle layer combines it with the
// noise floor to decide when the voice can never become audible again.
func (v *Voice) SetMinAttenuation(cb float32) { v.minAttenuation = cb }

// MinAttenuation returns the recorded estimate.
func (v *Voice) MinAttenuation() float32 { return v.minAttenuation }

// SetPortamento starts a pitch glide: the voice speaks offset midicents
// away from its target pitch and approaches it over countBlocks blocks.
func (v *Voice) SetPortamento(countBlocks int, offset float32) {
	v.pitchOffset = offset
	if countBlocks > 0 {
		v.pitchIncr = -offset / float32(countBlocks)
	} else {
		v.pitchOffset = 0
		v.pitchIncr = 0
	}
	v.updatePhaseIncr()
}

// Modulation routing amounts. The modulator curves themselves are computed
// outside the kernel; only their current values arrive per block.

// SetModLFOToPitch routes the modulation LFO to pitch, in midicents at
// full LFO deflection.
func (v *Voice) SetModLFOToPitch(cents float32) { v.modLFOToPitch = cents }

// SetModLFOToVol routes the modulation LFO to volume, in centibels.
func (v *Voice) SetModLFOToVol(cb float32) { v.modLFOToVol = cb }

// SetModLFOToFc routes the modulation LFO to filter cutoff, in cents.
func (v *Voice) SetModLFOToFc(cents float32) { v.modLFOToFc = cents }

// SetVibLFOToPitch routes the vibrato LFO to pitch, in midicents.
func (v *Voice) SetVibLFOToPitch(cents float32) { v.vibLFOToPitch = cents }

// SetModEnvToPitch routes the modulation envelope to pitch, in midicents.
func (v *Voice) SetModEnvToPitch(cents float32) { v.modEnvToPitch = cents }

// SetModEnvToFc routes the modulation envelope to filter cutoff, in cents.
func (v *Voice) SetModEnvToFc(cents float32) { v.modEnvToFc = cents }

// SetFilterCutoff sets the lowpass cutoff in Hz.
func (v *Voice) SetFilterCutoff(hz float32) { v.filter.SetCutoff(hz) }

// SetFilterQ sets the lowpass resonance (linear Q).
func (v *Voice) SetFilterQ(q float32) { v.filter.SetQ(q) }

// BlockControl carries the externally computed modulator values for one
// block: bipolar LFO deflections in -1..1 and unipolar envelope values in
// 0..1.
type BlockControl struct {
	ModLFO float32
	VibLFO float32
	ModEnv float32
	VolEnv float32
}

// UpdateBlock folds the block's modulator values into the derived render
// parameters: the phase increment from pitch (including portamento and
// pitch modulation), the amplitude ramp toward the block's target level,
// and the filter cutoff offset. Call once per block, before Write.
func (v *Voice) UpdateBlock(c BlockControl, blockLen int) {
	v.updatePortamento()

	if v.rootPitchHz > 0 {
		cents := v.pitch + v.pitchOffset +
			c.ModLFO*v.modLFOToPitch +
			c.VibLFO*v.vibLFOToPitch +
			c.ModEnv*v.modEnvToPitch
		v.phaseIncr = ratioToPhaseIncr(float64(ct2hz(cents) / v.rootPitchHz))
	}

	targetCB := v.attenuation - c.ModLFO*v.modLFOToVol
	target := cb2amp(targetCB) * v.synthGain * c.VolEnv
	if blockLen > 0 {
		v.ampIncr = (target - v.amp) / float32(blockLen)
	}

	v.fcOffset = c.ModLFO*v.modLFOToFc + c.ModEnv*v.modEnvToFc
}

// SetAmplitudeRamp sets the amplitude trajectory for the next block
// directly, for callers that compute their own envelope deltas.
func (v *Voice) SetAmplitudeRamp(amp, incr float32) {
	v.amp = amp
	v.ampIncr = incr
}

func (v *Voice) updatePhaseIncr() {
	if v.rootPitchHz <= 0 {
		return
	}
	v.phaseIncr = ratioToPhaseIncr(float64(ct2hz(v.pitch+v.pitchOffset) / v.rootPitchHz))
}

// ratioToPhaseIncr converts a playback ratio to a fixed-point increment,
// snapping to exactly one sample per step when the ratio is within a cent
// of unity. That keeps playback at root pitch sample-exact, as the
// interpolation fast path requires, despite the approximate exponential
// used for cents conversion.
func ratioToPhaseIncr(ratio float64) Phase {
	if math.Abs(ratio-1.0) < 5e-4 {
		return Phase(1) << fractBits
	}
	return PhaseFromFloat(ratio)
}

func (v *Voice) updatePortamento() {
	if v.pitchIncr == 0 || v.pitchOffset == 0 {
		return
	}
	next := v.pitchOffset + v.pitchIncr
	// Stop at the sign crossing; the glide has arrived.
	if (v.pitchOffset > 0) != (next > 0) {
		next = 0
		v.pitchIncr = 0
	}
	v.pitchOffset = next
}

// ct2hz converts absolute midicents to Hz: 6900 cents = 440 Hz.
func ct2hz(cents float32) float32 {
	const ct0Hz = 8.1757989156 // Hz at 0 midicents
	return ct0Hz * pow2(cents/1200.0)
}

// cb2amp converts an attenuation in centibels to a linear amplitude
// factor: 0 cB = 1.0, 960 cB silences a 16-bit source.
func cb2amp(cb float32) float32 {
	const ln10Over200 = 0.011512925465
	return approx.FastExp(-cb * ln10Over200)
}

func pow2(x float32) float32 {
	const ln2 = 0.69314718055994530942
	return approx.FastExp(x * ln2)
}
