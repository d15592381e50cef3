package sampler

// LoopMode selects how a voice treats its loop window.
type LoopMode int

const (
	// LoopNone plays the sample window once.
	LoopNone LoopMode = iota

	// LoopDuringRelease keeps looping even after the note is released.
	LoopDuringRelease

	// LoopNotUsed is a reserved legacy value; voices treat it as LoopNone.
	LoopNotUsed

	// LoopUntilRelease loops while the note is held, then plays through
	// the remainder of the window after release.
	LoopUntilRelease
)

// Voice holds the per-voice DSP state: the playback window over a sample
// store, fixed-point phase, amplitude ramp, resonant filter, and bus
// routing. A Voice is exclusively owned by its render worker; control-rate
// setters must never run concurrently with Write on the same voice.
type Voice struct {
	sample    *Sample
	start     int
	end       int
	loopStart int
	loopEnd   int
	loopMode  LoopMode

	interp  Interp
	batched bool

	phase     Phase
	phaseIncr Phase
	amp       float32
	ampIncr   float32

	released  bool
	hasLooped bool

	// Control-rate inputs consumed by UpdateBlock.
	pitch           float32 // midicents
	rootPitchHz     float32
	outputRate      float32
	synthGain       float32
	attenuation     float32 // centibels
	prevAttenuation float32
	minAttenuation  float32 // centibels, lifetime estimate

	pitchOffset float32 // portamento remainder, midicents
	pitchIncr   float32 // portamento step per block, midicents

	modLFOToPitch float32
	modLFOToVol   float32
	modLFOToFc    float32
	vibLFOToPitch float32
	modEnvToPitch float32
	modEnvToFc    float32
	fcOffset      float32

	filter ResFilter
	Buses  BusRouting
}

// NewVoice creates a voice rendering at the given output rate. Parameters
// default sensibly and may be overridden by params (nil is allowed).
func NewVoice(outputRate int, params *Params) *Voice {
	ensureTables()
	v := &Voice{
		interp:      Interp4thOrder,
		outputRate:  float32(outputRate),
		rootPitchHz: 440.0,
		synthGain:   1.0,
		phaseIncr:   Phase(1) << fractBits,
		filter:      newResFilter(),
		Buses:       newBusRouting(),
	}
	if params != nil {
		v.interp = params.InterpMethod
		v.batched = params.Batched
		v.synthGain = params.SynthGain
		v.Buses.SetStereoSpread(params.Pan, params.SynthGain)
		v.Buses.SetGain(BusReverb, params.ReverbSend*params.SynthGain)
		v.Buses.SetGain(BusChorus, params.ChorusSend*params.SynthGain)
		if params.FilterCutoff > 0 {
			v.filter.SetCutoff(params.FilterCutoff)
			v.filter.SetQ(params.FilterQ)
		}
	}
	return v
}

// HasLooped reports whether the first loop wrap has completed. The voice
// lifecycle layer uses this to pick the looping or non-looping audibility
// estimate.
func (v *Voice) HasLooped() bool {
	return v.hasLooped
}

// Phase returns the current playback position.
func (v *Voice) Phase() Phase {
	return v.phase
}

// Amplitude returns the current linear amplitude.
func (v *Voice) Amplitude() float32 {
	return v.amp
}

func (v *Voice) isLooping() bool {
	if v.loopEnd-v.loopStart < 1 {
		return false
	}
	switch v.loopMode {
	case LoopDuringRelease:
		return true
	case LoopUntilRelease:
		return !v.released
	default:
		// LoopNone and the reserved legacy value.
		return false
	}
}

// boundary returns the last sample index the current run may start a tap
// group on. Guard samples past the window are the caller's responsibility,
// so the window end itself is the only limit.
func (v *Voice) boundary() int {
	if v.isLooping() {
		return v.loopEnd - 1
	}
	return v.end - 1
}

// runLength returns how many output samples can be produced before the
// phase passes the boundary, capped at want.
func (v *Voice) runLength(want int) int {
	limit := PhaseFromIndex(v.boundary() + 1)
	if v.phase >= limit {
		return 0
	}
	if v.phaseIncr == 0 {
		return want
	}
	n := uint64(limit-v.phase+v.phaseIncr-1) / uint64(v.phaseIncr)
	if n > uint64(want) {
		return want
	}
	return int(n)
}

// Write renders output indices [start, end) of buf: interpolated,
// amplitude-enveloped sample data, filtered in place. It returns the
// number of samples actually produced, which is less than requested only
// when a non-looping voice runs out of sample data; the unfilled tail of
// buf is left untouched. Phase, amplitude, and filter state advance so the
// next block continues seamlessly.
//
// Range validity (start <= end <= len(buf)) is a caller contract.
func (v *Voice) Write(buf []float32, start, end int) int {
	if v.sample == nil || end <= start {
		return 0
	}

	render := v.resolveRender()

	i := start
	for i < end {
		n := v.runLength(end - i)
		if n == 0 {
			if !v.isLooping() {
				break
			}
			// Wrap the phase, not sample memory: the caller keeps the
			// loop's guard samples materialized past loopEnd.
			v.phase -= PhaseFromIndex(v.loopEnd - v.loopStart)
			v.hasLooped = true
			continue
		}
		render(v, buf[i:i+n])
		i += n
	}

	if i > start {
		v.filter.calc(v.outputRate, v.fcOffset)
		v.filter.Apply(buf[start:i])
	}
	return i - start
}

// MixTo distributes the most recently rendered block into the destination
// buffers according to the voice's bus routing.
func (v *Voice) MixTo(block []float32, dests [][]float32) {
	v.Buses.Mix(block, dests)
}

// NoteOff marks the voice released; a LoopUntilRelease voice then plays
// through the remainder of its window.
func (v *Voice) NoteOff() {
	v.released = true
}

// Retrigger restarts the note without resetting phase or amplitude, for
// click-free multi-triggering of the same voice. The previous attenuation
// is kept so the caller can ramp between the two notes' levels.
func (v *Voice) Retrigger() {
	v.released = false
	v.prevAttenuation = v.attenuation
}

// Reset returns the voice to its start-of-note state: phase at the window
// start, amplitude zero, filter history cleared.
func (v *Voice) Reset() {
	v.phase = PhaseFromIndex(v.start)
	v.amp = 0
	v.ampIncr = 0
	v.released = false
	v.hasLooped = false
	v.pitchOffset = 0
	v.pitchIncr = 0
	v.filter.Reset()
}
