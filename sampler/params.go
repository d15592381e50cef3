package sampler

// Params holds all preset parameters for a voice.
type Params struct {
	InterpMethod Interp
	Batched      bool

	SynthGain float32

	// Routing: pan in -500..500, sends as linear gain fractions.
	Pan        float32
	ReverbSend float32
	ChorusSend float32

	// Lowpass filter; a cutoff of 0 leaves the filter fully open.
	FilterCutoff float32
	FilterQ      float32
}

// NewDefaultParams returns the defaults: 4th-order interpolation, unity
// gain, centered, no sends, filter open.
func NewDefaultParams() *Params {
	return &Params{
		InterpMethod: Interp4thOrder,
		SynthGain:    1.0,
		FilterQ:      1.0,
	}
}
