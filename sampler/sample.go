package sampler

// Sample is a read-only store of source waveform data. Data holds the
// primary 16-bit samples; Data24, when present, holds an 8-bit low-order
// extension per sample, giving 24 bits of effective precision.
//
// The playback and loop windows of a voice address this store directly.
// Whatever guard samples the selected interpolation order needs beyond the
// window (one sample for linear, three for 4th order, six for 7th order)
// must already be materialized in Data; the kernel never bounds-checks
// individual taps.
type Sample struct {
	Data   []int16
	Data24 []uint8
}

// NewSample wraps 16-bit sample data.
func NewSample(data []int16) *Sample {
	return &Sample{Data: data}
}

// at reconstructs the sample at idx as a float. The 8-bit extension, when
// present, contributes the low-order bits: value = (msb<<8 | lsb) / 256,
// so pure 16-bit data maps onto its plain int16 value and the extension
// adds sub-integer precision.
func (s *Sample) at(idx int) float32 {
	msb := int32(s.Data[idx]) << 8
	if s.Data24 != nil {
		msb |= int32(s.Data24[idx])
	}
	return float32(msb) * (1.0 / 256.0)
}

// Len returns the number of addressable samples.
func (s *Sample) Len() int {
	return len(s.Data)
}
