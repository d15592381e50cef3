package sampler

// Phase is a 32.32 fixed-point position in source sample data. The upper
// 32 bits hold the integer sample index, the lower 32 bits the fractional
// offset between samples. Phase increments share the same representation,
// so advancing is a single integer add with natural carry from the
// fractional part into the index.
type Phase uint64

const (
	fractBits = 32
	fractMask = (Phase(1) << fractBits) - 1

	// tableRows is the number of fractional-phase quantization rows shared
	// by all coefficient tables. The top 8 bits of the fraction select the
	// row, so by construction every table lookup stays in range.
	tableRows = 256
	rowShift  = fractBits - 8
)

// PhaseFromIndex returns a phase positioned exactly on the given sample index.
func PhaseFromIndex(index int) Phase {
	return Phase(index) << fractBits
}

// PhaseFromFloat converts a non-negative floating-point sample position
// (or increment) to fixed point.
func PhaseFromFloat(pos float64) Phase {
	idx := uint64(pos)
	fract := pos - float64(idx)
	return Phase(idx)<<fractBits | Phase(fract*float64(uint64(1)<<fractBits))
}

// Index returns the integer sample index part.
func (p Phase) Index() int {
	return int(p >> fractBits)
}

// Fract returns the fractional part in [0, 1).
func (p Phase) Fract() float64 {
	return float64(p&fractMask) / float64(uint64(1)<<fractBits)
}

// TableRow returns the coefficient-table row selected by the fractional part.
func (p Phase) TableRow() int {
	return int((p >> rowShift) & (tableRows - 1))
}

// Float returns the position as a float64 sample offset.
func (p Phase) Float() float64 {
	return float64(p.Index()) + p.Fract()
}

// isRootPitch reports the sample-exact unity-increment condition: the phase
// falls directly on an original sample and the step per output sample is
// exactly one sample. In that case playback is at unmodified root pitch and
// interpolation reduces to an amplitude-scaled copy for every method.
func isRootPitch(p, incr Phase) bool {
	return p&fractMask == 0 && incr == Phase(1)<<fractBits
}
