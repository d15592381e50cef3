package sampler

import "math"

// MaxBuses is the number of routing slots per voice. Currently left,
// right, reverb send, chorus send; to be raised if surround positioning or
// stereo sends are ever added.
const MaxBuses = 4

// Default slot order used by the stereo convenience helpers. The mapping
// of a slot into the caller's destination set is configurable, so other
// topologies only need SetMapping.
const (
	BusLeft = iota
	BusRight
	BusReverb
	BusChorus
)

// centerPanTolerance, in pan units of -500..500, below which the voice
// counts as centered and left/right share one computed contribution.
const centerPanTolerance = 0.5

// BusRouting distributes a filtered mono block additively into up to
// MaxBuses destination buffers, each with an independent linear gain.
type BusRouting struct {
	count int
	bufs  [MaxBuses]struct {
		gain    float32
		mapping int
	}
	pan float32
}

// newBusRouting returns a routing with the four default slots mapped
// one-to-one and all gains zero.
func newBusRouting() BusRouting {
	var r BusRouting
	r.count = MaxBuses
	for i := range r.bufs {
		r.bufs[i].mapping = i
	}
	return r
}

// SetGain sets the linear gain of a routing slot. A slot with gain zero is
// skipped entirely during mixing.
func (r *BusRouting) SetGain(bus int, gain float32) {
	if bus < 0 || bus >= MaxBuses {
		return
	}
	r.bufs[bus].gain = gain
	if bus >= r.count {
		r.count = bus + 1
	}
}

// SetMapping redirects a routing slot to the destination buffer with the
// given index. A negative index disconnects the slot.
func (r *BusRouting) SetMapping(bus, mapping int) {
	if bus < 0 || bus >= MaxBuses {
		return
	}
	r.bufs[bus].mapping = mapping
	if bus >= r.count {
		r.count = bus + 1
	}
}

// Gain returns the configured gain of a slot.
func (r *BusRouting) Gain(bus int) float32 {
	if bus < 0 || bus >= MaxBuses {
		return 0
	}
	return r.bufs[bus].gain
}

// SetStereoSpread sets the left/right slot gains from a pan position in
// -500..500 and an overall linear gain, using a quarter-circle pan law.
// The pan value is kept so Mix can take the centered fast path.
func (r *BusRouting) SetStereoSpread(pan, gain float32) {
	r.pan = pan
	if pan < -centerPanTolerance || pan > centerPanTolerance {
		left, right := PanGains(pan)
		r.SetGain(BusLeft, gain*left)
		r.SetGain(BusRight, gain*right)
		return
	}
	// Centered: both sides use the identical gain, computed once.
	g := gain * panCenterGain
	r.SetGain(BusLeft, g)
	r.SetGain(BusRight, g)
}

// panCenterGain is the quarter-circle law evaluated at dead center.
var panCenterGain = float32(math.Sin(math.Pi / 4))

// PanGains returns the left and right gain factors for a pan position in
// -500 (hard left) .. 500 (hard right).
func PanGains(pan float32) (left, right float32) {
	if pan < -500 {
		pan = -500
	} else if pan > 500 {
		pan = 500
	}
	x := float64(pan+500) / 1000.0 * (math.Pi / 2)
	return float32(math.Cos(x)), float32(math.Sin(x))
}

// Mix accumulates src into the destination buffers: dest[i] += gain*src[i]
// per configured slot. Slots with gain zero, a disconnected mapping, or a
// nil destination are skipped without touching (or reading) the
// destination. When the voice is panned within the center tolerance and the
// stereo slots carry the same gain, their destinations receive one
// identical contribution in a single pass.
func (r *BusRouting) Mix(src []float32, dests [][]float32) {
	bus := 0
	if r.count >= 2 && r.pan >= -centerPanTolerance && r.pan <= centerPanTolerance &&
		r.bufs[BusLeft].gain == r.bufs[BusRight].gain {
		left := r.dest(dests, r.bufs[BusLeft].mapping)
		right := r.dest(dests, r.bufs[BusRight].mapping)
		if g := r.bufs[BusLeft].gain; g != 0 && left != nil && right != nil {
			for i, s := range src {
				v := g * s
				left[i] += v
				right[i] += v
			}
			bus = 2
		}
	}

	for ; bus < r.count; bus++ {
		g := r.bufs[bus].gain
		if g == 0 {
			continue
		}
		d := r.dest(dests, r.bufs[bus].mapping)
		if d == nil {
			continue
		}
		for i, s := range src {
			d[i] += g * s
		}
	}
}

func (r *BusRouting) dest(dests [][]float32, mapping int) []float32 {
	if mapping < 0 || mapping >= len(dests) {
		return nil
	}
	return dests[mapping]
}
