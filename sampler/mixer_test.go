package sampler

import (
	"math"
	"testing"
)

func sentinelBuf(n int, v float32) []float32 {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = v
	}
	return buf
}

func TestMixSkipsZeroGainAndNilDest(t *testing.T) {
	r := newBusRouting()
	r.SetStereoSpread(0, 1)
	r.SetGain(BusReverb, 0)
	r.SetGain(BusChorus, 0.3)

	src := []float32{1, -1, 0.5}
	left := sentinelBuf(3, 0)
	right := sentinelBuf(3, 0)
	reverb := sentinelBuf(3, 7)
	// Chorus destination absent entirely.
	dests := [][]float32{left, right, reverb, nil}

	r.Mix(src, dests)

	for i := range left {
		if left[i] == 0 || right[i] == 0 {
			t.Fatalf("active buses not written at %d", i)
		}
		if reverb[i] != 7 {
			t.Fatalf("zero-gain bus touched its destination: reverb[%d] = %v", i, reverb[i])
		}
	}
}

func TestMixCenterPanSymmetry(t *testing.T) {
	r := newBusRouting()
	r.SetStereoSpread(0.2, 0.8)

	src := []float32{0.25, -0.5, 1, 0}
	left := make([]float32, len(src))
	right := make([]float32, len(src))
	r.Mix(src, [][]float32{left, right})

	for i := range src {
		if left[i] != right[i] {
			t.Fatalf("centered voice not symmetric at %d: %v vs %v", i, left[i], right[i])
		}
		want := 0.8 * panCenterGain * src[i]
		if math.Abs(float64(left[i]-want)) > 1e-7 {
			t.Fatalf("center gain wrong at %d: got %v want %v", i, left[i], want)
		}
	}
}

func TestMixCenterFastPathNeedsBothSides(t *testing.T) {
	r := newBusRouting()
	r.SetStereoSpread(0, 1)

	src := []float32{1, 1}
	left := make([]float32, len(src))
	r.Mix(src, [][]float32{left, nil})

	// With the right side missing the pairwise pass must not run, but the
	// left slot still mixes on its own.
	for i := range src {
		want := panCenterGain * src[i]
		if math.Abs(float64(left[i]-want)) > 1e-7 {
			t.Fatalf("left-only mix wrong at %d: got %v want %v", i, left[i], want)
		}
	}
}

func TestPanGainsExtremes(t *testing.T) {
	l, r := PanGains(-500)
	if r != 0 {
		t.Errorf("hard left: right gain = %v, want exactly 0", r)
	}
	if math.Abs(float64(l)-1) > 1e-6 {
		t.Errorf("hard left: left gain = %v, want 1", l)
	}

	l, r = PanGains(500)
	if math.Abs(float64(r)-1) > 1e-6 {
		t.Errorf("hard right: right gain = %v, want 1", r)
	}
	if math.Abs(float64(l)) > 1e-7 {
		t.Errorf("hard right: left gain = %v, want ~0", l)
	}

	// Equal-power law: squares sum to one everywhere.
	for pan := float32(-500); pan <= 500; pan += 125 {
		l, r := PanGains(pan)
		sum := float64(l*l + r*r)
		if math.Abs(sum-1) > 1e-6 {
			t.Errorf("pan %v: l^2+r^2 = %v", pan, sum)
		}
	}
}

func TestMixHardPanWritesOneSide(t *testing.T) {
	r := newBusRouting()
	r.SetStereoSpread(-500, 1)

	src := []float32{1, -1}
	left := make([]float32, len(src))
	right := make([]float32, len(src))
	r.Mix(src, [][]float32{left, right})

	for i := range src {
		if right[i] != 0 {
			t.Fatalf("hard-left voice leaked into right[%d] = %v", i, right[i])
		}
		if left[i] == 0 {
			t.Fatalf("hard-left voice missing from left[%d]", i)
		}
	}
}

func TestMixCenterDisconnectedSlotsWriteNothing(t *testing.T) {
	r := newBusRouting()
	r.SetStereoSpread(0, 1)
	r.SetMapping(BusLeft, -1)
	r.SetMapping(BusRight, -1)

	src := []float32{1, -1}
	a := sentinelBuf(2, 3)
	b := sentinelBuf(2, 5)
	r.Mix(src, [][]float32{a, b})

	for i := range src {
		if a[i] != 3 || b[i] != 5 {
			t.Fatalf("disconnected slots wrote to dests at %d: %v %v", i, a[i], b[i])
		}
	}
}

func TestMixCenterFollowsMappings(t *testing.T) {
	r := newBusRouting()
	r.SetStereoSpread(0, 1)
	r.SetMapping(BusLeft, 2)
	r.SetMapping(BusRight, 3)

	src := []float32{1, 0.5}
	a := make([]float32, 2)
	b := make([]float32, 2)
	c := make([]float32, 2)
	d := make([]float32, 2)
	r.Mix(src, [][]float32{a, b, c, d})

	for i := range src {
		want := panCenterGain * src[i]
		if math.Abs(float64(c[i]-want)) > 1e-6 || math.Abs(float64(d[i]-want)) > 1e-6 {
			t.Errorf("remapped stereo pair missing from dests 2/3 at %d: %v %v", i, c[i], d[i])
		}
		if a[i] != 0 || b[i] != 0 {
			t.Errorf("centered remapped slots leaked into dests 0/1 at %d", i)
		}
	}
}

func TestMixCenterUnequalGainsKeepsPerSlotPath(t *testing.T) {
	r := newBusRouting()
	r.SetStereoSpread(0, 1)
	r.SetGain(BusRight, 0.25)

	src := []float32{1, 1}
	left := make([]float32, 2)
	right := make([]float32, 2)
	r.Mix(src, [][]float32{left, right})

	for i := range src {
		if math.Abs(float64(left[i]-panCenterGain)) > 1e-6 {
			t.Errorf("left[%d] = %v, want slot gain %v", i, left[i], panCenterGain)
		}
		if math.Abs(float64(right[i]-0.25)) > 1e-6 {
			t.Errorf("right[%d] = %v, want slot gain 0.25", i, right[i])
		}
	}
}

func TestMixMappingRedirectsSlot(t *testing.T) {
	r := newBusRouting()
	r.SetStereoSpread(300, 1) // off center, no fast path
	r.SetMapping(BusLeft, 3)
	r.SetMapping(BusRight, -1) // disconnected

	src := []float32{1, 2}
	a := make([]float32, 2)
	b := make([]float32, 2)
	c := make([]float32, 2)
	d := make([]float32, 2)
	r.Mix(src, [][]float32{a, b, c, d})

	lg, _ := PanGains(300)
	for i := range src {
		if math.Abs(float64(d[i]-lg*src[i])) > 1e-6 {
			t.Errorf("remapped slot missing from dest 3 at %d: %v", i, d[i])
		}
		if a[i] != 0 || b[i] != 0 || c[i] != 0 {
			t.Errorf("unexpected write to dests 0..2 at %d", i)
		}
	}
}

func TestMixAccumulates(t *testing.T) {
	r := newBusRouting()
	r.SetStereoSpread(0, 1)

	src := []float32{1, 1}
	left := sentinelBuf(2, 10)
	right := sentinelBuf(2, 20)
	r.Mix(src, [][]float32{left, right})

	for i := range src {
		if math.Abs(float64(left[i]-(10+panCenterGain))) > 1e-6 {
			t.Errorf("left[%d] = %v, want prior content plus contribution", i, left[i])
		}
		if math.Abs(float64(right[i]-(20+panCenterGain))) > 1e-6 {
			t.Errorf("right[%d] = %v, want prior content plus contribution", i, right[i])
		}
	}
}
