package sndfile

import (
	"math"
	"path/filepath"
	"testing"
)

func TestStereoWriteMonoReadRoundTrip(t *testing.T) {
	const rate = 48000
	const frames = 512

	left := make([]float32, frames)
	right := make([]float32, frames)
	for i := range left {
		left[i] = 0.5 * float32(math.Sin(2*math.Pi*440*float64(i)/rate))
		right[i] = 0.25 * float32(math.Sin(2*math.Pi*440*float64(i)/rate))
	}

	path := filepath.Join(t.TempDir(), "roundtrip.wav")
	if err := WriteStereoLR(path, left, right, rate); err != nil {
		t.Fatalf("WriteStereoLR: %v", err)
	}

	mono, gotRate, err := ReadMono(path)
	if err != nil {
		t.Fatalf("ReadMono: %v", err)
	}
	if gotRate != rate {
		t.Errorf("sample rate %d, want %d", gotRate, rate)
	}
	if len(mono) != frames {
		t.Fatalf("read %d frames, want %d", len(mono), frames)
	}

	// The downmix is the channel average, in normalized scale. 16-bit
	// quantization bounds the error.
	const tol = 2.0 / 32768
	for i := range mono {
		if math.Abs(mono[i]) > 1 {
			t.Fatalf("sample %d = %v outside normalized range", i, mono[i])
		}
		want := (float64(left[i]) + float64(right[i])) / 2
		if math.Abs(mono[i]-want) > tol {
			t.Fatalf("sample %d = %v, want %v within %v", i, mono[i], want, tol)
		}
	}
}

func TestWriteStereoLRRejectsLengthMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := WriteStereoLR(path, make([]float32, 4), make([]float32, 5), 48000); err == nil {
		t.Error("expected error for mismatched channel lengths")
	}
}
