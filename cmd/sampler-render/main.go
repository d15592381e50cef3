package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"

	"github.com/cwbudde/algo-sampler/internal/sndfile"
	"github.com/cwbudde/algo-sampler/preset"
	"github.com/cwbudde/algo-sampler/sampler"
)

const blockSize = 64

func main() {
	input := flag.String("input", "", "Input WAV sample (default: built-in 220 Hz test tone)")
	transpose := flag.Float64("transpose", 0, "Pitch shift in semitones")
	duration := flag.Float64("duration", 2.0, "Render duration in seconds")
	sampleRate := flag.Int("sample-rate", 48000, "Render sample rate in Hz")
	loop := flag.Bool("loop", true, "Loop the sample for the full duration")
	presetPath := flag.String("preset", "", "Preset JSON file path (optional)")
	output := flag.String("output", "output.wav", "Output WAV file path")
	flag.Parse()

	params := sampler.NewDefaultParams()
	if *presetPath != "" {
		p, err := preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
		params = p
	}

	data, err := loadSampleData(*input, *sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sample: %v\n", err)
		os.Exit(1)
	}

	// Materialize guard samples past the window end so the 7-tap
	// interpolator never reads out of bounds. For a looping window the
	// guard repeats the loop start.
	const guard = 8
	n := len(data)
	padded := make([]int16, n+guard)
	copy(padded, data)
	if *loop {
		copy(padded[n:], data[:min(guard, n)])
	}

	v := sampler.NewVoice(*sampleRate, params)
	v.SetSample(sampler.NewSample(padded), 0, n)
	v.SetLoop(0, n)
	if *loop {
		v.SetLoopMode(sampler.LoopDuringRelease)
	}
	v.SetRootPitchHz(440)
	v.SetPitch(float32(6900 + *transpose*100))

	totalFrames := int(float64(*sampleRate) * *duration)
	if totalFrames < 1 {
		totalFrames = 1
	}
	fmt.Printf("Rendering %.2fs at %d Hz, transpose %+.1f semitones...\n",
		*duration, *sampleRate, *transpose)

	left := make([]float32, totalFrames)
	right := make([]float32, totalFrames)
	reverb := make([]float32, totalFrames)
	chorus := make([]float32, totalFrames)
	scratch := make([]float32, blockSize)

	rendered := 0
	for rendered < totalFrames {
		frames := blockSize
		if rendered+frames > totalFrames {
			frames = totalFrames - rendered
		}

		v.UpdateBlock(sampler.BlockControl{VolEnv: 1}, frames)
		produced := v.Write(scratch, 0, frames)
		if produced == 0 {
			break
		}
		v.MixTo(scratch[:produced], [][]float32{
			left[rendered : rendered+produced],
			right[rendered : rendered+produced],
			reverb[rendered : rendered+produced],
			chorus[rendered : rendered+produced],
		})
		rendered += produced
		if produced < frames {
			break
		}
	}

	// No reverb or chorus units here; fold the sends back dry so they
	// remain audible in the file.
	for i := 0; i < rendered; i++ {
		left[i] += reverb[i] + chorus[i]
		right[i] += reverb[i] + chorus[i]
	}

	if err := sndfile.WriteStereoLR(*output, left[:rendered], right[:rendered], *sampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d frames to %s\n", rendered, *output)
}

// loadSampleData reads the input WAV resampled to the render rate, or
// synthesizes a test tone when no input is given.
func loadSampleData(path string, renderRate int) ([]int16, error) {
	if path == "" {
		return testTone(renderRate), nil
	}

	samples, fileRate, err := sndfile.ReadMono(path)
	if err != nil {
		return nil, err
	}

	if fileRate != renderRate {
		r, err := dspresample.NewForRates(
			float64(fileRate),
			float64(renderRate),
			dspresample.WithQuality(dspresample.QualityBest),
		)
		if err != nil {
			return nil, err
		}
		samples = r.Process(samples)
	}

	// The decoder hands back normalized floats; the sample store is 16-bit.
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = int16(max(math.MinInt16, min(math.MaxInt16, math.Round(s*math.MaxInt16))))
	}
	return out, nil
}

// testTone is one second of a 220 Hz sine at half scale.
func testTone(rate int) []int16 {
	out := make([]int16, rate)
	for i := range out {
		out[i] = int16(16384 * math.Sin(2*math.Pi*220*float64(i)/float64(rate)))
	}
	return out
}
