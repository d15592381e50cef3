package preset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-sampler/sampler"
)

// File is the JSON schema for voice presets.
type File struct {
	InterpMethod *string  `json:"interp_method"`
	Batched      *bool    `json:"batched"`
	SynthGain    *float32 `json:"synth_gain"`
	Pan          *float32 `json:"pan"`
	ReverbSend   *float32 `json:"reverb_send"`
	ChorusSend   *float32 `json:"chorus_send"`
	FilterCutoff *float32 `json:"filter_cutoff"`
	FilterQ      *float32 `json:"filter_q"`
}

var interpNames = map[string]sampler.Interp{
	"none":      sampler.InterpNone,
	"linear":    sampler.InterpLinear,
	"4th_order": sampler.Interp4thOrder,
	"7th_order": sampler.Interp7thOrder,
}

// LoadJSON loads a preset JSON file and applies it on top of default params.
func LoadJSON(path string) (*sampler.Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	p := sampler.NewDefaultParams()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing params object.
func ApplyFile(dst *sampler.Params, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination params")
	}
	if f == nil {
		return nil
	}

	if f.InterpMethod != nil {
		m, ok := interpNames[*f.InterpMethod]
		if !ok {
			return fmt.Errorf("unknown interp_method %q", *f.InterpMethod)
		}
		dst.InterpMethod = m
	}
	if f.Batched != nil {
		dst.Batched = *f.Batched
	}
	if f.SynthGain != nil {
		if *f.SynthGain <= 0 {
			return fmt.Errorf("synth_gain must be > 0")
		}
		dst.SynthGain = *f.SynthGain
	}
	if f.Pan != nil {
		if *f.Pan < -500 || *f.Pan > 500 {
			return fmt.Errorf("pan must be in [-500, 500]")
		}
		dst.Pan = *f.Pan
	}
	if f.ReverbSend != nil {
		if *f.ReverbSend < 0 {
			return fmt.Errorf("reverb_send must be >= 0")
		}
		dst.ReverbSend = *f.ReverbSend
	}
	if f.ChorusSend != nil {
		if *f.ChorusSend < 0 {
			return fmt.Errorf("chorus_send must be >= 0")
		}
		dst.ChorusSend = *f.ChorusSend
	}
	if f.FilterCutoff != nil {
		if *f.FilterCutoff < 0 {
			return fmt.Errorf("filter_cutoff must be >= 0")
		}
		dst.FilterCutoff = *f.FilterCutoff
	}
	if f.FilterQ != nil {
		if *f.FilterQ <= 0 {
			return fmt.Errorf("filter_q must be > 0")
		}
		dst.FilterQ = *f.FilterQ
	}
	return nil
}
