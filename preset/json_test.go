package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-sampler/sampler"
)

func TestLoadJSONAppliesFields(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.json")
	content := `{
  "interp_method": "7th_order",
  "batched": true,
  "synth_gain": 0.8,
  "pan": -250,
  "reverb_send": 0.2,
  "chorus_send": 0.05,
  "filter_cutoff": 2400,
  "filter_q": 3.5
}`
	if err := os.WriteFile(presetPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := LoadJSON(presetPath)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if p.InterpMethod != sampler.Interp7thOrder {
		t.Errorf("interp method: got %v, want Interp7thOrder", p.InterpMethod)
	}
	if !p.Batched {
		t.Error("batched not applied")
	}
	if p.SynthGain != 0.8 {
		t.Errorf("synth gain: got %v, want 0.8", p.SynthGain)
	}
	if p.Pan != -250 {
		t.Errorf("pan: got %v, want -250", p.Pan)
	}
	if p.ReverbSend != 0.2 || p.ChorusSend != 0.05 {
		t.Errorf("sends: got %v/%v, want 0.2/0.05", p.ReverbSend, p.ChorusSend)
	}
	if p.FilterCutoff != 2400 || p.FilterQ != 3.5 {
		t.Errorf("filter: got %v/%v, want 2400/3.5", p.FilterCutoff, p.FilterQ)
	}
}

func TestLoadJSONKeepsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	presetPath := filepath.Join(dir, "preset.json")
	if err := os.WriteFile(presetPath, []byte(`{"pan": 100}`), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := LoadJSON(presetPath)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	def := sampler.NewDefaultParams()
	if p.InterpMethod != def.InterpMethod {
		t.Errorf("interp method changed: got %v, want default %v", p.InterpMethod, def.InterpMethod)
	}
	if p.SynthGain != def.SynthGain {
		t.Errorf("synth gain changed: got %v, want default %v", p.SynthGain, def.SynthGain)
	}
	if p.Pan != 100 {
		t.Errorf("pan: got %v, want 100", p.Pan)
	}
}

func TestApplyFileRejectsInvalidValues(t *testing.T) {
	bad := float32(-1)
	badMethod := "cubic-spline"
	tests := []struct {
		name string
		file File
	}{
		{"negative gain", File{SynthGain: &bad}},
		{"unknown method", File{InterpMethod: &badMethod}},
		{"negative reverb", File{ReverbSend: &bad}},
		{"non-positive q", File{FilterQ: &bad}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampler.NewDefaultParams()
			if err := ApplyFile(p, &tt.file); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
