package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/preston-bernstein/nba-edge-service/internal/model"
)

func writeParams(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write params: %v", err)
	}
	return path
}

func TestLoadModelParamsEmptyPathReturnsDefaults(t *testing.T) {
	params, err := LoadModelParams("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(params, model.DefaultParams()) {
		t.Fatalf("expected defaults, got %+v", params)
	}
}

func TestLoadModelParamsOverlaysFile(t *testing.T) {
	path := writeParams(t, "homeCourtPoints: 3.1\nalphaSteps: [0, 0.5, 0.9]\n")

	params, err := LoadModelParams(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.HomeCourtPoints != 3.1 {
		t.Fatalf("expected home court override, got %v", params.HomeCourtPoints)
	}
	if !reflect.DeepEqual(params.AlphaSteps, []float64{0, 0.5, 0.9}) {
		t.Fatalf("expected alpha override, got %v", params.AlphaSteps)
	}
	def := model.DefaultParams()
	if params.Scale != def.Scale || params.Decay != def.Decay || params.WindowSize != def.WindowSize {
		t.Fatalf("expected untouched keys to keep defaults, got %+v", params)
	}
}

func TestLoadModelParamsRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"invalid yaml":     "scale: [unclosed",
		"invalid decay":    "decay: 1.5\n",
		"decreasing alpha": "alphaSteps: [0, 0.5, 0.2]\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			params, err := LoadModelParams(writeParams(t, body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !reflect.DeepEqual(params, model.DefaultParams()) {
				t.Fatalf("expected defaults alongside error, got %+v", params)
			}
		})
	}
}

func TestLoadModelParamsMissingFile(t *testing.T) {
	if _, err := LoadModelParams(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
