package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/nba-edge-service/internal/model"
)

// LoadModelParams overlays the YAML file at path onto the default model constants.
// An empty path returns the defaults. Keys absent from the file keep their default values.
func LoadModelParams(path string) (model.Params, error) {
	params := model.DefaultParams()
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("read model params: %w", err)
	}

	overlay := params
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return params, fmt.Errorf("parse model params: %w", err)
	}
	if err := overlay.Validate(); err != nil {
		return params, fmt.Errorf("invalid model params %s: %w", path, err)
	}
	return overlay, nil
}
