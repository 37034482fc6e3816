// ABOUTME: YAML preset files describing a NetworkConfig for repeatable CLI runs
// ABOUTME: Fields omitted from a preset keep their built-in default values

package presets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
)

// Load reads a preset file and overlays it on the default network configuration.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (models.NetworkConfig, error) {
	return LoadOver(path, models.DefaultNetworkConfig())
}

// LoadOver reads a preset file and overlays it on base, such as a server's configured defaults.
func LoadOver(path string, base models.NetworkConfig) (models.NetworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.NetworkConfig{}, fmt.Errorf("failed to read preset %s: %w", path, err)
	}

	cfg, err := DecodeOver(bytes.NewReader(data), base)
	if err != nil {
		return models.NetworkConfig{}, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses a preset document over the defaults. An empty document yields the defaults.
func Decode(r io.Reader) (models.NetworkConfig, error) {
	return DecodeOver(r, models.DefaultNetworkConfig())
}

// DecodeOver parses a preset document over base. An empty document yields base.
func DecodeOver(r io.Reader, base models.NetworkConfig) (models.NetworkConfig, error) {
	cfg := base

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return models.NetworkConfig{}, err
	}
	return cfg, nil
}

// Encode writes cfg as a preset document
func Encode(w io.Writer, cfg models.NetworkConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	return enc.Close()
}
