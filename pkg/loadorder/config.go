package loadorder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/esmkit/pkg/types"
)

// Config is a load-order file:
//
//	data_dir: /games/Oblivion/Data
//	plugins:
//	  - Oblivion.esm
//	  - Knights.esp
//	saved:
//	  - Oblivion.esm
//	  - DLCShiveringIsles.esp
//	  - Knights.esp
type Config struct {
	DataDir string `yaml:"data_dir"`

	// Plugins is the current load order.
	Plugins []string `yaml:"plugins"`

	// Saved is the order the files were saved against. Empty means the
	// current order.
	Saved []string `yaml:"saved,omitempty"`

	// HeaderSize forces 20 or 24 byte headers. Zero detects per file.
	HeaderSize int `yaml:"header_size,omitempty"`

	// Workers caps parallel decoding. Zero uses every CPU.
	Workers int `yaml:"workers,omitempty"`

	// StrictLimits selects the tighter sanity limits.
	StrictLimits bool `yaml:"strict_limits,omitempty"`
}

// Load reads a load-order file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load order file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read load order file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a load-order document.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse load order file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the file lists and header size.
func (c *Config) Validate() error {
	if len(c.Plugins) == 0 {
		return errors.New("loadorder: no plugins listed")
	}
	if _, err := Mapping(c.savedOrder(), c.Plugins); err != nil {
		return err
	}
	if c.HeaderSize != 0 && c.HeaderSize != 20 && c.HeaderSize != 24 {
		return fmt.Errorf("loadorder: header_size %d is neither 20 nor 24", c.HeaderSize)
	}
	return nil
}

// Save writes c to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal load order: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write load order file: %w", err)
	}
	return nil
}

// Paths returns the plugin paths in load order, joined to DataDir.
func (c *Config) Paths() []string {
	out := make([]string, len(c.Plugins))
	for i, p := range c.Plugins {
		if c.DataDir == "" || filepath.IsAbs(p) {
			out[i] = p
		} else {
			out[i] = filepath.Join(c.DataDir, p)
		}
	}
	return out
}

// Table returns the remap table from the saved order to the current one.
func (c *Config) Table() (types.RemapTable, error) {
	return Mapping(c.savedOrder(), c.Plugins)
}

// Limits returns the sanity limits the file asks for.
func (c *Config) Limits() types.Limits {
	if c.StrictLimits {
		return types.StrictLimits()
	}
	return types.DefaultLimits()
}

func (c *Config) savedOrder() []string {
	if len(c.Saved) > 0 {
		return c.Saved
	}
	return c.Plugins
}
