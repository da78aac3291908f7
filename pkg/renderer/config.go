package renderer

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Shading model names accepted in configuration.
const (
	ShadingPhong      = "phong"
	ShadingBlinnPhong = "blinn-phong"
)

// Config controls rendering quality, parallelism and output.
type Config struct {
	Shading  string `toml:"shading"`   // phong or blinn-phong
	MaxDepth int    `toml:"max_depth"` // recursion limit for reflection and refraction
	Workers  int    `toml:"workers"`   // worker goroutines, 0 means one per CPU
	TileSize int    `toml:"tile_size"` // square tile edge in pixels
	Output   string `toml:"output"`    // output image path
	Quiet    bool   `toml:"quiet"`     // suppress progress output
}

// DefaultConfig returns the settings used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		Shading:  ShadingPhong,
		MaxDepth: 8,
		Workers:  0,
		TileSize: 64,
		Output:   "trace.ppm",
	}
}

// Validate reports every unusable setting in a single error.
func (c Config) Validate() error {
	var problems []string

	if c.Shading != ShadingPhong && c.Shading != ShadingBlinnPhong {
		problems = append(problems, fmt.Sprintf("shading must be %q or %q, got %q",
			ShadingPhong, ShadingBlinnPhong, c.Shading))
	}
	if c.MaxDepth < 1 {
		problems = append(problems, fmt.Sprintf("max_depth must be a positive integer, got %d", c.MaxDepth))
	}
	if c.Workers < 0 {
		problems = append(problems, fmt.Sprintf("workers must be a non-negative integer, got %d", c.Workers))
	}
	if c.TileSize < 1 {
		problems = append(problems, fmt.Sprintf("tile_size must be a positive integer, got %d", c.TileSize))
	}
	if c.Output == "" {
		problems = append(problems, "output path must not be empty")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// NumWorkers resolves the worker count, defaulting to one per CPU.
func (c Config) NumWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// BlinnPhong reports whether the Blinn-Phong shading model is selected.
func (c Config) BlinnPhong() bool {
	return c.Shading == ShadingBlinnPhong
}

// LoadConfig reads settings from a TOML file. Keys not present keep their
// defaults; unknown keys are rejected.
func LoadConfig(filename string) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config file: %v", err)
	}
	defer file.Close()

	config := DefaultConfig()
	decoder := toml.NewDecoder(file).DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %v", filename, err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %v", filename, err)
	}
	return config, nil
}
