// Package config loads the engine's typed configuration: window/
// screen size, fixed timestep, physics gravity, renderer limits, and
// input key bindings, from an embedded YAML baseline optionally
// overridden by a user file.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	FixedStep FixedStepConfig `yaml:"fixed_step"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Input     InputConfig     `yaml:"input"`
	Assets    AssetsConfig    `yaml:"assets"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	TargetFPS int32  `yaml:"target_fps"`
	VSync     bool   `yaml:"vsync"`
}

// FixedStepConfig controls the accumulator driving fixed-rate updates.
type FixedStepConfig struct {
	DT               float64 `yaml:"dt"`
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"`
}

// PhysicsConfig holds rigid-body simulation parameters.
type PhysicsConfig struct {
	GravityX           float32 `yaml:"gravity_x"`
	GravityY           float32 `yaml:"gravity_y"`
	VelocityIterations int     `yaml:"velocity_iterations"`
	PositionIterations int     `yaml:"position_iterations"`
}

// RendererConfig holds batching and lighting limits.
type RendererConfig struct {
	MaxSpritesPerFrame int     `yaml:"max_sprites_per_frame"`
	MaxLights          int     `yaml:"max_lights"`
	AmbientR           float32 `yaml:"ambient_r"`
	AmbientG           float32 `yaml:"ambient_g"`
	AmbientB           float32 `yaml:"ambient_b"`
}

// InputConfig names the watched keys and mouse buttons each frame's
// input.State.BeginFrame polls, plus named bindings a game can look
// up by action instead of raw key.
type InputConfig struct {
	WatchedKeys    []int32          `yaml:"watched_keys"`
	WatchedButtons []int32          `yaml:"watched_buttons"`
	Bindings       map[string]int32 `yaml:"bindings"`
}

// AssetsConfig names search roots for textures, fonts, and scripts.
type AssetsConfig struct {
	TextureDir string `yaml:"texture_dir"`
	FontDir    string `yaml:"font_dir"`
	ScriptDir  string `yaml:"script_dir"`
}

// Default returns the embedded baseline configuration unconditionally,
// for tests and headless tools that don't want to read a user file.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid YAML: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	return cfg, nil
}

// WriteYAML marshals cfg and writes it to path, for snapshotting the
// resolved configuration alongside a run's other output.
func (cfg *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
