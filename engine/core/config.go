package core

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/hubastard/skirmish/engine/colors"
)

// Config for the engine run. Every field can be overridden from the
// environment with the SKIRMISH_ prefix.
type Config struct {
	Title            string    `env:"TITLE" envDefault:"Skirmish"`
	Width            int       `env:"WIDTH" envDefault:"1280"`
	Height           int       `env:"HEIGHT" envDefault:"720"`
	VSync            bool      `env:"VSYNC" envDefault:"true"`
	ClearColor       []float32 `env:"CLEAR_COLOR" envDefault:"0.08,0.09,0.11,1" envSeparator:","`
	AtlasSize        int       `env:"ATLAS_SIZE" envDefault:"256"`
	LogLevel         string    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string    `env:"LOG_FORMAT" envDefault:"text"`
	AudioEnabled     bool      `env:"AUDIO" envDefault:"true"`
	Seed             uint64    `env:"SEED" envDefault:"0"`
	CharacterTexture string    `env:"CHARACTER_TEXTURE"`
}

// LoadConfig reads the config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "SKIRMISH_"}); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if len(c.ClearColor) != 4 {
		return fmt.Errorf("clear color needs 4 components, got %d", len(c.ClearColor))
	}
	if c.AtlasSize < 16 {
		return fmt.Errorf("atlas size %d too small", c.AtlasSize)
	}
	return nil
}

func (c Config) Clear() colors.Color {
	if len(c.ClearColor) != 4 {
		return colors.Black
	}
	return colors.Color{c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], c.ClearColor[3]}
}
