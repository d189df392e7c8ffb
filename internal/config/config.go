package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/voxarel/showcase/internal/layout"
	"github.com/voxarel/showcase/internal/system"
	"github.com/voxarel/showcase/internal/video"
)

// AutoEncoder asks ffmpeg for the best available H.264 encoder at run time.
const AutoEncoder = "auto"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	OutputVideo  string  `toml:"output"`
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	FPS          int     `toml:"fps"`
	Workers      int     `toml:"workers"`
	Duration     float64 `toml:"duration"` // tour footage in seconds, 0 = one full cycle
	FadeDuration float64 `toml:"fade"`

	Policy    string  `toml:"policy"`
	Tour      string  `toml:"tour"` // preset name or YAML path, empty = planned from the layout
	Compare   bool    `toml:"compare"`
	Spin      float64 `toml:"spin"` // radians per second
	Wireframe bool    `toml:"wireframe"`
	Smoothing bool    `toml:"smoothing"`
	Accent    string  `toml:"accent"`

	EndCard    float64 `toml:"end_card"` // seconds, 0 disables
	EndCardURL string  `toml:"end_card_url"`

	FFmpeg       string `toml:"ffmpeg"`
	VideoEncoder string `toml:"encoder"`
	Quality      int    `toml:"quality"`
	ShowStats    bool   `toml:"stats"`
	BuildVersion string `toml:"-"`
}

// Default returns the settings used when no file or flag says otherwise.
func Default() *Config {
	return &Config{
		OutputVideo:  "showcase.mp4",
		Width:        1280,
		Height:       720,
		FPS:          30,
		Workers:      runtime.NumCPU(),
		FadeDuration: 0.5,
		Policy:       layout.Efficient.String(),
		Tour:         "container-comparison",
		Spin:         0.05,
		Wireframe:    true,
		Smoothing:    true,
		Accent:       layout.DefaultAccent,
		EndCard:      3,
		EndCardURL:   "https://voxarel.com/demo",
		FFmpeg:       "ffmpeg",
		VideoEncoder: AutoEncoder,
		Quality:      23,
		BuildVersion: "dev",
	}
}

// Load reads a TOML file over the defaults. Keys the file does not know
// about are an error so typos do not go unnoticed.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown key %q", ErrInvalid, path, undecoded[0].String())
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Width%2 != 0 || c.Height%2 != 0:
		// yuv420p требует чётных размеров
		return fmt.Errorf("%w: size %dx%d must be even", ErrInvalid, c.Width, c.Height)
	case c.FPS <= 0 || c.FPS > 240:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	case c.Duration < 0 || c.FadeDuration < 0 || c.EndCard < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalid)
	case c.Quality < 0:
		return fmt.Errorf("%w: quality %d", ErrInvalid, c.Quality)
	case c.OutputVideo == "":
		return fmt.Errorf("%w: empty output path", ErrInvalid)
	}
	if _, err := layout.ParsePolicy(c.Policy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.VideoEncoder != AutoEncoder && !system.ValidEncoder(c.VideoEncoder) {
		return fmt.Errorf("%w: encoder %q", ErrInvalid, c.VideoEncoder)
	}
	return nil
}

// StreamParams builds the encoder parameters for a video of the given length.
func (c *Config) StreamParams(encoder string, duration float64) video.StreamParams {
	return video.StreamParams{
		Width:    c.Width,
		Height:   c.Height,
		FPS:      c.FPS,
		Encoder:  encoder,
		Quality:  c.Quality,
		FadeIn:   c.FadeDuration,
		FadeOut:  c.FadeDuration,
		Duration: duration,
	}
}
