// Application configuration: struct defaults overlaid by an optional YAML file
package config

import (
	"os"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/pkg/errors"
	yml "gopkg.in/yaml.v2"

	"image-augmentation-visualizer/internal/core"
)

// DefaultFileName is the config file looked up when -config is not given
const DefaultFileName = "augviz.yml"

type WindowConfig struct {
	Width  float64 `koanf:"width" yaml:"width"`
	Height float64 `koanf:"height" yaml:"height"`
}

type SamplesConfig struct {
	Dir     string `koanf:"dir" yaml:"dir"`
	Default string `koanf:"default" yaml:"default"`
}

// PreviewConfig sets the minimum on-screen size of each stage image
type PreviewConfig struct {
	Width  float64 `koanf:"width" yaml:"width"`
	Height float64 `koanf:"height" yaml:"height"`
}

// GaussianBlurDemo mirrors core.GaussianBlurSettings for the config file
type GaussianBlurDemo struct {
	BlurLimit  int     `koanf:"blur_limit" yaml:"blur_limit"`
	SigmaLimit float64 `koanf:"sigma_limit" yaml:"sigma_limit"`
}

func (d GaussianBlurDemo) Settings() core.GaussianBlurSettings {
	return core.GaussianBlurSettings(d)
}

// GaussNoiseDemo mirrors core.GaussNoiseSettings for the config file
type GaussNoiseDemo struct {
	VarLower   float64 `koanf:"var_lower" yaml:"var_lower"`
	VarUpper   float64 `koanf:"var_upper" yaml:"var_upper"`
	Mean       float64 `koanf:"mean" yaml:"mean"`
	PerChannel bool    `koanf:"per_channel" yaml:"per_channel"`
}

func (d GaussNoiseDemo) Settings() core.GaussNoiseSettings {
	return core.GaussNoiseSettings(d)
}

// AdvancedBlurDemo mirrors core.AdvancedBlurSettings for the config file
type AdvancedBlurDemo struct {
	BlurLimit   int     `koanf:"blur_limit" yaml:"blur_limit"`
	SigmaX      float64 `koanf:"sigma_x" yaml:"sigma_x"`
	SigmaY      float64 `koanf:"sigma_y" yaml:"sigma_y"`
	RotateLimit int     `koanf:"rotate_limit" yaml:"rotate_limit"`
	Beta        float64 `koanf:"beta" yaml:"beta"`
	Noise       float64 `koanf:"noise" yaml:"noise"`
}

func (d AdvancedBlurDemo) Settings() core.AdvancedBlurSettings {
	return core.AdvancedBlurSettings(d)
}

// DemoConfig holds the initial slider values of the single-transformation pages
type DemoConfig struct {
	GaussianBlur GaussianBlurDemo `koanf:"gaussian_blur" yaml:"gaussian_blur"`
	GaussNoise   GaussNoiseDemo   `koanf:"gauss_noise" yaml:"gauss_noise"`
	AdvancedBlur AdvancedBlurDemo `koanf:"advanced_blur" yaml:"advanced_blur"`
}

type Config struct {
	Window  WindowConfig  `koanf:"window" yaml:"window"`
	Samples SamplesConfig `koanf:"samples" yaml:"samples"`
	Preview PreviewConfig `koanf:"preview" yaml:"preview"`
	// Seed fixes the random draws of stochastic augmentations; 0 seeds from the clock
	Seed  int64      `koanf:"seed" yaml:"seed"`
	Demos DemoConfig `koanf:"demos" yaml:"demos"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Window:  WindowConfig{Width: 1400, Height: 900},
		Samples: SamplesConfig{Dir: "samples", Default: "Flower"},
		Preview: PreviewConfig{Width: 480, Height: 320},
		Demos: DemoConfig{
			GaussianBlur: GaussianBlurDemo{BlurLimit: 0, SigmaLimit: 5},
			GaussNoise:   GaussNoiseDemo{VarLower: 0, VarUpper: 50, Mean: 30},
			AdvancedBlur: AdvancedBlurDemo{
				BlurLimit: 0,
				SigmaX:    5,
				SigmaY:    4.9,
				Beta:      1.5,
				Noise:     1,
			},
		},
	}
}

// Load overlays the YAML file at path on the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, errors.Wrap(err, "load defaults")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, errors.Wrapf(err, "load config %s", path)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "stat config %s", path)
		}
	}

	c := Config{}
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size must be positive, got %gx%g", c.Window.Width, c.Window.Height)
	}
	if c.Samples.Dir == "" {
		return errors.New("samples.dir must be set")
	}
	if _, err := core.BuildGaussianBlur(c.Demos.GaussianBlur.Settings()); err != nil {
		return errors.Wrap(err, "demos.gaussian_blur")
	}
	if _, err := core.BuildGaussNoise(c.Demos.GaussNoise.Settings()); err != nil {
		return errors.Wrap(err, "demos.gauss_noise")
	}
	if _, err := core.BuildAdvancedBlur(c.Demos.AdvancedBlur.Settings()); err != nil {
		return errors.Wrap(err, "demos.advanced_blur")
	}
	return nil
}

// Write dumps c as YAML to path
func (c Config) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create config file")
	}
	defer f.Close()

	if err := yml.NewEncoder(f).Encode(c); err != nil {
		return errors.Wrap(err, "encode config")
	}
	return nil
}
