// Package config loads the run configuration from defaults, a TOML file,
// TRIPARTICLES_* environment variables and command-line flags, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gekko3d/triparticles"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "TRIPARTICLES"

type Config struct {
	Emitter triparticles.EmitterConfig `mapstructure:"emitter" toml:"emitter"`
	Loop    Loop                       `mapstructure:"loop" toml:"loop"`
	Render  Render                     `mapstructure:"render" toml:"render"`
	Logging Logging                    `mapstructure:"logging" toml:"logging"`
	Stats   Stats                      `mapstructure:"stats" toml:"stats"`

	// Set from --dump-config only; never written to or read from a file.
	DumpConfig bool `mapstructure:"-" toml:"-"`
}

type Loop struct {
	Interval time.Duration `mapstructure:"interval" toml:"interval"`
	MaxTicks uint64        `mapstructure:"max_ticks" toml:"max_ticks"` // 0 runs until stopped
	Seed     int64         `mapstructure:"seed" toml:"seed"`           // 0 seeds from the clock
}

type Render struct {
	Mode   string `mapstructure:"mode" toml:"mode"`
	Width  int    `mapstructure:"width" toml:"width"`
	Height int    `mapstructure:"height" toml:"height"`
	Title  string `mapstructure:"title" toml:"title"`
}

type Logging struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
	File   string `mapstructure:"file" toml:"file"`
}

type Stats struct {
	Every uint64 `mapstructure:"every" toml:"every"` // 0 disables reports
}

func Default() *Config {
	return &Config{
		Emitter: triparticles.DefaultEmitterConfig(),
		Loop: Loop{
			Interval: triparticles.DefaultTickInterval,
		},
		Render: Render{
			Mode:   string(triparticles.RendererTerminal),
			Width:  800,
			Height: 600,
			Title:  "triparticles",
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Stats: Stats{
			Every: 300,
		},
	}
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"renderer":      "render.mode",
	"batch":         "emitter.batch_size",
	"period":        "emitter.period",
	"lifetime":      "emitter.lifetime",
	"max-particles": "emitter.max_particles",
	"interval":      "loop.interval",
	"ticks":         "loop.max_ticks",
	"seed":          "loop.seed",
	"log-level":     "logging.level",
	"log-format":    "logging.format",
	"log-file":      "logging.file",
	"stats-every":   "stats.every",
}

func newFlagSet(def *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("triparticles", flag.ContinueOnError)
	fs.StringP("config", "c", "", "TOML configuration file")
	fs.StringP("renderer", "r", def.Render.Mode, "renderer: headless, term or window")
	fs.Int("batch", def.Emitter.BatchSize, "particles per emission")
	fs.Int("period", def.Emitter.Period, "ticks between emissions")
	fs.Int("lifetime", def.Emitter.Lifetime, "particle lifetime in ticks")
	fs.Int("max-particles", def.Emitter.MaxParticles, "soft cap on live particles, 0 for none")
	fs.Duration("interval", def.Loop.Interval, "tick interval")
	fs.Uint64("ticks", def.Loop.MaxTicks, "stop after this many ticks, 0 for none")
	fs.Int64("seed", def.Loop.Seed, "random seed, 0 seeds from the clock")
	fs.String("log-level", def.Logging.Level, "log level: debug, info, warn or error")
	fs.String("log-format", def.Logging.Format, "log format: console or json")
	fs.String("log-file", def.Logging.File, "log file (terminal mode logs nowhere without one)")
	fs.Uint64("stats-every", def.Stats.Every, "ticks between stats reports, 0 disables")
	fs.Bool("dump-config", false, "print the effective configuration as TOML and exit")
	return fs
}

// Load parses args (without the program name) and merges every source.
func Load(args []string) (*Config, error) {
	def := Default()
	fs := newFlagSet(def)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, def)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.DumpConfig, _ = fs.GetBool("dump-config")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("emitter.batch_size", def.Emitter.BatchSize)
	v.SetDefault("emitter.period", def.Emitter.Period)
	v.SetDefault("emitter.lifetime", def.Emitter.Lifetime)
	v.SetDefault("emitter.spawn_min", def.Emitter.SpawnMin[:])
	v.SetDefault("emitter.spawn_max", def.Emitter.SpawnMax[:])
	v.SetDefault("emitter.size_min", def.Emitter.SizeMin)
	v.SetDefault("emitter.size_max", def.Emitter.SizeMax)
	v.SetDefault("emitter.speed_min", def.Emitter.SpeedMin)
	v.SetDefault("emitter.speed_max", def.Emitter.SpeedMax)
	v.SetDefault("emitter.max_particles", def.Emitter.MaxParticles)

	v.SetDefault("loop.interval", def.Loop.Interval)
	v.SetDefault("loop.max_ticks", def.Loop.MaxTicks)
	v.SetDefault("loop.seed", def.Loop.Seed)

	v.SetDefault("render.mode", def.Render.Mode)
	v.SetDefault("render.width", def.Render.Width)
	v.SetDefault("render.height", def.Render.Height)
	v.SetDefault("render.title", def.Render.Title)

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.file", def.Logging.File)

	v.SetDefault("stats.every", def.Stats.Every)
}

func (c *Config) Validate() error {
	if err := c.Emitter.Validate(); err != nil {
		return err
	}
	if _, err := triparticles.ParseRendererName(c.Render.Mode); err != nil {
		return err
	}
	var errs []error
	if c.Loop.Interval <= 0 {
		errs = append(errs, fmt.Errorf("loop interval %s must be positive", c.Loop.Interval))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Render.Width, c.Render.Height))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// TPS converts the loop interval into a whole tick rate, at least 1.
func (c *Config) TPS() int {
	return max(int(math.Round(float64(time.Second)/float64(c.Loop.Interval))), 1)
}

// WriteTOML encodes cfg in the format Load reads.
func WriteTOML(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
