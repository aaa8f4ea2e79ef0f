// Package config loads the process configuration once at startup from flags, SPRITE_ environment variables and
// an optional config file, in that order of precedence.
package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/spatial"
	"pkg.world.dev/world-engine/sprite/types"
)

const (
	EnvPrefix = "SPRITE"

	DefaultTickRate      = 40
	DefaultNamespace     = "park"
	DefaultDebugPort     = "4040"
	DefaultLogLevel      = "info"
	DefaultStatsdAddress = ""
	DefaultRedisAddress  = ""
)

type Config struct {
	Capacity      int    `mapstructure:"capacity"`
	MiscLimit     int    `mapstructure:"misc_limit"`
	GridSize      int    `mapstructure:"grid_size"`
	TileSize      int32  `mapstructure:"tile_size"`
	StrictHandles bool   `mapstructure:"strict_handles"`
	TickRate      int    `mapstructure:"tick_rate"`
	Namespace     string `mapstructure:"namespace"`
	RedisAddress  string `mapstructure:"redis_address"`
	RedisPassword string `mapstructure:"redis_password"`
	StatsdAddress string `mapstructure:"statsd_address"`
	DebugPort     string `mapstructure:"debug_port"`
	LogLevel      string `mapstructure:"log_level"`
	Profile       string `mapstructure:"profile"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Capacity:      arena.DefaultCapacity,
		MiscLimit:     arena.DefaultMiscLimit,
		GridSize:      spatial.DefaultGridSize,
		TileSize:      spatial.DefaultTileSize,
		StrictHandles: false,
		TickRate:      DefaultTickRate,
		Namespace:     DefaultNamespace,
		RedisAddress:  DefaultRedisAddress,
		StatsdAddress: DefaultStatsdAddress,
		DebugPort:     DefaultDebugPort,
		LogLevel:      DefaultLogLevel,
	}
}

// Flags registers a command line flag for every setting on fs.
func Flags(fs *pflag.FlagSet) {
	def := Default()
	fs.String("config", "", "path to a config file (toml, yaml or json)")
	fs.Int("capacity", def.Capacity, "total entity slots")
	fs.Int("misc-limit", def.MiscLimit, "maximum live misc/effect entities")
	fs.Int("grid-size", def.GridSize, "spatial grid width and height in tiles")
	fs.Int32("tile-size", def.TileSize, "tile width in world units")
	fs.Bool("strict-handles", def.StrictHandles, "panic on invalid entity handles")
	fs.Int("tick-rate", def.TickRate, "simulation ticks per second")
	fs.String("namespace", def.Namespace, "namespace for persisted snapshots")
	fs.String("redis-address", def.RedisAddress, "redis address for snapshots, empty to disable")
	fs.String("redis-password", def.RedisPassword, "redis password")
	fs.String("statsd-address", def.StatsdAddress, "statsd agent address, empty to disable")
	fs.String("debug-port", def.DebugPort, "port for the debug http server")
	fs.String("log-level", def.LogLevel, "zerolog level")
	fs.String("profile", def.Profile, "profile mode: cpu, mem or empty")
}

// Load resolves the configuration. fs may be nil, in which case only the environment and defaults are used.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("capacity", def.Capacity)
	v.SetDefault("misc_limit", def.MiscLimit)
	v.SetDefault("grid_size", def.GridSize)
	v.SetDefault("tile_size", def.TileSize)
	v.SetDefault("strict_handles", def.StrictHandles)
	v.SetDefault("tick_rate", def.TickRate)
	v.SetDefault("namespace", def.Namespace)
	v.SetDefault("redis_address", def.RedisAddress)
	v.SetDefault("redis_password", def.RedisPassword)
	v.SetDefault("statsd_address", def.StatsdAddress)
	v.SetDefault("debug_port", def.DebugPort)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("profile", def.Profile)

	if fs != nil {
		var bindErr error
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Name == "config" {
				return
			}
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil && bindErr == nil {
				bindErr = eris.Wrapf(err, "binding flag %s", f.Name)
			}
		})
		if bindErr != nil {
			return Config{}, bindErr
		}
		if path, _ := fs.GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, eris.Wrapf(err, "reading config file %s", path)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "failed to parse config")
	}
	if !miscLimitSet(v, fs) {
		cfg.MiscLimit = min(cfg.MiscLimit, cfg.Capacity)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, eris.Wrap(err, "failed to validate config")
	}
	return cfg, nil
}

// miscLimitSet reports whether the misc limit came from a flag, the environment or the config file rather than
// the default. The default follows the capacity down.
func miscLimitSet(v *viper.Viper, fs *pflag.FlagSet) bool {
	if fs != nil {
		if f := fs.Lookup("misc-limit"); f != nil && f.Changed {
			return true
		}
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_MISC_LIMIT"); ok {
		return true
	}
	return v.InConfig("misc_limit")
}

func (cfg Config) Validate() error {
	if cfg.Capacity <= 0 || cfg.Capacity > types.MaxCapacity {
		return eris.Errorf("capacity must be in [1, %d], got %d", types.MaxCapacity, cfg.Capacity)
	}
	if cfg.MiscLimit < 0 || cfg.MiscLimit > cfg.Capacity {
		return eris.Errorf("misc limit must be in [0, capacity], got %d", cfg.MiscLimit)
	}
	if cfg.GridSize <= 0 {
		return eris.Errorf("grid size must be positive, got %d", cfg.GridSize)
	}
	if cfg.TileSize <= 0 {
		return eris.Errorf("tile size must be positive, got %d", cfg.TileSize)
	}
	if cfg.TickRate <= 0 {
		return eris.Errorf("tick rate must be positive, got %d", cfg.TickRate)
	}
	if err := types.Namespace(cfg.Namespace).Validate(); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return eris.Wrapf(err, "log level %q", cfg.LogLevel)
	}
	switch cfg.Profile {
	case "", "cpu", "mem":
	default:
		return eris.Errorf("profile must be cpu, mem or empty, got %q", cfg.Profile)
	}
	return nil
}

// ArenaOptions translates the arena settings into constructor options.
func (cfg Config) ArenaOptions() []arena.Option {
	return []arena.Option{
		arena.WithCapacity(cfg.Capacity),
		arena.WithMiscLimit(cfg.MiscLimit),
		arena.WithGrid(cfg.GridSize, cfg.TileSize),
		arena.WithStrictHandles(cfg.StrictHandles),
	}
}

func (cfg Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
