package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/packet-sim/md1k/sim"
)

// EnvPrefix namespaces environment overrides, e.g. MD1K_RATE=250.
const EnvPrefix = "MD1K"

// addConfigFlags registers the simulation configuration flags shared by
// run, analyze and sweep. Values are read back through resolveConfig.
func addConfigFlags(fs *pflag.FlagSet) {
	def := sim.DefaultConfig()
	fs.String("config", "", "Path to a YAML run configuration (flags and MD1K_* env vars override it)")
	fs.Float64("rate", def.ArrivalRate, "Packet arrival rate λ (packets per second)")
	fs.Float64("packet-length", def.PacketLength, "Packet length (bits)")
	fs.Float64("link-capacity", def.LinkCapacity, "Output link transmission rate (bits per second)")
	fs.Int64("buffer", def.BufferSize, "Buffer capacity K in packets (-1 = unbounded, 0 = every arrival lost)")
	fs.Int64("ticks", def.Ticks, "Run length in ticks")
	fs.Float64("ticks-per-second", def.TicksPerSecond, "Ticks per simulated second (1e6 = microsecond ticks)")
	fs.Int64("seed", def.Seed, "Seed for the arrival stream")
	fs.String("mode", string(def.Mode), "Clock advance mode (tick, skip)")
	fs.String("order", string(def.Order), "Same-tick processing order (arrival-first, departure-first)")
}

// newEnv returns a viper instance that only reads MD1K_* environment variables.
func newEnv() *viper.Viper {
	env := viper.New()
	env.SetEnvPrefix(EnvPrefix)
	env.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	env.AutomaticEnv()
	return env
}

// resolveConfig builds the run configuration with precedence
// defaults < --config file < MD1K_* env vars < explicitly set flags.
func resolveConfig(fs *pflag.FlagSet, env *viper.Viper) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if path, _ := fs.GetString("config"); path != "" {
		loaded, err := sim.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := viper.New()
	if err := flags.BindPFlags(fs); err != nil {
		return cfg, fmt.Errorf("binding flags: %w", err)
	}
	pick := func(name string) *viper.Viper {
		if fs.Changed(name) {
			return flags
		}
		if env.IsSet(name) {
			return env
		}
		return nil
	}

	if v := pick("rate"); v != nil {
		cfg.ArrivalRate = v.GetFloat64("rate")
	}
	if v := pick("packet-length"); v != nil {
		cfg.PacketLength = v.GetFloat64("packet-length")
	}
	if v := pick("link-capacity"); v != nil {
		cfg.LinkCapacity = v.GetFloat64("link-capacity")
	}
	if v := pick("buffer"); v != nil {
		cfg.BufferSize = v.GetInt64("buffer")
	}
	if v := pick("ticks"); v != nil {
		cfg.Ticks = v.GetInt64("ticks")
	}
	if v := pick("ticks-per-second"); v != nil {
		cfg.TicksPerSecond = v.GetFloat64("ticks-per-second")
	}
	if v := pick("seed"); v != nil {
		cfg.Seed = v.GetInt64("seed")
	}
	if v := pick("mode"); v != nil {
		cfg.Mode = sim.Mode(v.GetString("mode"))
	}
	if v := pick("order"); v != nil {
		cfg.Order = sim.Order(v.GetString("order"))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
