package sim

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero buffer loses everything", func(c *Config) { c.BufferSize = 0 }, false},
		{"bounded buffer", func(c *Config) { c.BufferSize = 10 }, false},
		{"skip mode", func(c *Config) { c.Mode = ModeSkip }, false},
		{"departure first", func(c *Config) { c.Order = OrderDepartureFirst }, false},
		{"empty mode defaults", func(c *Config) { c.Mode = "" }, false},
		{"zero rate", func(c *Config) { c.ArrivalRate = 0 }, true},
		{"NaN rate", func(c *Config) { c.ArrivalRate = math.NaN() }, true},
		{"infinite rate", func(c *Config) { c.ArrivalRate = math.Inf(1) }, true},
		{"negative length", func(c *Config) { c.PacketLength = -1 }, true},
		{"zero capacity", func(c *Config) { c.LinkCapacity = 0 }, true},
		{"zero ticks", func(c *Config) { c.Ticks = 0 }, true},
		{"zero ticks per second", func(c *Config) { c.TicksPerSecond = 0 }, true},
		{"buffer below sentinel", func(c *Config) { c.BufferSize = -2 }, true},
		{"unknown mode", func(c *Config) { c.Mode = "heap" }, true},
		{"unknown order", func(c *Config) { c.Order = "random" }, true},
		{"service time longer than int32 ticks", func(c *Config) { c.PacketLength = 12000 }, false},
		{"service time overflow", func(c *Config) { c.PacketLength = 1e300 }, true},
		{"service time past int64 range", func(c *Config) { c.PacketLength = 1e13 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ServiceTime_RoundsUp(t *testing.T) {
	tests := []struct {
		length, capacity, tps float64
		want                  int64
	}{
		{1, 1, 1e6, 1_000_000},
		{1500 * 8, 1e9, 1e6, 12}, // 12000 bits at 1 Gb/s = 12 µs
		{1000, 3, 1, 334},        // 333.33 rounds up
		{1, 1e9, 1e6, 1},         // sub-tick service still takes one tick
		{100, 1e6, 1e6, 100},
		{12000, 1, 1e6, 12_000_000_000}, // jumbo frame on the default 1 bit/s link
	}
	for _, tt := range tests {
		cfg := Config{PacketLength: tt.length, LinkCapacity: tt.capacity, TicksPerSecond: tt.tps}
		assert.Equal(t, tt.want, cfg.ServiceTime(), "length=%v capacity=%v", tt.length, tt.capacity)
	}
}

func TestConfig_Bounded(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Bounded())
	cfg.BufferSize = 0
	assert.True(t, cfg.Bounded())
}

func TestConfig_Utilization(t *testing.T) {
	cfg := unitConfig(2, Unbounded, 10)
	cfg.ArrivalRate = 0.25
	assert.InDelta(t, 0.5, cfg.Utilization(), 1e-12)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	// GIVEN a file that sets only rate and buffer size
	path := writeFile(t, "arrival_rate: 250\nbuffer_size: 10\nmode: skip\n")

	// WHEN loaded
	cfg, err := LoadConfig(path)

	// THEN the file values win and everything else keeps its default
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.ArrivalRate)
	assert.Equal(t, int64(10), cfg.BufferSize)
	assert.Equal(t, ModeSkip, cfg.Mode)
	assert.Equal(t, DefaultSeed, cfg.Seed)
	assert.Equal(t, DefaultTicksPerSecond, cfg.TicksPerSecond)
}

func TestLoadConfig_UnknownField_Errors(t *testing.T) {
	path := writeFile(t, "arival_rate: 250\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EmptyFile_Defaults(t *testing.T) {
	path := writeFile(t, "")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_MissingFile_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
