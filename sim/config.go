package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Unbounded is the BufferSize sentinel that disables packet loss.
const Unbounded int64 = -1

// Defaults: microsecond ticks, 100 packets/s offered to a 1 bit/s link
// carrying 1 bit packets.
const (
	DefaultArrivalRate    = 100.0
	DefaultPacketLength   = 1.0
	DefaultLinkCapacity   = 1.0
	DefaultTicks          = int64(6_000_000_000)
	DefaultTicksPerSecond = 1e6
	DefaultSeed           = int64(4357)
)

// Mode selects how the driver advances the clock.
type Mode string

const (
	// ModeTick evaluates every tick in turn.
	ModeTick Mode = "tick"
	// ModeSkip jumps over ticks where nothing is scheduled and accounts
	// for them in bulk. Accumulators are identical to ModeTick.
	ModeSkip Mode = "skip"
)

var validModes = map[Mode]bool{"": true, ModeTick: true, ModeSkip: true}

// Order selects which process runs first when an arrival and a service
// event fall on the same tick.
type Order string

const (
	// OrderArrivalFirst admits the arriving packet before the server acts,
	// so a packet arriving to an idle server starts service on the same tick.
	OrderArrivalFirst Order = "arrival-first"
	// OrderDepartureFirst lets the server complete and start service before
	// the arrival is admitted, freeing a buffer slot for it.
	OrderDepartureFirst Order = "departure-first"
)

var validOrders = map[Order]bool{"": true, OrderArrivalFirst: true, OrderDepartureFirst: true}

// maxServiceTicks keeps start + service time representable for any start tick
// the arrival clock can reach.
const maxServiceTicks = float64(math.MaxInt64 / 4)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config is the immutable configuration of a single run.
type Config struct {
	ArrivalRate    float64 `yaml:"arrival_rate" json:"arrival_rate"`         // λ, packets per second
	PacketLength   float64 `yaml:"packet_length" json:"packet_length"`       // bits
	LinkCapacity   float64 `yaml:"link_capacity" json:"link_capacity"`       // bits per second
	BufferSize     int64   `yaml:"buffer_size" json:"buffer_size"`           // K; Unbounded disables loss
	Ticks          int64   `yaml:"ticks" json:"ticks"`                       // run length
	TicksPerSecond float64 `yaml:"ticks_per_second" json:"ticks_per_second"` // unit scale
	Seed           int64   `yaml:"seed" json:"seed"`
	Mode           Mode    `yaml:"mode" json:"mode"`
	Order          Order   `yaml:"order" json:"order"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		ArrivalRate:    DefaultArrivalRate,
		PacketLength:   DefaultPacketLength,
		LinkCapacity:   DefaultLinkCapacity,
		BufferSize:     Unbounded,
		Ticks:          DefaultTicks,
		TicksPerSecond: DefaultTicksPerSecond,
		Seed:           DefaultSeed,
		Mode:           ModeTick,
		Order:          OrderArrivalFirst,
	}
}

// Validate checks every field. K = 0 is accepted and means every arrival is lost.
func (c Config) Validate() error {
	switch {
	case !(c.ArrivalRate > 0) || math.IsInf(c.ArrivalRate, 0):
		return fmt.Errorf("%w: arrival_rate must be a positive finite number, got %v", ErrInvalidConfig, c.ArrivalRate)
	case !(c.PacketLength > 0) || math.IsInf(c.PacketLength, 0):
		return fmt.Errorf("%w: packet_length must be a positive finite number, got %v", ErrInvalidConfig, c.PacketLength)
	case !(c.LinkCapacity > 0) || math.IsInf(c.LinkCapacity, 0):
		return fmt.Errorf("%w: link_capacity must be a positive finite number, got %v", ErrInvalidConfig, c.LinkCapacity)
	case !(c.TicksPerSecond > 0) || math.IsInf(c.TicksPerSecond, 0):
		return fmt.Errorf("%w: ticks_per_second must be a positive finite number, got %v", ErrInvalidConfig, c.TicksPerSecond)
	case c.Ticks <= 0:
		return fmt.Errorf("%w: ticks must be > 0, got %d", ErrInvalidConfig, c.Ticks)
	case c.BufferSize < Unbounded:
		return fmt.Errorf("%w: buffer_size must be >= 0 or %d (unbounded), got %d", ErrInvalidConfig, Unbounded, c.BufferSize)
	case !validModes[c.Mode]:
		return fmt.Errorf("%w: unknown mode %q (valid: tick, skip)", ErrInvalidConfig, c.Mode)
	case !validOrders[c.Order]:
		return fmt.Errorf("%w: unknown order %q (valid: arrival-first, departure-first)", ErrInvalidConfig, c.Order)
	}
	if st := c.rawServiceTicks(); st > maxServiceTicks {
		return fmt.Errorf("%w: service time of %.0f ticks does not fit the tick clock", ErrInvalidConfig, st)
	}
	return nil
}

// Bounded reports whether the buffer has a finite capacity K.
func (c Config) Bounded() bool {
	return c.BufferSize != Unbounded
}

// ServiceTime is the deterministic transmission time in ticks:
// ceil(length * ticks_per_second / capacity), never less than one tick.
func (c Config) ServiceTime() int64 {
	st := int64(math.Ceil(c.rawServiceTicks()))
	if st < 1 {
		return 1
	}
	return st
}

func (c Config) rawServiceTicks() float64 {
	return c.PacketLength * c.TicksPerSecond / c.LinkCapacity
}

// Utilization is the offered load rho = λ·S in consistent units.
func (c Config) Utilization() float64 {
	return c.ArrivalRate * float64(c.ServiceTime()) / c.TicksPerSecond
}

// LoadConfig reads a YAML run configuration on top of DefaultConfig.
// Unknown fields are rejected so typos surface as errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading simulation config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing simulation config: %w", err)
	}
	return cfg, nil
}
