// Package timeouts holds the context deadlines used around store calls and
// outbound HTTP requests.
//
//   - Ping: health checks
//   - Short: single-document reads and writes
//   - Medium: list queries and checkout (several reads plus one write)
//   - Long: uploads
//   - External: optional third-party responders before falling back
package timeouts

import (
	"sync"
	"time"
)

const (
	DefaultPing     = 2 * time.Second
	DefaultShort    = 5 * time.Second
	DefaultMedium   = 10 * time.Second
	DefaultLong     = 30 * time.Second
	DefaultExternal = 5 * time.Second
)

var (
	mu       sync.RWMutex
	ping     = DefaultPing
	short    = DefaultShort
	medium   = DefaultMedium
	long     = DefaultLong
	external = DefaultExternal
)

func Ping() time.Duration     { return get(&ping) }
func Short() time.Duration    { return get(&short) }
func Medium() time.Duration   { return get(&medium) }
func Long() time.Duration     { return get(&long) }
func External() time.Duration { return get(&external) }

func get(d *time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return *d
}

// Config overrides the defaults. Zero fields keep the current value.
type Config struct {
	Ping     time.Duration
	Short    time.Duration
	Medium   time.Duration
	Long     time.Duration
	External time.Duration
}

// Configure applies cfg. Call it during startup, before handlers run.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	set := func(dst *time.Duration, v time.Duration) {
		if v > 0 {
			*dst = v
		}
	}
	set(&ping, cfg.Ping)
	set(&short, cfg.Short)
	set(&medium, cfg.Medium)
	set(&long, cfg.Long)
	set(&external, cfg.External)
}

// Reset restores the defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, short, medium, long, external = DefaultPing, DefaultShort, DefaultMedium, DefaultLong, DefaultExternal
}

// Current returns the active values.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Short: short, Medium: medium, Long: long, External: external}
}
