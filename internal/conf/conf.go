package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"
)

// EnvPath overrides the default config location when set
const EnvPath = "DWMSTATUS_CONFIG"

var (
	Path string       // Config path
	mu   sync.RWMutex // Protects access to Conf
	Conf = Default()
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Interval:   "5s",
		Template:   "full",
		Timezone:   "Europe/Bucharest",
		TimeFormat: "%d-%m-%Y %H:%M",
		LogLevel:   "info",
		Paths: Paths{
			MemInfo: "/proc/meminfo",
			CPUInfo: "/proc/cpuinfo",
		},
		Battery: Battery{
			Source: "acpi",
			Path:   "/proc/acpi/battery/BAT0",
		},
		Publisher: Publisher{
			Kind: "x11",
		},
	}
}

// DefaultPath resolves the config location from the environment,
// falling back to <user config dir>/dwmstatus/config.toml
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(dir, "dwmstatus", "config.toml")
}

// LoadConfig Set Path and load config into memory
// A missing file leaves the defaults in place
func LoadConfig(path string) error {
	Path = path
	err := Update()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			mu.Lock()
			Conf = Default()
			mu.Unlock()
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// Update reads the config file and loads it into the global Conf variable
func Update() (err error) {
	mu.Lock()
	defer mu.Unlock()

	if _, err = os.Stat(Path); err != nil {
		return fmt.Errorf("config file does not exist: %s: %w", Path, err)
	}

	conf := Default()
	_, err = toml.DecodeFile(Path, &conf)
	if err != nil {
		return fmt.Errorf("failed to update global config %w", err)
	}
	if _, err = parseInterval(conf.Interval); err != nil {
		return err
	}
	Conf = conf
	return nil
}

// Read returns a copy of the current configuration
func Read() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Conf
}

// GetInterval returns the polling interval in a thread-safe manner
func GetInterval() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	d, err := parseInterval(Conf.Interval)
	if err != nil {
		// Update rejects bad intervals, so only a hand-edited Conf lands here
		return 5 * time.Second
	}
	return d
}

// GetPaths returns the pseudo-file paths in a thread-safe manner
func GetPaths() Paths {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Paths
}

// GetBattery returns the battery config in a thread-safe manner
func GetBattery() Battery {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Battery
}

// GetPublisher returns the publisher config in a thread-safe manner
func GetPublisher() Publisher {
	mu.RLock()
	defer mu.RUnlock()
	return Conf.Publisher
}

// parseInterval accepts a duration string ("5s", "1m") or a number of seconds
func parseInterval(v any) (time.Duration, error) {
	if s, ok := v.(string); ok && strings.ContainsAny(s, "nsuµmh") {
		d, err := cast.ToDurationE(s)
		if err != nil {
			return 0, fmt.Errorf("invalid interval %q: %w", s, err)
		}
		return checkInterval(d)
	}

	secs, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %v: %w", v, err)
	}
	return checkInterval(time.Duration(secs * float64(time.Second)))
}

func checkInterval(d time.Duration) (time.Duration, error) {
	if d <= 0 {
		return 0, fmt.Errorf("interval must be positive, got %s", d)
	}
	return d, nil
}
