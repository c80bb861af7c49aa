package conf

type Config struct {
	Interval   any       `toml:"interval"` // "5s" or a bare number of seconds
	Template   string    `toml:"template"`
	Timezone   string    `toml:"timezone"`
	TimeFormat string    `toml:"time_format"`
	LogLevel   string    `toml:"log_level"`
	Paths      Paths     `toml:"paths"`
	Battery    Battery   `toml:"battery"`
	Publisher  Publisher `toml:"publisher"`
}

type Paths struct {
	MemInfo string `toml:"meminfo"`
	CPUInfo string `toml:"cpuinfo"`
}

// Battery selects where charge is read from.
// Source is one of "acpi", "sysfs" or "none".
type Battery struct {
	Source string `toml:"source"`
	Path   string `toml:"path"`
}

type Publisher struct {
	Kind    string `toml:"kind"`
	Display string `toml:"display"`
}
