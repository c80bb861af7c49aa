package system

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
)

// ReadBattery reads an ACPI procfs battery directory such as
// /proc/acpi/battery/BAT0. It reports false when either file is missing
// or a capacity was never found.
func ReadBattery(base string) (Battery, bool) {
	design, ok := scanCapacity(filepath.Join(base, "info"), "design capacity")
	if !ok {
		return Battery{}, false
	}
	remaining, ok := scanCapacity(filepath.Join(base, "state"), "remaining capacity")
	if !ok {
		return Battery{}, false
	}
	if design <= 0 {
		return Battery{}, false
	}
	return Battery{Design: design, Remaining: remaining}, true
}

// scanCapacity returns the first integer after "<label>:". A
// "present: no" line short-circuits to the presentNo marker.
func scanCapacity(path, label string) (int, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "present") && strings.Contains(line, " no") {
			return presentNo, true
		}

		rest, ok := strings.CutPrefix(line, label+":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		if v, err := cast.ToIntE(fields[0]); err == nil {
			return v, true
		}
	}
	return 0, false
}

// ReadSysfsBattery reads a power_supply directory such as
// /sys/class/power_supply/BAT0, preferring energy_* over charge_* files
func ReadSysfsBattery(base string) (Battery, bool) {
	if present, ok := readSysfsInt(base, "present"); ok && present == 0 {
		return Battery{Design: presentNo, Remaining: presentNo}, true
	}

	full, ok := readSysfsInt(base, "energy_full", "charge_full")
	if !ok || full <= 0 {
		return Battery{}, false
	}
	now, ok := readSysfsInt(base, "energy_now", "charge_now")
	if !ok {
		return Battery{}, false
	}
	return Battery{Design: full, Remaining: now}, true
}

func readSysfsInt(base string, names ...string) (int, bool) {
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(base, name))
		if err != nil {
			continue
		}
		if v, err := cast.ToIntE(strings.TrimSpace(string(data))); err == nil {
			return v, true
		}
	}
	return 0, false
}
