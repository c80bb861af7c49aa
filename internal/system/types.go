package system

import (
	"errors"
	"fmt"
)

var (
	// ErrMetricUnavailable marks a pseudo-file that opened but did not
	// carry the expected fields
	ErrMetricUnavailable = errors.New("metric unavailable")
	// ErrNoCores is returned when cpuinfo lists no processors
	ErrNoCores = errors.New("no cpu cores found")
)

// SystemInfo represents general system information
type SystemInfo struct {
	Host   string
	OS     string
	Kernel string
	CPU    string
}

// LoadAverages holds the 1, 5 and 15 minute load
type LoadAverages struct {
	Load1  float64
	Load5  float64
	Load15 float64
}

func (l LoadAverages) String() string {
	return fmt.Sprintf("%.2f %.2f %.2f", l.Load1, l.Load5, l.Load15)
}

// MemoryStats holds meminfo counters in kB
type MemoryStats struct {
	Total   uint64
	Free    uint64
	Buffers uint64
	Cached  uint64
}

// UsedPercent is the share of RAM not free, buffered or cached
func (m MemoryStats) UsedPercent() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(int64(m.Total)-int64(m.Free)-int64(m.Buffers)-int64(m.Cached)) / float64(m.Total) * 100
}

// SwapStats holds swap counters in kB
type SwapStats struct {
	Total uint64
	Free  uint64
}

// UsedPercent returns 0 when no swap is configured
func (s SwapStats) UsedPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(int64(s.Total)-int64(s.Free)) / float64(s.Total) * 100
}

// presentNo is stored in a capacity when the battery reports "present: no"
const presentNo = 1

// Battery holds design and remaining capacity in the unit the source reports
type Battery struct {
	Design    int
	Remaining int
}

// Percent returns remaining over design capacity as a percentage
func (b Battery) Percent() float64 {
	if b.Design <= 0 {
		return 0
	}
	return float64(b.Remaining) / float64(b.Design) * 100
}
