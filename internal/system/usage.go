package system

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/load"
	"github.com/spf13/cast"
)

// LoadFunc reports the OS load averages
type LoadFunc func(ctx context.Context) (*load.AvgStat, error)

// Sampler reads the per-tick metrics from procfs and the OS load facility
type Sampler struct {
	MemInfoPath string
	CPUInfoPath string
	Load        LoadFunc
}

// NewSampler returns a Sampler backed by gopsutil's load average
func NewSampler(memInfoPath, cpuInfoPath string) *Sampler {
	return &Sampler{
		MemInfoPath: memInfoPath,
		CPUInfoPath: cpuInfoPath,
		Load:        load.AvgWithContext,
	}
}

// ReadLoadAverages returns the 1, 5 and 15 minute load
func (s *Sampler) ReadLoadAverages(ctx context.Context) (LoadAverages, error) {
	avg, err := s.Load(ctx)
	if err != nil {
		return LoadAverages{}, fmt.Errorf("failed to get load averages: %w", err)
	}
	return LoadAverages{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
}

// ReadCPULoad scales the 1 minute load to a percentage of all cores
func (s *Sampler) ReadCPULoad(ctx context.Context, cores int) (float64, error) {
	avg, err := s.ReadLoadAverages(ctx)
	if err != nil {
		return 0, err
	}
	return CPULoad(avg.Load1, cores)
}

// CPULoad returns load1/cores as a percentage
func CPULoad(load1 float64, cores int) (float64, error) {
	if cores <= 0 {
		return 0, ErrNoCores
	}
	return load1 / float64(cores) * 100, nil
}

// ReadMemoryStats parses MemTotal, MemFree, Buffers and Cached from meminfo
func (s *Sampler) ReadMemoryStats() (MemoryStats, error) {
	vals, err := scanMemInfo(s.MemInfoPath, "MemTotal", "MemFree", "Buffers", "Cached")
	if err != nil {
		return MemoryStats{}, err
	}

	stats := MemoryStats{
		Total:   vals["MemTotal"],
		Free:    vals["MemFree"],
		Buffers: vals["Buffers"],
		Cached:  vals["Cached"],
	}
	if stats.Total == 0 {
		return MemoryStats{}, fmt.Errorf("%w: MemTotal is 0 in %s", ErrMetricUnavailable, s.MemInfoPath)
	}
	return stats, nil
}

// ReadSwapStats parses SwapTotal and SwapFree from meminfo
func (s *Sampler) ReadSwapStats() (SwapStats, error) {
	vals, err := scanMemInfo(s.MemInfoPath, "SwapTotal", "SwapFree")
	if err != nil {
		return SwapStats{}, err
	}
	return SwapStats{Total: vals["SwapTotal"], Free: vals["SwapFree"]}, nil
}

// scanMemInfo collects the kB value of each wanted label and stops reading
// once all of them are seen
func scanMemInfo(path string, labels ...string) (map[string]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	want := make(map[string]bool, len(labels))
	for _, l := range labels {
		want[l] = true
	}

	vals := make(map[string]uint64, len(labels))
	scanner := bufio.NewScanner(f)
	for len(vals) < len(labels) && scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		key := strings.TrimSuffix(fields[0], ":")
		if !want[key] {
			continue
		}
		if _, seen := vals[key]; seen {
			continue
		}
		v, err := cast.ToUint64E(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s in %s: %v", ErrMetricUnavailable, key, path, err)
		}
		vals[key] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, l := range labels {
		if _, ok := vals[l]; !ok {
			return nil, fmt.Errorf("%w: %s missing from %s", ErrMetricUnavailable, l, path)
		}
	}
	return vals, nil
}

// CountCPUCores counts the lines of cpuinfo that mention "processor"
func CountCPUCores(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	cores := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), "processor") {
			cores++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if cores == 0 {
		return 0, fmt.Errorf("%w in %s", ErrNoCores, path)
	}
	return cores, nil
}
