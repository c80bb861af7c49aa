package status

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dwmstatus/internal/clock"
	"dwmstatus/internal/system"

	"github.com/shirou/gopsutil/v4/load"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recordingPublisher struct {
	lines  []string
	err    error
	onSend func()
}

func (p *recordingPublisher) Publish(text string) error {
	if p.err != nil {
		return p.err
	}
	p.lines = append(p.lines, text)
	if p.onSend != nil {
		p.onSend()
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

const (
	fixtureMemInfo = "MemTotal: 1000 kB\nMemFree: 300 kB\nMemAvailable: 600 kB\nBuffers: 100 kB\nCached: 180 kB\nSwapTotal: 2000 kB\nSwapFree: 1900 kB\n"
	fixtureCPUInfo = "processor\t: 0\nprocessor\t: 1\nprocessor\t: 2\nprocessor\t: 3\n"
)

func newTestRunner(t *testing.T, pub *recordingPublisher) *Runner {
	t.Helper()
	dir := t.TempDir()
	memPath := filepath.Join(dir, "meminfo")
	cpuPath := filepath.Join(dir, "cpuinfo")
	require.NoError(t, os.WriteFile(memPath, []byte(fixtureMemInfo), 0644))
	require.NoError(t, os.WriteFile(cpuPath, []byte(fixtureCPUInfo), 0644))

	sampler := system.NewSampler(memPath, cpuPath)
	sampler.Load = func(context.Context) (*load.AvgStat, error) {
		return &load.AvgStat{Load1: 0.68, Load5: 0.20, Load15: 0.30}, nil
	}

	formatter, err := clock.NewFormatter("%d-%m-%Y %H:%M", "Europe/Bucharest")
	require.NoError(t, err)

	r, err := NewRunner(sampler, formatter, pub, zaptest.NewLogger(t))
	require.NoError(t, err)
	r.Now = func() time.Time { return time.Date(2024, time.January, 1, 7, 30, 0, 0, time.UTC) }
	return r
}

func TestNewRunnerCountsCores(t *testing.T) {
	r := newTestRunner(t, &recordingPublisher{})
	assert.Equal(t, 4, r.Cores())
}

func TestNewRunnerNoCores(t *testing.T) {
	cpuPath := filepath.Join(t.TempDir(), "cpuinfo")
	require.NoError(t, os.WriteFile(cpuPath, []byte("flags\t: fpu\n"), 0644))

	_, err := NewRunner(system.NewSampler("", cpuPath), nil, &recordingPublisher{}, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, system.ErrNoCores)
}

func TestTick(t *testing.T) {
	pub := &recordingPublisher{}
	r := newTestRunner(t, pub)
	r.Battery = func() (system.Battery, bool) { return system.Battery{Design: 5000, Remaining: 4400}, true }

	line, err := r.Tick(context.Background())
	require.NoError(t, err)

	want := "[ram: 42% :: cpu: 17% :: swap: 5% :: load: 0.68 0.20 0.30 :: bat: 88% :: 01-01-2024 09:30]"
	assert.Equal(t, want, line)
	assert.Equal(t, []string{want}, pub.lines)
}

func TestTickWithoutBattery(t *testing.T) {
	pub := &recordingPublisher{}
	r := newTestRunner(t, pub)
	r.Battery = func() (system.Battery, bool) { return system.Battery{}, false }

	line, err := r.Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[ram: 42% :: cpu: 17% :: swap: 5% :: load: 0.68 0.20 0.30 :: 01-01-2024 09:30]", line)
}

func TestTickMissingACPIBattery(t *testing.T) {
	pub := &recordingPublisher{}
	r := newTestRunner(t, pub)

	battery, err := BatterySource("acpi", filepath.Join(t.TempDir(), "BAT0"))
	require.NoError(t, err)
	r.Battery = battery

	line, err := r.Tick(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, line, "bat:")
}

func TestTickErrors(t *testing.T) {
	t.Run("load average", func(t *testing.T) {
		r := newTestRunner(t, &recordingPublisher{})
		r.Sampler.Load = func(context.Context) (*load.AvgStat, error) { return nil, errors.New("getloadavg") }
		_, err := r.Tick(context.Background())
		assert.ErrorContains(t, err, "getloadavg")
	})

	t.Run("meminfo gone", func(t *testing.T) {
		r := newTestRunner(t, &recordingPublisher{})
		r.Sampler.MemInfoPath = filepath.Join(t.TempDir(), "meminfo")
		_, err := r.Tick(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("publish", func(t *testing.T) {
		r := newTestRunner(t, &recordingPublisher{err: errors.New("display gone")})
		_, err := r.Tick(context.Background())
		assert.ErrorContains(t, err, "display gone")
	})
}

func TestRunPublishesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub := &recordingPublisher{}
	r := newTestRunner(t, pub)
	r.Interval = time.Millisecond
	pub.onSend = func() {
		if len(pub.lines) == 3 {
			cancel()
		}
	}

	err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, pub.lines, 3)
}

func TestRunStopsOnTickError(t *testing.T) {
	pub := &recordingPublisher{}
	r := newTestRunner(t, pub)
	r.Interval = time.Millisecond

	calls := 0
	r.Sampler.Load = func(context.Context) (*load.AvgStat, error) {
		calls++
		if calls > 4 {
			return nil, errors.New("loadavg vanished")
		}
		return &load.AvgStat{Load1: 0.1}, nil
	}

	err := r.Run(context.Background())
	assert.ErrorContains(t, err, "loadavg vanished")
	assert.Len(t, pub.lines, 2, "each tick reads the load twice")
}

func TestBatterySource(t *testing.T) {
	for _, src := range []string{"acpi", "sysfs"} {
		f, err := BatterySource(src, t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, f)
		_, ok := f()
		assert.False(t, ok, src)
	}

	f, err := BatterySource("none", "")
	require.NoError(t, err)
	assert.Nil(t, f)

	_, err = BatterySource("upower", "")
	assert.Error(t, err)
}
