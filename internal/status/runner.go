package status

import (
	"context"
	"fmt"
	"time"

	"dwmstatus/internal/clock"
	"dwmstatus/internal/netx"
	"dwmstatus/internal/system"

	"go.uber.org/zap"
)

// BatteryFunc reads the battery, reporting false when there is none
type BatteryFunc func() (system.Battery, bool)

// BatterySource returns the reader for a configured battery source
func BatterySource(source, path string) (BatteryFunc, error) {
	switch source {
	case "acpi":
		return func() (system.Battery, bool) { return system.ReadBattery(path) }, nil
	case "sysfs":
		return func() (system.Battery, bool) { return system.ReadSysfsBattery(path) }, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown battery source %q", source)
	}
}

// Runner samples, composes and publishes one status line per interval
type Runner struct {
	Sampler   *system.Sampler
	Clock     *clock.Formatter
	Publisher netx.Publisher
	Logger    *zap.Logger
	Interval  time.Duration
	Template  Template
	Battery   BatteryFunc // nil means no battery
	Now       func() time.Time

	cores int // counted once
}

// NewRunner counts CPU cores once and returns a Runner with a 5s interval
func NewRunner(sampler *system.Sampler, formatter *clock.Formatter, pub netx.Publisher, logger *zap.Logger) (*Runner, error) {
	cores, err := system.CountCPUCores(sampler.CPUInfoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to count cpu cores: %w", err)
	}

	return &Runner{
		Sampler:   sampler,
		Clock:     formatter,
		Publisher: pub,
		Logger:    logger,
		Interval:  5 * time.Second,
		Template:  TemplateFull,
		Now:       time.Now,
		cores:     cores,
	}, nil
}

// Cores returns the core count taken at startup
func (r *Runner) Cores() int {
	return r.cores
}

// Tick reads every metric, composes the line and publishes it. Any error
// is meant to end the process.
func (r *Runner) Tick(ctx context.Context) (string, error) {
	avgs, err := r.Sampler.ReadLoadAverages(ctx)
	if err != nil {
		return "", err
	}
	cpu, err := r.Sampler.ReadCPULoad(ctx, r.cores)
	if err != nil {
		return "", err
	}
	mem, err := r.Sampler.ReadMemoryStats()
	if err != nil {
		return "", fmt.Errorf("failed to read memory: %w", err)
	}
	swap, err := r.Sampler.ReadSwapStats()
	if err != nil {
		return "", fmt.Errorf("failed to read swap: %w", err)
	}
	now, err := r.Clock.Format(r.Now())
	if err != nil {
		return "", fmt.Errorf("failed to format time: %w", err)
	}

	fields := Fields{
		RAM:  mem.UsedPercent(),
		CPU:  cpu,
		Swap: swap.UsedPercent(),
		Load: avgs,
		Time: now,
	}
	if r.Battery != nil {
		if bat, ok := r.Battery(); ok {
			fields.Battery = bat.Percent()
			fields.HasBattery = true
		}
	}

	line := Compose(fields, r.Template)
	if err := r.Publisher.Publish(line); err != nil {
		return "", err
	}
	r.Logger.Debug("published status", zap.String("line", line))
	return line, nil
}

// Run ticks immediately and then once per Interval until ctx is done or a
// tick fails
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	r.Logger.Info("status loop started",
		zap.Duration("interval", r.Interval),
		zap.Int("cores", r.cores),
		zap.Stringer("template", r.Template),
	)

	for {
		if _, err := r.Tick(ctx); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
