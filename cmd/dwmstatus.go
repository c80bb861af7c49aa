package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dwmstatus/internal/clock"
	"dwmstatus/internal/conf"
	"dwmstatus/internal/netx"
	"dwmstatus/internal/status"
	"dwmstatus/internal/system"

	"go.uber.org/zap"
)

func main() {
	if err := conf.LoadConfig(conf.DefaultPath()); err != nil {
		fmt.Fprintf(os.Stderr, "dwmstatus: %v\n", err)
		os.Exit(1)
	}
	cfg := conf.Read()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dwmstatus: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pubConf := conf.GetPublisher()
	pub, err := netx.New(pubConf.Kind, pubConf.Display, os.Stdout)
	if err != nil {
		logger.Fatal("cannot open display", zap.String("publisher", pubConf.Kind), zap.Error(err))
	}
	defer pub.Close()

	formatter, err := clock.NewFormatter(cfg.TimeFormat, cfg.Timezone)
	if err != nil {
		logger.Fatal("invalid time settings", zap.Error(err))
	}

	tmpl, err := status.ParseTemplate(cfg.Template)
	if err != nil {
		logger.Fatal("invalid template", zap.Error(err))
	}

	bat := conf.GetBattery()
	battery, err := status.BatterySource(bat.Source, bat.Path)
	if err != nil {
		logger.Fatal("invalid battery source", zap.Error(err))
	}

	paths := conf.GetPaths()
	runner, err := status.NewRunner(system.NewSampler(paths.MemInfo, paths.CPUInfo), formatter, pub, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	runner.Interval = conf.GetInterval()
	runner.Template = tmpl
	runner.Battery = battery

	// Host details are informational only
	if info, err := system.GetSystemInfo(ctx); err != nil {
		logger.Warn("host info unavailable", zap.Error(err))
	} else {
		logger.Info("starting",
			zap.String("config", conf.Path),
			zap.String("host", info.Host),
			zap.String("os", info.OS),
			zap.String("kernel", info.Kernel),
			zap.String("cpu", info.CPU),
		)
	}

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("status loop failed", zap.Error(err))
	}
}
