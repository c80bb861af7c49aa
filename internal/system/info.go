package system

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
)

// GetSystemInfo returns general system information
func GetSystemInfo(ctx context.Context) (*SystemInfo, error) {
	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	return &SystemInfo{
		Host:   hostInfo.Hostname,
		OS:     fmt.Sprintf("%s %s %s", hostInfo.Platform, hostInfo.PlatformVersion, hostInfo.KernelArch),
		Kernel: fmt.Sprintf("%s %s", hostInfo.OS, hostInfo.KernelVersion),
		CPU:    cpuModel(ctx),
	}, nil
}

// cpuModel returns the first CPU's model name with its core count
func cpuModel(ctx context.Context) string {
	cpuStat, err := cpu.InfoWithContext(ctx)
	if err != nil || len(cpuStat) == 0 {
		return "Unknown CPU"
	}

	name := cpuStat[0].ModelName
	count := ""
	if len(cpuStat) > 1 {
		count = fmt.Sprintf("x%v", len(cpuStat))
	}
	return fmt.Sprintf("%s (%v%s)", name, cpuStat[0].Cores, count)
}
