package system

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HostStats is a point-in-time view of the machine and this process, used
// in performance reports.
type HostStats struct {
	LogicalCPUs   int
	CPUPercent    float64 // whole machine, averaged over the sample window
	MemTotal      uint64
	MemUsed       uint64
	MemPercent    float64
	ProcessRSS    uint64
	ProcessCPU    float64 // percent of one core since process start
	GoRoutines    int
	PoolAllocated int64
}

// SampleHost collects HostStats. The CPU figure blocks for window; pass 0
// to compare against the previous call instead.
func SampleHost(ctx context.Context, window time.Duration) (HostStats, error) {
	s := HostStats{
		GoRoutines:    runtime.NumGoroutine(),
		PoolAllocated: Allocations(),
	}

	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return s, fmt.Errorf("cpu count: %w", err)
	}
	s.LogicalCPUs = n

	pct, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return s, fmt.Errorf("cpu percent: %w", err)
	}
	if len(pct) > 0 {
		s.CPUPercent = pct[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return s, fmt.Errorf("virtual memory: %w", err)
	}
	s.MemTotal, s.MemUsed, s.MemPercent = vm.Total, vm.Used, vm.UsedPercent

	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return s, fmt.Errorf("process: %w", err)
	}
	if mi, err := proc.MemoryInfoWithContext(ctx); err == nil {
		s.ProcessRSS = mi.RSS
	}
	if c, err := proc.CPUPercentWithContext(ctx); err == nil {
		s.ProcessCPU = c
	}
	return s, nil
}

// String renders the stats in the performance report layout.
func (s HostStats) String() string {
	return fmt.Sprintf(
		"CPUs: %d | CPU: %.1f%% | Mem: %s/%s (%.1f%%) | RSS: %s | Proc CPU: %.1f%% | Goroutines: %d | Pooled frames: %d",
		s.LogicalCPUs, s.CPUPercent,
		FormatBytes(s.MemUsed), FormatBytes(s.MemTotal), s.MemPercent,
		FormatBytes(s.ProcessRSS), s.ProcessCPU, s.GoRoutines, s.PoolAllocated,
	)
}

// FormatBytes prints a byte count with a binary unit.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
