package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/voxarel/showcase/internal/system"
)

// Report is the performance summary printed after a render.
type Report struct {
	Build     string
	Total     time.Duration
	Rendering time.Duration
	Frames    int
	Encoder   string
	Host      system.HostStats
	HostErr   error
}

// EffectiveFPS is frames produced per wall-clock second.
func (r Report) EffectiveFPS() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Total.Seconds()
}

func (r Report) String() string {
	host := r.Host.String()
	if r.HostErr != nil {
		host = "unavailable: " + r.HostErr.Error()
	}
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoder: %s\n"+
			"Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"Host: %s\n"+
			"----------------------------\n",
		r.Build, r.Total.Seconds(), r.Rendering.Seconds(), r.Encoder, r.Frames, r.EffectiveFPS(), host,
	)
}

// LogLine is the single benchmark.log entry for this run.
func (r Report) LogLine(now time.Time, output string) string {
	return fmt.Sprintf("[%s] Build: %s | Output: %s | Frames: %d | Total: %.2fs | Render: %.2fs | FPS: %.2f | Encoder: %s\n",
		now.Format("2006-01-02 15:04:05"),
		r.Build,
		filepath.Base(output),
		r.Frames,
		r.Total.Seconds(),
		r.Rendering.Seconds(),
		r.EffectiveFPS(),
		r.Encoder,
	)
}

func (p *VideoProject) report(ctx context.Context, plan *Plan, encoder string, tm timings) {
	r := Report{
		Build:     p.Config.BuildVersion,
		Total:     tm.end.Sub(tm.start),
		Rendering: tm.renderEnd.Sub(tm.start),
		Frames:    plan.Total(),
		Encoder:   encoder,
	}
	r.Host, r.HostErr = system.SampleHost(ctx, 0)
	fmt.Fprint(p.out(), r.String())

	if p.BenchmarkLog == "" {
		return
	}
	f, err := os.OpenFile(p.BenchmarkLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		p.Logger.Warn("[!] could not write benchmark log", "path", p.BenchmarkLog, "err", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(r.LogLine(time.Now(), p.Config.OutputVideo)); err != nil {
		p.Logger.Warn("[!] could not write benchmark log", "path", p.BenchmarkLog, "err", err)
	}
}
