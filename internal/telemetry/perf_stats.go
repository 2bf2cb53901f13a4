package telemetry

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
)

const (
	report_perf_process = "perf.process"
	report_perf_sample  = "perf.sample"
)

var meter = otel.Meter("aonscraper/perf_stats")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage")
var rssGauge, _ = meter.Int64Gauge("rss_mb")
var memoryGauge, _ = meter.Int64Gauge("allocated_mb")
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

type PerfStats struct {
	CpuPercent float64
	RssMb      int64
	AllocMb    int64
	Threads    int32
	Goroutines int
}

// SamplePerfStats reads the resource usage of the current process. The cpu
// figure is averaged over the lifetime of the process.
func SamplePerfStats(ctx context.Context) (PerfStats, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return PerfStats{}, err
	}
	cpuPercent, err := proc.CPUPercentWithContext(ctx)
	if err != nil {
		return PerfStats{}, err
	}
	mem, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return PerfStats{}, err
	}
	threads, err := proc.NumThreadsWithContext(ctx)
	if err != nil {
		return PerfStats{}, err
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return PerfStats{
		CpuPercent: cpuPercent,
		RssMb:      int64(mem.RSS / 1_000_000),
		AllocMb:    int64(memStats.Alloc / 1_000_000),
		Threads:    threads,
		Goroutines: runtime.NumGoroutine(),
	}, nil
}

// InstrumentPerfStats records the process gauges every interval until ctx
// is done.
func InstrumentPerfStats(ctx context.Context, interval time.Duration, tel API) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats, err := SamplePerfStats(ctx)
				if err != nil {
					tel.ReportWarning(report_perf_sample, err)
					continue
				}
				cpuGauge.Record(ctx, stats.CpuPercent)
				rssGauge.Record(ctx, stats.RssMb)
				memoryGauge.Record(ctx, stats.AllocMb)
				goroutineGauge.Record(ctx, int64(stats.Goroutines))
			case <-ctx.Done():
				return
			}
		}
	}()
}

// ReportPerfStats logs one sample of the process usage.
func ReportPerfStats(ctx context.Context, tel API) {
	stats, err := SamplePerfStats(ctx)
	if err != nil {
		tel.ReportWarning(report_perf_sample, err)
		return
	}
	tel.ReportDebug(
		report_perf_process,
		"cpu_percent", stats.CpuPercent,
		"threads", stats.Threads,
		"goroutines", stats.Goroutines,
	)
	tel.ReportCount("perf.rss_mb", stats.RssMb)
	tel.ReportCount("perf.allocated_mb", stats.AllocMb)
}
