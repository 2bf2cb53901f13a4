package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSamplePerfStats(t *testing.T) {
	stats, err := SamplePerfStats(context.Background())
	require.NoError(t, err)
	require.Greater(t, stats.RssMb, int64(0))
	require.GreaterOrEqual(t, stats.Threads, int32(1))
	require.GreaterOrEqual(t, stats.Goroutines, 1)
}

func TestReportPerfStats(t *testing.T) {
	rec := NewRecorder()
	ReportPerfStats(context.Background(), rec)

	require.Empty(t, rec.Find(LevelWarning, report_perf_sample))
	require.Len(t, rec.Find(LevelDebug, report_perf_process), 1)
	require.Len(t, rec.Find(LevelCount, "perf.rss_mb"), 1)
}

func TestInstrumentPerfStatsStops(t *testing.T) {
	rec := NewRecorder()
	ctx, cancel := context.WithCancel(context.Background())
	InstrumentPerfStats(ctx, 10*time.Millisecond, rec)
	time.Sleep(35 * time.Millisecond)
	cancel()

	require.Empty(t, rec.Find(LevelWarning, report_perf_sample))
}
