package telemetry

import (
	"io"
	"log/slog"
	"strconv"
)

// InitSlog installs a text handler writing to out as the default logger
// and returns it.
func InitSlog(out io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// SlogAPI reports to Logger, or to slog.Default() when it is nil.
type SlogAPI struct {
	Logger *slog.Logger
}

func (s SlogAPI) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func keyed(params []any) bool {
	if len(params)%2 != 0 {
		return false
	}
	for i := 0; i < len(params); i += 2 {
		if _, ok := params[i].(string); !ok {
			return false
		}
	}
	return true
}

// slogArgs passes key/value params through and numbers anything else,
// errors are always logged under "err".
func slogArgs(params []any) []any {
	if keyed(params) {
		return params
	}
	args := make([]any, 0, len(params)*2)
	for i, p := range params {
		key := "p" + strconv.Itoa(i)
		if _, ok := p.(error); ok {
			key = "err"
		}
		args = append(args, key, p)
	}
	return args
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	s.logger().Error(id, slogArgs(params)...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	s.logger().Warn(id, slogArgs(params)...)
}

func (s SlogAPI) ReportDebug(msg string, params ...any) {
	s.logger().Debug(msg, slogArgs(params)...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.logger().Info(id, "count", count)
}
