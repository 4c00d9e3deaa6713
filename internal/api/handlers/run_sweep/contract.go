package run_sweep

import "context"

type SweeperService interface {
	CompleteElapsed(ctx context.Context) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
