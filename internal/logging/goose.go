package logging

import (
	"fmt"
	"log/slog"
)

// GooseLogger adapts slog to goose's Logger interface. Fatalf logs at error
// level and does not exit; goose still returns the error to the caller.
type GooseLogger struct {
	Logger *slog.Logger
}

func (l *GooseLogger) Printf(format string, v ...any) {
	l.logger().Info(fmt.Sprintf(format, v...), "component", "migrate")
}

func (l *GooseLogger) Fatalf(format string, v ...any) {
	l.logger().Error(fmt.Sprintf(format, v...), "component", "migrate")
}

func (l *GooseLogger) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}
