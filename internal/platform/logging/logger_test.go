package logging

import (
	"log/slog"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level Level
		want  slog.Level
	}{
		{level: LevelDebug, want: slog.LevelDebug},
		{level: LevelInfo, want: slog.LevelInfo},
		{level: LevelWarn, want: slog.LevelWarn},
		{level: LevelError, want: slog.LevelError},
		{level: zapcore.DPanicLevel, want: slog.LevelError},
		{level: zapcore.FatalLevel, want: slog.LevelError},
	}

	for _, tc := range cases {
		if got := SlogLevel(tc.level); got != tc.want {
			t.Fatalf("SlogLevel(%v) = %v, want %v", tc.level, got, tc.want)
		}
	}
}
