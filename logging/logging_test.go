package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		verbose bool
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{verbose: false, enabled: zapcore.WarnLevel, muted: zapcore.InfoLevel},
		{verbose: true, enabled: zapcore.DebugLevel, muted: zapcore.DebugLevel - 1},
	}

	for _, tc := range cases {
		logger, err := New(tc.verbose)
		if err != nil {
			t.Fatalf("New(%v): %v", tc.verbose, err)
		}
		core := logger.Core()
		if !core.Enabled(tc.enabled) {
			t.Fatalf("New(%v): level %v should be enabled", tc.verbose, tc.enabled)
		}
		if core.Enabled(tc.muted) {
			t.Fatalf("New(%v): level %v should be muted", tc.verbose, tc.muted)
		}
	}
}
