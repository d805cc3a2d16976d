// SPDX-License-Identifier: MIT
package log

import (
	"bytes"
	"strings"
	"testing"
)

func capture(t *testing.T, level LogLevel) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevLevel := Writer(), GetLevel()
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(prevOut)
		SetLevel(prevLevel)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  LogLevel
		valid bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"warning", LevelWarn, true},
		{" error ", LevelError, true},
		{"fatal", LevelFatal, true},
		{"loud", LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.valid {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.valid)
			}
		})
	}
}

func TestLevelGating(t *testing.T) {
	buf := capture(t, LevelWarn)

	Debugf("hidden %d", 1)
	Infof("hidden %d", 2)
	Warnf("shown %d", 3)
	Errorf("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below level were written:\n%s", out)
	}
	if !strings.Contains(out, "[WARN]  shown 3") || !strings.Contains(out, "[ERROR] shown 4") {
		t.Errorf("expected WARN and ERROR lines, got:\n%s", out)
	}
}

func TestComponentLogger(t *testing.T) {
	buf := capture(t, LevelDebug)

	For("Acquisition").Infof("source changed to %s", "ANALOG")

	if !strings.Contains(buf.String(), "[INFO]  Acquisition: source changed to ANALOG") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFatalfExits(t *testing.T) {
	buf := capture(t, LevelError)

	code := 0
	prev := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = prev })

	SetLevel(LevelFatal)
	Fatalf("buffer overrun")

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "[FATAL] buffer overrun") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
