// SPDX-License-Identifier: MIT
package build

import (
	"errors"
	"os"
	"strings"
	"testing"
)

var (
	origName    string
	origTime    string
	origCommit  string
	origVersion string
	origInfo    Info
)

func TestMain(m *testing.M) {
	origName = buildName
	origTime = buildTime
	origCommit = buildCommit
	origVersion = buildVersion
	origInfo = current

	exitCode := m.Run()

	buildName = origName
	buildTime = origTime
	buildCommit = origCommit
	buildVersion = origVersion
	current = origInfo

	os.Exit(exitCode)
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		buildName   string
		buildTime   string
		buildCommit string
		buildVer    string
		wantErr     error
	}{
		{"Missing BuildName", "", "2026-10-18", "abcdef123", "v1.0.0", ErrMissingName},
		{"Missing BuildTime", "spectrum", "", "abcdef123", "v1.0.0", ErrMissingTime},
		{"Missing BuildCommit", "spectrum", "2026-10-18", "", "v1.0.0", ErrMissingCommit},
		{"Missing BuildVersion", "spectrum", "2026-10-18", "abcdef123", "", ErrMissingVersion},
		{"Success Case", "spectrum", "2026-10-18", "abcdef123", "v1.0.0", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current = Info{Name: unknown, Time: unknown, Commit: unknown, Version: unknown}

			buildName = tt.buildName
			buildTime = tt.buildTime
			buildCommit = tt.buildCommit
			buildVersion = tt.buildVer

			err := Initialize()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Initialize() error = %v, want %v", err, tt.wantErr)
			}

			got := Get()
			if tt.wantErr != nil {
				if got.Name != unknown {
					t.Errorf("Get().Name = %q after failed Initialize, want %q", got.Name, unknown)
				}
				return
			}

			want := Info{Name: tt.buildName, Time: tt.buildTime, Commit: tt.buildCommit, Version: tt.buildVer}
			if got != want {
				t.Errorf("Get() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Name: "spectrum", Time: "2026-10-18", Commit: "abcdef123", Version: "v1.0.0"}
	s := info.String()
	for _, part := range []string{"spectrum", "v1.0.0", "abcdef123", "2026-10-18"} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, missing %q", s, part)
		}
	}
}
