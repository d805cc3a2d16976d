// SPDX-License-Identifier: MIT
//
// Package build exposes the metadata stamped into the binary at link time:
//
//	go build -ldflags "-X spectrum/pkg/build.buildName=spectrum \
//	  -X spectrum/pkg/build.buildVersion=0.3.0 ..."
//
// Development builds carry no flags; Initialize reports the first missing one
// and Get keeps returning "unknown" for every field.
package build

import (
	"errors"
	"fmt"
)

// Info is the build metadata of the running binary.
type Info struct {
	Name    string
	Time    string
	Commit  string
	Version string
}

// String renders the one-line summary printed by `spectrum version` and
// logged at startup.
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", i.Name, i.Version, i.Commit, i.Time)
}

const unknown = "unknown"

var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	current      = Info{Name: unknown, Time: unknown, Commit: unknown, Version: unknown}
)

var (
	ErrMissingName    = errors.New("BuildName is required")
	ErrMissingTime    = errors.New("BuildTime is required")
	ErrMissingCommit  = errors.New("BuildCommit is required")
	ErrMissingVersion = errors.New("BuildVersion is required")
)

// Initialize copies the ldflags values into the current Info. Nothing is
// copied unless every flag is present.
func Initialize() error {
	switch {
	case buildName == "":
		return ErrMissingName
	case buildTime == "":
		return ErrMissingTime
	case buildCommit == "":
		return ErrMissingCommit
	case buildVersion == "":
		return ErrMissingVersion
	}

	current = Info{
		Name:    buildName,
		Time:    buildTime,
		Commit:  buildCommit,
		Version: buildVersion,
	}
	return nil
}

// Get returns the current build information.
func Get() Info {
	return current
}
