package env

import (
	"fmt"
	"runtime/debug"
	"strings"

	version "github.com/hashicorp/go-version"
)

// Info describes the running platform version for version-in-range
// condition rules. It implements condition.RuntimeInfo.
type Info struct {
	version *version.Version
}

// NewInfo creates a runtime descriptor for the given semantic version.
func NewInfo(v string) (*Info, error) {
	parsed, err := version.NewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("env: invalid runtime version %q: %w", v, err)
	}
	return &Info{version: parsed}, nil
}

// MustInfo is NewInfo that panics on a malformed version. Intended for
// literals in wiring code.
func MustInfo(v string) *Info {
	info, err := NewInfo(v)
	if err != nil {
		panic(err)
	}
	return info
}

// InfoFromBuildInfo derives the runtime version from the main module's
// build info. Development builds without a release version report 0.0.0.
func InfoFromBuildInfo() *Info {
	if bi, ok := debug.ReadBuildInfo(); ok {
		v := strings.TrimPrefix(bi.Main.Version, "v")
		if parsed, err := version.NewVersion(v); err == nil {
			return &Info{version: parsed}
		}
	}
	return MustInfo("0.0.0")
}

// CurrentVersion returns the descriptor's version.
func (i *Info) CurrentVersion() *version.Version {
	return i.version
}
