package utils

import (
	"runtime/debug"
	"strings"
)

// version is set with -ldflags "-X github.com/gnomegl/commitmonth/internal/utils.version=..."
var version string

// GetVersion returns the ldflags version, else the module version from the
// build info, else "dev". A leading "v" is dropped.
func GetVersion() string {
	v := version
	if v == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		} else {
			v = "dev"
		}
	}
	return strings.TrimPrefix(v, "v")
}
