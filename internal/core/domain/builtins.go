package domain

import "runtime"

// DefaultDistributionTag maps the running platform to the binary
// distribution tag repositories key their compiled-package subtree by
// (§4.C repository layout), overridable via EnvDistributionTag.
func DefaultDistributionTag() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "macosx"
	default:
		return "linux-gnu"
	}
}

// StandardBuiltinNames are the package names every standard platform
// distribution ships regardless of configured repositories: the "base"
// and "recommended" priority groups the platform's own installer never
// touches (§3, §4.E "builtin"). A future release may replace this
// hardcoded list with one discovered by querying the platform binary
// itself; for now it is the platform's well-known, stable set.
var StandardBuiltinNames = []string{
	"base", "compiler", "datasets", "grDevices", "graphics", "grid",
	"methods", "parallel", "splines", "stats", "stats4", "tcltk", "tools", "utils",
}

// DefaultBuiltins pins every standard builtin name to the project's
// configured platform version, the version the platform's own base
// packages always carry.
func DefaultBuiltins(platformVersion Version) map[string]Version {
	builtins := make(map[string]Version, len(StandardBuiltinNames))
	for _, name := range StandardBuiltinNames {
		builtins[name] = platformVersion
	}
	return builtins
}
