// Package build holds version metadata stamped in at link time.
package build

// Version is the rv build version, overridden via -ldflags at release time.
var Version = "dev"
