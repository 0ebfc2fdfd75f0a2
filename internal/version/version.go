// Package version exposes the build version injected at release time.
package version

// Version is overridden via -ldflags on release builds.
var Version = "dev"
