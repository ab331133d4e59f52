// Package version carries the build identity stamped in at link time.
package version

// Set via -ldflags at build time.
var (
	// Version is the release version of the mrrweave binary.
	Version = "dev"
	// Commit is the Git hash the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
