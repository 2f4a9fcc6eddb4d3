// Package version provides version information for the price-checker application.
package version

// Version is the current version of the price-checker application.
const Version = "1.2.0"

// AgentString returns the full agent string with versioning.
// Format: price-checker/v{version}
func AgentString() string {
	return "price-checker/v" + Version
}
