// Package version holds build information set through -ldflags.
package version

// Version is the gns3ctl release, overridden at build time with
// -ldflags "-X github.com/hashicorp-forge/gns3ctl/internal/version.Version=...".
var Version = "0.1.0-dev"

// GitCommit is the commit the binary was built from.
var GitCommit = ""

// FullVersion returns Version with the commit appended when known.
func FullVersion() string {
	if GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}
