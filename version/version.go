// Package version exposes build metadata stamped in at link time via
// -ldflags "-X github.com/docsift/docsift/version.GitRelease=...".
package version

var (
	// GitRelease is the release tag or version string.
	GitRelease = "dev"

	// GitCommit is the commit hash of the build.
	GitCommit = ""
)

// Full returns the human-readable version string.
func Full() string {
	if GitCommit == "" {
		return GitRelease
	}
	return GitRelease + " (" + GitCommit + ")"
}
