// Package version holds succade's build-time identity, the way the teacher's
// (unincluded) version package fed cli.go's usage banner and -version flag.
package version

var (
	// Name is the binary name used in log lines and the usage banner.
	Name = "succade"

	// GitCommit is set via -ldflags at build time; empty in dev builds.
	GitCommit string

	// Version is the semantic version of this build.
	Version = "0.1.0"

	// VersionPrerelease marks a build as a pre-release, e.g. "dev".
	VersionPrerelease = "dev"
)

// HumanVersion is the version string shown to humans, e.g. on -version.
func HumanVersion() string {
	v := Name + " v" + Version
	if VersionPrerelease != "" {
		v += "-" + VersionPrerelease
	}
	if GitCommit != "" {
		v += " (" + GitCommit + ")"
	}
	return v
}
