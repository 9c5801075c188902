package common

// Version information, set via ldflags at build time.
var (
	version   = "dev"
	build     = "unknown"
	gitCommit = "unknown"
)

// GetVersion returns the semantic version.
func GetVersion() string {
	return version
}

// GetBuild returns the build timestamp.
func GetBuild() string {
	return build
}

// GetGitCommit returns the git commit hash.
func GetGitCommit() string {
	return gitCommit
}
