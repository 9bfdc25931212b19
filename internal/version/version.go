package version

// Version is the current MateReview release.
// It must be bumped on every release so the action logs identify the build.
const Version = "1.0.0"

// FullVersion returns the version with the v prefix
func FullVersion() string {
	return "v" + Version
}
