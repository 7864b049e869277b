package version

// Version is the current jira-automation release.
// Bump it on every release.
const Version = "0.3.0"

// FullVersion returns the version with the v prefix used for tags.
func FullVersion() string {
	return "v" + Version
}
