package version

// Version is the imgvendor release, injected at build time:
// go build -ldflags "-X git.home.luguber.info/inful/imgvendor/internal/version.Version=v1.0.0" ./cmd/imgvendor
var Version = "unknown"

// Build metadata, injected the same way as Version.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	s := Version
	if GitCommit != "unknown" {
		s += " (" + GitCommit + ")"
	}
	if BuildTime != "unknown" {
		s += " built " + BuildTime
	}
	return s
}
