package version

// Set at build time with -ldflags "-X github.com/docker/multiagent/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "n/a"
)
