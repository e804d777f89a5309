package cli

import (
	"context"
	"os"

	"github.com/matzehuels/modelgraph/pkg/buildinfo"
)

// SetVersion overrides the build information shown by --version and
// /healthz. Empty values keep what the linker set.
func SetVersion(version, commit, date string) {
	if version != "" {
		buildinfo.Version = version
	}
	if commit != "" {
		buildinfo.Commit = commit
	}
	if date != "" {
		buildinfo.Date = date
	}
}

// Execute runs the modelgraph CLI with os.Args, logging to stderr.
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	return New(os.Stderr, LogInfo).RootCommand().ExecuteContext(ctx)
}
