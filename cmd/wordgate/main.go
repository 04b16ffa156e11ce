// Command wordgate runs the word, article and joke gateway.
package main

import "github.com/drblury/wordgate/internal/cli"

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	cli.Execute(cli.NewRootCommand())
}
