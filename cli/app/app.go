package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nspcc-dev/bintrie/cli/trie"
	"github.com/nspcc-dev/bintrie/pkg/config"
	"github.com/urfave/cli"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "bintrie\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a bintrie instance of [cli.App] with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "bintrie"
	ctl.Version = config.Version
	ctl.Usage = "Binary trie with memoized Merkle digests"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, trie.NewCommands()...)
	return ctl
}
