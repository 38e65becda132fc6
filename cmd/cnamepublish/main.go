package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/cnamepublish/cmd/cnamepublish/commands"
	"git.home.luguber.info/inful/cnamepublish/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("cnamepublish"),
		kong.Description("Publish a CNAME file into a static site's output directory."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := commands.NewGlobal()
	err := parser.Run(global, cli)
	os.Exit(commands.ExitCode(err, cli.Verbose, global.Logger))
}
