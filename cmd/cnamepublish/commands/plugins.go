package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/cnamepublish/internal/plugin"
)

// PluginsCmd implements the 'plugins' command.
type PluginsCmd struct{}

func (p *PluginsCmd) Run(g *Global, _ *CLI) error {
	tw := tabwriter.NewWriter(g.stdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tTYPE\tDESCRIPTION")
	for _, m := range plugin.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name, m.Version, m.Type, m.Description)
	}
	return tw.Flush()
}
