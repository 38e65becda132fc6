package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/cnamepublish/internal/domainlint"
	"git.home.luguber.info/inful/cnamepublish/internal/pipeline"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin/publishers/cname"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Domains []string `arg:"" optional:"" name:"domain" help:"Domain names; the first is the primary domain"`
	Site    string   `short:"s" help:"Site root directory" default:"."`
	Output  string   `short:"o" help:"Output directory for the CNAME file" default:"Output"`
}

func (c *GenerateCmd) Run(g *Global, _ *CLI) error {
	ctx, stop := signalContext()
	defer stop()
	return runSingle(ctx, g, c.Site, c.Output, cname.GenerateFromList(c.Domains))
}

// AddCmd implements the 'add' command.
type AddCmd struct {
	Site   string `short:"s" help:"Site root directory containing Resources/CNAME" default:"."`
	Output string `short:"o" help:"Output directory for the CNAME file" default:"Output"`
}

func (c *AddCmd) Run(g *Global, _ *CLI) error {
	ctx, stop := signalContext()
	defer stop()
	return runSingle(ctx, g, c.Site, c.Output, cname.Add())
}

func runSingle(ctx context.Context, g *Global, siteDir, outputDir string, p plugin.PublisherPlugin) error {
	pc := plugin.NewPluginContext(g.logger(), siteDir, outputDir, uuid.NewString())
	if _, err := pipeline.NewRunner(pipeline.WithLogger(g.logger())).Run(ctx, pc, []plugin.Plugin{p}); err != nil {
		return err
	}
	logFindings(g.logger(), domainlint.Check(pc.GetStrings(cname.DataKeyDomains)))
	for _, out := range p.OutputFiles() {
		fmt.Fprintf(g.stdout(), "wrote %s\n", filepath.Join(outputDir, out))
	}
	return nil
}
