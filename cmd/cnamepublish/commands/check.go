package commands

import (
	"fmt"
	"os"
	"unicode/utf8"

	"git.home.luguber.info/inful/cnamepublish/internal/domainlint"
	ferrors "git.home.luguber.info/inful/cnamepublish/internal/foundation/errors"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin"
	"git.home.luguber.info/inful/cnamepublish/internal/plugin/publishers/cname"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Domains []string `arg:"" optional:"" name:"domain" help:"Domain names to check"`
	File    string   `short:"f" help:"Check an existing CNAME file instead of arguments"`
	Strict  bool     `help:"Fail when lint reports warnings"`
}

func (c *CheckCmd) Run(g *Global, _ *CLI) error {
	if c.File != "" && len(c.Domains) > 0 {
		return ferrors.ValidationError("use either domain arguments or --file, not both").Build()
	}

	var findings []domainlint.Finding
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return fmt.Errorf("read %s: %w", c.File, err)
		}
		if !utf8.Valid(data) {
			return fmt.Errorf("%s: %w", c.File, plugin.ErrNotText)
		}
		if len(data) == 0 {
			return cname.ErrListEmpty
		}
		findings = domainlint.CheckContent(string(data))
	} else {
		if err := cname.Validate(c.Domains); err != nil {
			return err
		}
		findings = domainlint.Check(c.Domains)
	}

	printFindings(g.stdout(), findings)
	if c.Strict && domainlint.HasWarnings(findings) {
		return ferrors.ValidationError("domain lint reported warnings").UserAction().Build()
	}
	fmt.Fprintln(g.stdout(), "ok")
	return nil
}

