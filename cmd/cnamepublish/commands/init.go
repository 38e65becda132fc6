package commands

import (
	"fmt"

	"git.home.luguber.info/inful/cnamepublish/internal/config"
	ferrors "git.home.luguber.info/inful/cnamepublish/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	out := g.stdout()
	fmt.Fprintf(out, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "initialization failed").
			WithContext("path", root.Config).UserAction().Build()
	}
	fmt.Fprintln(out, "initialized successfully")
	return nil
}
