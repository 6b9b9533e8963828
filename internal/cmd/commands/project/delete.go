package project

import (
	"flag"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type DeleteCommand struct {
	*base.Command

	flagByID bool
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete projects"
}

func (c *DeleteCommand) Help() string {
	return `Usage: gns3ctl project delete [options] <name>...

  Deletes the named projects. Every project is attempted; failures are
  reported together.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("project delete", flag.ContinueOnError))
	c.ServerFlags(f)
	f.BoolVar(&c.flagByID, "id", false, "Treat arguments as project IDs.")
	return f
}

func (c *DeleteCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() == 0 {
		ui.Error("at least one project is required")
		return 1
	}

	conn, err := c.Connect()
	if err != nil {
		ui.Error(fmt.Sprintf("error connecting to server: %v", err))
		return 1
	}
	ctx, cancel := c.Context()
	defer cancel()

	var result *multierror.Error
	for _, key := range flags.Args() {
		q := gns3.ByName(key)
		if c.flagByID {
			q = gns3.ByID(key)
		}
		if err := gns3.DeleteProject(ctx, conn, q); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		ui.Info(fmt.Sprintf("Deleted project %s", key))
	}

	if err := result.ErrorOrNil(); err != nil {
		ui.Error(fmt.Sprintf("error deleting projects: %v", err))
		return 1
	}
	return 0
}
