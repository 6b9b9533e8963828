package project

import (
	"flag"
	"fmt"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type CreateCommand struct {
	*base.Command

	flagName      string
	flagAutoClose bool
	flagAutoOpen  bool
	flagAutoStart bool
}

func (c *CreateCommand) Synopsis() string {
	return "Create a project"
}

func (c *CreateCommand) Help() string {
	return `Usage: gns3ctl project create -name <name> [options]

  Creates a project. Fails if a project with the same name exists.` +
		c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("project create", flag.ContinueOnError))
	c.ServerFlags(f)

	f.StringVar(&c.flagName, "name", "", "(Required) Project name.")
	f.BoolVar(&c.flagAutoClose, "auto-close", true,
		"Close the project when the last client disconnects.")
	f.BoolVar(&c.flagAutoOpen, "auto-open", false,
		"Open the project when the server starts.")
	f.BoolVar(&c.flagAutoStart, "auto-start", false,
		"Start the project's nodes when it is opened.")

	return f
}

func (c *CreateCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagName == "" {
		ui.Error("name flag is required")
		return 1
	}

	conn, err := c.Connect()
	if err != nil {
		ui.Error(fmt.Sprintf("error connecting to server: %v", err))
		return 1
	}
	ctx, cancel := c.Context()
	defer cancel()

	p, err := gns3.CreateProject(ctx, conn, gns3.Project{
		Name:      c.flagName,
		AutoClose: &c.flagAutoClose,
		AutoOpen:  &c.flagAutoOpen,
		AutoStart: &c.flagAutoStart,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error creating project: %v", err))
		return 1
	}

	ui.Info(fmt.Sprintf("Created project %s (%s)", p.Name, p.ProjectID))
	return 0
}
