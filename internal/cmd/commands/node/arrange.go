package node

import (
	"flag"
	"fmt"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type ArrangeCommand struct {
	*base.Command

	flagProject string
	flagRadius  int
}

func (c *ArrangeCommand) Synopsis() string {
	return "Arrange nodes on a circle"
}

func (c *ArrangeCommand) Help() string {
	return `Usage: gns3ctl node arrange -project <name> [options]

  Places every node of a project evenly on a circle, opening the project
  first if needed.` +
		c.Flags().Help()
}

func (c *ArrangeCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("node arrange", flag.ContinueOnError))
	c.ServerFlags(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	f.IntVar(&c.flagRadius, "radius", 120, "Circle radius in scene units.")
	return f
}

func (c *ArrangeCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagRadius <= 0 {
		ui.Error("radius must be positive")
		return 1
	}

	conn, err := c.Connect()
	if err != nil {
		ui.Error(fmt.Sprintf("error connecting to server: %v", err))
		return 1
	}
	ctx, cancel := c.Context()
	defer cancel()

	p, err := c.Project(ctx, conn, c.flagProject)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	if err := gns3.ArrangeNodesCircular(ctx, p, c.flagRadius); err != nil {
		ui.Error(fmt.Sprintf("error arranging nodes: %v", err))
		return 1
	}
	ui.Info(fmt.Sprintf("Arranged %d nodes", p.Nodes.Len()))
	return 0
}
