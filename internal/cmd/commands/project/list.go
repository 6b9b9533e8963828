package project

import (
	"flag"
	"fmt"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type ListCommand struct {
	*base.Command
}

func (c *ListCommand) Synopsis() string {
	return "List projects"
}

func (c *ListCommand) Help() string {
	return `Usage: gns3ctl project list [options]

  Lists every project on the server with its ID and status.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("project list", flag.ContinueOnError))
	c.ServerFlags(f)
	c.FormatFlag(f)
	return f
}

func (c *ListCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	conn, err := c.Connect()
	if err != nil {
		ui.Error(fmt.Sprintf("error connecting to server: %v", err))
		return 1
	}
	ctx, cancel := c.Context()
	defer cancel()

	projects, err := gns3.GetProjects(ctx, conn)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing projects: %v", err))
		return 1
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.Name, p.ProjectID, p.Status})
	}
	if err := c.Print(projects, []string{"NAME", "PROJECT ID", "STATUS"}, rows); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
