package node

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type SummaryCommand struct {
	*base.Command

	flagProject string
}

func (c *SummaryCommand) Synopsis() string {
	return "Show the nodes of a project"
}

func (c *SummaryCommand) Help() string {
	return `Usage: gns3ctl node summary -project <name> [options]

  Shows name, status, console port and ID of every node in a project.` +
		c.Flags().Help()
}

func (c *SummaryCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("node summary", flag.ContinueOnError))
	c.ServerFlags(f)
	c.FormatFlag(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	return f
}

func (c *SummaryCommand) Run(args []string) int {
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

	p, err := c.Project(ctx, conn, c.flagProject)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	summary, err := gns3.NodesSummary(ctx, p)
	if err != nil {
		ui.Error(fmt.Sprintf("error summarizing nodes: %v", err))
		return 1
	}

	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{s.Name, s.Status, strconv.Itoa(s.Console), s.NodeID})
	}
	if err := c.Print(summary, []string{"NAME", "STATUS", "CONSOLE", "NODE ID"}, rows); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}
