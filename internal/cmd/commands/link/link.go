package link

import (
	"errors"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage the links of a project"
}

func (c *Command) Help() string {
	return `Usage: gns3ctl link <subcommand> [options] [args]

  This command groups subcommands for listing, creating and deleting links
  between node ports.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// endpoints is the positional form shared by create and delete.
type endpoints struct {
	nodeA, portA, nodeB, portB string
}

func parseEndpoints(args []string) (endpoints, error) {
	if len(args) != 4 {
		return endpoints{}, fmt.Errorf("expected <node_a> <port_a> <node_b> <port_b>, got %d arguments", len(args))
	}
	return endpoints{nodeA: args[0], portA: args[1], nodeB: args[2], portB: args[3]}, nil
}

type SummaryCommand struct {
	*base.Command

	flagProject string
}

func (c *SummaryCommand) Synopsis() string {
	return "Show the links of a project"
}

func (c *SummaryCommand) Help() string {
	return `Usage: gns3ctl link summary -project <name> [options]

  Shows every link of a project as node and port names.` +
		c.Flags().Help()
}

func (c *SummaryCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("link summary", flag.ContinueOnError))
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

	// A partial summary is still worth showing.
	summary, summaryErr := gns3.LinksSummary(ctx, p)
	if summaryErr != nil && errors.Is(summaryErr, gns3.ErrTransport) {
		ui.Error(fmt.Sprintf("error summarizing links: %v", summaryErr))
		return 1
	}

	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, []string{s.NodeA, s.PortA, s.NodeB, s.PortB})
	}
	if err := c.Print(summary, []string{"NODE A", "PORT A", "NODE B", "PORT B"}, rows); err != nil {
		ui.Error(err.Error())
		return 1
	}
	if summaryErr != nil {
		ui.Warn(fmt.Sprintf("some links could not be described: %v", summaryErr))
	}
	return 0
}

type CreateCommand struct {
	*base.Command

	flagProject string
}

func (c *CreateCommand) Synopsis() string {
	return "Link two node ports"
}

func (c *CreateCommand) Help() string {
	return `Usage: gns3ctl link create -project <name> <node_a> <port_a> <node_b> <port_b>

  Connects two ports. Fails without changing anything if either port is
  already used by a link.` +
		c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("link create", flag.ContinueOnError))
	c.ServerFlags(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	return f
}

func (c *CreateCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	e, err := parseEndpoints(flags.Args())
	if err != nil {
		ui.Error(err.Error())
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

	l, err := gns3.CreateLink(ctx, p, e.nodeA, e.portA, e.nodeB, e.portB)
	if err != nil {
		var ace *gns3.AlreadyConnectedError
		if errors.As(err, &ace) {
			ui.Error(fmt.Sprintf("port already in use by link %s", ace.LinkID))
			return 1
		}
		ui.Error(fmt.Sprintf("error creating link: %v", err))
		return 1
	}

	ui.Info(fmt.Sprintf("Created link %s", l.LinkID))
	return 0
}

type DeleteCommand struct {
	*base.Command

	flagProject string
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete the link between two node ports"
}

func (c *DeleteCommand) Help() string {
	return `Usage: gns3ctl link delete -project <name> <node_a> <port_a> <node_b> <port_b>

  Deletes the link between two ports, in either direction. Nothing happens
  when the ports are not linked.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("link delete", flag.ContinueOnError))
	c.ServerFlags(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	return f
}

func (c *DeleteCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	e, err := parseEndpoints(flags.Args())
	if err != nil {
		ui.Error(err.Error())
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

	if err := gns3.DeleteLink(ctx, p, e.nodeA, e.portA, e.nodeB, e.portB); err != nil {
		ui.Error(fmt.Sprintf("error deleting link: %v", err))
		return 1
	}
	ui.Info("Link deleted")
	return 0
}
