package node

import (
	"flag"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type CreateCommand struct {
	*base.Command

	flagProject  string
	flagName     string
	flagTemplate string
	flagX        int
	flagY        int
	flagCompute  string
}

func (c *CreateCommand) Synopsis() string {
	return "Create a node from a template"
}

func (c *CreateCommand) Help() string {
	return `Usage: gns3ctl node create -project <name> -name <node> -template <template> [options] [key=value...]

  Creates a node from a template. Node names are unique within a project.
  Extra key=value arguments set node attributes such as console_type.` +
		c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("node create", flag.ContinueOnError))
	c.ServerFlags(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	f.StringVar(&c.flagName, "name", "", "(Required) Node name.")
	f.StringVar(&c.flagTemplate, "template", "", "(Required) Template name.")
	f.IntVar(&c.flagX, "x", 0, "Scene X coordinate.")
	f.IntVar(&c.flagY, "y", 0, "Scene Y coordinate.")
	f.StringVar(&c.flagCompute, "compute", "",
		"Compute to run the node on. Defaults to the template's compute.")
	return f
}

func (c *CreateCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	var attrs map[string]any
	if flags.NArg() > 0 {
		var err error
		if attrs, err = parseAttrs(flags.Args()); err != nil {
			ui.Error(err.Error())
			return 1
		}
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

	n, err := gns3.CreateNode(ctx, p, gns3.NodeSpec{
		Name:       c.flagName,
		Template:   c.flagTemplate,
		X:          c.flagX,
		Y:          c.flagY,
		ComputeID:  c.flagCompute,
		Attributes: attrs,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error creating node: %v", err))
		return 1
	}

	ui.Info(fmt.Sprintf("Created node %s (%s)", n.Name, n.NodeID))
	return 0
}

type DeleteCommand struct {
	*base.Command

	flagProject string
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete nodes"
}

func (c *DeleteCommand) Help() string {
	return `Usage: gns3ctl node delete -project <name> <node>...

  Deletes the named nodes. Every node is attempted; failures are reported
  together.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("node delete", flag.ContinueOnError))
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
	if flags.NArg() == 0 {
		ui.Error("at least one node is required")
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

	var result *multierror.Error
	for _, name := range flags.Args() {
		if err := gns3.DeleteNode(ctx, p, gns3.ByName(name)); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		ui.Info(fmt.Sprintf("Deleted node %s", name))
	}

	if err := result.ErrorOrNil(); err != nil {
		ui.Error(fmt.Sprintf("error deleting nodes: %v", err))
		return 1
	}
	return 0
}
