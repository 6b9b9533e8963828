package node

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type UpdateCommand struct {
	*base.Command

	flagProject string
	flagNode    string
}

func (c *UpdateCommand) Synopsis() string {
	return "Update node attributes"
}

func (c *UpdateCommand) Help() string {
	return `Usage: gns3ctl node update -project <name> -node <node> <key=value>...

  Updates attributes of a node, for example:

      gns3ctl node update -project lab1 -node R1 x=100 y=-50 console_type=telnet` +
		c.Flags().Help()
}

func (c *UpdateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("node update", flag.ContinueOnError))
	c.ServerFlags(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	f.StringVar(&c.flagNode, "node", "", "(Required) Node name.")
	return f
}

func (c *UpdateCommand) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagNode == "" {
		ui.Error("node flag is required")
		return 1
	}
	attrs, err := parseAttrs(flags.Args())
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
	n, err := gns3.SearchNode(ctx, p, gns3.ByName(c.flagNode))
	if err != nil {
		ui.Error(fmt.Sprintf("error searching node: %v", err))
		return 1
	}
	if n == nil {
		ui.Error(fmt.Sprintf("node %q not found", c.flagNode))
		return 1
	}

	if err := n.Update(ctx, attrs); err != nil {
		ui.Error(fmt.Sprintf("error updating node: %v", err))
		return 1
	}
	ui.Info(fmt.Sprintf("Updated node %s", n.Name))
	return 0
}

// parseAttrs turns key=value arguments into an attribute map.
func parseAttrs(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one key=value attribute is required")
	}
	attrs := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid attribute %q, expected key=value", arg)
		}
		attrs[key] = value
	}
	return attrs, nil
}
