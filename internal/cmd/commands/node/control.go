package node

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

// Actions accepted by ControlCommand.
const (
	ActionStart   = "start"
	ActionStop    = "stop"
	ActionReload  = "reload"
	ActionSuspend = "suspend"
)

// ControlCommand starts, stops, reloads or suspends nodes. Action selects
// which.
type ControlCommand struct {
	*base.Command

	Action string

	flagProject string
	flagNode    string
	flagWait    time.Duration
}

func (c *ControlCommand) Synopsis() string {
	return fmt.Sprintf("%s nodes", capitalize(c.Action))
}

func (c *ControlCommand) Help() string {
	return fmt.Sprintf(`Usage: gns3ctl node %[1]s -project <name> [options]

  Runs %[1]s on one node, or on every node of the project when -node is
  not given, then shows the resulting node status.`, c.Action) +
		c.Flags().Help()
}

func (c *ControlCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("node "+c.Action, flag.ContinueOnError))
	c.ServerFlags(f)
	c.FormatFlag(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	f.StringVar(&c.flagNode, "node", "", "Node name. Defaults to all nodes.")
	f.DurationVar(&c.flagWait, "wait", 3*time.Second,
		"Time to let nodes settle before reading their status.")
	return f
}

func (c *ControlCommand) Run(args []string) int {
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

	if c.flagNode != "" {
		err = c.controlOne(ctx, p)
	} else {
		err = c.controlAll(ctx, p)
	}
	if err != nil {
		ui.Error(fmt.Sprintf("error running %s: %v", c.Action, err))
		return 1
	}

	summary, err := gns3.NodesSummary(ctx, p)
	if err != nil {
		ui.Error(fmt.Sprintf("error summarizing nodes: %v", err))
		return 1
	}
	rows := make([][]string, 0, len(summary))
	for _, s := range summary {
		if c.flagNode != "" && s.Name != c.flagNode {
			continue
		}
		rows = append(rows, []string{s.Name, s.Status})
	}
	if err := c.Print(summary, []string{"NAME", "STATUS"}, rows); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

func (c *ControlCommand) controlOne(ctx context.Context, p *gns3.Project) error {
	n, err := gns3.SearchNode(ctx, p, gns3.ByName(c.flagNode))
	if err != nil {
		return err
	}
	if n == nil {
		return fmt.Errorf("node %q not found", c.flagNode)
	}
	switch c.Action {
	case ActionStart:
		return n.Start(ctx)
	case ActionStop:
		return n.Stop(ctx)
	case ActionReload:
		return n.Reload(ctx)
	case ActionSuspend:
		return n.Suspend(ctx)
	}
	return fmt.Errorf("unknown action %q", c.Action)
}

func (c *ControlCommand) controlAll(ctx context.Context, p *gns3.Project) error {
	switch c.Action {
	case ActionStart:
		return gns3.StartNodes(ctx, p, c.flagWait)
	case ActionStop:
		return gns3.StopNodes(ctx, p, c.flagWait)
	case ActionReload:
		return gns3.ReloadNodes(ctx, p, c.flagWait)
	case ActionSuspend:
		return gns3.SuspendNodes(ctx, p, c.flagWait)
	}
	return fmt.Errorf("unknown action %q", c.Action)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
