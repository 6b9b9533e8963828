package inventory

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
	"github.com/hashicorp-forge/gns3ctl/pkg/inventory"
)

type Command struct {
	*base.Command

	// FS receives -output files. Defaults to the OS filesystem.
	FS afero.Fs

	flagProject string
	flagFormat  string
	flagOutput  string
}

func (c *Command) Synopsis() string {
	return "Export a project's node inventory"
}

func (c *Command) Help() string {
	return `Usage: gns3ctl inventory -project <name> [options]

  Prints how to reach the console of every node in a project, as JSON or
  as an Ansible YAML inventory grouped by node type.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("inventory", flag.ContinueOnError))
	c.ServerFlags(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	f.StringVar(&c.flagFormat, "format", inventory.FormatJSON,
		fmt.Sprintf("Inventory format: %s.", strings.Join(inventory.Formats(), ", ")))
	f.StringVar(&c.flagOutput, "output", "", "Write the inventory to this file instead of stdout.")
	return f
}

func (c *Command) Run(args []string) int {
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

	inv, err := gns3.NodesInventory(ctx, p)
	if err != nil {
		ui.Error(fmt.Sprintf("error building inventory: %v", err))
		return 1
	}

	var buf bytes.Buffer
	if err := inventory.Export(&buf, inv, c.flagFormat); err != nil {
		ui.Error(fmt.Sprintf("error exporting inventory: %v", err))
		return 1
	}

	if c.flagOutput == "" {
		ui.Output(strings.TrimRight(buf.String(), "\n"))
		return 0
	}

	fs := c.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := afero.WriteFile(fs, c.flagOutput, buf.Bytes(), 0o644); err != nil {
		ui.Error(fmt.Sprintf("error writing inventory: %v", err))
		return 1
	}
	ui.Info(fmt.Sprintf("Wrote %d hosts to %s", len(inv), c.flagOutput))
	return 0
}
