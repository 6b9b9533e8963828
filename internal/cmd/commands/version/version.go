package version

import (
	"flag"
	"fmt"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/internal/version"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type Command struct {
	*base.Command

	flagRemote bool
}

func (c *Command) Synopsis() string {
	return "Print the gns3ctl version"
}

func (c *Command) Help() string {
	return `Usage: gns3ctl version [options]

  Prints the gns3ctl version, and the server version with -remote.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("version", flag.ContinueOnError))
	c.ServerFlags(f)
	f.BoolVar(&c.flagRemote, "remote", false, "Also print the server version.")
	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	ui.Output(fmt.Sprintf("gns3ctl %s", version.FullVersion()))
	if !c.flagRemote {
		return 0
	}

	conn, err := c.Connect()
	if err != nil {
		ui.Error(fmt.Sprintf("error connecting to server: %v", err))
		return 1
	}
	ctx, cancel := c.Context()
	defer cancel()

	v, err := gns3.GetVersion(ctx, conn)
	if err != nil {
		ui.Error(fmt.Sprintf("error getting server version: %v", err))
		return 1
	}
	ui.Output(fmt.Sprintf("GNS3 server %s (%s)", v.Version, conn.Host()))
	return 0
}
