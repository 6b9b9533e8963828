package node

import (
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage the nodes of a project"
}

func (c *Command) Help() string {
	return `Usage: gns3ctl node <subcommand> [options] [args]

  This command groups subcommands for creating, deleting, updating and
  controlling the nodes of a project.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
