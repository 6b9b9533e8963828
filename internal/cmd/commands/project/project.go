package project

import (
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage GNS3 projects"
}

func (c *Command) Help() string {
	return `Usage: gns3ctl project <subcommand> [options] [args]

  This command groups subcommands for listing, creating, deleting and
  opening projects.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
