package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/internal/cmd/commands/compute"
	"github.com/hashicorp-forge/gns3ctl/internal/cmd/commands/inventory"
	"github.com/hashicorp-forge/gns3ctl/internal/cmd/commands/link"
	"github.com/hashicorp-forge/gns3ctl/internal/cmd/commands/node"
	"github.com/hashicorp-forge/gns3ctl/internal/cmd/commands/project"
	"github.com/hashicorp-forge/gns3ctl/internal/cmd/commands/snapshot"
	"github.com/hashicorp-forge/gns3ctl/internal/cmd/commands/template"
	versioncmd "github.com/hashicorp-forge/gns3ctl/internal/cmd/commands/version"
)

// Commands is the mapping of all available gns3ctl commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := &base.Command{
		Log: log,
		UI:  ui,
	}

	Commands = map[string]cli.CommandFactory{
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: b}, nil
		},

		"project": func() (cli.Command, error) {
			return &project.Command{Command: b}, nil
		},
		"project list": func() (cli.Command, error) {
			return &project.ListCommand{Command: b}, nil
		},
		"project create": func() (cli.Command, error) {
			return &project.CreateCommand{Command: b}, nil
		},
		"project delete": func() (cli.Command, error) {
			return &project.DeleteCommand{Command: b}, nil
		},
		"project open": func() (cli.Command, error) {
			return &project.OpenCommand{Command: b}, nil
		},

		"node": func() (cli.Command, error) {
			return &node.Command{Command: b}, nil
		},
		"node summary": func() (cli.Command, error) {
			return &node.SummaryCommand{Command: b}, nil
		},
		"node create": func() (cli.Command, error) {
			return &node.CreateCommand{Command: b}, nil
		},
		"node delete": func() (cli.Command, error) {
			return &node.DeleteCommand{Command: b}, nil
		},
		"node update": func() (cli.Command, error) {
			return &node.UpdateCommand{Command: b}, nil
		},
		"node arrange": func() (cli.Command, error) {
			return &node.ArrangeCommand{Command: b}, nil
		},
		"node start": func() (cli.Command, error) {
			return &node.ControlCommand{Command: b, Action: node.ActionStart}, nil
		},
		"node stop": func() (cli.Command, error) {
			return &node.ControlCommand{Command: b, Action: node.ActionStop}, nil
		},
		"node reload": func() (cli.Command, error) {
			return &node.ControlCommand{Command: b, Action: node.ActionReload}, nil
		},
		"node suspend": func() (cli.Command, error) {
			return &node.ControlCommand{Command: b, Action: node.ActionSuspend}, nil
		},

		"link": func() (cli.Command, error) {
			return &link.Command{Command: b}, nil
		},
		"link summary": func() (cli.Command, error) {
			return &link.SummaryCommand{Command: b}, nil
		},
		"link create": func() (cli.Command, error) {
			return &link.CreateCommand{Command: b}, nil
		},
		"link delete": func() (cli.Command, error) {
			return &link.DeleteCommand{Command: b}, nil
		},

		"template": func() (cli.Command, error) {
			return &template.Command{Command: b}, nil
		},
		"template list": func() (cli.Command, error) {
			return &template.ListCommand{Command: b}, nil
		},
		"template delete": func() (cli.Command, error) {
			return &template.DeleteCommand{Command: b}, nil
		},

		"snapshot": func() (cli.Command, error) {
			return &snapshot.Command{Command: b}, nil
		},
		"snapshot list": func() (cli.Command, error) {
			return &snapshot.ListCommand{Command: b}, nil
		},
		"snapshot create": func() (cli.Command, error) {
			return &snapshot.CreateCommand{Command: b}, nil
		},
		"snapshot delete": func() (cli.Command, error) {
			return &snapshot.DeleteCommand{Command: b}, nil
		},
		"snapshot restore": func() (cli.Command, error) {
			return &snapshot.RestoreCommand{Command: b}, nil
		},

		"inventory": func() (cli.Command, error) {
			return &inventory.Command{Command: b}, nil
		},

		"compute": func() (cli.Command, error) {
			return &compute.Command{Command: b}, nil
		},
		"compute list": func() (cli.Command, error) {
			return &compute.ListCommand{Command: b}, nil
		},
		"compute images": func() (cli.Command, error) {
			return &compute.ImagesCommand{Command: b}, nil
		},
		"compute upload": func() (cli.Command, error) {
			return &compute.UploadCommand{Command: b}, nil
		},
	}
}
