package snapshot

import (
	"flag"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage project snapshots"
}

func (c *Command) Help() string {
	return `Usage: gns3ctl snapshot <subcommand> [options] [args]

  This command groups subcommands for listing, creating, deleting and
  restoring project snapshots.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type ListCommand struct {
	*base.Command

	flagProject string
	flagSince   string
}

func (c *ListCommand) Synopsis() string {
	return "List snapshots"
}

func (c *ListCommand) Help() string {
	return `Usage: gns3ctl snapshot list -project <name> [options]

  Lists the snapshots of a project, oldest first.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("snapshot list", flag.ContinueOnError))
	c.ServerFlags(f)
	c.FormatFlag(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	f.StringVar(&c.flagSince, "since", "",
		`Only list snapshots created after this date, e.g. "2024-03-01" or "Mar 1 2024 10:00".`)
	return f
}

func (c *ListCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	since, err := parseSince(c.flagSince)
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
	if err := gns3.RefreshProject(ctx, p, gns3.RefreshSnapshots); err != nil {
		ui.Error(fmt.Sprintf("error listing snapshots: %v", err))
		return 1
	}

	snapshots := Since(p.Snapshots.Items(), since)
	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, []string{s.Name, humanize.Time(s.Created()), s.SnapshotID})
	}
	if err := c.Print(snapshots, []string{"NAME", "CREATED", "SNAPSHOT ID"}, rows); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

func parseSince(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseLocal(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid since date %q: %w", value, err)
	}
	return t, nil
}

// Since returns the snapshots created after t. A zero t keeps all of them.
func Since(snapshots []*gns3.Snapshot, t time.Time) []*gns3.Snapshot {
	if t.IsZero() {
		return snapshots
	}
	var out []*gns3.Snapshot
	for _, s := range snapshots {
		if s.Created().After(t) {
			out = append(out, s)
		}
	}
	return out
}

type CreateCommand struct {
	*base.Command

	flagProject string
	flagName    string
}

func (c *CreateCommand) Synopsis() string {
	return "Create a snapshot"
}

func (c *CreateCommand) Help() string {
	return `Usage: gns3ctl snapshot create -project <name> -name <snapshot>

  Saves the current state of a project. Snapshot names are unique within a
  project.` +
		c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("snapshot create", flag.ContinueOnError))
	c.ServerFlags(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	f.StringVar(&c.flagName, "name", "", "(Required) Snapshot name.")
	return f
}

func (c *CreateCommand) Run(args []string) int {
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

	s, err := gns3.CreateSnapshot(ctx, p, c.flagName)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating snapshot: %v", err))
		return 1
	}
	ui.Info(fmt.Sprintf("Created snapshot %s (%s)", s.Name, s.SnapshotID))
	return 0
}

type DeleteCommand struct {
	*base.Command

	flagProject string
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete snapshots"
}

func (c *DeleteCommand) Help() string {
	return `Usage: gns3ctl snapshot delete -project <name> <snapshot>...

  Deletes the named snapshots.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("snapshot delete", flag.ContinueOnError))
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
		ui.Error("at least one snapshot is required")
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
		if err := gns3.DeleteSnapshot(ctx, p, gns3.ByName(name)); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		ui.Info(fmt.Sprintf("Deleted snapshot %s", name))
	}

	if err := result.ErrorOrNil(); err != nil {
		ui.Error(fmt.Sprintf("error deleting snapshots: %v", err))
		return 1
	}
	return 0
}

type RestoreCommand struct {
	*base.Command

	flagProject string
	flagName    string
}

func (c *RestoreCommand) Synopsis() string {
	return "Restore a project to a snapshot"
}

func (c *RestoreCommand) Help() string {
	return `Usage: gns3ctl snapshot restore -project <name> -name <snapshot>

  Restores a project to the state saved in a snapshot.` +
		c.Flags().Help()
}

func (c *RestoreCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("snapshot restore", flag.ContinueOnError))
	c.ServerFlags(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	f.StringVar(&c.flagName, "name", "", "(Required) Snapshot name.")
	return f
}

func (c *RestoreCommand) Run(args []string) int {
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

	restored, err := gns3.RestoreSnapshot(ctx, p, gns3.ByName(c.flagName))
	if err != nil {
		ui.Error(fmt.Sprintf("error restoring snapshot: %v", err))
		return 1
	}
	if !restored {
		ui.Warn(fmt.Sprintf("server did not confirm restoring %s", c.flagName))
		return 1
	}
	ui.Info(fmt.Sprintf("Restored project %s to snapshot %s", p.Name, c.flagName))
	return 0
}
