package template

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage node templates"
}

func (c *Command) Help() string {
	return `Usage: gns3ctl template <subcommand> [options] [args]

  This command groups subcommands for listing and deleting templates.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

type ListCommand struct {
	*base.Command

	flagCategory string
}

func (c *ListCommand) Synopsis() string {
	return "List templates"
}

func (c *ListCommand) Help() string {
	return `Usage: gns3ctl template list [options]

  Lists the templates available on the server.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("template list", flag.ContinueOnError))
	c.ServerFlags(f)
	c.FormatFlag(f)
	f.StringVar(&c.flagCategory, "category", "",
		`Only list templates in this category, e.g. "router" or "switch".`)
	return f
}

func (c *ListCommand) Run(args []string) int {
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

	templates, err := gns3.GetTemplates(ctx, conn)
	if err != nil {
		ui.Error(fmt.Sprintf("error listing templates: %v", err))
		return 1
	}

	var shown []*gns3.Template
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		if c.flagCategory != "" && t.Category != c.flagCategory {
			continue
		}
		shown = append(shown, t)
		rows = append(rows, []string{t.Name, t.Category, t.TemplateType, strconv.FormatBool(t.Builtin), t.TemplateID})
	}
	if err := c.Print(shown, []string{"NAME", "CATEGORY", "TYPE", "BUILTIN", "TEMPLATE ID"}, rows); err != nil {
		ui.Error(err.Error())
		return 1
	}
	return 0
}

type DeleteCommand struct {
	*base.Command
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete templates"
}

func (c *DeleteCommand) Help() string {
	return `Usage: gns3ctl template delete [options] <name>...

  Deletes the named templates.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("template delete", flag.ContinueOnError))
	c.ServerFlags(f)
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
		ui.Error("at least one template is required")
		return 1
	}

	conn, err := c.Connect()
	if err != nil {
		ui.Error(fmt.Sprintf("error connecting to server: %v", err))
		return 1
	}
	ctx, cancel := c.Context()
	defer cancel()

	var result *multierror.Error
	for _, name := range flags.Args() {
		if err := gns3.DeleteTemplate(ctx, conn, gns3.ByName(name)); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		ui.Info(fmt.Sprintf("Deleted template %s", name))
	}

	if err := result.ErrorOrNil(); err != nil {
		ui.Error(fmt.Sprintf("error deleting templates: %v", err))
		return 1
	}
	return 0
}
