package project

import (
	"flag"
	"fmt"
	"strings"

	"github.com/pkg/browser"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

type OpenCommand struct {
	*base.Command

	flagProject string
	flagBrowser bool
	flagClose   bool
}

func (c *OpenCommand) Synopsis() string {
	return "Open or close a project"
}

func (c *OpenCommand) Help() string {
	return `Usage: gns3ctl project open -project <name> [options]

  Opens a project on the server, optionally showing it in the web UI.
  With -close the project is closed instead.` +
		c.Flags().Help()
}

func (c *OpenCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("project open", flag.ContinueOnError))
	c.ServerFlags(f)
	f.StringVar(&c.flagProject, "project", "", "(Required) Project name or ID.")
	f.BoolVar(&c.flagBrowser, "browser", false, "Show the project in the web UI.")
	f.BoolVar(&c.flagClose, "close", false, "Close the project instead.")
	return f
}

func (c *OpenCommand) Run(args []string) int {
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

	if c.flagClose {
		if err := p.Close(ctx); err != nil {
			ui.Error(fmt.Sprintf("error closing project: %v", err))
			return 1
		}
		ui.Info(fmt.Sprintf("Closed project %s", p.Name))
		return 0
	}

	if err := p.Open(ctx); err != nil {
		ui.Error(fmt.Sprintf("error opening project: %v", err))
		return 1
	}
	ui.Info(fmt.Sprintf("Opened project %s", p.Name))

	if c.flagBrowser {
		url := webUIURL(conn, p)
		if err := openURL(url); err != nil {
			ui.Warn(fmt.Sprintf("could not open browser, visit %s", url))
		}
	}
	return 0
}

// webUIURL returns the project's page in the web UI bundled with the server.
func webUIURL(conn *gns3.Connector, p *gns3.Project) string {
	root := conn.BaseURL()
	if i := strings.LastIndex(root, "/v"); i >= 0 {
		root = root[:i]
	}
	return fmt.Sprintf("%s/static/web-ui/server/1/project/%s", root, p.ProjectID)
}
