// Package base holds what every gns3ctl command shares: the logger, the UI,
// flag handling and the connection to a GNS3 server.
package base

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/gns3ctl/internal/config"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

// Command is embedded by every command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	flagConfig string
	flagServer string
	flagFormat string
}

// Output formats accepted by -format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ServerFlags adds the flags that select a server.
func (c *Command) ServerFlags(f *FlagSet) {
	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to the gns3ctl config file. Defaults to $GNS3_CONFIG, then "+
			"gns3ctl/config.hcl in the user config directory.",
	)
	f.StringVar(
		&c.flagServer, "server", "",
		"Name of the server block to use. Defaults to $GNS3_SERVER, then "+
			"default_server from the config file.",
	)
}

// FormatFlag adds the -format flag.
func (c *Command) FormatFlag(f *FlagSet) {
	f.StringVar(
		&c.flagFormat, "format", FormatTable,
		`Output format: "table" or "json".`,
	)
}

// Connect resolves the server configuration and returns a connector for it.
func (c *Command) Connect() (*gns3.Connector, error) {
	cfg, logLevel, err := config.Resolve(c.flagConfig, c.flagServer)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		c.Log.SetLevel(hclog.LevelFromString(logLevel))
	}
	return gns3.NewConnector(cfg, gns3.WithLogger(c.Log))
}

// Context returns a context cancelled on interrupt.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Project finds a project by name, falling back to ID.
func (c *Command) Project(ctx context.Context, conn *gns3.Connector, key string) (*gns3.Project, error) {
	if key == "" {
		return nil, fmt.Errorf("project flag is required")
	}
	p, err := gns3.SearchProject(ctx, conn, gns3.ByName(key))
	if err != nil {
		return nil, err
	}
	if p == nil {
		if p, err = gns3.SearchProject(ctx, conn, gns3.ByID(key)); err != nil {
			return nil, err
		}
	}
	if p == nil {
		return nil, fmt.Errorf("project %q not found", key)
	}
	return p, nil
}

// Print writes v as JSON when -format=json, otherwise it writes rows as an
// aligned table under headers.
func (c *Command) Print(v any, headers []string, rows [][]string) error {
	switch c.flagFormat {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding output: %w", err)
		}
		c.UI.Output(string(data))
		return nil
	case FormatTable, "":
		c.UI.Output(Table(headers, rows))
		return nil
	default:
		return fmt.Errorf("unsupported format %q", c.flagFormat)
	}
}

// Table renders rows under headers with aligned columns.
func Table(headers []string, rows [][]string) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
