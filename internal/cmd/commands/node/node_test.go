package node

import (
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/internal/config"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3/gns3test"
)

func setup(t *testing.T) (*gns3test.Server, *base.Command, *cli.MockUi) {
	t.Helper()
	srv := gns3test.NewServer(t)
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "missing.hcl"))
	t.Setenv(config.EnvServer, "")
	t.Setenv(config.EnvURL, srv.URL)

	ui := cli.NewMockUi()
	return srv, &base.Command{Log: hclog.NewNullLogger(), UI: ui}, ui
}

func TestParseAttrs(t *testing.T) {
	attrs, err := parseAttrs([]string{"x=100", "console_type=telnet", "label=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": "100", "console_type": "telnet", "label": "a=b"}, attrs)

	_, err = parseAttrs(nil)
	assert.Error(t, err)
	_, err = parseAttrs([]string{"=1"})
	assert.EqualError(t, err, `invalid attribute "=1", expected key=value`)
	_, err = parseAttrs([]string{"novalue"})
	assert.Error(t, err)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Start", capitalize("start"))
	assert.Equal(t, "", capitalize(""))
}

func TestUpdateCommand(t *testing.T) {
	srv, b, ui := setup(t)
	pid := srv.AddProject("lab1")
	srv.AddNode(pid, "R1", gns3test.EthernetPorts(1))

	code := (&UpdateCommand{Command: b}).Run([]string{"-project", "lab1", "-node", "R1", "x=100", "y=-50"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	n, ok := srv.Node(pid, "R1")
	require.True(t, ok)
	assert.Equal(t, 100, n.X)
	assert.Equal(t, -50, n.Y)

	code = (&UpdateCommand{Command: b}).Run([]string{"-project", "lab1", "-node", "R9", "x=1"})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), `node "R9" not found`)
}

func TestControlCommand(t *testing.T) {
	srv, b, ui := setup(t)
	pid := srv.AddProject("lab1")
	srv.AddNode(pid, "R1", gns3test.EthernetPorts(1))
	srv.AddNode(pid, "R2", gns3test.EthernetPorts(1))

	code := (&ControlCommand{Command: b, Action: ActionStart}).Run([]string{"-project", "lab1", "-wait", "0s"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	for _, name := range []string{"R1", "R2"} {
		n, _ := srv.Node(pid, name)
		assert.Equal(t, "started", n.Status)
	}

	code = (&ControlCommand{Command: b, Action: ActionStop}).Run([]string{"-project", "lab1", "-node", "R2"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	r1, _ := srv.Node(pid, "R1")
	r2, _ := srv.Node(pid, "R2")
	assert.Equal(t, "started", r1.Status)
	assert.Equal(t, "stopped", r2.Status)
}

func TestCreateAndDeleteCommands(t *testing.T) {
	srv, b, ui := setup(t)
	pid := srv.AddProject("lab1")
	srv.AddTemplate("vyos", "router", gns3test.EthernetPorts(2))

	code := (&CreateCommand{Command: b}).Run([]string{"-project", "lab1", "-name", "R1", "-template", "vyos", "-x", "10", "console_type=vnc"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "Created node R1")
	n, ok := srv.Node(pid, "R1")
	require.True(t, ok)
	assert.Equal(t, 10, n.X)
	assert.Equal(t, "vnc", n.ConsoleType)

	code = (&CreateCommand{Command: b}).Run([]string{"-project", "lab1", "-name", "R1", "-template", "vyos"})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "node with same name already exists: R1")

	code = (&CreateCommand{Command: b}).Run([]string{"-project", "lab1", "-name", "R2", "-template", "iosv"})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "template not found: iosv")

	ui.ErrorWriter.Reset()
	code = (&DeleteCommand{Command: b}).Run([]string{"-project", "lab1", "R1", "R9"})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.OutputWriter.String(), "Deleted node R1")
	assert.Contains(t, ui.ErrorWriter.String(), "R9")
	_, ok = srv.Node(pid, "R1")
	assert.False(t, ok)

	code = (&DeleteCommand{Command: b}).Run([]string{"-project", "lab1"})
	assert.Equal(t, 1, code)
}

func TestSummaryAndArrangeCommands(t *testing.T) {
	srv, b, ui := setup(t)
	pid := srv.AddProject("lab1")
	srv.AddNode(pid, "R1", nil)
	srv.AddNode(pid, "R2", nil)

	code := (&SummaryCommand{Command: b}).Run([]string{"-project", "lab1"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	out := ui.OutputWriter.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "R1")
	assert.Contains(t, out, "R2")

	code = (&ArrangeCommand{Command: b}).Run([]string{"-project", "lab1", "-radius", "0"})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "radius must be positive")

	code = (&ArrangeCommand{Command: b}).Run([]string{"-project", "lab1", "-radius", "50"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "Arranged 2 nodes")
	r1, _ := srv.Node(pid, "R1")
	assert.Equal(t, 0, r1.X)
	assert.Equal(t, -50, r1.Y)
}
