package inventory

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
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

func TestCommand_Output(t *testing.T) {
	srv, b, ui := setup(t)
	pid := srv.AddProject("lab1")
	srv.AddNode(pid, "R1", gns3test.EthernetPorts(1))
	srv.AddNode(pid, "R2", gns3test.EthernetPorts(1))

	fs := afero.NewMemMapFs()
	c := &Command{Command: b, FS: fs}
	code := c.Run([]string{"-project", "lab1", "-output", "/out/hosts.json"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "Wrote 2 hosts to /out/hosts.json")

	data, err := afero.ReadFile(fs, "/out/hosts.json")
	require.NoError(t, err)
	var inv map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &inv))
	assert.Len(t, inv, 2)
	assert.Equal(t, float64(5001), inv["R1"]["console_port"])
}

func TestCommand_Ansible(t *testing.T) {
	srv, b, ui := setup(t)
	pid := srv.AddProject("lab1")
	srv.AddNode(pid, "R1", gns3test.EthernetPorts(1))

	code := (&Command{Command: b}).Run([]string{"-project", "lab1", "-format", "ansible"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	out := ui.OutputWriter.String()
	assert.Contains(t, out, "ansible_connection: network_cli")
	assert.Contains(t, out, "R1:")

	code = (&Command{Command: b}).Run([]string{"-project", "lab1", "-format", "csv"})
	assert.Equal(t, 1, code)
}
