package link

import (
	"net/http"
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

func TestParseEndpoints(t *testing.T) {
	e, err := parseEndpoints([]string{"R1", "Ethernet0", "R2", "Ethernet1"})
	require.NoError(t, err)
	assert.Equal(t, endpoints{nodeA: "R1", portA: "Ethernet0", nodeB: "R2", portB: "Ethernet1"}, e)

	_, err = parseEndpoints([]string{"R1", "Ethernet0"})
	assert.EqualError(t, err, "expected <node_a> <port_a> <node_b> <port_b>, got 2 arguments")
}

func TestCreateCommand_AlreadyConnected(t *testing.T) {
	srv, b, ui := setup(t)
	pid := srv.AddProject("lab1")
	srv.AddNode(pid, "R1", gns3test.EthernetPorts(2))
	srv.AddNode(pid, "R2", gns3test.EthernetPorts(2))

	code := (&CreateCommand{Command: b}).Run([]string{"-project", "lab1", "R1", "Ethernet0", "R2", "Ethernet0"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	links := srv.Links(pid)
	require.Len(t, links, 1)

	code = (&CreateCommand{Command: b}).Run([]string{"-project", "lab1", "R2", "Ethernet0", "R1", "Ethernet0"})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "port already in use by link "+links[0].LinkID)
	assert.Equal(t, 1, srv.Count(http.MethodPost, "/v2/projects/"+pid+"/links"))
}

func TestSummaryAndDelete(t *testing.T) {
	srv, b, ui := setup(t)
	pid := srv.AddProject("lab1")
	r1 := srv.AddNode(pid, "R1", gns3test.EthernetPorts(2))
	r2 := srv.AddNode(pid, "R2", gns3test.EthernetPorts(2))
	srv.AddLink(pid, gns3test.Endpoint{NodeID: r1}, gns3test.Endpoint{NodeID: r2, AdapterNumber: 1})

	code := (&SummaryCommand{Command: b}).Run([]string{"-project", "lab1"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "Ethernet1")

	code = (&DeleteCommand{Command: b}).Run([]string{"-project", "lab1", "R2", "Ethernet1", "R1", "Ethernet0"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Empty(t, srv.Links(pid))
}
