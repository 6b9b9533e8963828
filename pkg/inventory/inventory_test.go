package inventory

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

var testInventory = map[string]gns3.InventoryEntry{
	"R1": {Server: "10.0.0.5", Name: "R1", ConsolePort: 5001, ConsoleType: "telnet", Type: "qemu", Template: "vyos"},
	"R2": {Server: "10.0.0.5", Name: "R2", ConsolePort: 5002, ConsoleType: "telnet", Type: "qemu", Template: "vyos"},
	"S1": {Server: "10.0.0.5", Name: "S1", ConsolePort: 5003, ConsoleType: "none", Type: "ethernet_switch"},
	"X1": {Server: "10.0.0.6", Name: "X1", ConsolePort: 5004},
}

func TestExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, testInventory, FormatJSON))

	var got map[string]gns3.InventoryEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testInventory, got)
}

func TestExport_DefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, testInventory, ""))
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestExport_Ansible(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, testInventory, FormatAnsible))

	var got ansibleInventory
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "network_cli", got.All.Vars["ansible_connection"])
	require.Len(t, got.All.Children, 3)

	routers := got.All.Children["qemu"].Hosts
	require.Len(t, routers, 2)
	assert.Equal(t, ansibleHost{AnsibleHost: "10.0.0.5", AnsiblePort: 5001, ConsoleType: "telnet", Template: "vyos"}, routers["R1"])

	assert.Contains(t, got.All.Children["ethernet_switch"].Hosts, "S1")
	assert.Equal(t, 5004, got.All.Children["ungrouped"].Hosts["X1"].AnsiblePort)
}

func TestExport_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, testInventory, "toml")
	assert.EqualError(t, err, `unsupported inventory format "toml"`)
	assert.Zero(t, buf.Len())
}
