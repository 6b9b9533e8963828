// Package inventory renders a project's node inventory for external tools.
package inventory

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
)

// Format names accepted by Export.
const (
	FormatJSON    = "json"
	FormatAnsible = "ansible"
)

// Formats lists the supported formats.
func Formats() []string {
	return []string{FormatJSON, FormatAnsible}
}

// ansibleInventory is the YAML inventory layout Ansible reads.
type ansibleInventory struct {
	All ansibleGroup `yaml:"all"`
}

type ansibleGroup struct {
	Children map[string]ansibleGroupDef `yaml:"children,omitempty"`
	Vars     map[string]interface{}     `yaml:"vars,omitempty"`
}

type ansibleGroupDef struct {
	Hosts map[string]ansibleHost `yaml:"hosts"`
}

type ansibleHost struct {
	AnsibleHost string `yaml:"ansible_host"`
	AnsiblePort int    `yaml:"ansible_port,omitempty"`
	ConsoleType string `yaml:"console_type,omitempty"`
	Template    string `yaml:"template,omitempty"`
}

// Export writes inv to w in the given format.
func Export(w io.Writer, inv map[string]gns3.InventoryEntry, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(inv)
	case FormatAnsible:
		return exportAnsible(w, inv)
	default:
		return fmt.Errorf("unsupported inventory format %q", format)
	}
}

// exportAnsible groups hosts by node type.
func exportAnsible(w io.Writer, inv map[string]gns3.InventoryEntry) error {
	out := ansibleInventory{
		All: ansibleGroup{
			Children: make(map[string]ansibleGroupDef),
			Vars: map[string]interface{}{
				"ansible_connection": "network_cli",
			},
		},
	}

	names := make([]string, 0, len(inv))
	for name := range inv {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := inv[name]
		group := entry.Type
		if group == "" {
			group = "ungrouped"
		}
		def, ok := out.All.Children[group]
		if !ok {
			def = ansibleGroupDef{Hosts: make(map[string]ansibleHost)}
			out.All.Children[group] = def
		}
		def.Hosts[name] = ansibleHost{
			AnsibleHost: entry.Server,
			AnsiblePort: entry.ConsolePort,
			ConsoleType: entry.ConsoleType,
			Template:    entry.Template,
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode Ansible inventory: %w", err)
	}
	return enc.Close()
}
