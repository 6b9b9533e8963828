package gns3

import "context"

// Port is a network port as listed on a node.
type Port struct {
	Name          string            `json:"name"`
	ShortName     string            `json:"short_name,omitempty"`
	AdapterNumber int               `json:"adapter_number"`
	PortNumber    int               `json:"port_number"`
	LinkType      string            `json:"link_type,omitempty"`
	DataLinkTypes map[string]string `json:"data_link_types,omitempty"`
}

// Endpoint returns the link endpoint for this port on node.
func (p Port) Endpoint(nodeID string) Endpoint {
	return Endpoint{
		NodeID:        nodeID,
		AdapterNumber: p.AdapterNumber,
		PortNumber:    p.PortNumber,
		Label:         &Label{Text: p.Name},
	}
}

// SearchPort reloads node and returns its port called name, or nil when the
// node has no such port.
func SearchPort(ctx context.Context, node *Node, name string) (*Port, error) {
	if name == "" {
		return nil, newError("SearchPort", ErrInvalidArgument, "port name is required")
	}
	if err := node.Get(ctx); err != nil {
		return nil, err
	}
	return node.Port(name), nil
}
