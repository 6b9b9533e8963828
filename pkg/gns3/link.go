package gns3

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-multierror"
)

// Link connects two node ports.
type Link struct {
	LinkID           string         `json:"link_id,omitempty"`
	ProjectID        string         `json:"project_id,omitempty"`
	LinkType         string         `json:"link_type,omitempty"`
	Nodes            []Endpoint     `json:"nodes"`
	Suspend          bool           `json:"suspend,omitempty"`
	Capturing        bool           `json:"capturing,omitempty"`
	CaptureFileName  string         `json:"capture_file_name,omitempty"`
	CaptureFilePath  string         `json:"capture_file_path,omitempty"`
	CaptureComputeID string         `json:"capture_compute_id,omitempty"`
	Filters          map[string]any `json:"filters,omitempty"`

	connector *Connector
}

// ID implements Entity.
func (l *Link) ID() string { return l.LinkID }

// Endpoints returns the two sides of the link. ok is false when the link
// does not have exactly two endpoints.
func (l *Link) Endpoints() (a, b Endpoint, ok bool) {
	if len(l.Nodes) != 2 {
		return Endpoint{}, Endpoint{}, false
	}
	return l.Nodes[0], l.Nodes[1], true
}

func (l *Link) requireID(op string) error {
	if err := requireConnector(op, l.connector); err != nil {
		return err
	}
	if l.ProjectID == "" || l.LinkID == "" {
		return newError(op, ErrInvalidArgument, "project_id and link_id must be set")
	}
	return nil
}

func (l *Link) decodeFrom(ctx context.Context, method, endpoint string, body any) error {
	var fresh Link
	if _, err := l.connector.Call(ctx, method, endpoint, body, &fresh); err != nil {
		return err
	}
	fresh.connector = l.connector
	*l = fresh
	return nil
}

// Get reloads the link from the server.
func (l *Link) Get(ctx context.Context) error {
	if err := l.requireID("Link.Get"); err != nil {
		return err
	}
	return l.decodeFrom(ctx, http.MethodGet, l.connector.endpoint("projects", l.ProjectID, "links", l.LinkID), nil)
}

// Create creates the link on the server.
func (l *Link) Create(ctx context.Context) error {
	if err := requireConnector("Link.Create", l.connector); err != nil {
		return err
	}
	if l.ProjectID == "" {
		return newError("Link.Create", ErrInvalidArgument, "project_id is not set")
	}
	if _, _, ok := l.Endpoints(); !ok {
		return newError("Link.Create", ErrInvalidArgument, "a link needs exactly two endpoints, got %d", len(l.Nodes))
	}
	body := map[string]any{"nodes": l.Nodes}
	return l.decodeFrom(ctx, http.MethodPost, l.connector.endpoint("projects", l.ProjectID, "links"), body)
}

// Delete deletes the link on the server.
func (l *Link) Delete(ctx context.Context) error {
	if err := l.requireID("Link.Delete"); err != nil {
		return err
	}
	_, err := l.connector.Call(ctx, http.MethodDelete, l.connector.endpoint("projects", l.ProjectID, "links", l.LinkID), nil, nil)
	return err
}

// GetLinks lists the links of p as the server reports them.
func GetLinks(ctx context.Context, p *Project) ([]*Link, error) {
	if err := p.requireID("GetLinks"); err != nil {
		return nil, err
	}
	c := p.connector
	var links []*Link
	if err := c.get(ctx, c.endpoint("projects", p.ProjectID, "links"), &links); err != nil {
		return nil, err
	}
	for _, l := range links {
		l.connector = c
		if l.ProjectID == "" {
			l.ProjectID = p.ProjectID
		}
	}
	return links, nil
}

// linkEndpoints resolves node and port names against the project's current
// nodes. Each node is reloaded to get its port list.
func linkEndpoints(ctx context.Context, p *Project, op, nodeA, portA, nodeB, portB string) (Endpoint, Endpoint, error) {
	resolve := func(side, nodeName, portName string) (Endpoint, error) {
		if nodeName == "" || portName == "" {
			return Endpoint{}, newError(op, ErrInvalidArgument, "node_%s and port_%s are required", side, side)
		}
		node, ok := Resolve(p.Nodes.Items(), ByName(nodeName))
		if !ok {
			return Endpoint{}, newError(op, ErrNotFound, "node_%s: %s not found", side, nodeName)
		}
		port, err := SearchPort(ctx, node, portName)
		if err != nil {
			return Endpoint{}, err
		}
		if port == nil {
			return Endpoint{}, newError(op, ErrNotFound, "port_%s: %s not found", side, portName)
		}
		return port.Endpoint(node.NodeID), nil
	}

	a, err := resolve("a", nodeA, portA)
	if err != nil {
		return Endpoint{}, Endpoint{}, err
	}
	b, err := resolve("b", nodeB, portB)
	if err != nil {
		return Endpoint{}, Endpoint{}, err
	}
	return a, b, nil
}

// SearchLink refreshes the project's nodes and links, resolves the named
// ports and returns the link between them in either direction, or nil.
func SearchLink(ctx context.Context, p *Project, nodeA, portA, nodeB, portB string) (*Link, error) {
	if err := RefreshProject(ctx, p, RefreshNodes|RefreshLinks); err != nil {
		return nil, err
	}
	a, b, err := linkEndpoints(ctx, p, "SearchLink", nodeA, portA, nodeB, portB)
	if err != nil {
		return nil, err
	}
	l, ok := FindEquivalent(p.Links.Items(), a, b)
	if !ok {
		return nil, nil
	}
	return l, nil
}

// CreateLink connects portA of nodeA to portB of nodeB. It refreshes the
// project first and fails with ErrAlreadyConnected, without calling the
// server, when either port is already used by a link.
func CreateLink(ctx context.Context, p *Project, nodeA, portA, nodeB, portB string) (*Link, error) {
	if err := RefreshProject(ctx, p, RefreshAll); err != nil {
		return nil, err
	}
	a, b, err := linkEndpoints(ctx, p, "CreateLink", nodeA, portA, nodeB, portB)
	if err != nil {
		return nil, err
	}
	if a.SamePort(b) {
		return nil, newError("CreateLink", ErrInvalidArgument, "cannot link port %s of %s to itself", portA, nodeA)
	}

	if existing, ok := FindOccupying(p.Links.Items(), a, b); ok {
		p.connector.logger.Debug("link endpoint occupied", "link_id", existing.LinkID,
			"node_a", nodeA, "port_a", portA, "node_b", nodeB, "port_b", portB)
		return nil, &Error{Op: "CreateLink", Err: &AlreadyConnectedError{LinkID: existing.LinkID}}
	}

	l := &Link{
		ProjectID: p.ProjectID,
		Nodes:     []Endpoint{a, b},
		connector: p.connector,
	}
	if err := l.Create(ctx); err != nil {
		return nil, err
	}

	p.Links.Add(l)
	p.connector.logger.Debug("link created", "link_id", l.LinkID,
		"node_a", nodeA, "port_a", portA, "node_b", nodeB, "port_b", portB)
	return l, nil
}

// DeleteLink deletes the link between the named ports. A missing link is not
// an error.
func DeleteLink(ctx context.Context, p *Project, nodeA, portA, nodeB, portB string) error {
	l, err := SearchLink(ctx, p, nodeA, portA, nodeB, portB)
	if err != nil {
		return err
	}
	if l == nil {
		return nil
	}
	if err := l.Delete(ctx); err != nil {
		return err
	}

	p.Links.Remove(l.LinkID)
	p.connector.logger.Debug("link deleted", "link_id", l.LinkID)
	return nil
}

// LinkSummary is one row of LinksSummary.
type LinkSummary struct {
	NodeA string `json:"node_a"`
	PortA string `json:"port_a"`
	NodeB string `json:"node_b"`
	PortB string `json:"port_b"`
}

// LinksSummary refreshes nodes and links and describes each link by node and
// port names. Links whose endpoints cannot be resolved are left out and
// reported together in the returned error, next to the partial summary.
func LinksSummary(ctx context.Context, p *Project) ([]LinkSummary, error) {
	if err := RefreshProject(ctx, p, RefreshNodes|RefreshLinks); err != nil {
		return nil, err
	}

	describe := func(e Endpoint) (string, string, error) {
		node, ok := p.Nodes.Get(e.NodeID)
		if !ok {
			return "", "", fmt.Errorf("node %s not found", e.NodeID)
		}
		port := node.PortAt(e.AdapterNumber, e.PortNumber)
		if port == nil {
			return "", "", fmt.Errorf("node %s has no port %d/%d", node.Name, e.AdapterNumber, e.PortNumber)
		}
		return node.Name, port.Name, nil
	}

	var result *multierror.Error
	var summary []LinkSummary
	for _, l := range p.Links.Items() {
		a, b, ok := l.Endpoints()
		if !ok {
			continue
		}
		nodeA, portA, err := describe(a)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("link %s: %w", l.LinkID, err))
			continue
		}
		nodeB, portB, err := describe(b)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("link %s: %w", l.LinkID, err))
			continue
		}
		summary = append(summary, LinkSummary{NodeA: nodeA, PortA: portA, NodeB: nodeB, PortB: portB})
	}
	return summary, result.ErrorOrNil()
}
