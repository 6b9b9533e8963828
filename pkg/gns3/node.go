package gns3

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
)

// Node is an emulated device inside a project.
type Node struct {
	NodeID           string         `json:"node_id,omitempty"`
	ProjectID        string         `json:"project_id,omitempty"`
	Name             string         `json:"name,omitempty"`
	NodeType         string         `json:"node_type,omitempty"`
	ComputeID        string         `json:"compute_id,omitempty"`
	TemplateID       string         `json:"template_id,omitempty"`
	Console          int            `json:"console,omitempty"`
	ConsoleHost      string         `json:"console_host,omitempty"`
	ConsoleType      string         `json:"console_type,omitempty"`
	ConsoleAutoStart bool           `json:"console_auto_start,omitempty"`
	Status           string         `json:"status,omitempty"`
	X                int            `json:"x"`
	Y                int            `json:"y"`
	Z                int            `json:"z,omitempty"`
	Locked           bool           `json:"locked,omitempty"`
	Symbol           string         `json:"symbol,omitempty"`
	FirstPortName    string         `json:"first_port_name,omitempty"`
	PortNameFormat   string         `json:"port_name_format,omitempty"`
	PortSegmentSize  int            `json:"port_segment_size,omitempty"`
	NodeDirectory    string         `json:"node_directory,omitempty"`
	CommandLine      string         `json:"command_line,omitempty"`
	Width            int            `json:"width,omitempty"`
	Height           int            `json:"height,omitempty"`
	Ports            []Port         `json:"ports,omitempty"`
	Properties       map[string]any `json:"properties,omitempty"`

	// Template is the template name, known only for nodes created through
	// CreateNode.
	Template string `json:"-"`

	// createAttrs are extra attributes sent when creating from a template.
	createAttrs nodeUpdate

	connector *Connector
}

// Node statuses reported by the server.
const (
	NodeStarted   = "started"
	NodeStopped   = "stopped"
	NodeSuspended = "suspended"
)

// ID implements Entity.
func (n *Node) ID() string { return n.NodeID }

// DisplayName implements Named.
func (n *Node) DisplayName() string { return n.Name }

// Port returns the port called name, or nil.
func (n *Node) Port(name string) *Port {
	p, ok := Find(n.Ports, name, func(p Port) string { return p.Name })
	if !ok {
		return nil
	}
	return &p
}

// PortAt returns the port at the given adapter and port number, or nil.
func (n *Node) PortAt(adapter, port int) *Port {
	for i := range n.Ports {
		if n.Ports[i].AdapterNumber == adapter && n.Ports[i].PortNumber == port {
			p := n.Ports[i]
			return &p
		}
	}
	return nil
}

func (n *Node) requireID(op string) error {
	if err := requireConnector(op, n.connector); err != nil {
		return err
	}
	if n.ProjectID == "" || n.NodeID == "" {
		return newError(op, ErrInvalidArgument, "project_id and node_id must be set")
	}
	return nil
}

func (n *Node) url(segments ...string) string {
	return n.connector.endpoint(append([]string{"projects", n.ProjectID, "nodes", n.NodeID}, segments...)...)
}

// replace copies server attributes from fresh, keeping local-only fields.
func (n *Node) replace(fresh *Node) {
	template := n.Template
	*n = *fresh
	n.Template = template
}

func (n *Node) call(ctx context.Context, method, endpoint string, body any) error {
	var fresh Node
	resp, err := n.connector.Call(ctx, method, endpoint, body, &fresh)
	if err != nil {
		return err
	}
	if len(resp.Body) > 0 && fresh.NodeID != "" {
		fresh.connector = n.connector
		n.replace(&fresh)
	}
	return nil
}

// Get reloads the node, including its ports, from the server.
func (n *Node) Get(ctx context.Context) error {
	if err := n.requireID("Node.Get"); err != nil {
		return err
	}
	return n.call(ctx, http.MethodGet, n.url(), nil)
}

// Create creates the node on the server. With TemplateID set the node is
// instantiated from the template; otherwise NodeType is required.
func (n *Node) Create(ctx context.Context) error {
	if err := validation.ValidateStruct(n,
		validation.Field(&n.ProjectID, validation.Required),
		validation.Field(&n.Name, validation.Required),
		validation.Field(&n.NodeType, validation.When(n.TemplateID == "", validation.Required)),
	); err != nil {
		return newError("Node.Create", ErrInvalidArgument, "%v", err)
	}
	if err := requireConnector("Node.Create", n.connector); err != nil {
		return err
	}
	if n.ComputeID == "" {
		n.ComputeID = "local"
	}

	if n.TemplateID != "" {
		body := templateNodeBody{
			nodeUpdate: n.createAttrs,
			Name:       n.Name,
			X:          n.X,
			Y:          n.Y,
			ComputeID:  n.ComputeID,
		}
		return n.call(ctx, http.MethodPost, n.connector.endpoint("projects", n.ProjectID, "templates", n.TemplateID), body)
	}
	return n.call(ctx, http.MethodPost, n.connector.endpoint("projects", n.ProjectID, "nodes"), n)
}

// nodeUpdate lists the attributes Update accepts.
type nodeUpdate struct {
	Name             *string        `mapstructure:"name" json:"name,omitempty"`
	X                *int           `mapstructure:"x" json:"x,omitempty"`
	Y                *int           `mapstructure:"y" json:"y,omitempty"`
	Z                *int           `mapstructure:"z" json:"z,omitempty"`
	Locked           *bool          `mapstructure:"locked" json:"locked,omitempty"`
	Symbol           *string        `mapstructure:"symbol" json:"symbol,omitempty"`
	Console          *int           `mapstructure:"console" json:"console,omitempty"`
	ConsoleType      *string        `mapstructure:"console_type" json:"console_type,omitempty"`
	ConsoleAutoStart *bool          `mapstructure:"console_auto_start" json:"console_auto_start,omitempty"`
	FirstPortName    *string        `mapstructure:"first_port_name" json:"first_port_name,omitempty"`
	PortNameFormat   *string        `mapstructure:"port_name_format" json:"port_name_format,omitempty"`
	PortSegmentSize  *int           `mapstructure:"port_segment_size" json:"port_segment_size,omitempty"`
	Properties       map[string]any `mapstructure:"properties" json:"properties,omitempty"`
}

// templateNodeBody is the create-from-template request. The named fields
// shadow the same keys in the embedded attributes.
type templateNodeBody struct {
	nodeUpdate
	Name      string `json:"name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	ComputeID string `json:"compute_id"`
}

// decodeNodeUpdate normalizes attribute names to snake_case and decodes them
// into a nodeUpdate. String values are converted where the target is
// numeric or boolean.
func decodeNodeUpdate(attrs map[string]any) (*nodeUpdate, error) {
	normalized := make(map[string]any, len(attrs))
	for k, v := range attrs {
		normalized[strcase.ToSnake(k)] = v
	}

	var update nodeUpdate
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &update,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return nil, err
	}
	return &update, nil
}

// Update changes the given attributes on the server, e.g.
// map[string]any{"x": 10, "consoleType": "telnet"}. Keys may be snake_case
// or camelCase; unknown keys are rejected.
func (n *Node) Update(ctx context.Context, attrs map[string]any) error {
	if err := n.requireID("Node.Update"); err != nil {
		return err
	}
	if len(attrs) == 0 {
		return nil
	}
	update, err := decodeNodeUpdate(attrs)
	if err != nil {
		return newError("Node.Update", ErrInvalidArgument, "%v", err)
	}
	return n.call(ctx, http.MethodPut, n.url(), update)
}

// Delete deletes the node on the server.
func (n *Node) Delete(ctx context.Context) error {
	if err := n.requireID("Node.Delete"); err != nil {
		return err
	}
	_, err := n.connector.Call(ctx, http.MethodDelete, n.url(), nil, nil)
	return err
}

// Start starts the node.
func (n *Node) Start(ctx context.Context) error { return n.action(ctx, "start") }

// Stop stops the node.
func (n *Node) Stop(ctx context.Context) error { return n.action(ctx, "stop") }

// Reload reloads the node.
func (n *Node) Reload(ctx context.Context) error { return n.action(ctx, "reload") }

// Suspend suspends the node.
func (n *Node) Suspend(ctx context.Context) error { return n.action(ctx, "suspend") }

func (n *Node) action(ctx context.Context, action string) error {
	if err := n.requireID("Node." + action); err != nil {
		return err
	}
	return n.call(ctx, http.MethodPost, n.url(action), nil)
}

// GetNodes lists the nodes of p as the server reports them.
func GetNodes(ctx context.Context, p *Project) ([]*Node, error) {
	if err := p.requireID("GetNodes"); err != nil {
		return nil, err
	}
	c := p.connector
	var nodes []*Node
	if err := c.get(ctx, c.endpoint("projects", p.ProjectID, "nodes"), &nodes); err != nil {
		return nil, err
	}
	for _, n := range nodes {
		n.connector = c
		if n.ProjectID == "" {
			n.ProjectID = p.ProjectID
		}
	}
	return nodes, nil
}

// SearchNode refreshes the project's nodes and returns the node matching q,
// or nil when none does.
func SearchNode(ctx context.Context, p *Project, q Query) (*Node, error) {
	if err := checkQuery("SearchNode", q, "node"); err != nil {
		return nil, err
	}
	if err := RefreshProject(ctx, p, RefreshNodes); err != nil {
		return nil, err
	}
	n, ok := Resolve(p.Nodes.Items(), q)
	if !ok {
		return nil, nil
	}
	return n, nil
}

// NodeSpec describes a node to create from a template.
type NodeSpec struct {
	Name      string
	Template  string
	X, Y      int
	ComputeID string

	// Attributes are extra node attributes accepted by Node.Update, such as
	// console_type or properties. Name, X and Y above take precedence.
	Attributes map[string]any
}

// Validate checks the spec's required fields.
func (s NodeSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Template, validation.Required),
	)
}

// CreateNode creates a node named spec.Name from the template named
// spec.Template. Node names are unique within a project.
func CreateNode(ctx context.Context, p *Project, spec NodeSpec) (*Node, error) {
	if err := spec.Validate(); err != nil {
		return nil, newError("CreateNode", ErrInvalidArgument, "%v", err)
	}
	var attrs nodeUpdate
	if len(spec.Attributes) > 0 {
		decoded, err := decodeNodeUpdate(spec.Attributes)
		if err != nil {
			return nil, newError("CreateNode", ErrInvalidArgument, "%v", err)
		}
		attrs = *decoded
	}

	existing, err := SearchNode(ctx, p, ByName(spec.Name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError("CreateNode", ErrAlreadyExists, "node with same name already exists: %s", spec.Name)
	}

	template, err := SearchTemplate(ctx, p.connector, ByName(spec.Template))
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, newError("CreateNode", ErrNotFound, "template not found: %s", spec.Template)
	}

	computeID := spec.ComputeID
	if computeID == "" {
		computeID = template.ComputeID
	}
	n := &Node{
		ProjectID:   p.ProjectID,
		Name:        spec.Name,
		TemplateID:  template.TemplateID,
		ComputeID:   computeID,
		X:           spec.X,
		Y:           spec.Y,
		Template:    template.Name,
		createAttrs: attrs,
		connector:   p.connector,
	}
	if err := n.Create(ctx); err != nil {
		return nil, err
	}

	p.Nodes.Add(n)
	p.connector.logger.Debug("node created", "name", n.Name, "node_id", n.NodeID, "template", template.Name)
	return n, nil
}

// DeleteNode deletes the node matching q.
func DeleteNode(ctx context.Context, p *Project, q Query) error {
	n, err := SearchNode(ctx, p, q)
	if err != nil {
		return err
	}
	if n == nil {
		return newError("DeleteNode", ErrNotFound, "node %s", q)
	}
	if err := n.Delete(ctx); err != nil {
		return err
	}

	p.Nodes.Remove(n.NodeID)
	p.connector.logger.Debug("node deleted", "name", n.Name, "node_id", n.NodeID)
	return nil
}

// StartNodes starts every node of p, waits pollWait, then refreshes the
// project's nodes so their status is current.
func StartNodes(ctx context.Context, p *Project, pollWait time.Duration) error {
	return nodesAction(ctx, p, "start", pollWait)
}

// StopNodes stops every node of p. See StartNodes.
func StopNodes(ctx context.Context, p *Project, pollWait time.Duration) error {
	return nodesAction(ctx, p, "stop", pollWait)
}

// ReloadNodes reloads every node of p. See StartNodes.
func ReloadNodes(ctx context.Context, p *Project, pollWait time.Duration) error {
	return nodesAction(ctx, p, "reload", pollWait)
}

// SuspendNodes suspends every node of p. See StartNodes.
func SuspendNodes(ctx context.Context, p *Project, pollWait time.Duration) error {
	return nodesAction(ctx, p, "suspend", pollWait)
}

func nodesAction(ctx context.Context, p *Project, action string, pollWait time.Duration) error {
	if err := p.requireID(action + "Nodes"); err != nil {
		return err
	}
	c := p.connector
	if _, err := c.Call(ctx, http.MethodPost, c.endpoint("projects", p.ProjectID, "nodes", action), nil, nil); err != nil {
		return err
	}

	if pollWait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollWait):
		}
	}
	return RefreshProject(ctx, p, RefreshNodes)
}

// NodeSummary is one row of NodesSummary.
type NodeSummary struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Console int    `json:"console"`
	NodeID  string `json:"node_id"`
}

// NodesSummary refreshes the project's nodes and returns name, status,
// console port and ID for each.
func NodesSummary(ctx context.Context, p *Project) ([]NodeSummary, error) {
	if err := RefreshProject(ctx, p, RefreshNodes); err != nil {
		return nil, err
	}
	nodes := p.Nodes.Items()
	summary := make([]NodeSummary, 0, len(nodes))
	for _, n := range nodes {
		summary = append(summary, NodeSummary{
			Name:    n.Name,
			Status:  n.Status,
			Console: n.Console,
			NodeID:  n.NodeID,
		})
	}
	return summary, nil
}

// InventoryEntry describes how to reach one node's console.
type InventoryEntry struct {
	Server      string `json:"server" yaml:"server"`
	Name        string `json:"name" yaml:"name"`
	ConsolePort int    `json:"console_port" yaml:"console_port"`
	ConsoleType string `json:"console_type" yaml:"console_type"`
	Type        string `json:"type" yaml:"type"`
	Template    string `json:"template" yaml:"template"`
}

// NodesInventory refreshes the project's nodes and returns an inventory keyed
// by node name. Template names are resolved from the server's templates.
func NodesInventory(ctx context.Context, p *Project) (map[string]InventoryEntry, error) {
	if err := RefreshProject(ctx, p, RefreshNodes); err != nil {
		return nil, err
	}
	templates, err := GetTemplates(ctx, p.connector)
	if err != nil {
		return nil, err
	}
	templateNames := make(map[string]string, len(templates))
	for _, t := range templates {
		templateNames[t.TemplateID] = t.Name
	}

	server := p.connector.Host()
	inventory := make(map[string]InventoryEntry, p.Nodes.Len())
	for _, n := range p.Nodes.Items() {
		template := templateNames[n.TemplateID]
		if template == "" {
			template = n.Template
		}
		inventory[n.Name] = InventoryEntry{
			Server:      server,
			Name:        n.Name,
			ConsolePort: n.Console,
			ConsoleType: n.ConsoleType,
			Type:        n.NodeType,
			Template:    template,
		}
	}
	return inventory, nil
}

// circularLayout returns count positions evenly spaced on a circle of the
// given radius, starting at the top. The scene's Y axis points down.
func circularLayout(count, radius int) [][2]int {
	if count == 0 {
		return nil
	}
	angle := 2 * math.Pi / float64(count)
	points := make([][2]int, count)
	for i := range points {
		points[i] = [2]int{
			int(float64(radius) * math.Sin(angle*float64(i))),
			int(float64(radius) * -math.Cos(angle*float64(i))),
		}
	}
	return points
}

// ArrangeNodesCircular opens the project if needed and places its nodes on a
// circle of the given radius.
func ArrangeNodesCircular(ctx context.Context, p *Project, radius int) error {
	if err := p.Get(ctx); err != nil {
		return err
	}
	if err := RefreshProject(ctx, p, RefreshNodes); err != nil {
		return err
	}
	if p.Status != ProjectOpened {
		if err := p.Open(ctx); err != nil {
			return err
		}
	}

	nodes := p.Nodes.Items()
	for i, pos := range circularLayout(len(nodes), radius) {
		if err := nodes[i].Update(ctx, map[string]any{"x": pos[0], "y": pos[1]}); err != nil {
			return fmt.Errorf("failed to move node %s: %w", nodes[i].Name, err)
		}
	}
	return nil
}
