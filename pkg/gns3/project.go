package gns3

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Project statuses reported by the server.
const (
	ProjectOpened = "opened"
	ProjectClosed = "closed"
)

// Project is a GNS3 project and the aggregate root for its nodes, links,
// drawings and snapshots. The collections are only as fresh as the last
// RefreshProject call; they are not safe for concurrent mutation.
type Project struct {
	ProjectID           string         `json:"project_id,omitempty"`
	Name                string         `json:"name,omitempty"`
	Status              string         `json:"status,omitempty"`
	Path                string         `json:"path,omitempty"`
	Filename            string         `json:"filename,omitempty"`
	AutoStart           *bool          `json:"auto_start,omitempty"`
	AutoClose           *bool          `json:"auto_close,omitempty"`
	AutoOpen            *bool          `json:"auto_open,omitempty"`
	SceneHeight         int            `json:"scene_height,omitempty"`
	SceneWidth          int            `json:"scene_width,omitempty"`
	Zoom                int            `json:"zoom,omitempty"`
	ShowLayers          bool           `json:"show_layers,omitempty"`
	SnapToGrid          bool           `json:"snap_to_grid,omitempty"`
	ShowGrid            bool           `json:"show_grid,omitempty"`
	GridSize            int            `json:"grid_size,omitempty"`
	DrawingGridSize     int            `json:"drawing_grid_size,omitempty"`
	ShowInterfaceLabels bool           `json:"show_interface_labels,omitempty"`
	Variables           []ProjectVar   `json:"variables,omitempty"`
	Supplier            map[string]any `json:"supplier,omitempty"`

	Nodes     *Set[*Node]     `json:"-"`
	Links     *Set[*Link]     `json:"-"`
	Drawings  *Set[*Drawing]  `json:"-"`
	Snapshots *Set[*Snapshot] `json:"-"`

	connector *Connector
}

// ProjectVar is a project-level variable.
type ProjectVar struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// ID implements Entity.
func (p *Project) ID() string { return p.ProjectID }

// DisplayName implements Named.
func (p *Project) DisplayName() string { return p.Name }

// Project returns a handle for an existing project. Call Get to load it.
func (c *Connector) Project(projectID string) *Project {
	p := &Project{ProjectID: projectID}
	p.bind(c)
	return p
}

// bind attaches the connector and makes sure collections exist.
func (p *Project) bind(c *Connector) {
	p.connector = c
	if p.Nodes == nil {
		p.Nodes = NewSet[*Node]()
	}
	if p.Links == nil {
		p.Links = NewSet[*Link]()
	}
	if p.Drawings == nil {
		p.Drawings = NewSet[*Drawing]()
	}
	if p.Snapshots == nil {
		p.Snapshots = NewSet[*Snapshot]()
	}
}

// Connector returns the connector used to reach the project's server.
func (p *Project) Connector() *Connector {
	return p.connector
}

// replace copies server attributes from fresh, keeping collections.
func (p *Project) replace(fresh *Project) {
	nodes, links, drawings, snapshots := p.Nodes, p.Links, p.Drawings, p.Snapshots
	*p = *fresh
	p.Nodes, p.Links, p.Drawings, p.Snapshots = nodes, links, drawings, snapshots
}

func (p *Project) requireID(op string) error {
	if err := requireConnector(op, p.connector); err != nil {
		return err
	}
	if p.ProjectID == "" {
		return newError(op, ErrInvalidArgument, "project_id is not set")
	}
	return nil
}

// Get reloads the project's attributes from the server.
func (p *Project) Get(ctx context.Context) error {
	if err := p.requireID("Project.Get"); err != nil {
		return err
	}
	var fresh Project
	if err := p.connector.get(ctx, p.connector.endpoint("projects", p.ProjectID), &fresh); err != nil {
		return err
	}
	fresh.connector = p.connector
	p.replace(&fresh)
	return nil
}

// Create creates the project on the server. ProjectID may be preset to
// choose the identifier; otherwise the server assigns one.
func (p *Project) Create(ctx context.Context) error {
	if err := validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required),
	); err != nil {
		return newError("Project.Create", ErrInvalidArgument, "%v", err)
	}
	if err := requireConnector("Project.Create", p.connector); err != nil {
		return err
	}

	var fresh Project
	if _, err := p.connector.Call(ctx, http.MethodPost, p.connector.endpoint("projects"), p, &fresh); err != nil {
		return err
	}
	fresh.connector = p.connector
	p.replace(&fresh)
	return nil
}

// Update sends the project's current attributes to the server.
func (p *Project) Update(ctx context.Context) error {
	if err := p.requireID("Project.Update"); err != nil {
		return err
	}
	body := *p
	body.ProjectID, body.Status, body.Filename, body.Path = "", "", "", ""

	var fresh Project
	if _, err := p.connector.Call(ctx, http.MethodPut, p.connector.endpoint("projects", p.ProjectID), &body, &fresh); err != nil {
		return err
	}
	fresh.connector = p.connector
	p.replace(&fresh)
	return nil
}

// Delete deletes the project on the server.
func (p *Project) Delete(ctx context.Context) error {
	if err := p.requireID("Project.Delete"); err != nil {
		return err
	}
	_, err := p.connector.Call(ctx, http.MethodDelete, p.connector.endpoint("projects", p.ProjectID), nil, nil)
	return err
}

// Open opens the project on the server.
func (p *Project) Open(ctx context.Context) error {
	return p.action(ctx, "open")
}

// Close closes the project on the server.
func (p *Project) Close(ctx context.Context) error {
	return p.action(ctx, "close")
}

func (p *Project) action(ctx context.Context, action string) error {
	if err := p.requireID("Project." + action); err != nil {
		return err
	}
	var fresh Project
	resp, err := p.connector.Call(ctx, http.MethodPost, p.connector.endpoint("projects", p.ProjectID, action), nil, &fresh)
	if err != nil {
		return err
	}
	if len(resp.Body) > 0 && fresh.ProjectID != "" {
		fresh.connector = p.connector
		p.replace(&fresh)
		return nil
	}
	switch action {
	case "open":
		p.Status = ProjectOpened
	case "close":
		p.Status = ProjectClosed
	}
	return nil
}

// GetProjects lists all projects on the server.
func GetProjects(ctx context.Context, c *Connector) ([]*Project, error) {
	var projects []*Project
	if err := c.get(ctx, c.endpoint("projects"), &projects); err != nil {
		return nil, err
	}
	for _, p := range projects {
		p.bind(c)
	}
	return projects, nil
}

// SearchProject returns the project matching q, or nil when none does.
// Project names are unique server-wide.
func SearchProject(ctx context.Context, c *Connector, q Query) (*Project, error) {
	if err := checkQuery("SearchProject", q, "project"); err != nil {
		return nil, err
	}
	projects, err := GetProjects(ctx, c)
	if err != nil {
		return nil, err
	}
	p, ok := Resolve(projects, q)
	if !ok {
		return nil, nil
	}
	return p, nil
}

// CreateProject creates a project from spec. spec.Name is required and must
// not be in use.
func CreateProject(ctx context.Context, c *Connector, spec Project) (*Project, error) {
	if spec.Name == "" {
		return nil, newError("CreateProject", ErrInvalidArgument, "project name is required")
	}

	existing, err := SearchProject(ctx, c, ByName(spec.Name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError("CreateProject", ErrAlreadyExists, "project with same name already exists: %s", spec.Name)
	}

	p := &spec
	p.Nodes, p.Links, p.Drawings, p.Snapshots = nil, nil, nil, nil
	p.bind(c)
	if err := p.Create(ctx); err != nil {
		return nil, err
	}
	c.logger.Debug("project created", "name", p.Name, "project_id", p.ProjectID)
	return p, nil
}

// DeleteProject deletes the project matching q.
func DeleteProject(ctx context.Context, c *Connector, q Query) error {
	p, err := SearchProject(ctx, c, q)
	if err != nil {
		return err
	}
	if p == nil {
		return newError("DeleteProject", ErrNotFound, "project %s", q)
	}
	if err := p.Delete(ctx); err != nil {
		return err
	}
	c.logger.Debug("project deleted", "name", p.Name, "project_id", p.ProjectID)
	return nil
}
