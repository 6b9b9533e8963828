package gns3

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Drawing is an SVG shape placed on the project scene. A drawing has no
// name; its SVG document is the key used when searching by name.
type Drawing struct {
	DrawingID string `json:"drawing_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	SVG       string `json:"svg,omitempty"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Z         int    `json:"z,omitempty"`
	Rotation  int    `json:"rotation,omitempty"`
	Locked    bool   `json:"locked,omitempty"`

	connector *Connector
}

// ID implements Entity.
func (d *Drawing) ID() string { return d.DrawingID }

// DisplayName implements Named.
func (d *Drawing) DisplayName() string { return d.SVG }

func (d *Drawing) decodeFrom(ctx context.Context, method, endpoint string, body any) error {
	var fresh Drawing
	if _, err := d.connector.Call(ctx, method, endpoint, body, &fresh); err != nil {
		return err
	}
	fresh.connector = d.connector
	*d = fresh
	return nil
}

func (d *Drawing) requireID(op string) error {
	if err := requireConnector(op, d.connector); err != nil {
		return err
	}
	if d.ProjectID == "" || d.DrawingID == "" {
		return newError(op, ErrInvalidArgument, "project_id and drawing_id must be set")
	}
	return nil
}

// Get reloads the drawing.
func (d *Drawing) Get(ctx context.Context) error {
	if err := d.requireID("Drawing.Get"); err != nil {
		return err
	}
	return d.decodeFrom(ctx, http.MethodGet, d.connector.endpoint("projects", d.ProjectID, "drawings", d.DrawingID), nil)
}

// Create creates the drawing on the server.
func (d *Drawing) Create(ctx context.Context) error {
	if err := validation.ValidateStruct(d,
		validation.Field(&d.ProjectID, validation.Required),
		validation.Field(&d.SVG, validation.Required),
	); err != nil {
		return newError("Drawing.Create", ErrInvalidArgument, "%v", err)
	}
	if err := requireConnector("Drawing.Create", d.connector); err != nil {
		return err
	}
	return d.decodeFrom(ctx, http.MethodPost, d.connector.endpoint("projects", d.ProjectID, "drawings"), d)
}

// Update sends the drawing's position, SVG and lock state to the server.
func (d *Drawing) Update(ctx context.Context) error {
	if err := d.requireID("Drawing.Update"); err != nil {
		return err
	}
	body := *d
	body.DrawingID, body.ProjectID = "", ""
	return d.decodeFrom(ctx, http.MethodPut, d.connector.endpoint("projects", d.ProjectID, "drawings", d.DrawingID), &body)
}

// Delete deletes the drawing on the server.
func (d *Drawing) Delete(ctx context.Context) error {
	if err := d.requireID("Drawing.Delete"); err != nil {
		return err
	}
	_, err := d.connector.Call(ctx, http.MethodDelete, d.connector.endpoint("projects", d.ProjectID, "drawings", d.DrawingID), nil, nil)
	return err
}

// GetDrawings lists the drawings of p.
func GetDrawings(ctx context.Context, p *Project) ([]*Drawing, error) {
	if err := p.requireID("GetDrawings"); err != nil {
		return nil, err
	}
	c := p.connector
	var drawings []*Drawing
	if err := c.get(ctx, c.endpoint("projects", p.ProjectID, "drawings"), &drawings); err != nil {
		return nil, err
	}
	for _, d := range drawings {
		d.connector = c
		if d.ProjectID == "" {
			d.ProjectID = p.ProjectID
		}
	}
	return drawings, nil
}

// SearchDrawing refreshes the project's drawings and returns the one
// matching q, or nil. ByName matches the SVG document.
func SearchDrawing(ctx context.Context, p *Project, q Query) (*Drawing, error) {
	if err := checkQuery("SearchDrawing", q, "drawing"); err != nil {
		return nil, err
	}
	if err := RefreshProject(ctx, p, RefreshDrawings); err != nil {
		return nil, err
	}
	d, ok := Resolve(p.Drawings.Items(), q)
	if !ok {
		return nil, nil
	}
	return d, nil
}

// CreateDrawing places a drawing on the scene. A drawing with an identical
// SVG document must not already exist in the project.
func CreateDrawing(ctx context.Context, p *Project, spec Drawing) (*Drawing, error) {
	if spec.SVG == "" {
		return nil, newError("CreateDrawing", ErrInvalidArgument, "svg is required")
	}
	existing, err := SearchDrawing(ctx, p, ByName(spec.SVG))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError("CreateDrawing", ErrAlreadyExists, "drawing with same svg already exists: %s", existing.DrawingID)
	}

	d := &spec
	d.ProjectID = p.ProjectID
	d.connector = p.connector
	if err := d.Create(ctx); err != nil {
		return nil, err
	}
	p.Drawings.Add(d)
	return d, nil
}

// DeleteDrawing deletes the drawing matching q.
func DeleteDrawing(ctx context.Context, p *Project, q Query) error {
	d, err := SearchDrawing(ctx, p, q)
	if err != nil {
		return err
	}
	if d == nil {
		return newError("DeleteDrawing", ErrNotFound, "drawing %s", q)
	}
	if err := d.Delete(ctx); err != nil {
		return err
	}
	p.Drawings.Remove(d.DrawingID)
	return nil
}
