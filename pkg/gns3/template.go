package gns3

import (
	"context"
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Template is a node template. Fields specific to one emulator (image,
// adapters, ram...) live in Properties and are sent inline.
type Template struct {
	TemplateID        string `json:"template_id,omitempty"`
	Name              string `json:"name,omitempty"`
	Category          string `json:"category,omitempty"`
	TemplateType      string `json:"template_type,omitempty"`
	ComputeID         string `json:"compute_id,omitempty"`
	Builtin           bool   `json:"builtin,omitempty"`
	Symbol            string `json:"symbol,omitempty"`
	DefaultNameFormat string `json:"default_name_format,omitempty"`
	Usage             string `json:"usage,omitempty"`

	Properties map[string]any `json:"-"`

	connector *Connector
}

var templateKeys = []string{
	"template_id", "name", "category", "template_type", "compute_id",
	"builtin", "symbol", "default_name_format", "usage",
}

// ID implements Entity.
func (t *Template) ID() string { return t.TemplateID }

// DisplayName implements Named.
func (t *Template) DisplayName() string { return t.Name }

// UnmarshalJSON keeps unknown keys in Properties.
func (t *Template) UnmarshalJSON(data []byte) error {
	type plain Template
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range templateKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		decoded.Properties = raw
	}

	connector := t.connector
	*t = Template(decoded)
	t.connector = connector
	return nil
}

// MarshalJSON writes Properties inline. Typed fields win on key clashes.
func (t Template) MarshalJSON() ([]byte, error) {
	type plain Template
	data, err := json.Marshal(plain(t))
	if err != nil {
		return nil, err
	}
	if len(t.Properties) == 0 {
		return data, nil
	}

	merged := make(map[string]any, len(t.Properties))
	for k, v := range t.Properties {
		merged[k] = v
	}
	var typed map[string]any
	if err := json.Unmarshal(data, &typed); err != nil {
		return nil, err
	}
	for k, v := range typed {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func (t *Template) requireID(op string) error {
	if err := requireConnector(op, t.connector); err != nil {
		return err
	}
	if t.TemplateID == "" {
		return newError(op, ErrInvalidArgument, "template_id is not set")
	}
	return nil
}

// Get reloads the template from the server.
func (t *Template) Get(ctx context.Context) error {
	if err := t.requireID("Template.Get"); err != nil {
		return err
	}
	return t.connector.get(ctx, t.connector.endpoint("templates", t.TemplateID), t)
}

// Create creates the template on the server.
func (t *Template) Create(ctx context.Context) error {
	if err := validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.TemplateType, validation.Required),
	); err != nil {
		return newError("Template.Create", ErrInvalidArgument, "%v", err)
	}
	if err := requireConnector("Template.Create", t.connector); err != nil {
		return err
	}
	if t.ComputeID == "" {
		t.ComputeID = "local"
	}
	_, err := t.connector.Call(ctx, http.MethodPost, t.connector.endpoint("templates"), t, t)
	return err
}

// Delete deletes the template on the server.
func (t *Template) Delete(ctx context.Context) error {
	if err := t.requireID("Template.Delete"); err != nil {
		return err
	}
	_, err := t.connector.Call(ctx, http.MethodDelete, t.connector.endpoint("templates", t.TemplateID), nil, nil)
	return err
}

// GetTemplates lists all templates on the server.
func GetTemplates(ctx context.Context, c *Connector) ([]*Template, error) {
	var templates []*Template
	if err := c.get(ctx, c.endpoint("templates"), &templates); err != nil {
		return nil, err
	}
	for _, t := range templates {
		t.connector = c
	}
	return templates, nil
}

// SearchTemplate returns the template matching q, or nil when none does.
func SearchTemplate(ctx context.Context, c *Connector, q Query) (*Template, error) {
	if err := checkQuery("SearchTemplate", q, "template"); err != nil {
		return nil, err
	}
	templates, err := GetTemplates(ctx, c)
	if err != nil {
		return nil, err
	}
	t, ok := Resolve(templates, q)
	if !ok {
		return nil, nil
	}
	return t, nil
}

// CreateTemplate creates a template from spec. Template names are unique
// server-wide.
func CreateTemplate(ctx context.Context, c *Connector, spec Template) (*Template, error) {
	if spec.Name == "" {
		return nil, newError("CreateTemplate", ErrInvalidArgument, "template name is required")
	}

	existing, err := SearchTemplate(ctx, c, ByName(spec.Name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError("CreateTemplate", ErrAlreadyExists, "template with same name already exists: %s", spec.Name)
	}

	t := &spec
	t.connector = c
	if err := t.Create(ctx); err != nil {
		return nil, err
	}
	c.logger.Debug("template created", "name", t.Name, "template_id", t.TemplateID)
	return t, nil
}

// DeleteTemplate deletes the template matching q.
func DeleteTemplate(ctx context.Context, c *Connector, q Query) error {
	t, err := SearchTemplate(ctx, c, q)
	if err != nil {
		return err
	}
	if t == nil {
		return newError("DeleteTemplate", ErrNotFound, "template %s", q)
	}
	return t.Delete(ctx)
}
