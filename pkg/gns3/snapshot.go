package gns3

import (
	"context"
	"net/http"
	"time"
)

// Snapshot is a saved state of a project.
type Snapshot struct {
	SnapshotID string `json:"snapshot_id,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
	Name       string `json:"name,omitempty"`
	CreatedAt  int64  `json:"created_at,omitempty"`

	connector *Connector
}

// ID implements Entity.
func (s *Snapshot) ID() string { return s.SnapshotID }

// DisplayName implements Named.
func (s *Snapshot) DisplayName() string { return s.Name }

// Created returns CreatedAt as a time.
func (s *Snapshot) Created() time.Time {
	return time.Unix(s.CreatedAt, 0)
}

// Create creates the snapshot on the server.
func (s *Snapshot) Create(ctx context.Context) error {
	if s.ProjectID == "" || s.Name == "" {
		return newError("Snapshot.Create", ErrInvalidArgument, "project_id and name must be set")
	}
	if err := requireConnector("Snapshot.Create", s.connector); err != nil {
		return err
	}
	var fresh Snapshot
	body := map[string]string{"name": s.Name}
	if _, err := s.connector.Call(ctx, http.MethodPost, s.connector.endpoint("projects", s.ProjectID, "snapshots"), body, &fresh); err != nil {
		return err
	}
	fresh.connector = s.connector
	*s = fresh
	return nil
}

// Delete deletes the snapshot on the server.
func (s *Snapshot) Delete(ctx context.Context) error {
	if s.ProjectID == "" || s.SnapshotID == "" {
		return newError("Snapshot.Delete", ErrInvalidArgument, "project_id and snapshot_id must be set")
	}
	if err := requireConnector("Snapshot.Delete", s.connector); err != nil {
		return err
	}
	_, err := s.connector.Call(ctx, http.MethodDelete, s.connector.endpoint("projects", s.ProjectID, "snapshots", s.SnapshotID), nil, nil)
	return err
}

// GetSnapshots lists the snapshots of p.
func GetSnapshots(ctx context.Context, p *Project) ([]*Snapshot, error) {
	if err := p.requireID("GetSnapshots"); err != nil {
		return nil, err
	}
	c := p.connector
	var snapshots []*Snapshot
	if err := c.get(ctx, c.endpoint("projects", p.ProjectID, "snapshots"), &snapshots); err != nil {
		return nil, err
	}
	for _, s := range snapshots {
		s.connector = c
		if s.ProjectID == "" {
			s.ProjectID = p.ProjectID
		}
	}
	return snapshots, nil
}

// SearchSnapshot refreshes the project's snapshots and returns the one
// matching q, or nil.
func SearchSnapshot(ctx context.Context, p *Project, q Query) (*Snapshot, error) {
	if err := checkQuery("SearchSnapshot", q, "snapshot"); err != nil {
		return nil, err
	}
	if err := RefreshProject(ctx, p, RefreshSnapshots); err != nil {
		return nil, err
	}
	s, ok := Resolve(p.Snapshots.Items(), q)
	if !ok {
		return nil, nil
	}
	return s, nil
}

// CreateSnapshot creates a snapshot called name. Snapshot names are unique
// within a project.
func CreateSnapshot(ctx context.Context, p *Project, name string) (*Snapshot, error) {
	if name == "" {
		return nil, newError("CreateSnapshot", ErrInvalidArgument, "snapshot name is required")
	}
	existing, err := SearchSnapshot(ctx, p, ByName(name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError("CreateSnapshot", ErrAlreadyExists, "snapshot with same name already exists: %s", name)
	}

	s := &Snapshot{ProjectID: p.ProjectID, Name: name, connector: p.connector}
	if err := s.Create(ctx); err != nil {
		return nil, err
	}
	p.Snapshots.Add(s)
	return s, nil
}

// DeleteSnapshot deletes the snapshot matching q.
func DeleteSnapshot(ctx context.Context, p *Project, q Query) error {
	s, err := SearchSnapshot(ctx, p, q)
	if err != nil {
		return err
	}
	if s == nil {
		return newError("DeleteSnapshot", ErrNotFound, "snapshot %s", q)
	}
	if err := s.Delete(ctx); err != nil {
		return err
	}
	p.Snapshots.Remove(s.SnapshotID)
	return nil
}

// RestoreSnapshot restores the project to the snapshot matching q. It
// reports whether the server answered 201 Created.
func RestoreSnapshot(ctx context.Context, p *Project, q Query) (bool, error) {
	s, err := SearchSnapshot(ctx, p, q)
	if err != nil {
		return false, err
	}
	if s == nil {
		return false, newError("RestoreSnapshot", ErrNotFound, "snapshot %s", q)
	}

	c := p.connector
	resp, err := c.Call(ctx, http.MethodPost, c.endpoint("projects", p.ProjectID, "snapshots", s.SnapshotID, "restore"), nil, nil)
	if err != nil {
		return false, err
	}
	c.logger.Debug("snapshot restored", "project_id", p.ProjectID, "snapshot", s.Name, "status", resp.StatusCode)
	return resp.StatusCode == http.StatusCreated, nil
}
