package gns3

import (
	"context"
	"strings"
)

// Selector chooses which project collections RefreshProject reloads.
type Selector uint8

const (
	RefreshLinks Selector = 1 << iota
	RefreshNodes
	RefreshSnapshots
	RefreshDrawings

	RefreshAll = RefreshLinks | RefreshNodes | RefreshSnapshots | RefreshDrawings
)

// Has reports whether s includes every kind in other.
func (s Selector) Has(other Selector) bool {
	return s&other == other
}

func (s Selector) String() string {
	var kinds []string
	if s.Has(RefreshSnapshots) {
		kinds = append(kinds, "snapshots")
	}
	if s.Has(RefreshDrawings) {
		kinds = append(kinds, "drawings")
	}
	if s.Has(RefreshNodes) {
		kinds = append(kinds, "nodes")
	}
	if s.Has(RefreshLinks) {
		kinds = append(kinds, "links")
	}
	return strings.Join(kinds, ",")
}

// RefreshProject replaces the selected collections of p with the server's
// current listing, one request per kind. Nothing is merged: local members
// that the server does not list are dropped. A zero selector refreshes
// everything. The first failing request aborts the refresh; collections
// already reloaded stay reloaded.
func RefreshProject(ctx context.Context, p *Project, sel Selector) error {
	if err := p.requireID("RefreshProject"); err != nil {
		return err
	}
	if sel == 0 {
		sel = RefreshAll
	}

	if sel.Has(RefreshSnapshots) {
		snapshots, err := GetSnapshots(ctx, p)
		if err != nil {
			return err
		}
		p.Snapshots = NewSet(snapshots...)
	}
	if sel.Has(RefreshDrawings) {
		drawings, err := GetDrawings(ctx, p)
		if err != nil {
			return err
		}
		p.Drawings = NewSet(drawings...)
	}
	if sel.Has(RefreshNodes) {
		nodes, err := GetNodes(ctx, p)
		if err != nil {
			return err
		}
		p.Nodes = NewSet(nodes...)
	}
	if sel.Has(RefreshLinks) {
		links, err := GetLinks(ctx, p)
		if err != nil {
			return err
		}
		p.Links = NewSet(links...)
	}

	p.connector.logger.Trace("project refreshed", "project_id", p.ProjectID, "kinds", sel.String())
	return nil
}
