// Package gns3 is a client for the GNS3 REST API.
//
// # Overview
//
// Remote resources (projects, nodes, links, drawings, snapshots, templates
// and computes) are plain Go structs that keep a reference to the Connector
// used to reach their server. A Project additionally owns local collections
// of its nodes, links, drawings and snapshots.
//
// # Collections and refresh
//
// Project collections are never assumed fresh. RefreshProject replaces the
// selected collections wholesale with the server's current listing; nothing
// is merged. Search functions refresh the collection they search, then
// return the first entity whose name (or ID) matches. When names collide the
// first entity in the server's listing wins.
//
// Create functions add the new entity to its collection only after the
// server accepted it, and delete functions remove it only after the server
// confirmed. A failed call leaves collections as they were.
//
// # Links
//
// A link joins two ports. Ports are identified by (node, adapter, port); the
// port's display name is ignored when matching. Links are undirected:
//
//	l, err := gns3.CreateLink(ctx, project, "R1", "Ethernet0", "R2", "Ethernet0")
//
// CreateLink fails with ErrAlreadyConnected when either port is in use, and
// does so without calling the server. DeleteLink is idempotent.
//
// # Errors
//
//	ErrInvalidArgument   missing or empty name/ID, bad config
//	ErrNotFound          resolution failed where existence is required
//	ErrAlreadyExists     create with a name already in use
//	ErrAlreadyConnected  link port in use (see AlreadyConnectedError)
//	ErrTransport         network failure or non-2xx (see TransportError)
//
// # Concurrency
//
// All calls block until the transport returns. A Project is not safe for
// concurrent use; callers sharing one must serialize access.
//
// # Example
//
//	cfg := gns3.DefaultConfig()
//	cfg.URL = "http://localhost:3080"
//	conn, err := gns3.NewConnector(cfg, gns3.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	project, err := gns3.SearchProject(ctx, conn, gns3.ByName("lab1"))
package gns3
