// Package gns3test provides an in-memory GNS3 server for tests.
//
// The server implements the subset of the v2 REST API the client uses and
// records every request so tests can assert on what was (or was not) sent.
package gns3test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Port is a node port as the server lists it.
type Port struct {
	Name          string `json:"name"`
	ShortName     string `json:"short_name"`
	AdapterNumber int    `json:"adapter_number"`
	PortNumber    int    `json:"port_number"`
	LinkType      string `json:"link_type"`
}

// EthernetPorts returns n ports named Ethernet0..Ethernet<n-1>, one per
// adapter.
func EthernetPorts(n int) []Port {
	ports := make([]Port, n)
	for i := range ports {
		ports[i] = Port{
			Name:          fmt.Sprintf("Ethernet%d", i),
			ShortName:     fmt.Sprintf("e%d", i),
			AdapterNumber: i,
			LinkType:      "ethernet",
		}
	}
	return ports
}

// Project is a stored project.
type Project struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	AutoClose *bool  `json:"auto_close,omitempty"`
}

// Template is a stored template. Ports are copied to nodes created from it.
type Template struct {
	TemplateID   string `json:"template_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	TemplateType string `json:"template_type"`
	ComputeID    string `json:"compute_id"`
	Builtin      bool   `json:"builtin"`
	RAM          int    `json:"ram,omitempty"`
	Ports        []Port `json:"-"`
}

// Node is a stored node.
type Node struct {
	NodeID      string         `json:"node_id"`
	ProjectID   string         `json:"project_id"`
	Name        string         `json:"name"`
	NodeType    string         `json:"node_type"`
	ComputeID   string         `json:"compute_id"`
	TemplateID  string         `json:"template_id,omitempty"`
	Console     int            `json:"console"`
	ConsoleType string         `json:"console_type"`
	Status      string         `json:"status"`
	X           int            `json:"x"`
	Y           int            `json:"y"`
	Ports       []Port         `json:"ports"`
	Properties  map[string]any `json:"properties,omitempty"`
}

// Label is a link endpoint label.
type Label struct {
	Text string `json:"text"`
}

// Endpoint is one side of a stored link.
type Endpoint struct {
	NodeID        string `json:"node_id"`
	AdapterNumber int    `json:"adapter_number"`
	PortNumber    int    `json:"port_number"`
	Label         *Label `json:"label,omitempty"`
}

// Link is a stored link.
type Link struct {
	LinkID    string     `json:"link_id"`
	ProjectID string     `json:"project_id"`
	LinkType  string     `json:"link_type"`
	Nodes     []Endpoint `json:"nodes"`
}

// Snapshot is a stored snapshot.
type Snapshot struct {
	SnapshotID string `json:"snapshot_id"`
	ProjectID  string `json:"project_id"`
	Name       string `json:"name"`
	CreatedAt  int64  `json:"created_at"`
}

// Drawing is a stored drawing.
type Drawing struct {
	DrawingID string `json:"drawing_id"`
	ProjectID string `json:"project_id"`
	SVG       string `json:"svg"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Z         int    `json:"z"`
	Locked    bool   `json:"locked"`
}

// Request is a recorded request.
type Request struct {
	Method string
	Path   string
	Header http.Header
}

// Server is a fake GNS3 server.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	projects  []*Project
	templates []*Template
	nodes     map[string][]*Node
	links     map[string][]*Link
	snapshots map[string][]*Snapshot
	drawings  map[string][]*Drawing
	images    map[string][]string
	uploads   map[string][]byte
	failures  map[string]int
	requests  []Request
	console   int
}

// NewServer starts a server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	s := &Server{
		nodes:     make(map[string][]*Node),
		links:     make(map[string][]*Link),
		snapshots: make(map[string][]*Snapshot),
		drawings:  make(map[string][]*Drawing),
		images:    make(map[string][]string),
		uploads:   make(map[string][]byte),
		failures:  make(map[string]int),
		console:   5000,
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v2/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"version": "2.2.44", "local": true})
	})

	mux.HandleFunc("GET /v2/projects", s.listProjects)
	mux.HandleFunc("POST /v2/projects", s.createProject)
	mux.HandleFunc("GET /v2/projects/{pid}", s.getProject)
	mux.HandleFunc("PUT /v2/projects/{pid}", s.getProject)
	mux.HandleFunc("DELETE /v2/projects/{pid}", s.deleteProject)
	mux.HandleFunc("POST /v2/projects/{pid}/open", s.setProjectStatus("opened"))
	mux.HandleFunc("POST /v2/projects/{pid}/close", s.setProjectStatus("closed"))

	mux.HandleFunc("GET /v2/templates", s.listTemplates)
	mux.HandleFunc("POST /v2/templates", s.createTemplate)
	mux.HandleFunc("GET /v2/templates/{tid}", s.getTemplate)
	mux.HandleFunc("DELETE /v2/templates/{tid}", s.deleteTemplate)

	mux.HandleFunc("POST /v2/projects/{pid}/templates/{tid}", s.createNodeFromTemplate)
	mux.HandleFunc("GET /v2/projects/{pid}/nodes", s.listNodes)
	mux.HandleFunc("POST /v2/projects/{pid}/nodes/{action}", s.nodesAction)
	mux.HandleFunc("GET /v2/projects/{pid}/nodes/{nid}", s.getNode)
	mux.HandleFunc("PUT /v2/projects/{pid}/nodes/{nid}", s.updateNode)
	mux.HandleFunc("DELETE /v2/projects/{pid}/nodes/{nid}", s.deleteNode)
	mux.HandleFunc("POST /v2/projects/{pid}/nodes/{nid}/{action}", s.nodeAction)

	mux.HandleFunc("GET /v2/projects/{pid}/links", s.listLinks)
	mux.HandleFunc("POST /v2/projects/{pid}/links", s.createLink)
	mux.HandleFunc("DELETE /v2/projects/{pid}/links/{lid}", s.deleteLink)

	mux.HandleFunc("GET /v2/projects/{pid}/snapshots", s.listSnapshots)
	mux.HandleFunc("POST /v2/projects/{pid}/snapshots", s.createSnapshot)
	mux.HandleFunc("DELETE /v2/projects/{pid}/snapshots/{sid}", s.deleteSnapshot)
	mux.HandleFunc("POST /v2/projects/{pid}/snapshots/{sid}/restore", s.restoreSnapshot)

	mux.HandleFunc("GET /v2/projects/{pid}/drawings", s.listDrawings)
	mux.HandleFunc("POST /v2/projects/{pid}/drawings", s.createDrawing)
	mux.HandleFunc("DELETE /v2/projects/{pid}/drawings/{did}", s.deleteDrawing)

	mux.HandleFunc("GET /v2/computes", s.listComputes)
	mux.HandleFunc("GET /v2/computes/{cid}", s.getCompute)
	mux.HandleFunc("GET /v2/computes/{cid}/ports", s.computePorts)
	mux.HandleFunc("GET /v2/computes/{cid}/{emulator}/images", s.listImages)
	mux.HandleFunc("POST /v2/computes/{cid}/{emulator}/images/{filename}", s.uploadImage)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone()})
		key := r.Method + " " + r.URL.Path
		status, fail := s.failures[key]
		s.mu.Unlock()

		if fail {
			writeError(w, status, "injected failure")
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// Fail makes every request with method to path answer status.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// Requests returns the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests with method hit path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// AddProject stores a project and returns its ID.
func (s *Server) AddProject(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &Project{ProjectID: uuid.NewString(), Name: name, Status: "opened"}
	s.projects = append(s.projects, p)
	return p.ProjectID
}

// AddTemplate stores a template whose nodes get the given ports.
func (s *Server) AddTemplate(name, category string, ports []Port) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &Template{
		TemplateID:   uuid.NewString(),
		Name:         name,
		Category:     category,
		TemplateType: "qemu",
		ComputeID:    "local",
		RAM:          256,
		Ports:        ports,
	}
	s.templates = append(s.templates, t)
	return t.TemplateID
}

// AddNode stores a node in a project and returns its ID.
func (s *Server) AddNode(projectID, name string, ports []Port) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.newNode(projectID, name, "qemu", "", ports)
	return n.NodeID
}

// AddLink stores a link between two ports without any validation. It is how
// tests set up links the client did not create.
func (s *Server) AddLink(projectID string, a, b Endpoint) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := &Link{LinkID: uuid.NewString(), ProjectID: projectID, LinkType: "ethernet", Nodes: []Endpoint{a, b}}
	s.links[projectID] = append(s.links[projectID], l)
	return l.LinkID
}

// AddSnapshot stores a snapshot created at the given time.
func (s *Server) AddSnapshot(projectID, name string, created time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := &Snapshot{SnapshotID: uuid.NewString(), ProjectID: projectID, Name: name, CreatedAt: created.Unix()}
	s.snapshots[projectID] = append(s.snapshots[projectID], snap)
	return snap.SnapshotID
}

// AddImage stores an image name for an emulator on a compute.
func (s *Server) AddImage(computeID, emulator, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := computeID + "/" + emulator
	s.images[key] = append(s.images[key], filename)
}

// Links returns the stored links of a project.
func (s *Server) Links(projectID string) []Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Link, 0, len(s.links[projectID]))
	for _, l := range s.links[projectID] {
		out = append(out, *l)
	}
	return out
}

// Node returns a stored node by name.
func (s *Server) Node(projectID, name string) (Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.nodes[projectID] {
		if n.Name == name {
			return *n, true
		}
	}
	return Node{}, false
}

// Upload returns an uploaded image's content.
func (s *Server) Upload(computeID, emulator, filename string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.uploads[computeID+"/"+emulator+"/"+filename]
	return data, ok
}

func (s *Server) newNode(projectID, name, nodeType, templateID string, ports []Port) *Node {
	s.console++
	n := &Node{
		NodeID:      uuid.NewString(),
		ProjectID:   projectID,
		Name:        name,
		NodeType:    nodeType,
		ComputeID:   "local",
		TemplateID:  templateID,
		Console:     s.console,
		ConsoleType: "telnet",
		Status:      "stopped",
		Ports:       append([]Port(nil), ports...),
	}
	s.nodes[projectID] = append(s.nodes[projectID], n)
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"message": msg, "status": status})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) project(id string) *Project {
	for _, p := range s.projects {
		if p.ProjectID == id {
			return p
		}
	}
	return nil
}

// withProject locks the server and answers 404 for unknown projects.
func (s *Server) withProject(w http.ResponseWriter, r *http.Request, fn func(p *Project)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.project(r.PathValue("pid"))
	if p == nil {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	fn(p)
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.projects)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var p Project
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.projects {
		if existing.Name == p.Name {
			writeError(w, http.StatusConflict, "project already exists")
			return
		}
	}
	if p.ProjectID == "" {
		p.ProjectID = uuid.NewString()
	}
	p.Status = "opened"
	s.projects = append(s.projects, &p)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		writeJSON(w, http.StatusOK, p)
	})
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		for i, existing := range s.projects {
			if existing == p {
				s.projects = append(s.projects[:i], s.projects[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *Server) setProjectStatus(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.withProject(w, r, func(p *Project) {
			p.Status = status
			if status == "closed" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			writeJSON(w, http.StatusCreated, p)
		})
	}
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.templates)
}

func (s *Server) template(id string) *Template {
	for _, t := range s.templates {
		if t.TemplateID == id {
			return t
		}
	}
	return nil
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	var t Template
	if err := decode(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.TemplateID = uuid.NewString()
	s.templates = append(s.templates, &t)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.template(r.PathValue("tid"))
	if t == nil {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.templates {
		if t.TemplateID == r.PathValue("tid") {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "template not found")
}

func (s *Server) createNodeFromTemplate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string         `json:"name"`
		X           int            `json:"x"`
		Y           int            `json:"y"`
		ComputeID   string         `json:"compute_id"`
		ConsoleType string         `json:"console_type"`
		Properties  map[string]any `json:"properties"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withProject(w, r, func(p *Project) {
		t := s.template(r.PathValue("tid"))
		if t == nil {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
		n := s.newNode(p.ProjectID, body.Name, t.TemplateType, t.TemplateID, t.Ports)
		n.X, n.Y = body.X, body.Y
		if body.ComputeID != "" {
			n.ComputeID = body.ComputeID
		}
		if body.ConsoleType != "" {
			n.ConsoleType = body.ConsoleType
		}
		if body.Properties != nil {
			n.Properties = body.Properties
		}
		writeJSON(w, http.StatusCreated, n)
	})
}

func (s *Server) listNodes(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		nodes := s.nodes[p.ProjectID]
		if nodes == nil {
			nodes = []*Node{}
		}
		writeJSON(w, http.StatusOK, nodes)
	})
}

func (s *Server) node(projectID, nodeID string) *Node {
	for _, n := range s.nodes[projectID] {
		if n.NodeID == nodeID {
			return n
		}
	}
	return nil
}

func (s *Server) getNode(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		n := s.node(p.ProjectID, r.PathValue("nid"))
		if n == nil {
			writeError(w, http.StatusNotFound, "node not found")
			return
		}
		writeJSON(w, http.StatusOK, n)
	})
}

func (s *Server) updateNode(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withProject(w, r, func(p *Project) {
		n := s.node(p.ProjectID, r.PathValue("nid"))
		if n == nil {
			writeError(w, http.StatusNotFound, "node not found")
			return
		}
		if v, ok := body["name"].(string); ok {
			n.Name = v
		}
		if v, ok := body["x"].(float64); ok {
			n.X = int(v)
		}
		if v, ok := body["y"].(float64); ok {
			n.Y = int(v)
		}
		if v, ok := body["console_type"].(string); ok {
			n.ConsoleType = v
		}
		if v, ok := body["properties"].(map[string]any); ok {
			n.Properties = v
		}
		writeJSON(w, http.StatusOK, n)
	})
}

func (s *Server) deleteNode(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		nodes := s.nodes[p.ProjectID]
		for i, n := range nodes {
			if n.NodeID == r.PathValue("nid") {
				s.nodes[p.ProjectID] = append(nodes[:i], nodes[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeError(w, http.StatusNotFound, "node not found")
	})
}

var nodeStatus = map[string]string{
	"start":   "started",
	"stop":    "stopped",
	"reload":  "started",
	"suspend": "suspended",
}

func (s *Server) nodesAction(w http.ResponseWriter, r *http.Request) {
	status, ok := nodeStatus[r.PathValue("action")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}
	s.withProject(w, r, func(p *Project) {
		for _, n := range s.nodes[p.ProjectID] {
			n.Status = status
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func (s *Server) nodeAction(w http.ResponseWriter, r *http.Request) {
	status, ok := nodeStatus[r.PathValue("action")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}
	s.withProject(w, r, func(p *Project) {
		n := s.node(p.ProjectID, r.PathValue("nid"))
		if n == nil {
			writeError(w, http.StatusNotFound, "node not found")
			return
		}
		n.Status = status
		writeJSON(w, http.StatusOK, n)
	})
}

func (s *Server) listLinks(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		links := s.links[p.ProjectID]
		if links == nil {
			links = []*Link{}
		}
		writeJSON(w, http.StatusOK, links)
	})
}

func samePort(a, b Endpoint) bool {
	return a.NodeID == b.NodeID && a.AdapterNumber == b.AdapterNumber && a.PortNumber == b.PortNumber
}

func (s *Server) createLink(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Nodes []Endpoint `json:"nodes"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withProject(w, r, func(p *Project) {
		if len(body.Nodes) != 2 {
			writeError(w, http.StatusBadRequest, "a link needs two nodes")
			return
		}
		for _, e := range body.Nodes {
			if s.node(p.ProjectID, e.NodeID) == nil {
				writeError(w, http.StatusNotFound, "node not found")
				return
			}
			for _, l := range s.links[p.ProjectID] {
				for _, used := range l.Nodes {
					if samePort(used, e) {
						writeError(w, http.StatusConflict, "port is already used")
						return
					}
				}
			}
		}
		l := &Link{LinkID: uuid.NewString(), ProjectID: p.ProjectID, LinkType: "ethernet", Nodes: body.Nodes}
		s.links[p.ProjectID] = append(s.links[p.ProjectID], l)
		writeJSON(w, http.StatusCreated, l)
	})
}

func (s *Server) deleteLink(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		links := s.links[p.ProjectID]
		for i, l := range links {
			if l.LinkID == r.PathValue("lid") {
				s.links[p.ProjectID] = append(links[:i], links[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeError(w, http.StatusNotFound, "link not found")
	})
}

func (s *Server) listSnapshots(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		snapshots := s.snapshots[p.ProjectID]
		if snapshots == nil {
			snapshots = []*Snapshot{}
		}
		writeJSON(w, http.StatusOK, snapshots)
	})
}

func (s *Server) createSnapshot(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withProject(w, r, func(p *Project) {
		snap := &Snapshot{
			SnapshotID: uuid.NewString(),
			ProjectID:  p.ProjectID,
			Name:       body.Name,
			CreatedAt:  time.Now().Unix(),
		}
		s.snapshots[p.ProjectID] = append(s.snapshots[p.ProjectID], snap)
		writeJSON(w, http.StatusCreated, snap)
	})
}

func (s *Server) deleteSnapshot(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		snapshots := s.snapshots[p.ProjectID]
		for i, snap := range snapshots {
			if snap.SnapshotID == r.PathValue("sid") {
				s.snapshots[p.ProjectID] = append(snapshots[:i], snapshots[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeError(w, http.StatusNotFound, "snapshot not found")
	})
}

func (s *Server) restoreSnapshot(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		for _, snap := range s.snapshots[p.ProjectID] {
			if snap.SnapshotID == r.PathValue("sid") {
				writeJSON(w, http.StatusCreated, p)
				return
			}
		}
		writeError(w, http.StatusNotFound, "snapshot not found")
	})
}

func (s *Server) listDrawings(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		drawings := s.drawings[p.ProjectID]
		if drawings == nil {
			drawings = []*Drawing{}
		}
		writeJSON(w, http.StatusOK, drawings)
	})
}

func (s *Server) createDrawing(w http.ResponseWriter, r *http.Request) {
	var d Drawing
	if err := decode(r, &d); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withProject(w, r, func(p *Project) {
		d.DrawingID = uuid.NewString()
		d.ProjectID = p.ProjectID
		s.drawings[p.ProjectID] = append(s.drawings[p.ProjectID], &d)
		writeJSON(w, http.StatusCreated, d)
	})
}

func (s *Server) deleteDrawing(w http.ResponseWriter, r *http.Request) {
	s.withProject(w, r, func(p *Project) {
		drawings := s.drawings[p.ProjectID]
		for i, d := range drawings {
			if d.DrawingID == r.PathValue("did") {
				s.drawings[p.ProjectID] = append(drawings[:i], drawings[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeError(w, http.StatusNotFound, "drawing not found")
	})
}

func (s *Server) localCompute() map[string]any {
	return map[string]any{
		"compute_id": "local",
		"name":       "local",
		"host":       strings.TrimPrefix(s.URL, "http://"),
		"protocol":   "http",
		"connected":  true,
	}
}

func (s *Server) listComputes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, []map[string]any{s.localCompute()})
}

func (s *Server) getCompute(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("cid") != "local" {
		writeError(w, http.StatusNotFound, "compute not found")
		return
	}
	writeJSON(w, http.StatusOK, s.localCompute())
}

// computePorts reports the console ports of every stored node.
func (s *Server) computePorts(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("cid") != "local" {
		writeError(w, http.StatusNotFound, "compute not found")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	consoles := []int{}
	for _, nodes := range s.nodes {
		for _, n := range nodes {
			consoles = append(consoles, n.Console)
		}
	}
	sort.Ints(consoles)
	writeJSON(w, http.StatusOK, map[string]any{
		"console_port_range": []int{5000, 10000},
		"console_ports":      consoles,
		"udp_port_range":     []int{10000, 20000},
		"udp_ports":          []int{},
	})
}

func (s *Server) listImages(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := r.PathValue("cid") + "/" + r.PathValue("emulator")
	images := make([]map[string]any, 0, len(s.images[key]))
	for _, name := range s.images[key] {
		images = append(images, map[string]any{"filename": name, "path": name, "filesize": 1024})
	}
	writeJSON(w, http.StatusOK, images)
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); ct != "application/octet-stream" {
		writeError(w, http.StatusUnsupportedMediaType, "unexpected content type "+ct)
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := r.PathValue("cid") + "/" + r.PathValue("emulator")
	s.uploads[key+"/"+r.PathValue("filename")] = data
	s.images[key] = append(s.images[key], r.PathValue("filename"))
	w.WriteHeader(http.StatusNoContent)
}
