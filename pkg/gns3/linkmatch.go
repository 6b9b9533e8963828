package gns3

// Endpoint is one side of a link: a node's port identified by adapter and
// port number. Label only carries the port's display name and takes no part
// in matching.
type Endpoint struct {
	NodeID        string `json:"node_id"`
	AdapterNumber int    `json:"adapter_number"`
	PortNumber    int    `json:"port_number"`
	Label         *Label `json:"label,omitempty"`
}

// Label is the text shown next to a link endpoint.
type Label struct {
	Text     string `json:"text"`
	Style    string `json:"style,omitempty"`
	X        *int   `json:"x,omitempty"`
	Y        *int   `json:"y,omitempty"`
	Rotation int    `json:"rotation,omitempty"`
}

// Name returns the endpoint's display name, if any.
func (e Endpoint) Name() string {
	if e.Label == nil {
		return ""
	}
	return e.Label.Text
}

// portKey is the identity of a physical port.
type portKey struct {
	nodeID  string
	adapter int
	port    int
}

func (e Endpoint) key() portKey {
	return portKey{nodeID: e.NodeID, adapter: e.AdapterNumber, port: e.PortNumber}
}

func (k portKey) less(o portKey) bool {
	if k.nodeID != o.nodeID {
		return k.nodeID < o.nodeID
	}
	if k.adapter != o.adapter {
		return k.adapter < o.adapter
	}
	return k.port < o.port
}

// SamePort reports whether e and o denote the same physical port.
func (e Endpoint) SamePort(o Endpoint) bool {
	return e.key() == o.key()
}

// portPair is an unordered pair of ports in canonical order.
type portPair [2]portKey

func pairOf(a, b Endpoint) portPair {
	ka, kb := a.key(), b.key()
	if kb.less(ka) {
		ka, kb = kb, ka
	}
	return portPair{ka, kb}
}

// FindEquivalent returns the first link connecting exactly the ports a and b,
// in either direction. Links that do not have two endpoints are skipped.
func FindEquivalent(links []*Link, a, b Endpoint) (*Link, bool) {
	want := pairOf(a, b)
	for _, l := range links {
		la, lb, ok := l.Endpoints()
		if !ok {
			continue
		}
		if pairOf(la, lb) == want {
			return l, true
		}
	}
	return nil, false
}

// FindOccupying returns the first link that uses any of the given ports on
// either of its sides.
func FindOccupying(links []*Link, endpoints ...Endpoint) (*Link, bool) {
	for _, l := range links {
		la, lb, ok := l.Endpoints()
		if !ok {
			continue
		}
		for _, e := range endpoints {
			if la.SamePort(e) || lb.SamePort(e) {
				return l, true
			}
		}
	}
	return nil, false
}
