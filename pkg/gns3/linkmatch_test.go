package gns3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ep(node string, adapter, port int, label string) Endpoint {
	e := Endpoint{NodeID: node, AdapterNumber: adapter, PortNumber: port}
	if label != "" {
		e.Label = &Label{Text: label}
	}
	return e
}

func TestFindEquivalent(t *testing.T) {
	r1e0 := ep("r1", 0, 0, "Ethernet0")
	r2e0 := ep("r2", 0, 0, "Ethernet0")
	r2e1 := ep("r2", 1, 0, "Ethernet1")

	links := []*Link{
		{LinkID: "broken", Nodes: []Endpoint{r1e0}},
		{LinkID: "l1", Nodes: []Endpoint{r1e0, r2e0}},
		{LinkID: "l2", Nodes: []Endpoint{r1e0, r2e0}},
	}

	tests := []struct {
		name   string
		a, b   Endpoint
		wantID string
	}{
		{name: "same direction", a: r1e0, b: r2e0, wantID: "l1"},
		{name: "reversed", a: r2e0, b: r1e0, wantID: "l1"},
		{name: "labels ignored", a: ep("r1", 0, 0, "Gi0/0"), b: ep("r2", 0, 0, ""), wantID: "l1"},
		{name: "different port", a: r1e0, b: r2e1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, ok := FindEquivalent(links, tt.a, tt.b)
			if tt.wantID == "" {
				assert.False(t, ok)
				assert.Nil(t, l)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.wantID, l.LinkID)
		})
	}
}

func TestFindEquivalent_Symmetric(t *testing.T) {
	ports := []Endpoint{
		ep("a", 0, 0, ""), ep("a", 0, 1, ""), ep("a", 1, 0, ""),
		ep("b", 0, 0, ""), ep("b", 2, 3, ""),
	}
	var links []*Link
	for i := 0; i < len(ports); i += 2 {
		if i+1 < len(ports) {
			links = append(links, &Link{LinkID: ports[i].NodeID + ports[i+1].NodeID, Nodes: []Endpoint{ports[i], ports[i+1]}})
		}
	}

	for _, a := range ports {
		for _, b := range ports {
			l1, ok1 := FindEquivalent(links, a, b)
			l2, ok2 := FindEquivalent(links, b, a)
			assert.Equal(t, ok1, ok2)
			assert.Equal(t, l1, l2)
		}
	}
}

func TestFindOccupying(t *testing.T) {
	r1e0 := ep("r1", 0, 0, "")
	r2e0 := ep("r2", 0, 0, "")
	r3e0 := ep("r3", 0, 0, "")
	r3e1 := ep("r3", 1, 0, "")

	links := []*Link{{LinkID: "l1", Nodes: []Endpoint{r1e0, r2e0}}}

	l, ok := FindOccupying(links, r3e0, r2e0)
	assert.True(t, ok)
	assert.Equal(t, "l1", l.LinkID)

	_, ok = FindOccupying(links, r3e0, r3e1)
	assert.False(t, ok)

	_, ok = FindOccupying(nil, r1e0)
	assert.False(t, ok)
}

func TestEndpoint_SamePort(t *testing.T) {
	assert.True(t, ep("r1", 0, 1, "a").SamePort(ep("r1", 0, 1, "b")))
	assert.False(t, ep("r1", 0, 1, "").SamePort(ep("r1", 1, 0, "")))
	assert.Equal(t, "", ep("r1", 0, 0, "").Name())
	assert.Equal(t, "e0", ep("r1", 0, 0, "e0").Name())
}
