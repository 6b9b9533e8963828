package gns3

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{name: "by name", query: ByName("R1")},
		{name: "by id", query: ByID("0b6f")},
		{name: "zero query", query: Query{}, wantErr: true},
		{name: "empty name", query: ByName(""), wantErr: true},
		{name: "empty id", query: ByID(""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	nodes := []*Node{
		{NodeID: "1", Name: "R1"},
		{NodeID: "2", Name: "R2"},
		{NodeID: "3", Name: "R1"},
	}

	n, ok := Resolve(nodes, ByName("R1"))
	assert.True(t, ok)
	assert.Equal(t, "1", n.NodeID)

	n, ok = Resolve(nodes, ByID("3"))
	assert.True(t, ok)
	assert.Equal(t, "R1", n.Name)

	_, ok = Resolve(nodes, ByName("R9"))
	assert.False(t, ok)

	_, ok = Resolve(nodes, Query{})
	assert.False(t, ok)
}

func TestResolve_DrawingMatchesSVG(t *testing.T) {
	drawings := []*Drawing{{DrawingID: "d1", SVG: "<svg/>"}}

	d, ok := Resolve(drawings, ByName("<svg/>"))
	assert.True(t, ok)
	assert.Equal(t, "d1", d.DrawingID)
}

func TestCheckQuery_Message(t *testing.T) {
	err := checkQuery("SearchNode", Query{}, "node")

	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "SearchNode", e.Op)
	assert.Equal(t, "need to submit either node name or node ID", e.Msg)
}
