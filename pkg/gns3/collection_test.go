package gns3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSet_KeepsFirstDuplicate(t *testing.T) {
	s := NewSet(
		&Node{NodeID: "a", Name: "first"},
		&Node{NodeID: "b", Name: "other"},
		&Node{NodeID: "a", Name: "second"},
	)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.IDs())
	n, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "first", n.Name)
}

func TestSet_AddReplacesInPlace(t *testing.T) {
	s := NewSet(&Node{NodeID: "a", Name: "R1"}, &Node{NodeID: "b", Name: "R2"})

	s.Add(&Node{NodeID: "a", Name: "R1-renamed"})
	s.Add(&Node{NodeID: "c", Name: "R3"})

	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
	n, _ := s.Get("a")
	assert.Equal(t, "R1-renamed", n.Name)
}

func TestSet_Remove(t *testing.T) {
	s := NewSet(&Link{LinkID: "1"}, &Link{LinkID: "2"}, &Link{LinkID: "3"})

	assert.True(t, s.Remove("2"))
	assert.False(t, s.Remove("2"))
	assert.Equal(t, []string{"1", "3"}, s.IDs())

	// The index must follow the shifted items.
	l, ok := s.Get("3")
	assert.True(t, ok)
	assert.Equal(t, "3", l.LinkID)
	assert.False(t, s.Contains("2"))
}

func TestSet_ItemsIsACopy(t *testing.T) {
	s := NewSet(&Snapshot{SnapshotID: "s1"})
	items := s.Items()
	items[0] = &Snapshot{SnapshotID: "other"}

	assert.Equal(t, []string{"s1"}, s.IDs())
}

func TestSet_NilAndZero(t *testing.T) {
	var nilSet *Set[*Node]
	assert.Equal(t, 0, nilSet.Len())
	assert.Nil(t, nilSet.Items())
	assert.False(t, nilSet.Contains("x"))

	var zero Set[*Node]
	zero.Add(&Node{NodeID: "a"})
	assert.Equal(t, 1, zero.Len())
}
