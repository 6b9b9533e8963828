package gns3

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshots(t *testing.T) {
	srv, p := newTestProject(t, "lab1")
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	srv.AddSnapshot(p.ProjectID, "baseline", created)

	s, err := SearchSnapshot(ctx, p, ByName("baseline"))
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, s.Created().Equal(created))

	fresh, err := CreateSnapshot(ctx, p, "after-ospf")
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.SnapshotID)
	assert.Equal(t, 2, p.Snapshots.Len())

	_, err = CreateSnapshot(ctx, p, "baseline")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	_, err = CreateSnapshot(ctx, p, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, DeleteSnapshot(ctx, p, ByID(fresh.SnapshotID)))
	assert.False(t, p.Snapshots.Contains(fresh.SnapshotID))
	assert.ErrorIs(t, DeleteSnapshot(ctx, p, ByName("after-ospf")), ErrNotFound)
}

func TestRestoreSnapshot(t *testing.T) {
	srv, p := newTestProject(t, "lab1")
	ctx := context.Background()
	srv.AddSnapshot(p.ProjectID, "baseline", time.Now())

	ok, err := RestoreSnapshot(ctx, p, ByName("baseline"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = RestoreSnapshot(ctx, p, ByName("missing"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, ok)
}
