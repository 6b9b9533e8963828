package gns3

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/gns3ctl/pkg/gns3/gns3test"
)

// newTestConnector starts a fake server and connects to it without retries.
func newTestConnector(t *testing.T) (*gns3test.Server, *Connector) {
	t.Helper()
	srv := gns3test.NewServer(t)
	c, err := NewConnector(&Config{URL: srv.URL})
	require.NoError(t, err)
	return srv, c
}

// newTestProject stores a project on a fake server and returns it loaded.
func newTestProject(t *testing.T, name string) (*gns3test.Server, *Project) {
	t.Helper()
	srv, c := newTestConnector(t)
	srv.AddProject(name)
	p, err := SearchProject(context.Background(), c, ByName(name))
	require.NoError(t, err)
	require.NotNil(t, p)
	return srv, p
}

func TestCreateProject(t *testing.T) {
	srv, c := newTestConnector(t)
	ctx := context.Background()

	p, err := CreateProject(ctx, c, Project{Name: "lab1"})
	require.NoError(t, err)
	assert.Equal(t, "lab1", p.Name)
	assert.NotEmpty(t, p.ProjectID)
	assert.Same(t, c, p.Connector())
	assert.NotNil(t, p.Nodes)

	_, err = CreateProject(ctx, c, Project{Name: "lab1"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, 1, srv.Count(http.MethodPost, "/v2/projects"))

	_, err = CreateProject(ctx, c, Project{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSearchProject(t *testing.T) {
	srv, c := newTestConnector(t)
	ctx := context.Background()
	id := srv.AddProject("lab1")

	p, err := SearchProject(ctx, c, ByName("lab1"))
	require.NoError(t, err)
	assert.Equal(t, id, p.ProjectID)

	p, err = SearchProject(ctx, c, ByID(id))
	require.NoError(t, err)
	assert.Equal(t, "lab1", p.Name)

	p, err = SearchProject(ctx, c, ByName("missing"))
	assert.NoError(t, err)
	assert.Nil(t, p)

	_, err = SearchProject(ctx, c, Query{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeleteProject(t *testing.T) {
	srv, c := newTestConnector(t)
	ctx := context.Background()
	srv.AddProject("lab1")

	err := DeleteProject(ctx, c, ByName("missing"))
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, DeleteProject(ctx, c, ByName("lab1")))
	p, err := SearchProject(ctx, c, ByName("lab1"))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProject_OpenClose(t *testing.T) {
	_, p := newTestProject(t, "lab1")
	ctx := context.Background()

	require.NoError(t, p.Close(ctx))
	require.NoError(t, p.Get(ctx))
	assert.Equal(t, ProjectClosed, p.Status)

	require.NoError(t, p.Open(ctx))
	assert.Equal(t, ProjectOpened, p.Status)
}

func TestProject_GetKeepsCollections(t *testing.T) {
	srv, p := newTestProject(t, "lab1")
	ctx := context.Background()
	srv.AddNode(p.ProjectID, "R1", gns3test.EthernetPorts(1))

	require.NoError(t, RefreshProject(ctx, p, RefreshNodes))
	require.NoError(t, p.Get(ctx))
	assert.Equal(t, 1, p.Nodes.Len())
}

func TestProject_RequiresID(t *testing.T) {
	_, c := newTestConnector(t)
	p := c.Project("")

	assert.ErrorIs(t, p.Get(context.Background()), ErrInvalidArgument)
	assert.ErrorIs(t, RefreshProject(context.Background(), p, RefreshAll), ErrInvalidArgument)
}
