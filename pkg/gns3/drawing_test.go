package gns3

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/gns3ctl/pkg/gns3/svg"
)

func TestDrawings(t *testing.T) {
	_, p := newTestProject(t, "lab1")
	ctx := context.Background()
	box := svg.DefaultRectangle().String()

	d, err := CreateDrawing(ctx, p, Drawing{SVG: box, X: svg.ParsedX(2, 200), Y: svg.ParsedY(1, 100)})
	require.NoError(t, err)
	assert.NotEmpty(t, d.DrawingID)
	assert.Equal(t, 400, d.X)
	assert.Equal(t, -100, d.Y)
	assert.True(t, p.Drawings.Contains(d.DrawingID))

	_, err = CreateDrawing(ctx, p, Drawing{SVG: box})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	_, err = CreateDrawing(ctx, p, Drawing{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	found, err := SearchDrawing(ctx, p, ByName(box))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, d.DrawingID, found.DrawingID)

	require.NoError(t, DeleteDrawing(ctx, p, ByID(d.DrawingID)))
	assert.Equal(t, 0, p.Drawings.Len())
	assert.ErrorIs(t, DeleteDrawing(ctx, p, ByID(d.DrawingID)), ErrNotFound)
}
