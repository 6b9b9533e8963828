package gns3

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTemplate(t *testing.T) {
	srv, c := newTestConnector(t)
	ctx := context.Background()
	id := srv.AddTemplate("vyos", "router", nil)

	tpl, err := SearchTemplate(ctx, c, ByName("does-not-exist"))
	assert.NoError(t, err)
	assert.Nil(t, tpl)

	tpl, err = SearchTemplate(ctx, c, ByName("vyos"))
	require.NoError(t, err)
	require.NotNil(t, tpl)
	assert.Equal(t, id, tpl.TemplateID)
	assert.Equal(t, "qemu", tpl.TemplateType)
	assert.Equal(t, float64(256), tpl.Properties["ram"])

	_, err = SearchTemplate(ctx, c, ByID(""))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateTemplate(t *testing.T) {
	srv, c := newTestConnector(t)
	ctx := context.Background()

	tpl, err := CreateTemplate(ctx, c, Template{
		Name:         "alpine",
		TemplateType: "docker",
		Properties:   map[string]any{"image": "alpine:latest"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.TemplateID)
	assert.Equal(t, LocalCompute, tpl.ComputeID)

	_, err = CreateTemplate(ctx, c, Template{Name: "alpine", TemplateType: "docker"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, 1, srv.Count(http.MethodPost, "/v2/templates"))

	_, err = CreateTemplate(ctx, c, Template{Name: "no-type"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeleteTemplate(t *testing.T) {
	srv, c := newTestConnector(t)
	ctx := context.Background()
	srv.AddTemplate("vyos", "router", nil)

	assert.ErrorIs(t, DeleteTemplate(ctx, c, ByName("missing")), ErrNotFound)
	require.NoError(t, DeleteTemplate(ctx, c, ByName("vyos")))

	tpl, err := SearchTemplate(ctx, c, ByName("vyos"))
	require.NoError(t, err)
	assert.Nil(t, tpl)
}

func TestTemplate_JSONProperties(t *testing.T) {
	tpl := Template{
		Name:         "vyos",
		TemplateType: "qemu",
		Properties:   map[string]any{"ram": 512, "name": "ignored"},
	}

	data, err := json.Marshal(tpl)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"vyos","template_type":"qemu","ram":512}`, string(data))

	var decoded Template
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "vyos", decoded.Name)
	assert.Equal(t, map[string]any{"ram": float64(512)}, decoded.Properties)
}
