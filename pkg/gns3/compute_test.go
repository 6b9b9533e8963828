package gns3

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	_, c := newTestConnector(t)

	v, err := GetVersion(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "2.2.44", v.Version)
	assert.True(t, v.Local)
}

func TestGetComputes(t *testing.T) {
	_, c := newTestConnector(t)

	computes, err := GetComputes(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, computes, 1)
	assert.Equal(t, LocalCompute, computes[0].ComputeID)
	assert.True(t, computes[0].Connected)
}

func TestUploadComputeImage(t *testing.T) {
	srv, c := newTestConnector(t)
	ctx := context.Background()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/images/vyos-1.4.qcow2", []byte("qcow"), 0o644))
	require.NoError(t, fs.MkdirAll("/images/dir", 0o755))

	require.NoError(t, UploadComputeImage(ctx, c, fs, "qemu", "/images/vyos-1.4.qcow2", ""))
	data, ok := srv.Upload(LocalCompute, "qemu", "vyos-1.4.qcow2")
	require.True(t, ok)
	assert.Equal(t, "qcow", string(data))

	images, err := GetComputeImages(ctx, c, "qemu", "")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "vyos-1.4.qcow2", images[0].Filename)

	err = UploadComputeImage(ctx, c, fs, "qemu", "/images/missing.qcow2", "")
	assert.ErrorIs(t, err, ErrNotFound)
	err = UploadComputeImage(ctx, c, fs, "qemu", "/images/dir", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	err = UploadComputeImage(ctx, c, fs, "", "/images/vyos-1.4.qcow2", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGetCompute(t *testing.T) {
	srv, c := newTestConnector(t)
	ctx := context.Background()
	pid := srv.AddProject("lab1")
	srv.AddNode(pid, "R1", nil)
	srv.AddNode(pid, "R2", nil)

	compute, err := GetCompute(ctx, c, "")
	require.NoError(t, err)
	assert.Equal(t, LocalCompute, compute.ComputeID)

	ports, err := GetComputePorts(ctx, c, LocalCompute)
	require.NoError(t, err)
	assert.Equal(t, []int{5001, 5002}, ports.ConsolePorts)
	assert.Equal(t, []int{5000, 10000}, ports.ConsolePortRange)

	_, err = GetCompute(ctx, c, "vm-1")
	assert.True(t, IsStatus(err, 404))
}
