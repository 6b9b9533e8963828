package compute

import (
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/internal/config"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3/gns3test"
)

func setup(t *testing.T) (*gns3test.Server, *base.Command, *cli.MockUi) {
	t.Helper()
	srv := gns3test.NewServer(t)
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "missing.hcl"))
	t.Setenv(config.EnvServer, "")
	t.Setenv(config.EnvURL, srv.URL)

	ui := cli.NewMockUi()
	return srv, &base.Command{Log: hclog.NewNullLogger(), UI: ui}, ui
}

func TestUploadAndImages(t *testing.T) {
	srv, b, ui := setup(t)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/alpine.qcow2", make([]byte, 10), 0o644))

	code := (&UploadCommand{Command: b, FS: fs}).Run([]string{"-emulator", "qemu", "/tmp/alpine.qcow2"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	data, ok := srv.Upload("local", "qemu", "alpine.qcow2")
	require.True(t, ok)
	assert.Len(t, data, 10)

	ui.OutputWriter.Reset()
	code = (&ImagesCommand{Command: b}).Run(nil)
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "alpine.qcow2")
	assert.Contains(t, ui.OutputWriter.String(), "1.0 kB")

	code = (&UploadCommand{Command: b, FS: fs}).Run([]string{"/tmp/missing.qcow2"})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "could not find file")

	assert.Equal(t, 1, (&UploadCommand{Command: b, FS: fs}).Run(nil))
}

func TestListCommand(t *testing.T) {
	_, b, ui := setup(t)

	code := (&ListCommand{Command: b}).Run(nil)
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "local")
	assert.Contains(t, ui.OutputWriter.String(), "true")
}
