package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/gns3ctl/internal/cmd/base"
	"github.com/hashicorp-forge/gns3ctl/internal/config"
	"github.com/hashicorp-forge/gns3ctl/pkg/gns3"
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

func TestParseSince(t *testing.T) {
	got, err := parseSince("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = parseSince("2024-03-01")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)), got.String())

	_, err = parseSince("not a date")
	assert.ErrorContains(t, err, `invalid since date "not a date"`)
}

func TestSince(t *testing.T) {
	cut := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	old := &gns3.Snapshot{Name: "old", CreatedAt: cut.Add(-time.Hour).Unix()}
	fresh := &gns3.Snapshot{Name: "fresh", CreatedAt: cut.Add(time.Hour).Unix()}
	all := []*gns3.Snapshot{old, fresh}

	assert.Equal(t, all, Since(all, time.Time{}))
	assert.Equal(t, []*gns3.Snapshot{fresh}, Since(all, cut))
	assert.Empty(t, Since(all, cut.Add(2*time.Hour)))
}

func TestCommands(t *testing.T) {
	srv, b, ui := setup(t)
	pid := srv.AddProject("lab1")
	srv.AddSnapshot(pid, "baseline", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))

	code := (&CreateCommand{Command: b}).Run([]string{"-project", "lab1", "-name", "after-ospf"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	ui.OutputWriter.Reset()
	code = (&ListCommand{Command: b}).Run([]string{"-project", "lab1", "-since", "2024-01-01"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "after-ospf")
	assert.NotContains(t, ui.OutputWriter.String(), "baseline")

	code = (&RestoreCommand{Command: b}).Run([]string{"-project", "lab1", "-name", "baseline"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "Restored project lab1 to snapshot baseline")

	code = (&RestoreCommand{Command: b}).Run([]string{"-project", "lab1", "-name", "missing"})
	assert.Equal(t, 1, code)
}
