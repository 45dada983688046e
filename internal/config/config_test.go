package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"flexpanes/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FLEXPANES_CONFIG", "")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "horizontal", cfg.Layout.Axis)
	assert.Equal(t, 1, cfg.Layout.SeparatorSize)
	assert.Zero(t, cfg.Throttle())
	assert.Len(t, cfg.Children, len(DefaultChildren()))
	for _, ch := range cfg.Children {
		assert.NotEmpty(t, ch.ID)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[layout]
axis = "vertical"
reversed = true
throttle_ms = 40
double_click_position = 12

[[children]]
id = "nav"
role = "panel"
fixed = true
fixed_height = 5
title = "Nav"

[[children]]
role = "separator"

[[children]]
role = "Panel"
proportion = 2
collapse_size = 2
command = "top -b"

[[children]]
role = "spacer"
size = 1
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	axis, err := cfg.AxisValue()
	require.NoError(t, err)
	assert.Equal(t, layout.Vertical, axis)
	assert.True(t, cfg.Layout.Reversed)
	assert.Equal(t, 40*time.Millisecond, cfg.Throttle())
	assert.Equal(t, 12.0, cfg.Layout.DoubleClickPosition)
	require.Len(t, cfg.Children, 4)
	assert.Equal(t, "nav", cfg.Children[0].ID)
	assert.NotEmpty(t, cfg.Children[1].ID, "missing IDs are generated")

	descs := cfg.Descriptors()
	assert.Equal(t, layout.RolePanel, descs[2].Role, "roles are case-insensitive")
	assert.Equal(t, 2.0, descs[2].Proportion)
	assert.Equal(t, "top -b", cfg.Children[2].Command)

	c := layout.Classify(descs)
	assert.Equal(t, 5.0, c.TotalFixedHeight)
	assert.Equal(t, 1.0, c.TotalSpacerSize)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[layout]\naxis = \"vertical\"\n")
	t.Setenv("FLEXPANES_LAYOUT_AXIS", "horizontal")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "horizontal", cfg.Layout.Axis)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
	t.Run("unknown axis", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[layout]\naxis = \"diagonal\"\n"))
		assert.ErrorIs(t, err, layout.ErrUnknownAxis)
	})
	t.Run("no panels", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[[children]]\nrole = \"spacer\"\nsize = 2\n"))
		assert.ErrorIs(t, err, ErrNoPanels)
	})
}

func TestValidate_ToleratesOddChildren(t *testing.T) {
	cfg := Config{Children: []Child{{Role: "panel", Fixed: true}, {Role: "banner"}}}

	assert.NoError(t, cfg.Validate())
}

func TestWatch_ReportsRewrites(t *testing.T) {
	path := writeConfig(t, `
[[children]]
id = "a"
role = "panel"
proportion = 1
`)
	changes := make(chan Config, 8)
	require.NoError(t, Watch(path, func(cfg Config, err error) {
		if err != nil {
			return
		}
		select {
		case changes <- cfg:
		default:
		}
	}))

	require.NoError(t, os.WriteFile(path, []byte(`
[[children]]
id = "a"
role = "panel"
proportion = 1

[[children]]
role = "separator"

[[children]]
id = "b"
role = "panel"
proportion = 2
`), 0o644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			// A truncated read in the middle of the write decodes to the
			// default layout; wait for the full file.
			if len(cfg.Children) == 3 && cfg.Children[2].ID == "b" {
				assert.Equal(t, 2.0, cfg.Children[2].Proportion)
				return
			}
		case <-timeout:
			t.Fatal("rewrite was not reported")
		}
	}
}

func TestWatch_NothingToWatchWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FLEXPANES_CONFIG", "")

	assert.NoError(t, Watch("", func(Config, error) { t.Error("unexpected change") }))
	_, err := os.Stat(filepath.Join(os.Getenv("HOME"), ".config", "flexpanes", "config.toml"))
	assert.True(t, os.IsNotExist(err))
}
