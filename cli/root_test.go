package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qyinm/trendtui/config"
	"github.com/qyinm/trendtui/types"
	"github.com/qyinm/trendtui/ui"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name        string
		npm         bool
		args        []string
		wantMode    types.SourceMode
		wantKeyword string
	}{
		{"trends default", false, nil, types.SearchTrends, "bitcoin"},
		{"trends keyword", false, []string{"golang"}, types.SearchTrends, "golang"},
		{"npm default", true, nil, types.PackageDownloads, "react"},
		{"npm package", true, []string{"@types/node"}, types.PackageDownloads, "@types/node"},
		{"blank keyword", false, []string{"  "}, types.SearchTrends, "bitcoin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, keyword := ParseArgs(tt.npm, tt.args)
			assert.Equal(t, tt.wantMode, mode)
			assert.Equal(t, tt.wantKeyword, keyword)
		})
	}
}

// capture returns a runner that records the model instead of starting a program
func capture(got *ui.Model) runner {
	return func(m tea.Model) error {
		*got = m.(ui.Model)
		return nil
	}
}

func TestRunBuildsModel(t *testing.T) {
	isolate(t)

	var got ui.Model
	cmd := newRootCommand(capture(&got))
	cmd.SetArgs([]string{"--npm", "--theme", "nord", "bubbletea"})
	require.NoError(t, cmd.Execute())

	state := got.State()
	assert.Equal(t, types.PackageDownloads, state.Mode())
	assert.Equal(t, "bubbletea", state.Keyword())
	assert.Equal(t, 4, state.ThemeIndex())
}

func TestRunUsesConfigTheme(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: Amber\n"), 0o600))

	var got ui.Model
	cmd := newRootCommand(capture(&got))
	cmd.SetArgs([]string{"--config", path})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 3, got.State().ThemeIndex())
	assert.Equal(t, "bitcoin", got.State().Keyword())
}

func TestRunRejectsUnknownTheme(t *testing.T) {
	isolate(t)

	cmd := newRootCommand(func(tea.Model) error {
		t.Fatal("dashboard must not start")
		return nil
	})
	cmd.SetArgs([]string{"--theme", "solarized"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")
}

func TestRunRejectsExtraArgs(t *testing.T) {
	isolate(t)

	cmd := newRootCommand(capture(new(ui.Model)))
	cmd.SetArgs([]string{"one", "two"})
	assert.Error(t, cmd.Execute())
}

func TestRunWrapsProgramError(t *testing.T) {
	isolate(t)

	cmd := newRootCommand(func(tea.Model) error { return errors.New("no tty") })
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running dashboard: no tty")
}

func TestOpenLoggerDebugWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")

	logger, closer, err := openLogger(config.LoggingConfig{Level: "info", File: path}, true)
	require.NoError(t, err)
	logger.Debug("visible at debug")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible at debug")
}
