package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plotpy/internal/adapters/config"
	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_NoFileYieldsDefaults(t *testing.T) {
	t.Setenv(domain.PythonEnvVar, "")

	cfg, err := newLoader(t).Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_ParsesFile(t *testing.T) {
	t.Setenv(domain.PythonEnvVar, "")
	dir := t.TempDir()
	path := writeConfig(t, dir, `
python: /opt/python/bin/python3.12
wait_delay: 500ms
output_dir: plots
history: runs/history.json
`)

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/python/bin/python3.12", cfg.Python)
	assert.Equal(t, 500*time.Millisecond, cfg.WaitDelay)
	assert.Equal(t, filepath.Join(dir, "plots"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(dir, "runs", "history.json"), cfg.HistoryPath)
}

func TestLoad_DiscoversFileInParent(t *testing.T) {
	t.Setenv(domain.PythonEnvVar, "")
	root := t.TempDir()
	writeConfig(t, root, "python: python3.11\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	cfg, err := newLoader(t).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, "python3.11", cfg.Python)
	assert.Equal(t, root, cfg.OutputDir)
	assert.Equal(t, domain.DefaultWaitDelay, cfg.WaitDelay)
}

func TestLoad_EmptyHistoryDisablesLedger(t *testing.T) {
	t.Setenv(domain.PythonEnvVar, "")
	path := writeConfig(t, t.TempDir(), "history: \"\"\n")

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.HistoryPath)
}

func TestLoad_AbsolutePathsAreKept(t *testing.T) {
	t.Setenv(domain.PythonEnvVar, "")
	out := t.TempDir()
	path := writeConfig(t, t.TempDir(), "output_dir: "+out+"\n")

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, out, cfg.OutputDir)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv(domain.PythonEnvVar, "/usr/bin/custom-python")
	path := writeConfig(t, t.TempDir(), "python: python3.11\n")

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/custom-python", cfg.Python)
}

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv(domain.PythonEnvVar, "cat")

	cfg, err := newLoader(t).Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "cat", cfg.Python)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv(domain.PythonEnvVar, "")

	tests := []struct {
		name    string
		content string
		errMsg  string
		target  error
	}{
		{
			name:    "invalid yaml",
			content: "python: [unterminated\n",
			errMsg:  "failed to parse config file",
			target:  domain.ErrLoadConfig,
		},
		{
			name:    "invalid wait delay",
			content: "wait_delay: soon\n",
			errMsg:  "invalid configuration",
			target:  domain.ErrInvalidConfig,
		},
		{
			name:    "negative wait delay",
			content: "wait_delay: -1s\n",
			errMsg:  "invalid configuration",
			target:  domain.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := newLoader(t).Load(path)
			require.ErrorIs(t, err, tt.target)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, domain.ErrLoadConfig)
	assert.ErrorContains(t, err, "failed to load configuration")
}
