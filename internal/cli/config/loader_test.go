package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usemap-dev/usemap/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usemap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Cleanup(ResetConfig)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Nil(t, cfg)

	ResetConfig()
	cfg, err = LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.BaseDir)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Cleanup(ResetConfig)

	path := writeConfig(t, `
base_dir: ./specs
output: json
lint:
  disabled:
    - aggregate.group_by
  severity:
    import.dbml: warning
`)
	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "./specs", cfg.BaseDir)
	assert.Equal(t, "json", cfg.OutputFormat)
	require.NotNil(t, cfg.Lint)
	assert.Equal(t, []string{"aggregate.group_by"}, cfg.Lint.Disabled)
	assert.Equal(t, "warning", cfg.Lint.Severity["import.dbml"])
	assert.Equal(t, path, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestEnvOverridesFile(t *testing.T) {
	t.Cleanup(ResetConfig)

	path := writeConfig(t, "output: text\n")
	t.Setenv("USEMAP_OUTPUT", "json")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestFlagsOverrideEverything(t *testing.T) {
	t.Cleanup(ResetConfig)

	path := writeConfig(t, "output: text\nbase_dir: ./from-file\n")
	t.Setenv("USEMAP_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.String("base-dir", "", "")
	require.NoError(t, flags.Parse([]string{"--output=text", "--base-dir=./from-flag"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.Equal(t, "./from-flag", cfg.BaseDir)
}

func TestUnsetFlagsDoNotOverride(t *testing.T) {
	t.Cleanup(ResetConfig)

	path := writeConfig(t, "output: json\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestGetLogger(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))

	// Without a logger in context, a discard logger is returned.
	fallback := GetLogger(context.Background())
	require.NotNil(t, fallback)
	fallback.Debug("dropped")
}
