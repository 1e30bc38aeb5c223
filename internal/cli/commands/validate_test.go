package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usemap-dev/usemap/internal/cli/config"
	"github.com/usemap-dev/usemap/pkg/lint"
)

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	// The bare subcommand does not inherit the root command's
	// SilenceErrors/SilenceUsage; without these cobra appends
	// "Error: ..." and usage text after the command's own output.
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := cmd.Execute()
	return out.String(), err
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	assert.Equal(t, "validate <file>", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Example)

	for _, flag := range []string{"resolve", "base-dir", "format", "disable", "severity"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestValidateCleanDocument(t *testing.T) {
	path := writeDoc(t, "ok.yaml", `
version: "0.1"
import:
  dbml:
    - ./schema.dbml#tables["users"]
usecase:
  name: test
  response_mapping:
    - field: id
      source: users.id
`)
	out, err := execute(t, NewValidateCommand(), path, "--format", "json")
	require.NoError(t, err)

	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "ok", result.Status)
	assert.Empty(t, result.Diagnostics)
}

func TestValidateReportsErrors(t *testing.T) {
	path := writeDoc(t, "bad.yaml", `
version: "0.1"
import: {}
usecase:
  name: test
  response_mapping:
    - field: id
      source: users.id
`)
	out, err := execute(t, NewValidateCommand(), path, "--format", "json")
	require.ErrorIs(t, err, errValidationFailed)

	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "error", result.Status)
	require.NotEmpty(t, result.Diagnostics)
	assert.Equal(t, "import.dbml", result.Diagnostics[0].RuleID)
}

func TestValidateParseFailureInJSON(t *testing.T) {
	path := writeDoc(t, "broken.yaml", "version: [oops")

	out, err := execute(t, NewValidateCommand(), path, "--format", "json")
	require.ErrorIs(t, err, errValidationFailed)

	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "error", result.Status)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "parse", result.Diagnostics[0].RuleID)
}

func TestValidateDisableFlag(t *testing.T) {
	path := writeDoc(t, "bad.yaml", `
version: "0.1"
import: {}
usecase:
  name: test
  response_mapping:
    - field: id
      source: users.id
`)
	out, err := execute(t, NewValidateCommand(), path, "--format", "json", "--disable", "import.dbml")
	require.NoError(t, err)

	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "ok", result.Status)
}

func TestValidateWithResolveFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.dbml"), []byte(`
Table users {
    id integer [pk]
    name varchar
}
`), 0o644))
	docPath := filepath.Join(dir, "usecase.yaml")
	require.NoError(t, os.WriteFile(docPath, []byte(`
version: "0.1"
import:
  dbml:
    - ./schema.dbml#tables["users"]
usecase:
  name: test
  response_mapping:
    - field: id
      source: users.id
    - field: nickname
      source: users.nickname
`), 0o644))

	// Base dir defaults to the document's directory.
	out, err := execute(t, NewValidateCommand(), docPath, "--resolve", "--format", "json")
	require.ErrorIs(t, err, errValidationFailed)

	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "error", result.Status)

	var ids []string
	for _, d := range result.Diagnostics {
		ids = append(ids, d.RuleID)
	}
	assert.Contains(t, ids, "dbml.columns")
}

func TestValidateSeverityThresholdKeepsExitStatus(t *testing.T) {
	// The document yields an import.dbml error and an
	// aggregate.group_by warning.
	path := writeDoc(t, "mixed.yaml", `
version: "0.1"
import: {}
usecase:
  name: test
  response_mapping:
    - field: id
      source: users.id
    - field: post_count
      source: posts.id
      aggregate:
        type: COUNT
`)
	out, err := execute(t, NewValidateCommand(), path, "--format", "json", "--severity", "error")
	require.ErrorIs(t, err, errValidationFailed)

	var result ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "error", result.Status)
	require.NotEmpty(t, result.Diagnostics)
	for _, d := range result.Diagnostics {
		assert.Equal(t, lint.SeverityError, d.Severity)
	}
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("empty options", func(t *testing.T) {
		cfg := buildLintConfig(nil, &ValidateOptions{})
		require.NotNil(t, cfg)
		assert.False(t, cfg.IsDisabled("import.dbml"))
	})

	t.Run("disable rules", func(t *testing.T) {
		cfg := buildLintConfig(nil, &ValidateOptions{Disable: []string{"import.dbml", " join.on "}})
		assert.True(t, cfg.IsDisabled("import.dbml"))
		assert.True(t, cfg.IsDisabled("join.on"))
		assert.False(t, cfg.IsDisabled("join.alias"))
	})

	t.Run("project config", func(t *testing.T) {
		projectCfg := &config.Config{
			Lint: &config.LintConfig{
				Disabled: []string{"aggregate.group_by"},
				Severity: map[string]string{"import.dbml": "warning"},
			},
		}
		cfg := buildLintConfig(projectCfg, &ValidateOptions{})
		assert.True(t, cfg.IsDisabled("aggregate.group_by"))
		assert.Equal(t, lint.SeverityWarning, cfg.GetSeverity("import.dbml", lint.SeverityError))
	})
}

func TestFilterBySeverity(t *testing.T) {
	diags := []lint.Diagnostic{
		{RuleID: "a", Severity: lint.SeverityError},
		{RuleID: "b", Severity: lint.SeverityWarning},
		{RuleID: "c", Severity: lint.SeverityHint},
	}

	assert.Len(t, filterBySeverity(diags, "hint"), 3)
	assert.Len(t, filterBySeverity(diags, "warning"), 2)
	assert.Len(t, filterBySeverity(diags, "error"), 1)
	assert.Len(t, filterBySeverity(diags, "bogus"), 3)
}
