package checks_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdsfoundry/pdklint/checks"
	"github.com/gdsfoundry/pdklint/checks/checktest"
)

func TestRequiresPytzAlreadyListedPasses(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
dependencies = [
    "gdsfactory~=9.9",
    "pytz",
]
`)
	before, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	require.NoError(t, err)

	result := checks.RequiresPytz(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
	assert.Equal(t, 0, result.Report())

	after, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	require.NoError(t, err)
	assert.Equal(t, before, after, "a passing run must not touch the file")
}

func TestRequiresPytzAutoFix(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
dependencies = [
    "gdsfactory~=9.9",
    "numpy",
]

[tool.mypy]
strict = true
`)
	result := checks.RequiresPytz(context.Background(), root, io.Discard)
	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0], "added automatically")
	assert.Equal(t, 1, result.Report())

	after, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	require.NoError(t, err)
	expected := `[project]
name = "demo-pdk"
version = "1.0.0"
dependencies = [
    "gdsfactory~=9.9",
    "numpy",
    "pytz",
]

[tool.mypy]
strict = true
`
	assert.Equal(t, expected, string(after), "the fix must be byte-identical outside the inserted entry")

	// The staged fix satisfies a second run.
	second := checks.RequiresPytz(context.Background(), root, io.Discard)
	assert.Empty(t, second.Errors())
	assert.Equal(t, 0, second.Report())
}

func TestRequiresPytzMatchesSingleQuoteStyle(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
dependencies = [
  'gdsfactory~=9.9',
]
`)
	result := checks.RequiresPytz(context.Background(), root, io.Discard)
	require.Len(t, result.Errors(), 1)

	after, err := os.ReadFile(filepath.Join(root, "pyproject.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(after), "  'pytz',\n]")
}

func TestRequiresPytzMissingPyprojectWarns(t *testing.T) {
	root := t.TempDir()
	result := checks.RequiresPytz(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
	assert.NotEmpty(t, result.Warnings())
	assert.Equal(t, 0, result.Report())
}

func TestRequiresPytzNoDependencyArrayWarns(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
`)
	result := checks.RequiresPytz(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
	assert.NotEmpty(t, result.Warnings())
}
