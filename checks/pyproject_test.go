package checks_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdsfoundry/pdklint/checks"
	"github.com/gdsfoundry/pdklint/checks/checktest"
)

// completePyproject satisfies every sub-check of the pyproject rule.
const completePyproject = `[build-system]
requires = ["setuptools>=60", "wheel"]
build-backend = "setuptools.build_meta"

[project]
name = "demo-pdk"
version = "1.0.0"
description = "Demo process design kit"
readme = "README.md"
requires-python = ">=3.11"
authors = [{name = "Demo Authors"}]
license = {file = "LICENSE"}
keywords = ["python", "photonics"]
classifiers = ["Programming Language :: Python :: 3.11"]
dependencies = ["gdsfactory~=9.9"]

[project.optional-dependencies]
dev = ["pytest", "pytest-cov", "pytest_regressions", "pre-commit"]
docs = ["jupytext", "jupyter-book"]

[tool.ruff]
fix = true

[tool.ruff.lint]
select = ["B", "C", "D", "E", "F", "I", "T10", "UP", "W"]
ignore = ["E501", "B008", "C901", "B905", "C408"]

[tool.ruff.lint.pydocstyle]
convention = "google"

[tool.codespell]
ignore-words-list = "te, ba, fpr, ro, nd, donot, schem"

[tool.pytest.ini_options]
testpaths = ["tests"]
addopts = "--tb=short"

[tool.setuptools.package-data]
"*" = ["*.csv", "*.yaml", "*.yml", "*.gds", "*.lyp", "*.oas", "*.lyt"]

[tool.tbump.version]
current = "1.0.0"

[tool.tbump.git]
message_template = "chore: bump v{current_version} -> {new_version}"
tag_template = "v{new_version}"

[[tool.tbump.file]]
src = "pyproject.toml"

[[tool.tbump.file]]
src = "README.md"

[[tool.tbump.file]]
src = "demo_pdk/__init__.py"

[tool.mypy]
strict = true

[tool.towncrier]
directory = ".changelog.d"
filename = "CHANGELOG.md"
template = ".changelog.d/changelog_template.jinja"
`

func TestPyprojectSectionsCompletePasses(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
`+completePyproject+`
-- demo_pdk/__init__.py --
`)
	result := checks.PyprojectSections(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
	assert.Empty(t, result.Warnings())
	assert.Equal(t, 0, result.Report())
}

func TestPyprojectSectionsMissingBuildSystem(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
`)
	result := checks.PyprojectSections(context.Background(), root, io.Discard)
	found := false
	for _, failure := range result.Errors() {
		if failure == "[build-system] section missing" {
			found = true
		}
	}
	assert.True(t, found)
	assert.Equal(t, 1, result.Report())
}

func TestPyprojectSectionsWrongReadme(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
`+replace(completePyproject, `readme = "README.md"`, `readme = "README.rst"`)+`
-- demo_pdk/__init__.py --
`)
	result := checks.PyprojectSections(context.Background(), root, io.Discard)
	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0], `README.rst`)
	assert.Contains(t, result.Errors()[0], `must be "README.md"`)
}

func TestPyprojectSectionsSelectInWrongTable(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[build-system]
requires = ["setuptools"]
build-backend = "setuptools.build_meta"

[project]
name = "demo-pdk"
version = "1.0.0"

[tool.ruff]
fix = true
select = ["E", "F"]
`)
	result := checks.PyprojectSections(context.Background(), root, io.Discard)
	found := false
	for _, failure := range result.Errors() {
		if failure == "[tool.ruff].select should be under [tool.ruff.lint].select" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPyprojectSectionsTbumpVersionMismatch(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
`+replace(completePyproject, `current = "1.0.0"`, `current = "1.0.1"`)+`
-- demo_pdk/__init__.py --
`)
	result := checks.PyprojectSections(context.Background(), root, io.Discard)
	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0], "does not match")
	assert.Contains(t, result.Errors()[0], "1.0.1")
}

func TestPyprojectSectionsPerFileIgnoresWarning(t *testing.T) {
	// A cells/__init__.py exists but nothing ignores F403 for it.
	root := checktest.Repo(t, `
-- pyproject.toml --
`+completePyproject+`
-- demo_pdk/__init__.py --
-- demo_pdk/cells/__init__.py --
-- demo_pdk/cells/straight.py --
`)
	result := checks.PyprojectSections(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
	require.Len(t, result.Warnings(), 1)
	assert.Contains(t, result.Warnings()[0], "F403")
	assert.Contains(t, result.Warnings()[0], "cells/__init__.py")
}

func TestPyprojectSectionsCodespellListForm(t *testing.T) {
	// ignore-words-list given as a TOML array instead of a comma string.
	root := checktest.Repo(t, `
-- pyproject.toml --
`+replace(completePyproject,
		`ignore-words-list = "te, ba, fpr, ro, nd, donot, schem"`,
		`ignore-words-list = ["te", "ba", "fpr", "ro", "nd", "donot", "schem"]`)+`
-- demo_pdk/__init__.py --
`)
	result := checks.PyprojectSections(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
	assert.Empty(t, result.Warnings())
}

func TestPyprojectSectionsMissingFile(t *testing.T) {
	root := t.TempDir()
	result := checks.PyprojectSections(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
	assert.NotEmpty(t, result.Warnings())
}

// replace swaps one fixture line for a broken variant.
func replace(fixture, from, to string) string {
	return strings.Replace(fixture, from, to, 1)
}
