package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdsfoundry/pdklint/checks/checktest"
	"github.com/gdsfoundry/pdklint/config"
	"github.com/gdsfoundry/pdklint/repository"
)

func TestFindPackageDirFromSetuptoolsInclude(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"

[tool.setuptools.packages.find]
where = ["."]
include = ["demo_pdk", "demo_pdk.*"]
-- demo_pdk/__init__.py --
__version__ = "1.0.0"
`)
	doc, err := config.LoadTOML(context.Background(), filepath.Join(root, "pyproject.toml"))
	require.NoError(t, err)

	dir, ok := repository.New(root).FindPackageDir(context.Background(), doc)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "demo_pdk"), dir)
}

func TestFindPackageDirFromProjectName(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "Demo-PDK"
-- demo_pdk/__init__.py --
`)
	doc, err := config.LoadTOML(context.Background(), filepath.Join(root, "pyproject.toml"))
	require.NoError(t, err)

	dir, ok := repository.New(root).FindPackageDir(context.Background(), doc)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "demo_pdk"), dir)
}

func TestFindPackageDirScanSkipsKnownDirs(t *testing.T) {
	root := checktest.Repo(t, `
-- tests/__init__.py --
-- docs/__init__.py --
-- mypkg/__init__.py --
`)
	dir, ok := repository.New(root).FindPackageDir(context.Background(), config.Document{})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "mypkg"), dir)
}

func TestFindPackageDirNotFound(t *testing.T) {
	root := checktest.Repo(t, `
-- README.md --
no package here
`)
	_, ok := repository.New(root).FindPackageDir(context.Background(), config.Document{})
	assert.False(t, ok)
}

func TestFindBandDirs(t *testing.T) {
	root := checktest.Repo(t, `
-- pdk/__init__.py --
-- pdk/cband/__init__.py --
-- pdk/cband/tech.py --
-- pdk/cband/cells/__init__.py --
-- pdk/oband/__init__.py --
-- pdk/oband/tech.py --
-- pdk/_private/__init__.py --
-- pdk/_private/tech.py --
-- pdk/plain/__init__.py --
-- pdk/plain/readme.txt --
`)
	resolver := repository.New(root)
	pkgDir := filepath.Join(root, "pdk")

	bands := resolver.FindBandDirs(context.Background(), pkgDir)
	assert.Equal(t, []string{
		filepath.Join(pkgDir, "cband"),
		filepath.Join(pkgDir, "oband"),
	}, bands)
}

func TestPdkSubdirsFlatLayout(t *testing.T) {
	root := checktest.Repo(t, `
-- pdk/__init__.py --
-- pdk/tech.py --
`)
	resolver := repository.New(root)
	pkgDir := filepath.Join(root, "pdk")

	subdirs := resolver.PdkSubdirs(context.Background(), pkgDir)
	assert.Equal(t, []string{pkgDir}, subdirs)
}

func TestFindCellFiles(t *testing.T) {
	root := checktest.Repo(t, `
-- pdk/__init__.py --
-- pdk/cells/__init__.py --
-- pdk/cells/rings.py --
-- pdk/cells/waveguides.py --
`)
	resolver := repository.New(root)
	pkgDir := filepath.Join(root, "pdk")

	files := resolver.FindCellFiles(context.Background(), pkgDir)
	assert.Equal(t, []string{
		filepath.Join(pkgDir, "cells", "rings.py"),
		filepath.Join(pkgDir, "cells", "waveguides.py"),
	}, files)
}

func TestFindCellFilesFlatModule(t *testing.T) {
	root := checktest.Repo(t, `
-- pdk/__init__.py --
-- pdk/cells.py --
`)
	resolver := repository.New(root)
	files := resolver.FindCellFiles(context.Background(), filepath.Join(root, "pdk"))
	assert.Equal(t, []string{filepath.Join(root, "pdk", "cells.py")}, files)
}

func TestFindCellFilesPerBand(t *testing.T) {
	root := checktest.Repo(t, `
-- pdk/__init__.py --
-- pdk/cband/__init__.py --
-- pdk/cband/tech.py --
-- pdk/cband/cells/__init__.py --
-- pdk/cband/cells/rings.py --
`)
	resolver := repository.New(root)
	files := resolver.FindCellFiles(context.Background(), filepath.Join(root, "pdk"))
	assert.Equal(t, []string{filepath.Join(root, "pdk", "cband", "cells", "rings.py")}, files)
}
