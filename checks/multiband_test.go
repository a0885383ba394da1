package checks_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdsfoundry/pdklint/checks"
	"github.com/gdsfoundry/pdklint/checks/checktest"
)

func TestMultiBandFlatLayoutPasses(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
-- demo_pdk/__init__.py --
-- demo_pdk/cells.py --
-- demo_pdk/tech.py --
`)
	result := checks.MultiBand(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
	assert.Equal(t, 0, result.Report())
}

func TestMultiBandConsistentBandsPass(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
-- demo_pdk/__init__.py --
-- demo_pdk/layers.py --
-- demo_pdk/cband/__init__.py --
-- demo_pdk/cband/cells.py --
-- demo_pdk/cband/tech.py --
-- demo_pdk/oband/__init__.py --
-- demo_pdk/oband/cells.py --
-- demo_pdk/oband/tech.py --
`)
	result := checks.MultiBand(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
}

func TestMultiBandMissingSiblingKind(t *testing.T) {
	// cband carries a test module, oband does not: exactly one error
	// naming oband and the missing kind.
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
-- demo_pdk/__init__.py --
-- demo_pdk/layers.py --
-- demo_pdk/cband/__init__.py --
-- demo_pdk/cband/cells.py --
-- demo_pdk/cband/tech.py --
-- demo_pdk/oband/__init__.py --
-- demo_pdk/oband/cells.py --
-- demo_pdk/oband/tech.py --
-- tests/test_cband.py --
def test_pdk():
    pass
`)
	result := checks.MultiBand(context.Background(), root, io.Discard)
	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0], "oband")
	assert.Contains(t, result.Errors()[0], "test")
	assert.Equal(t, 1, result.Report())
}

func TestMultiBandMissingRequiredKind(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
-- demo_pdk/__init__.py --
-- demo_pdk/layers.py --
-- demo_pdk/cband/__init__.py --
-- demo_pdk/cband/cells.py --
-- demo_pdk/cband/tech.py --
-- demo_pdk/oband/__init__.py --
-- demo_pdk/oband/cells.py --
`)
	result := checks.MultiBand(context.Background(), root, io.Discard)
	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0], "oband")
	assert.Contains(t, result.Errors()[0], "tech")
}

func TestMultiBandLayersPlacement(t *testing.T) {
	// layers.py inside a band instead of the package root: two errors,
	// one for the duplicate and one for the missing shared copy.
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
-- demo_pdk/__init__.py --
-- demo_pdk/cband/__init__.py --
-- demo_pdk/cband/cells.py --
-- demo_pdk/cband/tech.py --
-- demo_pdk/cband/layers.py --
-- demo_pdk/oband/__init__.py --
-- demo_pdk/oband/cells.py --
-- demo_pdk/oband/tech.py --
`)
	result := checks.MultiBand(context.Background(), root, io.Discard)
	require.Len(t, result.Errors(), 2)
	assert.Contains(t, result.Errors()[0], "cband")
	assert.Contains(t, result.Errors()[1], "shared layers.py missing")
}
