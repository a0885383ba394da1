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

func TestPdkObjectCompletePasses(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
-- demo_pdk/__init__.py --
from gdsfactory.pdk import Pdk
from gdsfactory.get_factories import get_cells

from demo_pdk import cells as cells_module
from demo_pdk.tech import LAYER, LAYER_STACK, LAYER_VIEWS, cross_sections, routing_strategies

_cells = get_cells(cells_module)

PDK = Pdk(
    name="demo_pdk",
    cells=_cells,
    layers=LAYER,
    cross_sections=cross_sections,
    layer_views=LAYER_VIEWS,
    layer_stack=LAYER_STACK,
    routing_strategies=routing_strategies,
)
`)
	result := checks.PdkObject(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
	assert.Empty(t, result.Warnings())
	assert.Equal(t, 0, result.Report())
}

func TestPdkObjectMissingRequiredKwargs(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
-- demo_pdk/__init__.py --
from gdsfactory.pdk import Pdk

PDK = Pdk(
    name="demo_pdk",
    cross_sections={},
)
`)
	result := checks.PdkObject(context.Background(), root, io.Discard)
	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0], "cells")
	assert.Contains(t, result.Errors()[0], "layers")
	assert.Equal(t, 1, result.Report())
}

func TestPdkObjectNoConstructorCall(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
-- demo_pdk/__init__.py --
__version__ = "1.0.0"
`)
	result := checks.PdkObject(context.Background(), root, io.Discard)
	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0], "no Pdk() constructor call")
}

func TestPdkObjectStaticCellsWarns(t *testing.T) {
	// cells sourced from a literal dict instead of get_cells().
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
-- demo_pdk/__init__.py --
from gdsfactory.pdk import Pdk
from demo_pdk.cells import straight

PDK = Pdk(
    name="demo_pdk",
    cells={"straight": straight},
    layers={},
    cross_sections={},
    layer_views=None,
    layer_stack=None,
    routing_strategies={},
)
`)
	result := checks.PdkObject(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
	require.Len(t, result.Warnings(), 1)
	assert.Contains(t, result.Warnings()[0], "get_cells()")
}

func TestPdkObjectInlineGetCellsAccepted(t *testing.T) {
	root := checktest.Repo(t, `
-- pyproject.toml --
[project]
name = "demo-pdk"
version = "1.0.0"
-- demo_pdk/__init__.py --
import gdsfactory as gf
from gdsfactory.get_factories import get_cells

from demo_pdk import cells as cells_module

PDK = gf.Pdk(
    name="demo_pdk",
    cells=get_cells(cells_module),
    layers={},
    cross_sections={},
    layer_views=None,
    layer_stack=None,
    routing_strategies={},
)
`)
	result := checks.PdkObject(context.Background(), root, io.Discard)
	assert.Empty(t, result.Errors())
	assert.Empty(t, result.Warnings())
}
