package checks

import (
	"context"
	"io"
	"path/filepath"

	"github.com/gdsfoundry/pdklint/inspector"
	"github.com/gdsfoundry/pdklint/repository"
)

// layerSourceFiles hold intentional low-level layer constants and are
// excluded from the raw-tuple check.
var layerSourceFiles = map[string]bool{
	"tech.py":   true,
	"layers.py": true,
	"config.py": true,
}

// NoRawLayers flags raw (int, int) layer tuples in cell code; cells must
// reference named layer constants instead. This rule has no warning tier:
// once the exclusions are applied, the pattern is unambiguous.
func NoRawLayers(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("no-raw-layers", out)
	resolver := repository.New(root)

	pkgDir, ok := packageDir(ctx, resolver)
	if !ok {
		return result
	}

	for _, cellFile := range resolver.FindCellFiles(ctx, pkgDir) {
		if layerSourceFiles[filepath.Base(cellFile)] {
			continue
		}
		file, err := inspector.Parse(ctx, cellFile)
		if err != nil || file.HasSyntaxError() {
			continue
		}
		for _, tuple := range file.RawLayerTuples() {
			result.Errorf("%s:%d raw layer tuple (%d, %d) — use a named LAYER constant instead",
				rel(root, cellFile), tuple.Line, tuple.A, tuple.B)
		}
	}

	return result
}
