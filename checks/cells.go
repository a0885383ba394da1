package checks

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/gdsfoundry/pdklint/inspector"
	"github.com/gdsfoundry/pdklint/repository"
)

// CellsStructure validates cell conventions: every public function returning
// the platform Component type must carry the cell decorator (resolved
// through import aliases), decorated functions need documented arguments,
// and the cells aggregator must re-export every cell module.
func CellsStructure(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("cells-structure", out)
	resolver := repository.New(root)

	pkgDir, ok := packageDir(ctx, resolver)
	if !ok {
		result.Warnf("could not find package directory — skipping")
		return result
	}

	for _, subdir := range resolver.PdkSubdirs(ctx, pkgDir) {
		cellsDir := filepath.Join(subdir, "cells")
		cellsModule := filepath.Join(subdir, "cells.py")

		switch {
		case resolver.IsDirAbs(cellsDir):
			var cellFiles []string
			for _, match := range resolver.Rglob(cellsDir, "*.py") {
				if filepath.Base(match) != "__init__.py" {
					cellFiles = append(cellFiles, match)
				}
			}
			for _, cellFile := range cellFiles {
				checkCellFile(ctx, root, cellFile, result)
			}
			aggregator := filepath.Join(cellsDir, "__init__.py")
			if resolver.Exists(ctx, rel(root, aggregator)) && len(cellFiles) > 0 {
				checkCellExports(ctx, root, aggregator, cellFiles, result)
			}
		case resolver.Exists(ctx, rel(root, cellsModule)):
			checkCellFile(ctx, root, cellsModule, result)
		default:
			result.Errorf("%s: no cells module found (expected cells/ or cells.py)", rel(root, subdir))
		}
	}

	return result
}

// checkCellFile verifies every public top-level function of one cell file.
func checkCellFile(ctx context.Context, root, location string, result *Result) {
	file, err := inspector.Parse(ctx, location)
	if err != nil || file.HasSyntaxError() {
		result.Warnf("%s: could not parse (syntax error)", rel(root, location))
		return
	}
	aliases := file.ImportAliases()

	for _, fn := range file.Functions() {
		if fn.IsPrivate() {
			continue
		}
		switch {
		case fn.HasCellDecorator(aliases):
			doc, ok := fn.Docstring()
			if !ok {
				result.Errorf("%s:%d cell function %q missing docstring", rel(root, location), fn.Line, fn.Name)
				continue
			}
			if len(fn.Params()) > 0 && !inspector.HasDocArgsSection(doc) {
				result.Errorf("%s:%d cell function %q docstring missing arguments section",
					rel(root, location), fn.Line, fn.Name)
			}
		case fn.ReturnsComponent(aliases):
			result.Errorf("%s:%d function %q returns Component but missing cell decorator",
				rel(root, location), fn.Line, fn.Name)
		}
	}
}

// checkCellExports verifies the re-export-only aggregator imports every cell
// module.
func checkCellExports(ctx context.Context, root, aggregator string, cellFiles []string, result *Result) {
	file, err := inspector.Parse(ctx, aggregator)
	if err != nil || file.HasSyntaxError() {
		return
	}
	exported := file.ReexportedModules()
	for _, cellFile := range cellFiles {
		module := strings.TrimSuffix(filepath.Base(cellFile), ".py")
		if _, ok := exported[module]; !ok {
			result.Errorf("%s: cell module %q is not re-exported (missing import from .%s)",
				rel(root, aggregator), module, module)
		}
	}
}
