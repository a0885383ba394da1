package checks

import (
	"context"
	"io"
	"path/filepath"
	"sort"

	"github.com/gdsfoundry/pdklint/inspector"
	"github.com/gdsfoundry/pdklint/repository"
)

var requiredPdkKwargs = []string{"name", "cells", "layers", "cross_sections"}

var recommendedPdkKwargs = []string{"layer_views", "layer_stack", "routing_strategies"}

// PdkObject validates the Pdk() constructor: it must be called somewhere in
// the package with the required fields, and should source its cells through
// get_cells() for dynamic discovery.
func PdkObject(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("pdk-object", out)
	resolver := repository.New(root)

	pkgDir, ok := packageDir(ctx, resolver)
	if !ok {
		result.Warnf("could not find package directory — skipping")
		return result
	}

	foundAny := false
	for _, subdir := range resolver.PdkSubdirs(ctx, pkgDir) {
		candidates := resolver.Rglob(subdir, "*.py")
		if resolver.IsDirAbs(filepath.Join(subdir, "pdk")) {
			candidates = append(candidates, resolver.Rglob(filepath.Join(subdir, "pdk"), "*.py")...)
		}
		sort.Strings(candidates)

		for _, location := range candidates {
			file, err := inspector.Parse(ctx, location)
			if err != nil || file.HasSyntaxError() {
				continue
			}
			aliases := file.ImportAliases()
			getCellsVars := file.GetCellsVars()

			for _, call := range file.PdkCalls(aliases) {
				foundAny = true

				var missing []string
				for _, kwarg := range requiredPdkKwargs {
					if _, ok := call.Keywords[kwarg]; !ok {
						missing = append(missing, kwarg)
					}
				}
				if len(missing) > 0 {
					result.Errorf("%s:%d Pdk() missing required kwargs: %v", rel(root, location), call.Line, missing)
				}

				var missingRec []string
				for _, kwarg := range recommendedPdkKwargs {
					if _, ok := call.Keywords[kwarg]; !ok {
						missingRec = append(missingRec, kwarg)
					}
				}
				if len(missingRec) > 0 {
					result.Warnf("%s:%d Pdk() missing recommended kwargs: %v", rel(root, location), call.Line, missingRec)
				}

				if cells, ok := call.Keywords["cells"]; ok && !file.IsGetCellsValue(cells, getCellsVars) {
					result.Warnf("%s:%d Pdk(cells=...) should use get_cells() for dynamic cell discovery",
						rel(root, location), call.Line)
				}
			}
		}
	}

	if !foundAny {
		result.Errorf("no Pdk() constructor call found in any package file")
	}

	return result
}
