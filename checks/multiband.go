package checks

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/gdsfoundry/pdklint/repository"
)

// bandKinds computes the set of module kinds one band provides. The test
// kind lives under the repository tests/ directory rather than the band
// itself.
func bandKinds(ctx context.Context, resolver *repository.Resolver, root, pkgName, band string) map[string]bool {
	sig := resolver.BandSignature(ctx, band)
	bandName := filepath.Base(band)
	testCandidates := []string{
		filepath.Join("tests", fmt.Sprintf("test_%s_%s.py", pkgName, bandName)),
		filepath.Join("tests", fmt.Sprintf("test_%s.py", bandName)),
		filepath.Join("tests", bandName, "test_pdk.py"),
		filepath.Join("tests", bandName, fmt.Sprintf("test_%s.py", pkgName)),
	}
	hasTest := false
	for _, candidate := range testCandidates {
		if resolver.Exists(ctx, candidate) {
			hasTest = true
			break
		}
	}
	return map[string]bool{
		"init":   sig.HasInit,
		"cells":  sig.HasCells,
		"tech":   sig.HasTech,
		"models": sig.HasModels,
		"test":   hasTest,
	}
}

// requiredKinds must be present in every band regardless of siblings.
var requiredKinds = []string{"init", "cells", "tech"}

// siblingKinds are required in a band only when another band provides them.
var siblingKinds = []string{"models", "test"}

// MultiBand validates multi-band consistency: every band carries the same
// module set, and shared resources such as the layer definition live exactly
// once at the package root. Flat repositories pass trivially.
func MultiBand(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("multi-band", out)
	resolver := repository.New(root)

	pkgDir, ok := packageDir(ctx, resolver)
	if !ok {
		return result
	}
	bands := resolver.FindBandDirs(ctx, pkgDir)
	if len(bands) < 2 {
		return result
	}
	pkgName := filepath.Base(pkgDir)

	kindsByBand := map[string]map[string]bool{}
	anyHas := map[string]bool{}
	for _, band := range bands {
		kinds := bandKinds(ctx, resolver, root, pkgName, band)
		kindsByBand[band] = kinds
		for kind, present := range kinds {
			if present {
				anyHas[kind] = true
			}
		}
	}

	for _, band := range bands {
		kinds := kindsByBand[band]
		for _, kind := range requiredKinds {
			if !kinds[kind] {
				result.Errorf("%s: missing %s module", rel(root, band), kind)
			}
		}
		for _, kind := range siblingKinds {
			if anyHas[kind] && !kinds[kind] {
				result.Errorf("%s: missing %s module that sibling bands have", rel(root, band), kind)
			}
		}
	}

	// The layer definition is a shared resource: exactly once, at the
	// package root.
	var layersInBands []string
	for _, band := range bands {
		if resolver.Exists(ctx, filepath.Join(rel(root, band), "layers.py")) {
			layersInBands = append(layersInBands, filepath.Base(band))
		}
	}
	sort.Strings(layersInBands)
	if len(layersInBands) > 0 {
		result.Errorf("layers.py duplicated in bands %v — share layers at the package root (%s/layers.py)",
			layersInBands, rel(root, pkgDir))
	}
	if !resolver.Exists(ctx, filepath.Join(rel(root, pkgDir), "layers.py")) {
		result.Errorf("shared layers.py missing at package root (%s/layers.py)", rel(root, pkgDir))
	}

	return result
}
