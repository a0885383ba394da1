package checks

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gdsfoundry/pdklint/config"
	"github.com/gdsfoundry/pdklint/inspector"
	"github.com/gdsfoundry/pdklint/repository"
)

var requiredTechNames = []string{"LAYER", "LAYER_STACK", "LAYER_VIEWS", "cross_sections"}

var recommendedTechNames = []string{"routing_strategies"}

// TechStructure validates that each subdir's tech.py defines the required
// technology objects and that the layer sidecar document stays consistent
// with the LAYER class.
func TechStructure(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("tech-structure", out)
	resolver := repository.New(root)

	pkgDir, ok := packageDir(ctx, resolver)
	if !ok {
		result.Warnf("could not find package directory — skipping")
		return result
	}

	for _, subdir := range resolver.PdkSubdirs(ctx, pkgDir) {
		techPath := filepath.Join(subdir, "tech.py")
		if !resolver.Exists(ctx, rel(root, techPath)) {
			result.Errorf("%s: tech.py not found", rel(root, subdir))
			continue
		}
		checkTechFile(ctx, root, techPath, result)
		checkLayersConsistency(ctx, root, subdir, resolver, result)
	}

	return result
}

func checkTechFile(ctx context.Context, root, location string, result *Result) {
	file, err := inspector.Parse(ctx, location)
	if err != nil || file.HasSyntaxError() {
		result.Errorf("%s: could not parse (syntax error)", rel(root, location))
		return
	}
	defined := file.DefinedNames()

	for _, name := range requiredTechNames {
		if _, ok := defined[name]; !ok {
			result.Errorf("%s: required definition %q not found", rel(root, location), name)
		}
	}
	for _, name := range recommendedTechNames {
		if _, ok := defined[name]; !ok {
			result.Warnf("%s: recommended definition %q not found", rel(root, location), name)
		}
	}
}

// checkLayersConsistency cross-checks layers.yaml keys against LAYER class
// attributes when both exist.
func checkLayersConsistency(ctx context.Context, root, subdir string, resolver *repository.Resolver, result *Result) {
	var sidecar string
	for _, candidate := range []string{"layers.yaml", "layers.yml"} {
		if resolver.Exists(ctx, rel(root, filepath.Join(subdir, candidate))) {
			sidecar = filepath.Join(subdir, candidate)
			break
		}
	}
	if sidecar == "" {
		return
	}

	doc, err := config.LoadYAML(ctx, sidecar)
	if err != nil || doc == nil {
		result.Warnf("%s: could not be parsed", rel(root, sidecar))
		return
	}
	yamlLayers := map[string]struct{}{}
	for key := range doc {
		yamlLayers[key] = struct{}{}
	}

	codeLayers := map[string]struct{}{}
	for _, name := range []string{"layers.py", "tech.py"} {
		location := filepath.Join(subdir, name)
		if !resolver.Exists(ctx, rel(root, location)) {
			continue
		}
		file, err := inspector.Parse(ctx, location)
		if err != nil || file.HasSyntaxError() {
			continue
		}
		names := file.ClassAttributeNames(func(class string) bool {
			return strings.Contains(strings.ToUpper(class), "LAYER")
		})
		for name := range names {
			codeLayers[name] = struct{}{}
		}
	}
	if len(codeLayers) == 0 {
		return
	}

	if onlyInCode := diffKeys(codeLayers, yamlLayers); len(onlyInCode) > 0 {
		result.Warnf("%s: layers in code but not in %s: %v",
			rel(root, subdir), filepath.Base(sidecar), onlyInCode)
	}
	if onlyInYAML := diffKeys(yamlLayers, codeLayers); len(onlyInYAML) > 0 {
		result.Warnf("%s: layers in %s but not in code: %v",
			rel(root, subdir), filepath.Base(sidecar), onlyInYAML)
	}
}

func diffKeys(from, against map[string]struct{}) []string {
	var missing []string
	for key := range from {
		if _, ok := against[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
