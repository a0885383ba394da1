package checks

import (
	"context"
	"io"
	"path/filepath"

	"github.com/gdsfoundry/pdklint/config"
	"github.com/gdsfoundry/pdklint/repository"
)

// RuleFunc runs one convention check against a repository root, writing its
// report to out. Each invocation is independent and stateless.
type RuleFunc func(ctx context.Context, root string, out io.Writer) *Result

// Rule binds a stable rule name to its check.
type Rule struct {
	Name string
	Doc  string
	Run  RuleFunc
}

// Rules is the explicit rule table, constructed at startup. No discovery,
// no reflection: adding a rule means adding a row.
var Rules = []Rule{
	{"required-files", "required repository files, directories and workflows exist", RequiredFiles},
	{"workflows", "GitHub Actions workflows define the expected jobs", Workflows},
	{"version-sync", "version strings agree across config, module and README", VersionSync},
	{"multi-band", "bands carry the same module set and shared resources stay at the root", MultiBand},
	{"cells-structure", "cell functions carry the cell decorator, docstrings and re-exports", CellsStructure},
	{"tech-structure", "tech.py defines the required technology objects", TechStructure},
	{"no-raw-layers", "no raw (int, int) layer tuples in cell code", NoRawLayers},
	{"no-main-in-cells", "cell files carry no __main__ guard blocks", NoMainInCells},
	{"package-init", "package __init__.py defines __version__ and __all__", PackageInit},
	{"pyproject-sections", "pyproject.toml carries all required template sections", PyprojectSections},
	{"precommit-config", ".pre-commit-config.yaml defines the required hooks", PrecommitConfig},
	{"makefile-targets", "Makefile defines the required targets", MakefileTargets},
	{"test-structure", "tests/ holds regression tests in the expected shape", TestStructure},
	{"pdk-object", "the Pdk() constructor is called with the required fields", PdkObject},
	{"requires-pytz", "pytz is declared in [project.dependencies] (auto-fix)", RequiresPytz},
}

// Lookup returns the rule registered under the given name.
func Lookup(name string) (Rule, bool) {
	for _, rule := range Rules {
		if rule.Name == name {
			return rule, true
		}
	}
	return Rule{}, false
}

// loadPyproject reads the repository's project configuration document.
func loadPyproject(ctx context.Context, root string) (config.Document, error) {
	return config.LoadTOML(ctx, filepath.Join(root, "pyproject.toml"))
}

// packageDir resolves the installable package directory, loading the project
// configuration when available. A decode failure is reported as absence; the
// pyproject rule owns decode diagnostics for that file.
func packageDir(ctx context.Context, resolver *repository.Resolver) (string, bool) {
	doc, err := loadPyproject(ctx, resolver.Root())
	if err != nil || doc == nil {
		doc = config.Document{}
	}
	return resolver.FindPackageDir(ctx, doc)
}

// rel shortens an absolute path to be root-relative for report messages.
func rel(root, location string) string {
	if relative, err := filepath.Rel(root, location); err == nil {
		return relative
	}
	return location
}
