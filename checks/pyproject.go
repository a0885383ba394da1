package checks

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gdsfoundry/pdklint/config"
	"github.com/gdsfoundry/pdklint/repository"
)

// pyprojectCheck is one sub-check of the pyproject rule. The rule is a fixed
// table of these, mirroring the template's section-by-section contract.
type pyprojectCheck struct {
	name string
	run  func(ctx context.Context, root string, doc config.Document, result *Result)
}

var pyprojectChecks = []pyprojectCheck{
	{"build-system", checkBuildSystem},
	{"project", checkProjectFields},
	{"optional-dependencies", checkOptionalDeps},
	{"ruff", checkRuff},
	{"ruff-per-file-ignores", checkRuffPerFileIgnores},
	{"codespell", checkCodespell},
	{"pytest", checkPytest},
	{"package-data", checkPackageData},
	{"tbump", checkTbump},
	{"mypy", checkMypy},
	{"towncrier", checkTowncrier},
}

// PyprojectSections validates that pyproject.toml carries every section the
// template requires, with the severity tiers the template automation
// depends on.
func PyprojectSections(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("pyproject-sections", out)

	doc, err := loadPyproject(ctx, root)
	if err != nil {
		result.Errorf("pyproject.toml could not be parsed: %v", err)
		return result
	}
	if doc == nil {
		result.Warnf("no pyproject.toml found — skipping")
		return result
	}

	for _, check := range pyprojectChecks {
		check.run(ctx, root, doc, result)
	}
	return result
}

func checkBuildSystem(_ context.Context, _ string, doc config.Document, result *Result) {
	section, ok := doc.Table("build-system")
	if !ok {
		result.Errorf("[build-system] section missing")
		return
	}
	if !section.Has("requires") {
		result.Errorf("[build-system].requires missing")
	}
	if !section.Has("build-backend") {
		result.Errorf("[build-system].build-backend missing")
	}
}

func checkProjectFields(_ context.Context, _ string, doc config.Document, result *Result) {
	project, ok := doc.Table("project")
	if !ok {
		result.Errorf("[project] section missing")
		return
	}

	for _, field := range []string{"name", "version", "description", "requires-python"} {
		if !project.Has(field) {
			result.Errorf("[project].%s missing", field)
		}
	}

	if readme, ok := project.String("readme"); !ok {
		result.Errorf(`[project].readme missing (must be "README.md")`)
	} else if readme != "README.md" {
		result.Errorf(`[project].readme = %q (must be "README.md")`, readme)
	}

	if authors, ok := project.Slice("authors"); !ok || len(authors) == 0 {
		result.Errorf("[project].authors missing or empty")
	}

	if license, ok := project.Table("license"); !ok {
		result.Errorf("[project].license missing")
	} else if file, _ := license.String("file"); file != "LICENSE" {
		result.Errorf(`[project].license must be {file = "LICENSE"}`)
	}

	if keywords, ok := project.StringSlice("keywords"); !ok {
		result.Errorf("[project].keywords missing")
	} else if !contains(keywords, "python") {
		result.Errorf(`[project].keywords must include "python"`)
	}

	if !project.Has("classifiers") {
		result.Warnf("[project].classifiers missing (recommended)")
	}

	if deps, ok := project.StringSlice("dependencies"); !ok {
		result.Errorf("[project].dependencies missing")
	} else if !containsSubstring(deps, "gdsfactory") {
		result.Errorf("[project].dependencies must include gdsfactory")
	}
}

func checkOptionalDeps(_ context.Context, _ string, doc config.Document, result *Result) {
	devDeps := dependencyGroup(doc, "dev")
	if len(devDeps) == 0 {
		result.Errorf("[project.optional-dependencies].dev missing (need pytest, pytest-cov, pytest_regressions, pre-commit)")
	} else {
		normalized := strings.ToLower(strings.Join(devDeps, " "))
		normalized = strings.NewReplacer("_", "", "-", "").Replace(normalized)
		for _, pkg := range []string{"pytest", "pytest-cov", "pytest_regressions", "pre-commit"} {
			flat := strings.NewReplacer("_", "", "-", "").Replace(pkg)
			if !strings.Contains(normalized, flat) {
				result.Warnf("[project.optional-dependencies].dev missing %s", pkg)
			}
		}
	}

	docsDeps := dependencyGroup(doc, "docs")
	if len(docsDeps) == 0 {
		result.Warnf("[project.optional-dependencies].docs missing (recommended: jupytext, jupyter-book)")
	} else {
		joined := strings.ToLower(strings.Join(docsDeps, " "))
		for _, pkg := range []string{"jupytext", "jupyter-book"} {
			if !strings.Contains(joined, pkg) {
				result.Warnf("[project.optional-dependencies].docs missing %s", pkg)
			}
		}
	}
}

// dependencyGroup reads an optional-dependency group from either its PEP 621
// or dependency-groups location.
func dependencyGroup(doc config.Document, group string) []string {
	if deps, ok := doc.StringSlice("project", "optional-dependencies", group); ok {
		return deps
	}
	deps, _ := doc.StringSlice("dependency-groups", group)
	return deps
}

func checkRuff(_ context.Context, _ string, doc config.Document, result *Result) {
	ruff, ok := doc.Table("tool", "ruff")
	if !ok {
		result.Errorf("[tool.ruff] section missing")
		return
	}

	if fix, _ := ruff.Bool("fix"); !fix {
		result.Warnf("[tool.ruff].fix = true not set")
	}

	// select/ignore belong under [tool.ruff.lint], not [tool.ruff].
	if ruff.Has("select") {
		result.Errorf("[tool.ruff].select should be under [tool.ruff.lint].select")
	}
	if ruff.Has("ignore") {
		result.Errorf("[tool.ruff].ignore should be under [tool.ruff.lint].ignore")
	}

	selected, _ := ruff.StringSlice("lint", "select")
	if missing := missingFrom(selected, []string{"B", "C", "D", "E", "F", "I", "T10", "UP", "W"}); len(missing) > 0 {
		result.Warnf("[tool.ruff.lint].select missing: %v", missing)
	}

	ignored, _ := ruff.StringSlice("lint", "ignore")
	if missing := missingFrom(ignored, []string{"E501", "B008", "C901", "B905", "C408"}); len(missing) > 0 {
		result.Warnf("[tool.ruff.lint].ignore missing: %v", missing)
	}

	if convention, _ := ruff.String("lint", "pydocstyle", "convention"); convention == "" {
		if deprecated, _ := doc.String("tool", "pydocstyle", "convention"); deprecated != "" {
			result.Warnf("[tool.pydocstyle].convention is deprecated — move to [tool.ruff.lint.pydocstyle].convention")
		} else {
			result.Warnf(`[tool.ruff.lint.pydocstyle].convention not set (recommend "google")`)
		}
	}
}

func checkRuffPerFileIgnores(ctx context.Context, root string, doc config.Document, result *Result) {
	resolver := repository.New(root)
	pkgDir, ok := resolver.FindPackageDir(ctx, doc)
	if !ok {
		return
	}

	perFile, _ := doc.Table("tool", "ruff", "lint", "per-file-ignores")
	for _, submod := range []string{"cells", "models"} {
		if !resolver.Exists(ctx, rel(root, filepath.Join(pkgDir, submod, "__init__.py"))) {
			continue
		}
		found := false
		for pattern := range perFile {
			if !strings.Contains(pattern, submod) || !strings.Contains(pattern, "__init__") {
				continue
			}
			if ignores, ok := perFile.StringSlice(pattern); ok && contains(ignores, "F403") {
				found = true
				break
			}
		}
		if !found {
			result.Warnf("[tool.ruff.lint.per-file-ignores] should ignore F403 for %s/__init__.py", submod)
		}
	}
}

func checkCodespell(_ context.Context, _ string, doc config.Document, result *Result) {
	codespell, ok := doc.Table("tool", "codespell")
	if !ok {
		result.Errorf("[tool.codespell] section missing")
		return
	}

	words := map[string]bool{}
	if list, ok := codespell.StringSlice("ignore-words-list"); ok {
		for _, word := range list {
			words[word] = true
		}
	} else if text, ok := codespell.String("ignore-words-list"); ok {
		for _, word := range strings.Split(text, ",") {
			words[strings.TrimSpace(word)] = true
		}
	}

	var missing []string
	for _, word := range []string{"te", "ba", "fpr", "ro", "nd", "donot", "schem"} {
		if !words[word] {
			missing = append(missing, word)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		result.Warnf("[tool.codespell].ignore-words-list missing: %v", missing)
	}
}

func checkPytest(_ context.Context, _ string, doc config.Document, result *Result) {
	options, ok := doc.Table("tool", "pytest", "ini_options")
	if !ok {
		result.Errorf("[tool.pytest.ini_options] section missing")
		return
	}
	if !options.Has("testpaths") {
		result.Errorf("[tool.pytest.ini_options].testpaths missing")
	}
	if !options.Has("addopts") {
		result.Warnf("[tool.pytest.ini_options].addopts missing (recommend \"--tb=short\")")
	}
}

func checkPackageData(_ context.Context, _ string, doc config.Document, result *Result) {
	pkgData, ok := doc.Table("tool", "setuptools", "package-data")
	if !ok {
		result.Errorf("[tool.setuptools.package-data] section missing")
		return
	}
	patterns, ok := pkgData.StringSlice("*")
	if !ok {
		result.Errorf(`[tool.setuptools.package-data] must use wildcard key "*" (not a package-specific key)`)
		return
	}
	for _, ext := range []string{"*.csv", "*.yaml", "*.yml", "*.gds", "*.lyp", "*.oas", "*.lyt"} {
		if !contains(patterns, ext) {
			result.Warnf("[tool.setuptools.package-data].* missing %s", ext)
		}
	}
}

func checkTbump(_ context.Context, _ string, doc config.Document, result *Result) {
	tbump, ok := doc.Table("tool", "tbump")
	if !ok {
		result.Errorf("[tool.tbump] section missing")
		return
	}

	if current, ok := tbump.String("version", "current"); !ok {
		result.Errorf("[tool.tbump.version].current missing")
	} else if projectVersion, ok := doc.String("project", "version"); ok && current != projectVersion {
		result.Errorf("[tool.tbump.version].current = %q does not match [project].version = %q",
			current, projectVersion)
	}

	files, ok := tbump.Slice("file")
	if !ok || len(files) == 0 {
		result.Errorf("[[tool.tbump.file]] entries missing")
	} else {
		srcs := map[string]bool{}
		hasInit := false
		for _, entry := range files {
			table, ok := config.AsDocument(entry)
			if !ok {
				continue
			}
			if src, ok := table.String("src"); ok {
				srcs[src] = true
				if strings.Contains(src, "__init__.py") {
					hasInit = true
				}
			}
		}
		if !srcs["pyproject.toml"] {
			result.Errorf(`[[tool.tbump.file]] missing src = "pyproject.toml"`)
		}
		if !srcs["README.md"] {
			result.Warnf(`[[tool.tbump.file]] missing src = "README.md"`)
		}
		if !hasInit {
			result.Errorf("[[tool.tbump.file]] missing src for <pkg>/__init__.py")
		}
	}

	if _, ok := tbump.String("git", "message_template"); !ok {
		result.Errorf("[tool.tbump.git].message_template missing")
	}
	if _, ok := tbump.String("git", "tag_template"); !ok {
		result.Errorf("[tool.tbump.git].tag_template missing")
	}
}

func checkMypy(_ context.Context, _ string, doc config.Document, result *Result) {
	mypy, ok := doc.Table("tool", "mypy")
	if !ok {
		result.Errorf("[tool.mypy] section missing")
		return
	}
	if strict, _ := mypy.Bool("strict"); !strict {
		result.Warnf("[tool.mypy].strict = true not set (recommended)")
	}
}

func checkTowncrier(_ context.Context, _ string, doc config.Document, result *Result) {
	towncrier, ok := doc.Table("tool", "towncrier")
	if !ok {
		result.Warnf("[tool.towncrier] section missing (recommended)")
		return
	}
	expected := []struct{ key, value string }{
		{"directory", ".changelog.d"},
		{"filename", "CHANGELOG.md"},
		{"template", ".changelog.d/changelog_template.jinja"},
	}
	for _, want := range expected {
		actual, ok := towncrier.String(want.key)
		if !ok {
			result.Warnf("[tool.towncrier].%s missing (expected %q)", want.key, want.value)
		} else if actual != want.value {
			result.Warnf("[tool.towncrier].%s = %q (expected %q)", want.key, actual, want.value)
		}
	}
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func containsSubstring(items []string, target string) bool {
	for _, item := range items {
		if strings.Contains(item, target) {
			return true
		}
	}
	return false
}

func missingFrom(present []string, required []string) []string {
	set := map[string]bool{}
	for _, item := range present {
		set[item] = true
	}
	var missing []string
	for _, item := range required {
		if !set[item] {
			missing = append(missing, item)
		}
	}
	sort.Strings(missing)
	return missing
}
