package checks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/gdsfoundry/pdklint/inspector"
	"github.com/gdsfoundry/pdklint/repository"
)

var pipInstallVersion = regexp.MustCompile(`pip\s+install\s+[\w-]+==([\d]+\.[\d]+\.[\d]+[^\s"']*)`)

type versionSource struct {
	location string
	value    string
}

// VersionSync verifies that the version string agrees across every source
// that declares one: the project config field, the version-bump tool's
// field, the package __version__ literal and the README's pip install
// instructions. Absent sources are tolerated; disagreement is not.
func VersionSync(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("version-sync", out)

	doc, err := loadPyproject(ctx, root)
	if err != nil {
		result.Errorf("pyproject.toml could not be parsed: %v", err)
		return result
	}
	if doc == nil {
		result.Warnf("no pyproject.toml found — skipping version sync check")
		return result
	}

	var sources []versionSource
	record := func(location, value string) {
		sources = append(sources, versionSource{location: location, value: value})
	}

	if version, ok := doc.String("project", "version"); ok && version != "" {
		record("pyproject.toml [project].version", version)
	}
	if version, ok := doc.String("tool", "tbump", "version", "current"); ok && version != "" {
		record("pyproject.toml [tool.tbump.version].current", version)
	}

	resolver := repository.New(root)
	if pkgDir, ok := resolver.FindPackageDir(ctx, doc); ok {
		initPath := filepath.Join(pkgDir, "__init__.py")
		if file, err := inspector.Parse(ctx, initPath); err == nil {
			if version, ok := file.AssignedString("__version__"); ok {
				record(fmt.Sprintf("%s __version__", rel(root, initPath)), version)
			}
		}
	}

	if content, err := os.ReadFile(filepath.Join(root, "README.md")); err == nil {
		if match := pipInstallVersion.FindSubmatch(content); match != nil {
			record("README.md pip install version", string(match[1]))
		}
	}

	unique := map[string]bool{}
	for _, source := range sources {
		unique[source.value] = true
		if !semver.IsValid("v" + source.value) {
			result.Warnf("%s: %q is not a valid semantic version", source.location, source.value)
		}
	}

	if len(unique) > 1 {
		var parts []string
		for _, source := range sources {
			parts = append(parts, fmt.Sprintf("%s = %q", source.location, source.value))
		}
		result.Errorf("version mismatch detected: %s", strings.Join(parts, ", "))
	} else if len(sources) < 2 {
		result.Warnf("version found in fewer than 2 locations — cannot fully verify sync")
	}

	return result
}
