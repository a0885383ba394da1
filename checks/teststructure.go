package checks

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdsfoundry/pdklint/repository"
)

// TestStructure validates the regression-test layout: tests/ with at least
// one test module is required; GDS reference directories and regression
// helpers are recommended.
func TestStructure(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("test-structure", out)
	resolver := repository.New(root)

	testsDir := filepath.Join(root, "tests")
	if !resolver.IsDir("tests") {
		result.Errorf("tests/ directory missing at repo root")
		return result
	}

	testFiles := resolver.Rglob(testsDir, "**/test_*.py")
	if len(testFiles) == 0 {
		result.Errorf("no test_*.py files found in tests/")
		return result
	}

	var refDirs []string
	for _, pattern := range []string{"**/gds_ref", "**/*_gds_ref", "**/*_gds"} {
		for _, match := range resolver.Rglob(testsDir, pattern) {
			if resolver.IsDirAbs(match) {
				refDirs = append(refDirs, match)
			}
		}
	}
	if len(refDirs) == 0 {
		result.Warnf("no GDS reference directory found in tests/ (expected gds_ref/ or *_gds_ref/ or *_gds/)")
	}

	if !anyFileContains(testFiles, "difftest") {
		result.Warnf("no test file calls difftest() for GDS regression testing")
	}
	if !anyFileContains(testFiles, "data_regression") {
		result.Warnf("no test file uses data_regression for settings regression testing")
	}

	return result
}

func anyFileContains(files []string, needle string) bool {
	for _, location := range files {
		content, err := os.ReadFile(location)
		if err != nil {
			continue
		}
		if strings.Contains(string(content), needle) {
			return true
		}
	}
	return false
}
