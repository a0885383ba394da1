package checks

import (
	"context"
	"io"

	"github.com/gdsfoundry/pdklint/repository"
)

var requiredFiles = []string{
	"README.md",
	"CHANGELOG.md",
	"LICENSE",
	"Makefile",
	"pyproject.toml",
	".gitignore",
	".pre-commit-config.yaml",
}

var requiredDirs = []string{
	"tests",
}

var requiredWorkflows = []string{
	".github/workflows/release-drafter.yml",
}

// The test workflow is accepted under either its primary or legacy name;
// the first recognized name wins when both exist.
var testWorkflowCandidates = []string{
	".github/workflows/test_code.yml",
	".github/workflows/test.yml",
}

var recommendedFiles = []string{
	".gitattributes",
	".changelog.d/changelog_template.jinja",
	".github/workflows/release.yml",
}

// RequiredFiles verifies the repository's structural presence conventions:
// required files, directories and workflows are errors when absent,
// recommended ones are warnings.
func RequiredFiles(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("required-files", out)
	resolver := repository.New(root)

	for _, name := range requiredFiles {
		if !resolver.Exists(ctx, name) {
			result.Errorf("required file missing: %s", name)
		}
	}

	for _, name := range requiredDirs {
		if !resolver.IsDir(name) {
			result.Errorf("required directory missing: %s/", name)
		}
	}

	for _, name := range requiredWorkflows {
		if !resolver.Exists(ctx, name) {
			result.Errorf("required workflow missing: %s", name)
		}
	}

	found := false
	for _, candidate := range testWorkflowCandidates {
		if resolver.Exists(ctx, candidate) {
			found = true
			break
		}
	}
	if !found {
		result.Errorf("required workflow missing: %s (or test.yml)", testWorkflowCandidates[0])
	}

	for _, name := range recommendedFiles {
		if !resolver.Exists(ctx, name) {
			result.Warnf("recommended file missing: %s", name)
		}
	}

	return result
}
