package checks

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/gdsfoundry/pdklint/config"
	"github.com/gdsfoundry/pdklint/repository"
)

// Workflows validates the GitHub Actions workflow structure: the test
// workflow must run pre-commit (directly or by delegating to the
// centralized CI workflow), and release.yml is recommended.
func Workflows(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("workflows", out)
	resolver := repository.New(root)

	if !resolver.IsDir(".github/workflows") {
		result.Errorf(".github/workflows/ directory missing")
		return result
	}

	var testWorkflow string
	for _, candidate := range []string{"test_code.yml", "test.yml"} {
		relative := filepath.Join(".github", "workflows", candidate)
		if resolver.Exists(ctx, relative) {
			testWorkflow = relative
			break
		}
	}

	if testWorkflow == "" {
		result.Errorf("required workflow missing: .github/workflows/test_code.yml (or test.yml)")
	} else {
		doc, err := config.LoadYAML(ctx, filepath.Join(root, testWorkflow))
		switch {
		case err != nil:
			result.Errorf("%s could not be parsed: %v", testWorkflow, err)
		case doc == nil:
			result.Errorf("%s could not be read", testWorkflow)
		default:
			checkTestWorkflow(doc, testWorkflow, result)
		}
	}

	if !resolver.Exists(ctx, ".github/workflows/release.yml") {
		result.Warnf("recommended workflow missing: .github/workflows/release.yml")
	}

	return result
}

func checkTestWorkflow(doc config.Document, name string, result *Result) {
	jobs, _ := doc.Table("jobs")

	// A thin wrapper delegating to the centralized test workflow has a
	// job-level uses: key instead of steps.
	for jobName := range jobs {
		uses, _ := jobs.String(jobName, "uses")
		if strings.Contains(uses, "pdk-ci-workflow") && strings.Contains(uses, "test_code") {
			return
		}
	}

	hasPrecommit := false
	for jobName := range jobs {
		if strings.Contains(strings.ToLower(jobName), "pre-commit") {
			hasPrecommit = true
			break
		}
		if strings.Contains(flattenSteps(jobs, jobName), "pre-commit") {
			hasPrecommit = true
			break
		}
	}
	if !hasPrecommit {
		result.Errorf("%s: no pre-commit job found", name)
	}

	hasTest := false
	for jobName := range jobs {
		lowered := strings.ToLower(jobName)
		if strings.Contains(lowered, "test") && !strings.Contains(lowered, "pre") {
			hasTest = true
			break
		}
	}
	if !hasTest {
		result.Warnf("%s: no test_code job found", name)
	}
}

// flattenSteps concatenates a job's step run/uses commands into one
// searchable string.
func flattenSteps(jobs config.Document, jobName string) string {
	steps, _ := jobs.Slice(jobName, "steps")
	var parts []string
	for _, step := range steps {
		entry, ok := config.AsDocument(step)
		if !ok {
			continue
		}
		if run, ok := entry.String("run"); ok {
			parts = append(parts, run)
		}
		if uses, ok := entry.String("uses"); ok {
			parts = append(parts, uses)
		}
	}
	return strings.Join(parts, " ")
}
