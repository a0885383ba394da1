package checks

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var makeTargetPattern = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_-]*)\s*:`)

var requiredTargets = []string{"install", "test"}

var recommendedTargets = []string{"test-force", "docs", "build", "update-pre"}

// MakefileTargets validates that the Makefile defines the template's entry
// points and advises on outdated tool invocations in their bodies.
func MakefileTargets(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("makefile-targets", out)

	content, err := os.ReadFile(filepath.Join(root, "Makefile"))
	if err != nil {
		result.Errorf("Makefile not found")
		return result
	}
	targets := makeTargetBodies(string(content))

	for _, target := range requiredTargets {
		if _, ok := targets[target]; !ok {
			result.Errorf("Makefile missing required target: %s", target)
		}
	}
	for _, target := range recommendedTargets {
		if _, ok := targets[target]; !ok {
			result.Warnf("Makefile missing recommended target: %s", target)
		}
	}

	if body, ok := targets["install"]; ok {
		if !strings.Contains(body, "uv") && strings.Contains(body, "pip") {
			result.Warnf("Makefile install target uses pip — consider migrating to uv sync")
		}
	}
	if body, ok := targets["test"]; ok && !strings.Contains(body, "pytest") {
		result.Warnf("Makefile test target does not appear to run pytest")
	}
	if body, ok := targets["build"]; ok && strings.Contains(body, "setup.py") {
		result.Warnf("Makefile build target uses setup.py — consider migrating to uv build or python -m build")
	}

	return result
}

// makeTargetBodies parses a Makefile into target name to recipe body.
func makeTargetBodies(content string) map[string]string {
	targets := map[string]string{}
	current := ""
	var body []string

	flush := func() {
		if current != "" {
			targets[current] = strings.Join(body, "\n")
		}
	}
	for _, line := range strings.Split(content, "\n") {
		if match := makeTargetPattern.FindStringSubmatch(line); match != nil {
			flush()
			current = match[1]
			body = nil
			continue
		}
		if current != "" {
			body = append(body, line)
		}
	}
	flush()
	return targets
}
