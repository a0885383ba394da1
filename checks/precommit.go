package checks

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/gdsfoundry/pdklint/config"
)

type hookRequirement struct {
	repo  string
	hooks []string
}

var requiredHooks = []hookRequirement{
	{"pre-commit/pre-commit-hooks", []string{"end-of-file-fixer", "trailing-whitespace"}},
	{"astral-sh/ruff-pre-commit", []string{"ruff", "ruff-format"}},
}

var recommendedHooks = []hookRequirement{
	{"kynan/nbstripout", []string{"nbstripout"}},
	{"codespell-project/codespell", []string{"codespell"}},
}

// PrecommitConfig validates that .pre-commit-config.yaml wires the hooks the
// template's automation depends on.
func PrecommitConfig(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("precommit-config", out)

	doc, err := config.LoadYAML(ctx, filepath.Join(root, ".pre-commit-config.yaml"))
	if err != nil {
		result.Errorf(".pre-commit-config.yaml could not be parsed: %v", err)
		return result
	}
	if doc == nil {
		result.Errorf(".pre-commit-config.yaml missing")
		return result
	}

	repoHooks := map[string]map[string]bool{}
	repos, _ := doc.Slice("repos")
	for _, entry := range repos {
		repo, ok := config.AsDocument(entry)
		if !ok {
			continue
		}
		url, _ := repo.String("repo")
		hooks := map[string]bool{}
		if list, ok := repo.Slice("hooks"); ok {
			for _, item := range list {
				if hook, ok := config.AsDocument(item); ok {
					if id, ok := hook.String("id"); ok {
						hooks[id] = true
					}
				}
			}
		}
		repoHooks[url] = hooks
	}

	match := func(pattern string) (map[string]bool, bool) {
		for url, hooks := range repoHooks {
			if strings.Contains(url, pattern) {
				return hooks, true
			}
		}
		return nil, false
	}

	for _, requirement := range requiredHooks {
		hooks, ok := match(requirement.repo)
		if !ok {
			result.Errorf("missing repo: %s", requirement.repo)
			continue
		}
		for _, id := range requirement.hooks {
			if !hooks[id] {
				result.Errorf("missing hook %q from %s", id, requirement.repo)
			}
		}
	}

	for _, requirement := range recommendedHooks {
		hooks, ok := match(requirement.repo)
		if !ok {
			result.Warnf("recommended repo missing: %s", requirement.repo)
			continue
		}
		for _, id := range requirement.hooks {
			if !hooks[id] {
				result.Warnf("recommended hook %q missing from %s", id, requirement.repo)
			}
		}
	}

	return result
}
