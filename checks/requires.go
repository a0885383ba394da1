package checks

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
)

// RequiresPytz verifies that pytz is declared in [project].dependencies.
// This is the one rule authorized to mutate a file: when the dependency is
// missing it splices an entry into the raw TOML text — byte-identical
// everywhere else — writes the document back, and still fails the
// invocation so the staged fix gets reviewed before it is trusted.
func RequiresPytz(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("requires-pytz", out)

	location := filepath.Join(root, "pyproject.toml")
	fs := afs.New()
	if ok, _ := fs.Exists(ctx, location); !ok {
		result.Warnf("no pyproject.toml found — skipping pytz check")
		return result
	}
	content, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		result.Errorf("pyproject.toml could not be read: %v", err)
		return result
	}

	deps, ok := dependencyArray(content)
	if !ok {
		result.Warnf("no [project] dependencies array found in pyproject.toml — skipping")
		return result
	}

	if pytzListed(content[deps.start:deps.end]) {
		return result
	}

	patched := insertDependency(content, deps, "pytz")
	if err := fs.Upload(ctx, location, 0o644, bytes.NewReader(patched)); err != nil {
		result.Errorf("pytz missing from [project].dependencies and auto-fix failed: %v", err)
		return result
	}

	result.Errorf("pytz missing from [project].dependencies — added automatically; review the diff and re-commit")
	return result
}

// depRange brackets the body of the dependencies array inside the raw TOML
// text (between the opening and closing square brackets, exclusive).
type depRange struct {
	start, end int
	indent     string
	quote      byte
}

var projectSection = regexp.MustCompile(`(?m)^\[project\]\s*$`)

var nextSection = regexp.MustCompile(`(?m)^\[`)

var dependenciesKey = regexp.MustCompile(`(?m)^dependencies\s*=\s*\[`)

var pytzEntry = regexp.MustCompile(`(?mi)^\s*['"]?pytz`)

// dependencyArray locates the [project] dependencies array in the raw text.
func dependencyArray(content []byte) (depRange, bool) {
	section := projectSection.FindIndex(content)
	if section == nil {
		return depRange{}, false
	}
	body := content[section[1]:]
	bodyEnd := len(body)
	if next := nextSection.FindIndex(body); next != nil {
		bodyEnd = next[0]
	}
	body = body[:bodyEnd]

	key := dependenciesKey.FindIndex(body)
	if key == nil {
		return depRange{}, false
	}
	open := section[1] + key[1] // index just past the opening bracket
	depth := 1
	for i := open; i < len(content); i++ {
		switch content[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				r := depRange{start: open, end: i, indent: "    ", quote: '"'}
				r.indent, r.quote = entryStyle(content[open:i])
				return r, true
			}
		}
	}
	return depRange{}, false
}

// entryStyle detects the indentation and quoting of the array's existing
// entries so the inserted line matches.
func entryStyle(body []byte) (string, byte) {
	for _, line := range strings.Split(string(body), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "]" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		quote := byte('"')
		if trimmed[0] == '\'' {
			quote = '\''
		}
		return indent, quote
	}
	return "    ", '"'
}

func pytzListed(body []byte) bool {
	return pytzEntry.Match(body)
}

// insertDependency splices a new entry just before the array's closing
// bracket, leaving every other byte of the document untouched.
func insertDependency(content []byte, deps depRange, name string) []byte {
	entry := deps.indent + string(deps.quote) + name + string(deps.quote) + ",\n"

	body := content[deps.start:deps.end]
	trimmed := bytes.TrimRight(body, " \t\n")

	var patched []byte
	patched = append(patched, content[:deps.start]...)
	patched = append(patched, trimmed...)
	if len(trimmed) > 0 && trimmed[len(trimmed)-1] != ',' {
		patched = append(patched, ',')
	}
	patched = append(patched, '\n')
	patched = append(patched, entry...)
	patched = append(patched, content[deps.end:]...)
	return patched
}
