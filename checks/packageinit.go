package checks

import (
	"context"
	"io"
	"path/filepath"

	"github.com/gdsfoundry/pdklint/inspector"
	"github.com/gdsfoundry/pdklint/repository"
)

// PackageInit validates the package __init__.py: __version__ must be a
// plain string literal and __all__ must be defined.
func PackageInit(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("package-init", out)
	resolver := repository.New(root)

	pkgDir, ok := packageDir(ctx, resolver)
	if !ok {
		result.Warnf("could not find package directory — skipping")
		return result
	}

	initPath := filepath.Join(pkgDir, "__init__.py")
	if !resolver.Exists(ctx, rel(root, initPath)) {
		result.Errorf("%s does not exist", rel(root, initPath))
		return result
	}

	file, err := inspector.Parse(ctx, initPath)
	if err != nil || file.HasSyntaxError() {
		result.Errorf("%s has syntax errors", rel(root, initPath))
		return result
	}

	if _, ok := file.AssignedString("__version__"); !ok {
		if len(file.Assignments("__version__")) > 0 {
			result.Errorf(`%s: __version__ is defined but not as a string literal (must be __version__ = "X.Y.Z")`,
				rel(root, initPath))
		} else {
			result.Errorf("%s: __version__ is not defined", rel(root, initPath))
		}
	}

	if len(file.Assignments("__all__")) == 0 {
		result.Errorf("%s: __all__ is not defined", rel(root, initPath))
	}

	return result
}
