package checks

import (
	"context"
	"io"

	"github.com/gdsfoundry/pdklint/inspector"
	"github.com/gdsfoundry/pdklint/repository"
)

// NoMainInCells flags cell files carrying an if __name__ == "__main__"
// block; debug entry points do not belong in cell definitions.
func NoMainInCells(ctx context.Context, root string, out io.Writer) *Result {
	result := NewResult("no-main-in-cells", out)
	resolver := repository.New(root)

	pkgDir, ok := packageDir(ctx, resolver)
	if !ok {
		return result
	}

	for _, cellFile := range resolver.FindCellFiles(ctx, pkgDir) {
		file, err := inspector.Parse(ctx, cellFile)
		if err != nil || file.HasSyntaxError() {
			continue
		}
		if file.HasMainGuard() {
			result.Errorf(`%s: contains if __name__ == "__main__" block — remove debug code from cell files`,
				rel(root, cellFile))
		}
	}

	return result
}
