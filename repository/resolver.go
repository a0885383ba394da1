// Package repository resolves the topology of a PDK repository: the
// installable package directory, band subdirectories and cell source files.
// Facts are recomputed on every invocation and never cached.
package repository

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/afs"

	"github.com/gdsfoundry/pdklint/config"
)

// skipDirs are well-known non-package directories excluded from package
// discovery.
var skipDirs = map[string]bool{
	"tests":     true,
	"docs":      true,
	"notebooks": true,
	".git":      true,
	".github":   true,
	"actions":   true,
	"hooks":     true,
	"scripts":   true,
}

// Resolver derives read-only topology facts about one repository root.
type Resolver struct {
	fs   afs.Service
	root string
}

// New creates a resolver for the given repository root.
func New(root string) *Resolver {
	return &Resolver{fs: afs.New(), root: root}
}

// Root returns the repository root the resolver was created for.
func (r *Resolver) Root() string {
	return r.root
}

// Exists reports whether a path relative to the repository root exists.
func (r *Resolver) Exists(ctx context.Context, relative string) bool {
	ok, _ := r.fs.Exists(ctx, filepath.Join(r.root, relative))
	return ok
}

// IsDir reports whether a path relative to the repository root is a
// directory.
func (r *Resolver) IsDir(relative string) bool {
	info, err := os.Stat(filepath.Join(r.root, relative))
	return err == nil && info.IsDir()
}

// FindPackageDir returns the best-guess installable package directory.
//
// Strategy mirrors how PDK templates declare their package:
//  1. [tool.setuptools.packages.find].include — shortest non-glob entry,
//     rooted at the declared "where" base.
//  2. [project].name normalized (hyphens to underscores, lowered).
//  3. Scan immediate subdirectories of the root for the first one holding
//     an __init__.py, skipping well-known non-package directories.
//
// Returns ("", false) when no candidate exists; calling rules decide the
// severity of that.
func (r *Resolver) FindPackageDir(ctx context.Context, doc config.Document) (string, bool) {
	base := "."
	if where, ok := doc.StringSlice("tool", "setuptools", "packages", "find", "where"); ok && len(where) > 0 {
		base = where[0]
	}

	if includes, ok := doc.StringSlice("tool", "setuptools", "packages", "find", "include"); ok {
		candidate := ""
		for _, include := range includes {
			if strings.ContainsAny(include, "*.") {
				continue
			}
			if candidate == "" || len(include) < len(candidate) {
				candidate = include
			}
		}
		if candidate != "" {
			if dir := filepath.Join(r.root, base, candidate); r.isPackage(ctx, dir) {
				return dir, true
			}
		}
	}

	if name, ok := doc.String("project", "name"); ok && name != "" {
		normalized := strings.ToLower(strings.ReplaceAll(name, "-", "_"))
		if dir := filepath.Join(r.root, base, normalized); r.isPackage(ctx, dir) {
			return dir, true
		}
	}

	entries, err := os.ReadDir(r.root)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if !entry.IsDir() || skipDirs[entry.Name()] || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if dir := filepath.Join(r.root, entry.Name()); r.isPackage(ctx, dir) {
			return dir, true
		}
	}
	return "", false
}

func (r *Resolver) isPackage(ctx context.Context, dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	ok, _ := r.fs.Exists(ctx, filepath.Join(dir, "__init__.py"))
	return ok
}

// Signature records which module kinds one band provides.
type Signature struct {
	HasInit   bool
	HasCells  bool
	HasTech   bool
	HasModels bool
}

// BandSignature inspects one directory for the module kinds a band is
// expected to carry.
func (r *Resolver) BandSignature(ctx context.Context, dir string) Signature {
	exists := func(name string) bool {
		ok, _ := r.fs.Exists(ctx, filepath.Join(dir, name))
		return ok
	}
	isDir := func(name string) bool {
		info, err := os.Stat(filepath.Join(dir, name))
		return err == nil && info.IsDir()
	}
	return Signature{
		HasInit:   exists("__init__.py"),
		HasCells:  isDir("cells") || exists("cells.py"),
		HasTech:   exists("tech.py"),
		HasModels: isDir("models") || exists("models.py"),
	}
}

// FindBandDirs returns the package subdirectories that independently look
// like self-contained bands: an __init__.py plus a cells module or a
// tech.py. An empty result means a flat, single-component layout — the
// common case, not an error.
func (r *Resolver) FindBandDirs(ctx context.Context, pkgDir string) []string {
	entries, err := os.ReadDir(pkgDir)
	if err != nil {
		return nil
	}
	var bands []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			continue
		}
		dir := filepath.Join(pkgDir, name)
		sig := r.BandSignature(ctx, dir)
		if !sig.HasInit {
			continue
		}
		if sig.HasCells || sig.HasTech {
			bands = append(bands, dir)
		}
	}
	sort.Strings(bands)
	return bands
}

// PdkSubdirs normalizes single- and multi-band layouts: band directories
// when any exist, else the package directory itself. Downstream rules are
// written once against this sequence.
func (r *Resolver) PdkSubdirs(ctx context.Context, pkgDir string) []string {
	if bands := r.FindBandDirs(ctx, pkgDir); len(bands) > 0 {
		return bands
	}
	return []string{pkgDir}
}

// FindCellFiles enumerates the cell source files of the package and every
// band: cells/*.py minus the re-export-only __init__.py, or a flat cells.py.
func (r *Resolver) FindCellFiles(ctx context.Context, pkgDir string) []string {
	var files []string
	collect := func(base string) {
		if r.IsDirAbs(filepath.Join(base, "cells")) {
			matches, _ := doublestar.FilepathGlob(filepath.Join(base, "cells", "*.py"))
			for _, match := range matches {
				if filepath.Base(match) != "__init__.py" {
					files = append(files, match)
				}
			}
			return
		}
		if ok, _ := r.fs.Exists(ctx, filepath.Join(base, "cells.py")); ok {
			files = append(files, filepath.Join(base, "cells.py"))
		}
	}
	collect(pkgDir)
	for _, band := range r.FindBandDirs(ctx, pkgDir) {
		collect(band)
	}
	sort.Strings(files)
	return files
}

// IsDirAbs reports whether an absolute path is a directory.
func (r *Resolver) IsDirAbs(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// Rglob matches files under base with a doublestar pattern, e.g.
// "**/test_*.py".
func (r *Resolver) Rglob(base, pattern string) []string {
	matches, _ := doublestar.FilepathGlob(filepath.Join(base, pattern))
	sort.Strings(matches)
	return matches
}
