// Package scanner provides project tree discovery for cmakegen.
//
// The scanner walks configured directory roots with filepath.WalkDir and
// classifies every encountered file by suffix: header files contribute
// their containing directory to the include-directory set, compilable
// sources contribute their full path to the source set. Classification is
// a pure function; accumulation happens in the project registry. The walk
// is strictly sequential, and since WalkDir does not follow symbolic
// links a link cycle cannot cause unbounded recursion.
package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vova-ivanov/cmakegen/internal/errors"
	"github.com/vova-ivanov/cmakegen/internal/logging"
	"github.com/vova-ivanov/cmakegen/internal/registry"
)

// EntryKind distinguishes the two classification outcomes.
type EntryKind int

const (
	// EntryIncludeDir marks a directory that contains at least one header.
	EntryIncludeDir EntryKind = iota
	// EntrySourceFile marks a compilable source file.
	EntrySourceFile
)

// Entry is a single classified discovery: either an include directory or
// a source file path.
type Entry struct {
	Kind EntryKind
	Path string
}

// suffixRules maps filename suffixes to entry kinds. The suffixes are
// mutually exclusive; the first match wins if the table is extended.
var suffixRules = []struct {
	suffix string
	kind   EntryKind
}{
	{".h", EntryIncludeDir},
	{".hpp", EntryIncludeDir},
	{".c", EntrySourceFile},
	{".cpp", EntrySourceFile},
}

// Classify routes a file into one of the two accumulating sets. Header
// suffixes yield the containing directory, source suffixes yield the
// joined file path. Files matching no suffix yield ok=false and affect
// nothing. Matching is case-sensitive and anchored at the end of the
// filename.
func Classify(dir, name string) (Entry, bool) {
	for _, rule := range suffixRules {
		if !strings.HasSuffix(name, rule.suffix) {
			continue
		}

		switch rule.kind {
		case EntryIncludeDir:
			return Entry{Kind: EntryIncludeDir, Path: dir}, true
		case EntrySourceFile:
			return Entry{Kind: EntrySourceFile, Path: filepath.Join(dir, name)}, true
		}
	}

	return Entry{}, false
}

// ProjectScanner discovers include directories and source files under a
// set of directory roots and folds them into a project registry.
type ProjectScanner struct {
	registry *registry.ProjectRegistry
	excludes []string
	logger   logging.Logger
}

// NewProjectScanner creates a scanner feeding the given registry.
// Exclude patterns are doublestar globs matched against the
// slash-normalized path relative to the scanned root.
func NewProjectScanner(reg *registry.ProjectRegistry, excludes []string, logger logging.Logger) *ProjectScanner {
	if logger == nil {
		logger = logging.NewLogger(logging.DefaultConfig())
	}

	return &ProjectScanner{
		registry: reg,
		excludes: excludes,
		logger:   logger.WithComponent("scanner"),
	}
}

// Registry returns the registry the scanner populates.
func (s *ProjectScanner) Registry() *registry.ProjectRegistry {
	return s.registry
}

// ScanAll scans every root in order. The first traversal failure aborts
// the run; nothing is retried.
func (s *ProjectScanner) ScanAll(ctx context.Context, roots []string) error {
	for _, root := range roots {
		if err := s.ScanRoot(ctx, root); err != nil {
			return err
		}
	}

	return nil
}

// ScanRoot recursively scans one directory root, classifying every file
// into the registry. A nonexistent or unreadable root propagates as a
// scan error.
func (s *ProjectScanner) ScanRoot(ctx context.Context, root string) error {
	s.logger.Info(ctx, "scanning path", "root", root)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if excluded, isDir := s.excluded(root, path, d); excluded {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		entry, ok := Classify(filepath.Dir(path), d.Name())
		if !ok {
			return nil
		}

		switch entry.Kind {
		case EntryIncludeDir:
			if s.registry.AddIncludeDir(entry.Path) {
				s.logger.Debug(ctx, "found include directory", "dir", entry.Path)
			}
		case EntrySourceFile:
			if s.registry.AddSourceFile(entry.Path) {
				s.logger.Debug(ctx, "found source", "file", entry.Path)
			}
		}

		return nil
	})
	if err != nil {
		return errors.NewScanError(root, err)
	}

	return nil
}

// excluded reports whether path matches any exclude pattern. The root
// itself is never excluded.
func (s *ProjectScanner) excluded(root, path string, d fs.DirEntry) (matched, isDir bool) {
	if len(s.excludes) == 0 || path == root {
		return false, d.IsDir()
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range s.excludes {
		if ok, _ := doublestar.PathMatch(pattern, rel); ok {
			return true, d.IsDir()
		}
	}

	return false, d.IsDir()
}
