// Package registry holds the scan state of a single generation run: the
// set of discovered include directories and the set of discovered source
// files. Both sets are deduplicated by membership and carry no iteration
// order; callers sort before presenting entries to users.
package registry

import (
	"sync"
)

// ProjectRegistry accumulates entries discovered during a project scan.
// It is populated additively during the walk phase and read afterwards
// during emission. A registry belongs to one generation run and is not
// reused across runs.
type ProjectRegistry struct {
	includeDirs map[string]struct{}
	sourceFiles map[string]struct{}
	mutex       sync.RWMutex
}

// NewProjectRegistry creates an empty project registry.
func NewProjectRegistry() *ProjectRegistry {
	return &ProjectRegistry{
		includeDirs: make(map[string]struct{}),
		sourceFiles: make(map[string]struct{}),
	}
}

// AddIncludeDir records a directory containing at least one header file.
// It reports whether the directory was not present before.
func (r *ProjectRegistry) AddIncludeDir(dir string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.includeDirs[dir]; exists {
		return false
	}
	r.includeDirs[dir] = struct{}{}

	return true
}

// AddSourceFile records the absolute path of a compilable source file.
// It reports whether the path was not present before.
func (r *ProjectRegistry) AddSourceFile(path string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.sourceFiles[path]; exists {
		return false
	}
	r.sourceFiles[path] = struct{}{}

	return true
}

// IncludeDirs returns a copy of the include directory set. No ordering
// guarantee; callers must sort before emission.
func (r *ProjectRegistry) IncludeDirs() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	dirs := make([]string, 0, len(r.includeDirs))
	for dir := range r.includeDirs {
		dirs = append(dirs, dir)
	}

	return dirs
}

// SourceFiles returns a copy of the source file set. No ordering
// guarantee; callers must sort before emission.
func (r *ProjectRegistry) SourceFiles() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	files := make([]string, 0, len(r.sourceFiles))
	for file := range r.sourceFiles {
		files = append(files, file)
	}

	return files
}

// IncludeDirCount returns the number of distinct include directories.
func (r *ProjectRegistry) IncludeDirCount() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.includeDirs)
}

// SourceFileCount returns the number of distinct source files.
func (r *ProjectRegistry) SourceFileCount() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.sourceFiles)
}
