// Package generator renders the CMake build description from a populated
// project registry and the configured macro definitions.
//
// The document structure is fixed: a two-line header, an add_definitions
// block (plain, valued, then function-like macros in configuration
// order), an include_directories block and an add_executable block. The
// two discovered-entry blocks are sorted lexicographically and path
// separators are normalized to forward slashes, so output is
// byte-identical across runs regardless of traversal order or host
// separator convention.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vova-ivanov/cmakegen/internal/config"
	"github.com/vova-ivanov/cmakegen/internal/errors"
	"github.com/vova-ivanov/cmakegen/internal/logging"
	"github.com/vova-ivanov/cmakegen/internal/registry"
)

const (
	// DefaultOutputName is the conventional CMake build file name.
	DefaultOutputName = "CMakeLists.txt"

	// minimumVersionLine and projectLine form the fixed document header.
	minimumVersionLine = "cmake_minimum_required(VERSION 2.8)"
	projectLine        = "project(dummy)"

	// targetName is the single build target every source is bound to.
	targetName = "executable"
)

// Generator renders build descriptions.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogger(logging.DefaultConfig())
	}

	return &Generator{logger: logger.WithComponent("generator")}
}

// Generate renders the complete document from the registry state and the
// macro configuration. The registry is only read.
func (g *Generator) Generate(ctx context.Context, reg *registry.ProjectRegistry, cfg *config.Config) []byte {
	var b strings.Builder

	b.WriteString(minimumVersionLine + "\n")
	b.WriteString(projectLine + "\n")

	g.composeDefinitions(ctx, &b, cfg)
	g.composeIncludes(ctx, &b, reg)
	g.composeSources(ctx, &b, reg)

	return []byte(b.String())
}

// composeDefinitions appends the add_definitions block: plain macros
// first, then valued, then function-like, each in configuration order.
func (g *Generator) composeDefinitions(ctx context.Context, b *strings.Builder, cfg *config.Config) {
	g.logger.Debug(ctx, "composing definitions")

	b.WriteString("add_definitions(\n")
	for _, name := range cfg.PlainMacros {
		fmt.Fprintf(b, "\t-D%s\n", name)
	}
	for _, m := range cfg.ValuedMacros {
		fmt.Fprintf(b, "\t-D%s=%s\n", m.Name, m.Value)
	}
	for _, m := range cfg.FunctionMacros {
		// Quoted because the parentheses must survive shell re-parsing.
		fmt.Fprintf(b, "\t-D\"%s()=%s\"\n", m.Name, m.Value)
	}
	b.WriteString(")\n")
}

// composeIncludes appends the include_directories block, sorted and
// separator-normalized.
func (g *Generator) composeIncludes(ctx context.Context, b *strings.Builder, reg *registry.ProjectRegistry) {
	g.logger.Debug(ctx, "composing includes")

	dirs := reg.IncludeDirs()
	sort.Strings(dirs)

	b.WriteString("include_directories(\n")
	for _, dir := range dirs {
		fmt.Fprintf(b, "\t%s\n", normalizePath(dir))
	}
	b.WriteString(")\n")
}

// composeSources appends the add_executable block, sorted and
// separator-normalized.
func (g *Generator) composeSources(ctx context.Context, b *strings.Builder, reg *registry.ProjectRegistry) {
	g.logger.Debug(ctx, "composing sources")

	files := reg.SourceFiles()
	sort.Strings(files)

	fmt.Fprintf(b, "add_executable(%s\n", targetName)
	for _, file := range files {
		fmt.Fprintf(b, "\t%s\n", normalizePath(file))
	}
	b.WriteString(")\n")
}

// normalizePath renders every path separator as a forward slash
// regardless of host convention.
func normalizePath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

// WriteFile writes the document near-atomically: the content goes to a
// temp file in the destination directory which is then renamed over the
// target, overwriting any existing content without confirmation.
func (g *Generator) WriteFile(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewIOError(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewIOError(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewIOError(path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewIOError(path, err)
	}

	g.logger.Info(ctx, "wrote build description", "path", path, "bytes", len(data))

	return nil
}
