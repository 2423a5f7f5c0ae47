package generator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vova-ivanov/cmakegen/internal/config"
	"github.com/vova-ivanov/cmakegen/internal/registry"
)

func emptyConfig() *config.Config {
	return &config.Config{}
}

func TestGenerateFullDocument(t *testing.T) {
	reg := registry.NewProjectRegistry()
	reg.AddIncludeDir("/proj/include")
	reg.AddIncludeDir("/proj/api")
	reg.AddSourceFile("/proj/src/z.c")
	reg.AddSourceFile("/proj/src/a.c")

	cfg := &config.Config{
		PlainMacros:    []string{"FOO"},
		ValuedMacros:   []config.MacroPair{{Name: "BAR", Value: "1"}},
		FunctionMacros: []config.MacroPair{{Name: "BAZ", Value: "X"}},
	}

	g := NewGenerator(nil)
	doc := string(g.Generate(context.Background(), reg, cfg))

	want := "cmake_minimum_required(VERSION 2.8)\n" +
		"project(dummy)\n" +
		"add_definitions(\n" +
		"\t-DFOO\n" +
		"\t-DBAR=1\n" +
		"\t-D\"BAZ()=X\"\n" +
		")\n" +
		"include_directories(\n" +
		"\t/proj/api\n" +
		"\t/proj/include\n" +
		")\n" +
		"add_executable(executable\n" +
		"\t/proj/src/a.c\n" +
		"\t/proj/src/z.c\n" +
		")\n"

	assert.Equal(t, want, doc)
}

func TestGenerateEmptyProject(t *testing.T) {
	reg := registry.NewProjectRegistry()

	g := NewGenerator(nil)
	doc := string(g.Generate(context.Background(), reg, emptyConfig()))

	want := "cmake_minimum_required(VERSION 2.8)\n" +
		"project(dummy)\n" +
		"add_definitions(\n" +
		")\n" +
		"include_directories(\n" +
		")\n" +
		"add_executable(executable\n" +
		")\n"

	assert.Equal(t, want, doc)
}

func TestGenerateMacroBlockOrder(t *testing.T) {
	reg := registry.NewProjectRegistry()

	cfg := &config.Config{
		PlainMacros:    []string{"ZETA", "ALPHA"},
		ValuedMacros:   []config.MacroPair{{Name: "Z", Value: "26"}, {Name: "A", Value: "1"}},
		FunctionMacros: []config.MacroPair{{Name: "F", Value: "f()"}},
	}

	g := NewGenerator(nil)
	doc := string(g.Generate(context.Background(), reg, cfg))

	// Macros keep configuration order: plain, then valued, then
	// function-like, each block in document order (not sorted).
	idx := func(s string) int { return strings.Index(doc, s) }
	assert.True(t, idx("-DZETA") < idx("-DALPHA"))
	assert.True(t, idx("-DALPHA") < idx("-DZ=26"))
	assert.True(t, idx("-DZ=26") < idx("-DA=1"))
	assert.True(t, idx("-DA=1") < idx("-D\"F()=f()\""))
}

func TestGenerateNormalizesSeparators(t *testing.T) {
	reg := registry.NewProjectRegistry()
	reg.AddIncludeDir(`C:\proj\include`)
	reg.AddSourceFile(`C:\proj\src\main.c`)

	g := NewGenerator(nil)
	doc := string(g.Generate(context.Background(), reg, emptyConfig()))

	assert.Contains(t, doc, "\tC:/proj/include\n")
	assert.Contains(t, doc, "\tC:/proj/src/main.c\n")
	assert.NotContains(t, doc, `\`)
}

func TestGenerateSortsEntries(t *testing.T) {
	reg := registry.NewProjectRegistry()
	reg.AddSourceFile("/p/z.c")
	reg.AddSourceFile("/p/a.c")

	g := NewGenerator(nil)
	doc := string(g.Generate(context.Background(), reg, emptyConfig()))

	assert.Less(t, strings.Index(doc, "/p/a.c"), strings.Index(doc, "/p/z.c"))
}

func TestGenerateEntriesAreTabIndented(t *testing.T) {
	reg := registry.NewProjectRegistry()
	reg.AddIncludeDir("/proj/include")
	reg.AddSourceFile("/proj/main.c")

	cfg := &config.Config{PlainMacros: []string{"FOO"}}

	g := NewGenerator(nil)
	doc := string(g.Generate(context.Background(), reg, cfg))

	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		if strings.HasPrefix(line, "\t") {
			continue
		}
		// Non-indented lines are only block delimiters and headers.
		assert.NotContains(t, line, "-D")
		assert.NotContains(t, line, "/proj")
	}
	assert.Contains(t, doc, "\t-DFOO\n")
	assert.Contains(t, doc, "\t/proj/include\n")
	assert.Contains(t, doc, "\t/proj/main.c\n")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CMakeLists.txt")

	g := NewGenerator(nil)
	require.NoError(t, g.WriteFile(context.Background(), path, []byte("content\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content\n", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CMakeLists.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	g := NewGenerator(nil)
	require.NoError(t, g.WriteFile(context.Background(), path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFileFailsOnMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "CMakeLists.txt")

	g := NewGenerator(nil)
	err := g.WriteFile(context.Background(), path, []byte("content"))
	assert.Error(t, err)
}
