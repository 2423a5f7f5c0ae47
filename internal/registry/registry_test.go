package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProjectRegistry(t *testing.T) {
	reg := NewProjectRegistry()

	assert.NotNil(t, reg)
	assert.Empty(t, reg.IncludeDirs())
	assert.Empty(t, reg.SourceFiles())
	assert.Zero(t, reg.IncludeDirCount())
	assert.Zero(t, reg.SourceFileCount())
}

func TestAddIncludeDirDeduplicates(t *testing.T) {
	reg := NewProjectRegistry()

	assert.True(t, reg.AddIncludeDir("/proj/include"))
	assert.False(t, reg.AddIncludeDir("/proj/include"))
	assert.True(t, reg.AddIncludeDir("/proj/src"))

	assert.Equal(t, 2, reg.IncludeDirCount())
	assert.ElementsMatch(t, []string{"/proj/include", "/proj/src"}, reg.IncludeDirs())
}

func TestAddSourceFileDeduplicates(t *testing.T) {
	reg := NewProjectRegistry()

	assert.True(t, reg.AddSourceFile("/proj/src/main.c"))
	assert.False(t, reg.AddSourceFile("/proj/src/main.c"))
	assert.True(t, reg.AddSourceFile("/proj/src/util.cpp"))

	assert.Equal(t, 2, reg.SourceFileCount())
	assert.ElementsMatch(t, []string{"/proj/src/main.c", "/proj/src/util.cpp"}, reg.SourceFiles())
}

func TestSetsAreIndependent(t *testing.T) {
	reg := NewProjectRegistry()

	reg.AddIncludeDir("/proj/include")
	reg.AddSourceFile("/proj/include")

	assert.Equal(t, 1, reg.IncludeDirCount())
	assert.Equal(t, 1, reg.SourceFileCount())
}

func TestSnapshotsAreCopies(t *testing.T) {
	reg := NewProjectRegistry()
	reg.AddSourceFile("/proj/src/a.c")

	files := reg.SourceFiles()
	files[0] = "/mutated"

	assert.Equal(t, []string{"/proj/src/a.c"}, reg.SourceFiles())
}
