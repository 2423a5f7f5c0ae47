package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vova-ivanov/cmakegen/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
pathToScan:
  - /proj/src
  - /proj/lib
rmacrosToDefine:
  - FOO
vmacrosToDefine:
  - BAR: "1"
fmacrosToDefine:
  - BAZ: X
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"/proj/src", "/proj/lib"}, cfg.Roots)
	assert.Equal(t, []string{"FOO"}, cfg.PlainMacros)
	assert.Equal(t, []MacroPair{{Name: "BAR", Value: "1"}}, cfg.ValuedMacros)
	assert.Equal(t, []MacroPair{{Name: "BAZ", Value: "X"}}, cfg.FunctionMacros)
	assert.Empty(t, cfg.ExcludePatterns)
}

func TestLoadEmptyListsAreValid(t *testing.T) {
	path := writeConfig(t, `
pathToScan: []
rmacrosToDefine: []
vmacrosToDefine: []
fmacrosToDefine: []
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Empty(t, cfg.Roots)
	assert.Empty(t, cfg.PlainMacros)
	assert.Empty(t, cfg.ValuedMacros)
	assert.Empty(t, cfg.FunctionMacros)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.True(t, errors.IsConfigNotFound(err))
	assert.Equal(t, errors.ExitConfigNotFound, errors.ExitCode(err))
}

func TestLoadMissingRequiredField(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name: "missing pathToScan",
			content: `
rmacrosToDefine: []
vmacrosToDefine: []
fmacrosToDefine: []
`,
			field: "pathToScan",
		},
		{
			name: "missing rmacrosToDefine",
			content: `
pathToScan: []
vmacrosToDefine: []
fmacrosToDefine: []
`,
			field: "rmacrosToDefine",
		},
		{
			name: "missing vmacrosToDefine",
			content: `
pathToScan: []
rmacrosToDefine: []
fmacrosToDefine: []
`,
			field: "vmacrosToDefine",
		},
		{
			name: "missing fmacrosToDefine",
			content: `
pathToScan: []
rmacrosToDefine: []
vmacrosToDefine: []
`,
			field: "fmacrosToDefine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsConfigInvalid(err))
			assert.Equal(t, errors.ExitConfigInvalid, errors.ExitCode(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadMalformedMacroEntry(t *testing.T) {
	path := writeConfig(t, `
pathToScan: []
rmacrosToDefine: []
vmacrosToDefine:
  - BAR: "1"
    QUX: "2"
fmacrosToDefine: []
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
	assert.Contains(t, err.Error(), "exactly one name/value pair")
	assert.Contains(t, err.Error(), "vmacrosToDefine")
}

func TestLoadEmptyFunctionMacroEntry(t *testing.T) {
	path := writeConfig(t, `
pathToScan: []
rmacrosToDefine: []
vmacrosToDefine: []
fmacrosToDefine:
  - {}
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
	assert.Contains(t, err.Error(), "fmacrosToDefine")
}

func TestLoadUnparseableDocument(t *testing.T) {
	path := writeConfig(t, "pathToScan: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
}

func TestLoadEmptyScanPath(t *testing.T) {
	path := writeConfig(t, `
pathToScan:
  - ""
rmacrosToDefine: []
vmacrosToDefine: []
fmacrosToDefine: []
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
	assert.Contains(t, err.Error(), "pathToScan")
}

func TestLoadExcludePatterns(t *testing.T) {
	path := writeConfig(t, `
pathToScan: []
rmacrosToDefine: []
vmacrosToDefine: []
fmacrosToDefine: []
excludePatterns:
  - "**/third_party/**"
  - "*.bak"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"**/third_party/**", "*.bak"}, cfg.ExcludePatterns)
}

func TestLoadInvalidExcludePattern(t *testing.T) {
	path := writeConfig(t, `
pathToScan: []
rmacrosToDefine: []
vmacrosToDefine: []
fmacrosToDefine: []
excludePatterns:
  - "[unclosed"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsConfigInvalid(err))
	assert.Contains(t, err.Error(), "exclude pattern")
}

func TestLoadPreservesMacroOrder(t *testing.T) {
	path := writeConfig(t, `
pathToScan: []
rmacrosToDefine:
  - ZETA
  - ALPHA
vmacrosToDefine:
  - Z: "26"
  - A: "1"
fmacrosToDefine: []
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Document order, not sorted order.
	assert.Equal(t, []string{"ZETA", "ALPHA"}, cfg.PlainMacros)
	assert.Equal(t, []MacroPair{{Name: "Z", Value: "26"}, {Name: "A", Value: "1"}}, cfg.ValuedMacros)
}
