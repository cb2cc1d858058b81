package lvgl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanVersion(t *testing.T) {
	header := strings.Join([]string{
		"#ifndef LVGL_H",
		"#define LVGL_H",
		"",
		"#define LVGL_VERSION_PATCH 1",
		"#define LVGL_VERSION_MAJOR 9",
		"#define LVGL_VERSION_MINOR 2",
		"#define LVGL_VERSION_INFO \"\"",
		"",
		"#endif",
	}, "\n")

	v, err := ScanVersion(strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 9, Minor: 2, Patch: 1}, v)
	assert.Equal(t, "9.2.1", v.String())
	assert.False(t, v.IsZero())
}

func TestScanVersionFirstNonzeroWins(t *testing.T) {
	header := strings.Join([]string{
		"#define LVGL_VERSION_MAJOR 0",
		"#define LVGL_VERSION_MAJOR 9",
		"#define LVGL_VERSION_MAJOR 10",
		"#define LVGL_VERSION_MINOR 2",
	}, "\n")

	v, err := ScanVersion(strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, 9, v.Major)
	assert.Equal(t, 2, v.Minor)
	assert.Equal(t, 0, v.Patch)
}

func TestScanVersionStrictSpelling(t *testing.T) {
	header := strings.Join([]string{
		// Indented, tab-separated, and commented-out macros must not
		// match; the scan is prefix-anchored and space-separated only.
		"  #define LVGL_VERSION_MAJOR 9",
		"#define\tLVGL_VERSION_MINOR\t2",
		"// #define LVGL_VERSION_PATCH 1",
	}, "\n")

	v, err := ScanVersion(strings.NewReader(header))
	require.NoError(t, err)
	assert.True(t, v.IsZero())
	assert.Equal(t, "0.0.0", v.String())
}

func TestScanVersionBOM(t *testing.T) {
	header := "\ufeff#define LVGL_VERSION_MAJOR 8\n#define LVGL_VERSION_MINOR 3\n#define LVGL_VERSION_PATCH 11\n"

	v, err := ScanVersion(strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 8, Minor: 3, Patch: 11}, v)
}

func TestScanVersionLongLine(t *testing.T) {
	header := "#define LVGL_VERSION_MAJOR 9\n" +
		"/* " + strings.Repeat("x", 128*1024) + " */\n" +
		"#define LVGL_VERSION_MINOR 3\n"

	v, err := ScanVersion(strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 9, Minor: 3}, v)
}

func TestReadVersion(t *testing.T) {
	root := t.TempDir()
	content := "#define LVGL_VERSION_MAJOR 9\n#define LVGL_VERSION_MINOR 0\n#define LVGL_VERSION_PATCH 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, EntryHeader), []byte(content), 0o644))

	v, err := ReadVersion(root)
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 9}, v)

	_, err = ReadVersion(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestIncludeDirs(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	mustWrite("lvgl.h", "")
	mustWrite("src/core/lv_obj.h", "")
	mustWrite("src/core/lv_obj.c", "")
	mustWrite("src/misc/lv_color.c", "")
	mustWrite("docs/readme.txt", "")

	dirs, err := IncludeDirs(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		root,
		filepath.Join(root, "src", "core"),
	}, dirs)
}
