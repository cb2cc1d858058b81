// Package lvgl inspects an LVGL source tree: the release version declared
// in its entry header and the include directories needed to preprocess it.
package lvgl

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EntryHeader is the tree-relative path of the header that declares the
// public API and the version macros.
const EntryHeader = "lvgl.h"

// Version is the LVGL release triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String renders the triple in "major.minor.patch" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsZero reports whether no version macro was found.
func (v Version) IsZero() bool {
	return v == Version{}
}

var (
	majorRe = regexp.MustCompile(`^#define[ ]+LVGL_VERSION_MAJOR[ ]+([0-9]+)`)
	minorRe = regexp.MustCompile(`^#define[ ]+LVGL_VERSION_MINOR[ ]+([0-9]+)`)
	patchRe = regexp.MustCompile(`^#define[ ]+LVGL_VERSION_PATCH[ ]+([0-9]+)`)
)

// maxLineBytes caps a single scanned header line, raised from bufio's 64KB
// default.
const maxLineBytes = 1 << 20

// ScanVersion extracts the version macros from r. The macros may appear in
// any order; for each field the first nonzero match wins and absent macros
// leave their field zero.
func ScanVersion(r io.Reader) (Version, error) {
	var v Version
	sc := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	sc.Buffer(nil, maxLineBytes)
	for sc.Scan() {
		line := sc.Text()
		if v.Major == 0 {
			v.Major = matchVersion(majorRe, line)
		}
		if v.Minor == 0 {
			v.Minor = matchVersion(minorRe, line)
		}
		if v.Patch == 0 {
			v.Patch = matchVersion(patchRe, line)
		}
	}
	if err := sc.Err(); err != nil {
		return v, fmt.Errorf("scanning version macros: %w", err)
	}
	return v, nil
}

func matchVersion(re *regexp.Regexp, line string) int {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ReadVersion scans the version macros from root's entry header.
func ReadVersion(root string) (Version, error) {
	path := filepath.Join(root, EntryHeader)
	f, err := os.Open(path)
	if err != nil {
		return Version{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ScanVersion(f)
}

// IncludeDirs walks root top-down and returns every directory that holds at
// least one C header, parents before children.
func IncludeDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if !entry.IsDir() && filepath.Ext(entry.Name()) == ".h" {
				dirs = append(dirs, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s for include directories: %w", root, err)
	}
	return dirs, nil
}
