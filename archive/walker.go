// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk, file is the entry located under requested path. If an error is
// returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits regular files of the archive which are either the entry named
// by inner or located under inner directory, in natural order of their
// names. Empty inner selects everything. Archives with entries which could
// escape extraction directory (Zip Slip) are rejected as a whole.
func Walk(archive, inner string, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	inner = strings.Trim(strings.ReplaceAll(inner, `\`, "/"), "/")

	files := make([]*zip.File, 0, len(r.File))
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().Mode().IsRegular() && under(name, inner) {
			files = append(files, f)
		}
	}
	slices.SortStableFunc(files, func(a, b *zip.File) int {
		switch {
		case a.Name == b.Name:
			return 0
		case natural.Less(a.Name, b.Name):
			return -1
		default:
			return 1
		}
	})

	for _, f := range files {
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// under reports whether entry name is inner itself or is inside inner
// directory.
func under(name, inner string) bool {
	if inner == "" {
		return true
	}
	return name == inner || strings.HasPrefix(name, inner+"/")
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	return !slices.Contains(strings.Split(name, "/"), "..")
}
