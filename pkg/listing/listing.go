// Package listing renders a text description of the scan root's file layout
// for the assembled artifact's header.
//
// Tree produces tree(1)-style output; when the walk fails partway it degrades
// to a flat listing of the Python files it can see, so the artifact header is
// never missing its layout block.
package listing

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// Tree renders the directory layout under root, directories first, showing
// subdirectories and Python files. Returns the flat fallback if the root
// cannot be read.
func Tree(root string) string {
	fsys := os.DirFS(root)
	entries, err := readDir(fsys, ".")
	if err != nil {
		return Flat(root)
	}

	var b strings.Builder
	b.WriteString(root + "\n")
	renderDir(fsys, ".", "", entries, &b)
	return strings.TrimRight(b.String(), "\n")
}

// Flat lists every Python file under root, one relative path per line.
// Unreadable subtrees are skipped.
func Flat(root string) string {
	var files []string
	_ = fs.WalkDir(os.DirFS(root), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fs.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(p, ".py") {
			files = append(files, p)
		}
		return nil
	})
	return strings.Join(files, "\n")
}

// readDir returns the renderable entries of a directory: subdirectories and
// .py files, directories first, each group sorted by name.
func readDir(fsys fs.FS, dir string) ([]fs.DirEntry, error) {
	all, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var entries []fs.DirEntry
	for _, e := range all {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".py") {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

func renderDir(fsys fs.FS, dir, prefix string, entries []fs.DirEntry, b *strings.Builder) {
	for i, e := range entries {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(entries)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		b.WriteString(prefix + connector + e.Name() + "\n")

		if e.IsDir() {
			sub := path.Join(dir, e.Name())
			children, err := readDir(fsys, sub)
			if err != nil {
				continue
			}
			renderDir(fsys, sub, childPrefix, children, b)
		}
	}
}
