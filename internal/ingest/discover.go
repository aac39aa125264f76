package ingest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	domainerr "alepc/internal/domain/errors"
)

type SourceFile struct {
	Path string
}

// Name is the file name without the .md extension, i.e. the expected slug.
func (sf SourceFile) Name() string {
	base := filepath.Base(sf.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Discover lists the *.md files directly inside root, sorted by path.
// Posts never live in subdirectories.
func Discover(root string) ([]SourceFile, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, domainerr.FileSystem(err, "cannot list posts in '%s'", root)
	}

	var out []SourceFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			out = append(out, SourceFile{Path: filepath.Join(root, e.Name())})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
