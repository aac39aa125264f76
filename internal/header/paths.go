package header

import (
	"path/filepath"
	"strings"

	"alepc/internal/domain/config"
)

// SitePath maps an on-disk image path under ImagesPath to its site-relative
// form under ImagesSitePath. Paths outside ImagesPath are returned unchanged.
func SitePath(cfg config.Config, diskPath string) string {
	root, err := filepath.Abs(cfg.ImagesPath)
	if err != nil {
		return diskPath
	}
	abs, err := filepath.Abs(diskPath)
	if err != nil {
		return diskPath
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return diskPath
	}
	return cfg.ImagesSitePath + filepath.ToSlash(rel)
}

// DiskPath is the inverse of SitePath. ok is false when sitePath does not
// start with ImagesSitePath.
func DiskPath(cfg config.Config, sitePath string) (string, bool) {
	rest, ok := strings.CutPrefix(sitePath, cfg.ImagesSitePath)
	if !ok {
		return sitePath, false
	}
	return filepath.Join(cfg.ImagesPath, filepath.FromSlash(rest)), true
}
