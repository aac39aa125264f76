// Package post creates, loads and persists post files and moves their
// image assets when a slug changes.
package post

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"alepc/internal/domain/config"
	"alepc/internal/domain/content"
	domainerr "alepc/internal/domain/errors"
	"alepc/internal/header"
	"alepc/internal/textutil"
)

const defaultImageExt = "png"

// Create copies sourceImage into the slug's image directory and returns the
// new post. Nothing is written when sourceImage is missing or the slug is taken.
func Create(cfg config.Config, title, slug, description string, tags []string, sourceImage string) (*content.Post, error) {
	slug = textutil.NormalizeSlug(slug)
	if slug == "" {
		return nil, domainerr.Validation("the post slug is empty")
	}
	if err := CheckTags(tags); err != nil {
		return nil, err
	}

	src, err := ResolvePath(sourceImage)
	if err != nil {
		return nil, err
	}
	if err := requireFile(src); err != nil {
		return nil, err
	}
	if exists(cfg.PostPath(slug)) {
		return nil, domainerr.PostProperties("slug already exists: '%s'", slug)
	}

	dir := cfg.ImageDir(slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, domainerr.FileSystem(err, "cannot create image directory '%s'", dir)
	}
	dst := filepath.Join(dir, HeaderImageName(slug, src))
	if err := copyFile(src, dst); err != nil {
		return nil, err
	}
	slog.Debug("header image copied", "slug", slug, "src", src, "dst", dst)

	now := time.Now()
	return &content.Post{
		Title:       title,
		Slug:        slug,
		Description: description,
		Tags:        append([]string{}, tags...),
		IsDraft:     true,
		ImagePath:   dst,
		Date:        now,
		Modified:    now,
		Link:        cfg.Link(slug),
		Layout:      cfg.PostsLayout,
		Body:        content.DefaultBody(title),
	}, nil
}

// CheckTags rejects tags the header list literal cannot carry.
func CheckTags(tags []string) error {
	for _, tag := range tags {
		if err := textutil.CheckListItem(tag); err != nil {
			return domainerr.Validation("invalid tag: %v", err)
		}
	}
	return nil
}

func FromFile(cfg config.Config, path string) (*content.Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domainerr.FileSystem(err, "cannot read post '%s'", path)
	}
	return Parse(cfg, raw, path)
}

// Parse decodes raw file content; source only appears in error messages.
func Parse(cfg config.Config, raw []byte, source string) (*content.Post, error) {
	block, body, err := header.Extract(string(raw), source)
	if err != nil {
		return nil, err
	}
	rec, err := header.Decode(block, source)
	if err != nil {
		return nil, err
	}
	p, err := rec.ToPost(cfg, source)
	if err != nil {
		return nil, err
	}
	p.Body = body
	return p, nil
}

// Write replaces the whole file at <posts_path>/<slug>.md.
func Write(cfg config.Config, p *content.Post) error {
	path := cfg.PostPath(p.Slug)
	if err := os.WriteFile(path, []byte(header.Encode(p, cfg)), 0o644); err != nil {
		return domainerr.FileSystem(err, "cannot write post '%s'", path)
	}
	slog.Debug("post written", "slug", p.Slug, "path", path)
	return nil
}

// RenameSlug moves the post file to the normalized newSlug and updates the
// slug and link. It must run before RelocateImages.
func RenameSlug(cfg config.Config, p *content.Post, newSlug string) error {
	newSlug = textutil.NormalizeSlug(newSlug)
	if newSlug == p.Slug {
		return nil
	}
	if newSlug == "" {
		return domainerr.Validation("the post slug is empty")
	}

	from, to := cfg.PostPath(p.Slug), cfg.PostPath(newSlug)
	if exists(to) {
		return domainerr.PostProperties("slug already exists: '%s'", newSlug)
	}
	if err := os.Rename(from, to); err != nil {
		return domainerr.FileSystem(err, "cannot rename '%s' to '%s'", from, to)
	}
	slog.Debug("post renamed", "from", from, "to", to)

	p.Slug = newSlug
	p.Link = cfg.Link(newSlug)
	return nil
}

// RelocateImages moves the image directory of oldSlug to the post's current
// slug. The header image is copied under its new name, every other file is
// moved as is, and the old directory is removed.
func RelocateImages(cfg config.Config, p *content.Post, oldSlug string) error {
	if p.Slug == oldSlug {
		return nil
	}
	oldDir, newDir := cfg.ImageDir(oldSlug), cfg.ImageDir(p.Slug)

	entries, err := os.ReadDir(oldDir)
	oldExists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domainerr.FileSystem(err, "cannot read image directory '%s'", oldDir)
	}
	for _, e := range entries {
		if e.IsDir() {
			return domainerr.Other("'%s' contains the directory '%s', image directories must be flat", oldDir, e.Name())
		}
	}

	if err := os.Mkdir(newDir, 0o755); err != nil {
		return domainerr.FileSystem(err, "cannot create image directory '%s'", newDir)
	}

	headerName := HeaderImageName(p.Slug, p.ImagePath)
	dst := filepath.Join(newDir, headerName)
	if err := copyFile(p.ImagePath, dst); err != nil {
		return err
	}

	for _, e := range entries {
		from := filepath.Join(oldDir, e.Name())
		if samePath(from, p.ImagePath) || e.Name() == headerName {
			continue
		}
		if err := os.Rename(from, filepath.Join(newDir, e.Name())); err != nil {
			return domainerr.FileSystem(err, "cannot move '%s' to '%s'", from, newDir)
		}
	}

	if oldExists {
		if err := os.RemoveAll(oldDir); err != nil {
			return domainerr.FileSystem(err, "cannot remove image directory '%s'", oldDir)
		}
	}
	slog.Debug("images relocated", "from", oldDir, "to", newDir)

	p.ImagePath = dst
	return nil
}

// ReplaceHeaderImage copies src in as the post's header image. A previous
// header inside the post's image directory is removed when its name differs.
func ReplaceHeaderImage(cfg config.Config, p *content.Post, src string) error {
	src, err := ResolvePath(src)
	if err != nil {
		return err
	}
	if err := requireFile(src); err != nil {
		return err
	}

	dir := cfg.ImageDir(p.Slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domainerr.FileSystem(err, "cannot create image directory '%s'", dir)
	}
	dst := filepath.Join(dir, HeaderImageName(p.Slug, src))
	if !samePath(src, dst) {
		if err := copyFile(src, dst); err != nil {
			return err
		}
	}

	old := p.ImagePath
	if old != "" && !samePath(old, dst) && samePath(filepath.Dir(old), dir) {
		if err := os.Remove(old); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return domainerr.FileSystem(err, "cannot remove old header image '%s'", old)
		}
	}
	p.ImagePath = dst
	return nil
}

// HeaderImageName is "<slug>-header.<ext>" with the extension of src, or png.
func HeaderImageName(slug, src string) string {
	ext := strings.TrimPrefix(filepath.Ext(src), ".")
	if ext == "" {
		ext = defaultImageExt
	}
	return slug + "-header." + ext
}

// ResolvePath expands a leading ~ and makes path absolute.
func ResolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", domainerr.FileSystem(err, "cannot resolve home directory")
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", domainerr.FileSystem(err, "cannot resolve '%s'", path)
	}
	return abs, nil
}

func requireFile(path string) error {
	st, err := os.Stat(path)
	if err != nil {
		return domainerr.Validation("the image doesn't exist: %s", path)
	}
	if st.IsDir() {
		return domainerr.Validation("the image is a directory: %s", path)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func samePath(a, b string) bool {
	aa, errA := filepath.Abs(a)
	bb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return aa == bb
}

func copyFile(src, dst string) error {
	in, err := os.ReadFile(src)
	if err != nil {
		return domainerr.FileSystem(err, "cannot read '%s'", src)
	}
	if err := os.WriteFile(dst, in, 0o644); err != nil {
		return domainerr.FileSystem(err, "cannot copy '%s' to '%s'", src, dst)
	}
	return nil
}
