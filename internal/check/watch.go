package check

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	domainerr "alepc/internal/domain/errors"
	"alepc/internal/ingest"
)

const debounceDelay = 200 * time.Millisecond

// Watch runs the check once and then again after every burst of changes in
// the posts or images directories, until ctx is done. Posts whose content is
// unchanged since they were last reported are left out of later reports.
func (c *Checker) Watch(ctx context.Context, report func(Report)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return domainerr.FileSystem(err, "cannot start file watcher")
	}
	defer w.Close()

	if err := w.Add(c.Cfg.PostsPath); err != nil {
		return domainerr.FileSystem(err, "cannot watch '%s'", c.Cfg.PostsPath)
	}
	err = filepath.WalkDir(c.Cfg.ImagesPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return domainerr.FileSystem(err, "cannot watch '%s'", c.Cfg.ImagesPath)
	}

	seen := make(map[string]string)
	first := true
	imagesChanged := false
	rerun := func() {
		// The hash covers the post text only, so image changes recheck everything.
		if imagesChanged {
			clear(seen)
			imagesChanged = false
		}
		visited := make(map[string]struct{})
		rep, err := c.run(func(doc ingest.Document) bool {
			visited[doc.Path] = struct{}{}
			if h, ok := seen[doc.Path]; ok && h == doc.Hash {
				return true
			}
			seen[doc.Path] = doc.Hash
			return false
		})
		if err != nil {
			slog.Error("check failed", "err", err)
			return
		}
		for path := range seen {
			if _, ok := visited[path]; !ok {
				delete(seen, path)
			}
		}
		if first || rep.Checked > 0 {
			report(rep)
		}
		first = false
	}
	rerun()

	slog.Info("watching for changes", "posts", c.Cfg.PostsPath, "images", c.Cfg.ImagesPath)
	debounce := time.NewTicker(time.Hour)
	debounce.Stop()

	trigger := func() {
		select {
		case <-debounce.C:
		default:
		}
		debounce.Reset(debounceDelay)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					_ = w.Add(ev.Name)
				}
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				if within(c.Cfg.ImagesPath, ev.Name) {
					imagesChanged = true
				}
				trigger()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "err", err)
		case <-debounce.C:
			debounce.Stop()
			rerun()
		}
	}
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
