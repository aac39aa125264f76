// Package catalog rebuilds the post index from the posts directory.
package catalog

import (
	"context"
	"log/slog"

	"alepc/internal/domain/config"
	"alepc/internal/domain/content"
	"alepc/internal/index"
	"alepc/internal/ingest"
)

type Builder struct {
	Cfg       config.Config
	IndexPath string
}

type Result struct {
	Posts    int
	Drafts   int
	Warnings []ingest.Warning
}

// Run ingests every post and replaces the index content. The returned store
// is open; the caller closes it.
func (b *Builder) Run(ctx context.Context) (*index.Store, *Result, error) {
	docs, warns, err := ingest.Ingest(b.Cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	path := b.IndexPath
	if path == "" {
		path = b.Cfg.CatalogPath
	}
	st, err := index.Open(index.OpenOptions{Path: path})
	if err != nil {
		return nil, nil, err
	}

	res := &Result{Posts: len(docs), Warnings: warns}
	sums := make([]content.Summary, 0, len(docs))
	for _, d := range docs {
		if d.Post.IsDraft {
			res.Drafts++
		}
		sums = append(sums, d.Summary())
	}
	if err := st.Rebuild(sums); err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	for _, w := range warns {
		slog.Warn("post skipped or suspicious", "path", w.Path, "msg", w.Msg)
	}
	slog.Debug("catalog rebuilt", "posts", res.Posts, "drafts", res.Drafts, "path", path)
	return st, res, nil
}
