package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alepc/internal/domain/config"
	"alepc/internal/index"
	"alepc/internal/post"
)

func TestBuilderRun(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.PostsPath = filepath.Join(root, "blog")
	cfg.ImagesPath = filepath.Join(root, "images")
	cfg.CatalogPath = filepath.Join(root, "cache", "catalog.db")
	require.NoError(t, os.MkdirAll(cfg.PostsPath, 0o755))
	require.NoError(t, os.MkdirAll(cfg.ImagesPath, 0o755))

	img := filepath.Join(root, "cover.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))
	for _, slug := range []string{"first-post", "second-post"} {
		p, err := post.Create(cfg, "Title "+slug, slug, "Some description", []string{"go"}, img)
		require.NoError(t, err)
		if slug == "second-post" {
			p.IsDraft = false
		}
		require.NoError(t, post.Write(cfg, p))
	}
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PostsPath, "broken.md"), []byte("oops"), 0o644))

	b := &Builder{Cfg: cfg}
	st, res, err := b.Run(context.Background())
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, 2, res.Posts)
	assert.Equal(t, 1, res.Drafts)
	assert.Len(t, res.Warnings, 1)
	assert.FileExists(t, cfg.CatalogPath)

	published, err := st.List(index.ListOptions{})
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "second-post", published[0].Slug)

	all, err := st.List(index.ListOptions{IncludeDraft: true, Tag: "go"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
