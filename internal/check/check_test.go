package check

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alepc/internal/domain/config"
	"alepc/internal/post"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.PostsPath = filepath.Join(root, "blog")
	cfg.ImagesPath = filepath.Join(root, "images")
	require.NoError(t, os.MkdirAll(cfg.PostsPath, 0o755))
	require.NoError(t, os.MkdirAll(cfg.ImagesPath, 0o755))
	return cfg
}

func writePost(t *testing.T, cfg config.Config, title, slug string) string {
	t.Helper()
	img := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))
	p, err := post.Create(cfg, title, slug, "Some description", []string{"go"}, img)
	require.NoError(t, err)
	require.NoError(t, post.Write(cfg, p))
	return cfg.PostPath(p.Slug)
}

func messages(rep Report) []string {
	var out []string
	for _, f := range rep.Findings {
		out = append(out, f.Msg)
	}
	return out
}

func TestRunClean(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg, "Hello World", "hello-world")

	rep, err := New(cfg).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Checked)
	assert.Empty(t, rep.Findings)
}

func TestRunFindings(t *testing.T) {
	cfg := testConfig(t)
	path := writePost(t, cfg, "Hello World", "hello-world")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(string(raw), "# Hello World", "# Something Else", 1)), 0o644))
	require.NoError(t, os.Rename(path, filepath.Join(cfg.PostsPath, "renamed.md")))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PostsPath, "broken.md"), []byte("no header"), 0o644))

	rep, err := New(cfg).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Checked)

	msgs := messages(rep)
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0], "no header block")
	assert.Contains(t, msgs, "file name 'renamed' differs from slug 'hello-world'")
	assert.Contains(t, msgs, "first heading 'Something Else' differs from title 'Hello World'")
}

func TestImageOutsideSlugDir(t *testing.T) {
	cfg := testConfig(t)
	path := writePost(t, cfg, "Hello World", "hello-world")

	shared := filepath.Join(cfg.ImagesPath, "shared")
	require.NoError(t, os.MkdirAll(shared, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(shared, "x.png"), []byte("png"), 0o644))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	fixed := strings.Replace(string(raw), "/images/hello-world/hello-world-header.png", "/images/shared/x.png", 1)
	require.NoError(t, os.WriteFile(path, []byte(fixed), 0o644))

	rep, err := New(cfg).Run()
	require.NoError(t, err)
	require.Len(t, rep.Findings, 1)
	assert.Contains(t, rep.Findings[0].Msg, "is outside")
}

func TestWatchRechecksAfterImageRemoval(t *testing.T) {
	cfg := testConfig(t)
	writePost(t, cfg, "Hello World", "hello-world")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan Report, 8)
	go func() { _ = New(cfg).Watch(ctx, func(r Report) { reports <- r }) }()

	next := func() Report {
		t.Helper()
		select {
		case r := <-reports:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("no report")
			return Report{}
		}
	}

	rep := next()
	require.Equal(t, 1, rep.Checked)
	assert.Empty(t, rep.Findings)

	require.NoError(t, os.Remove(filepath.Join(cfg.ImageDir("hello-world"), "hello-world-header.png")))

	rep = next()
	assert.Equal(t, 1, rep.Checked)
	require.Len(t, rep.Findings, 1)
	assert.Contains(t, rep.Findings[0].Msg, "does not exist")
}

func TestWithin(t *testing.T) {
	assert.True(t, within("/img", "/img/a/b.png"))
	assert.False(t, within("/img", "/img2/a.png"))
	assert.False(t, within("/img", "/blog/a.md"))
}

func TestWatchReportsOnlyChangedPosts(t *testing.T) {
	cfg := testConfig(t)
	first := writePost(t, cfg, "Hello World", "hello-world")
	writePost(t, cfg, "Second Post", "second-post")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan Report, 8)
	done := make(chan error, 1)
	go func() { done <- New(cfg).Watch(ctx, func(r Report) { reports <- r }) }()

	next := func() Report {
		t.Helper()
		select {
		case r := <-reports:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("no report")
			return Report{}
		}
	}

	assert.Equal(t, 2, next().Checked)

	raw, err := os.ReadFile(first)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(first, append(raw, []byte("\nMore text.\n")...), 0o644))

	rep := next()
	assert.Equal(t, 1, rep.Checked)
	assert.Empty(t, rep.Findings)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
