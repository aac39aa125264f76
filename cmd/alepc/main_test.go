package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alepc/internal/domain/config"
	domainerr "alepc/internal/domain/errors"
	"alepc/internal/post"
)

func writeConfig(t *testing.T) (config.Config, string) {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.PostsPath = filepath.Join(root, "src", "pages", "blog")
	cfg.ImagesPath = filepath.Join(root, "public", "images")
	cfg.CatalogPath = filepath.Join(root, "cache", "catalog.db")
	require.NoError(t, os.MkdirAll(cfg.PostsPath, 0o755))
	require.NoError(t, os.MkdirAll(cfg.ImagesPath, 0o755))
	layouts := filepath.Join(root, "src", "layouts")
	require.NoError(t, os.MkdirAll(layouts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(layouts, "blog.astro"), nil, 0o644))

	path := filepath.Join(root, "config.yaml")
	require.NoError(t, cfg.Write(path))
	return cfg, path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListAndCheck(t *testing.T) {
	cfg, path := writeConfig(t)
	img := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))
	p, err := post.Create(cfg, "Hello World", "hello-world", "Some description", []string{"go", "cli"}, img)
	require.NoError(t, err)
	require.NoError(t, post.Write(cfg, p))

	out, err := execute(t, "--config", path, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "hello-world")

	out, err = execute(t, "--config", path, "list", "--drafts", "--tag", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "hello-world")
	assert.Contains(t, out, "go, cli")

	out, err = execute(t, "--config", path, "list", "Hello_World")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello World")

	_, err = execute(t, "--config", path, "list", "missing-post")
	assert.True(t, domainerr.IsKind(err, domainerr.KindPostProperties))

	out, err = execute(t, "--config", path, "list", "--tags")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^cli\s+1$`, out)
	assert.Regexp(t, `(?m)^go\s+1$`, out)

	_, err = execute(t, "--config", path, "list", "--sort", "title")
	assert.Equal(t, 78, domainerr.ExitCode(err))

	out, err = execute(t, "--config", path, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "1 post(s) checked, 0 problem(s)")

	require.NoError(t, os.WriteFile(filepath.Join(cfg.PostsPath, "broken.md"), []byte("oops"), 0o644))
	_, err = execute(t, "--config", path, "check")
	assert.Equal(t, 78, domainerr.ExitCode(err))
}

func TestListPaging(t *testing.T) {
	cfg, path := writeConfig(t)
	img := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))
	for _, slug := range []string{"first-post", "second-post", "third-post"} {
		p, err := post.Create(cfg, "Paged entry", slug, "Some description", []string{"go"}, img)
		require.NoError(t, err)
		p.IsDraft = false
		require.NoError(t, post.Write(cfg, p))
	}

	count := func(out string) int {
		return strings.Count(out, "-post")
	}

	out, err := execute(t, "--config", path, "list", "--size", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, count(out))

	out, err = execute(t, "--config", path, "list", "--size", "2", "--page", "2")
	require.NoError(t, err)
	assert.Equal(t, 1, count(out))

	out, err = execute(t, "--config", path, "list")
	require.NoError(t, err)
	assert.Equal(t, 3, count(out))

	_, err = execute(t, "--config", path, "list", "--page", "0")
	assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))
}

func TestVersion(t *testing.T) {
	_, path := writeConfig(t)
	out, err := execute(t, "--config", path, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "alepc dev")
}

func TestMissingConfigIsWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	_, err := execute(t, "--config", path, "list")
	require.Error(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, 78, domainerr.ExitCode(err))
}
