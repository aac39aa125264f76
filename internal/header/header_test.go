package header

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alepc/internal/domain/config"
	"alepc/internal/domain/content"
	domainerr "alepc/internal/domain/errors"
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

func testPost(t *testing.T, cfg config.Config) *content.Post {
	t.Helper()
	dir := cfg.ImageDir("hello-world")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	img := filepath.Join(dir, "hello-world-header.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))

	return &content.Post{
		Title:       "Hello World",
		Slug:        "hello-world",
		Description: "A first post: with a colon",
		Tags:        []string{"go", "cli"},
		IsDraft:     true,
		ImagePath:   img,
		Date:        time.Date(2022, 3, 14, 0, 0, 0, 0, time.Local),
		Modified:    time.Date(2022, 4, 1, 0, 0, 0, 0, time.Local),
		Link:        cfg.Link("hello-world"),
		Layout:      cfg.PostsLayout,
	}
}

func TestEncode(t *testing.T) {
	cfg := testConfig(t)
	p := testPost(t, cfg)

	want := `---
title: "Hello World"
layout: "../../layouts/blog.astro"
image: "/images/hello-world/hello-world-header.png"
link: "/blog/hello-world"
date: "2022/03/14"
dateModified: "2022/04/01"
description: "A first post: with a colon"
draft: true
tags: ["go", "cli"]
---

# Hello World
`
	assert.Equal(t, want, Encode(p, cfg))
}

func TestRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	p := testPost(t, cfg)

	block, body, err := Extract(Encode(p, cfg), "mem")
	require.NoError(t, err)
	rec, err := Decode(block, "mem")
	require.NoError(t, err)
	got, err := rec.ToPost(cfg, "mem")
	require.NoError(t, err)

	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Slug, got.Slug)
	assert.Equal(t, p.Description, got.Description)
	assert.Equal(t, p.Tags, got.Tags)
	assert.Equal(t, p.IsDraft, got.IsDraft)
	assert.Equal(t, p.ImagePath, got.ImagePath)
	assert.Equal(t, p.Link, got.Link)
	assert.Equal(t, p.Layout, got.Layout)
	assert.True(t, p.Date.Equal(got.Date))
	assert.True(t, p.Modified.Equal(got.Modified))
	assert.Equal(t, "\n# Hello World\n", body)
}

func validBlock() []string {
	return []string{
		`---`,
		`title: "Hello World"`,
		`layout: "../../layouts/blog.astro"`,
		`image: "/images/hello-world/hello-world-header.png"`,
		`link: "/blog/hello-world"`,
		`date: "2022/03/14"`,
		`dateModified: "2022/04/01"`,
		`description: "Some description"`,
		`draft: false`,
		`tags: ["go"]`,
		`---`,
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]string) []string
		mention string
	}{
		{"missing key", func(l []string) []string { return append(l[:8:8], l[9:]...) }, "draft"},
		{"duplicate title", func(l []string) []string { l[2] = `title: "Again"`; return l }, "title"},
		{"unknown key", func(l []string) []string { l[3] = `cover: "x"`; return l }, "cover"},
		{"malformed line", func(l []string) []string { l[4] = `link "/blog/x"`; return l }, `link "/blog/x"`},
		{"wrong key case", func(l []string) []string { l[6] = `datemodified: "2022/04/01"`; return l }, "datemodified"},
		{"no footer", func(l []string) []string { return l[:len(l)-1] }, "must start and end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := strings.Join(tt.mutate(validBlock()), "\n")
			_, err := Decode(block, "posts/hello-world.md")
			require.Error(t, err)
			assert.True(t, domainerr.IsKind(err, domainerr.KindPostProperties), "kind = %v", domainerr.KindOf(err))
			assert.Contains(t, err.Error(), tt.mention)
			if tt.name != "no footer" {
				assert.Contains(t, err.Error(), "posts/hello-world.md")
			}
		})
	}
}

func TestExtract(t *testing.T) {
	raw := strings.Join(validBlock(), "\n") + "\n\n# Hello World\n\nBody text\n"
	block, body, err := Extract(raw, "a.md")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(validBlock(), "\n"), block)
	assert.Equal(t, "\n# Hello World\n\nBody text\n", body)

	_, _, err = Extract("# no header\n", "a.md")
	assert.True(t, domainerr.IsKind(err, domainerr.KindPostProperties))

	_, _, err = Extract("---\ntitle: \"x\"\n", "a.md")
	assert.True(t, domainerr.IsKind(err, domainerr.KindPostProperties))
}

func TestToPostValidation(t *testing.T) {
	cfg := testConfig(t)
	p := testPost(t, cfg)

	decode := func(t *testing.T, raw string) error {
		t.Helper()
		block, _, err := Extract(raw, "a.md")
		require.NoError(t, err)
		rec, err := Decode(block, "a.md")
		require.NoError(t, err)
		_, err = rec.ToPost(cfg, "a.md")
		return err
	}

	good := Encode(p, cfg)

	err := decode(t, strings.Replace(good, `link: "/blog/hello-world"`, `link: "/posts/hello-world"`, 1))
	assert.True(t, domainerr.IsKind(err, domainerr.KindPostProperties))

	err = decode(t, strings.Replace(good, `image: "/images/`, `image: "/media/`, 1))
	assert.True(t, domainerr.IsKind(err, domainerr.KindPostProperties))

	err = decode(t, strings.Replace(good, "draft: true", "draft: yes", 1))
	assert.True(t, domainerr.IsKind(err, domainerr.KindPostProperties))

	err = decode(t, strings.Replace(good, `date: "2022/03/14"`, `date: "14-03-2022"`, 1))
	assert.True(t, domainerr.IsKind(err, domainerr.KindPostProperties))

	err = decode(t, strings.Replace(good, `tags: ["go", "cli"]`, `tags: go, cli`, 1))
	assert.True(t, domainerr.IsKind(err, domainerr.KindPostProperties))

	require.NoError(t, os.Remove(p.ImagePath))
	err = decode(t, good)
	assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))
}

func TestSitePath(t *testing.T) {
	cfg := config.Default()
	cfg.ImagesPath = "../site/public/images/"

	disk := filepath.Join(cfg.ImagesPath, "a-post", "a-post-header.jpg")
	assert.Equal(t, "/images/a-post/a-post-header.jpg", SitePath(cfg, disk))

	back, ok := DiskPath(cfg, "/images/a-post/a-post-header.jpg")
	assert.True(t, ok)
	assert.Equal(t, disk, back)

	assert.Equal(t, "/elsewhere/x.png", SitePath(cfg, "/elsewhere/x.png"))
	_, ok = DiskPath(cfg, "/static/x.png")
	assert.False(t, ok)
}
