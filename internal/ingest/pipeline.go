package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"alepc/internal/domain/config"
	"alepc/internal/domain/content"
	domainerr "alepc/internal/domain/errors"
	"alepc/internal/post"
)

type Warning struct {
	Path string
	Msg  string
}

// Document is one post file as read from disk. ParseErr is set when the
// header could not be decoded; Post is nil then.
type Document struct {
	Path     string
	Hash     string
	Post     *content.Post
	ParseErr error
}

func (d Document) Summary() content.Summary {
	return d.Post.Summary(d.Path, d.Hash)
}

func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Load reads and decodes one file. Only an unreadable file is an error.
func Load(cfg config.Config, sf SourceFile) (Document, error) {
	raw, err := os.ReadFile(sf.Path)
	if err != nil {
		return Document{}, domainerr.FileSystem(err, "cannot read post '%s'", sf.Path)
	}
	doc := Document{Path: sf.Path, Hash: HashBytes(raw)}
	doc.Post, doc.ParseErr = post.Parse(cfg, raw, sf.Path)
	return doc, nil
}

// Ingest loads every post under cfg.PostsPath. Posts that fail to decode or
// share a slug with an earlier one are skipped and reported as warnings.
func Ingest(cfg config.Config) ([]Document, []Warning, error) {
	files, err := Discover(cfg.PostsPath)
	if err != nil {
		return nil, nil, err
	}

	var out []Document
	var warns []Warning
	seen := make(map[string]struct{}, len(files))
	for _, sf := range files {
		doc, err := Load(cfg, sf)
		if err != nil {
			return nil, nil, err
		}
		if doc.ParseErr != nil {
			warns = append(warns, Warning{Path: sf.Path, Msg: doc.ParseErr.Error()})
			continue
		}
		if doc.Post.Slug != sf.Name() {
			warns = append(warns, Warning{Path: sf.Path, Msg: "file name differs from slug " + doc.Post.Slug})
		}
		if _, ok := seen[doc.Post.Slug]; ok {
			warns = append(warns, Warning{Path: sf.Path, Msg: "duplicate slug, skipped: " + doc.Post.Slug})
			continue
		}
		seen[doc.Post.Slug] = struct{}{}
		out = append(out, doc)
	}
	return out, warns, nil
}
