// Package check reports posts whose header, file name, body heading or
// header image disagree with each other.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"alepc/internal/domain/config"
	"alepc/internal/ingest"
	"alepc/internal/render"
)

type Finding struct {
	Path string
	Msg  string
}

func (f Finding) String() string {
	return f.Path + ": " + f.Msg
}

type Report struct {
	Checked  int
	Findings []Finding
}

type Checker struct {
	Cfg config.Config
	md  *render.MarkdownRenderer
}

func New(cfg config.Config) *Checker {
	return &Checker{Cfg: cfg, md: render.NewMarkdownRenderer()}
}

// Run checks every post file in the posts directory.
func (c *Checker) Run() (Report, error) {
	return c.run(nil)
}

// run skips documents for which skip returns true.
func (c *Checker) run(skip func(ingest.Document) bool) (Report, error) {
	files, err := ingest.Discover(c.Cfg.PostsPath)
	if err != nil {
		return Report{}, err
	}
	var rep Report
	for _, sf := range files {
		doc, err := ingest.Load(c.Cfg, sf)
		if err != nil {
			return Report{}, err
		}
		if skip != nil && skip(doc) {
			continue
		}
		rep.Checked++
		rep.Findings = append(rep.Findings, c.Document(sf, doc)...)
	}
	return rep, nil
}

func (c *Checker) Document(sf ingest.SourceFile, doc ingest.Document) []Finding {
	add := func(out []Finding, format string, args ...any) []Finding {
		return append(out, Finding{Path: doc.Path, Msg: fmt.Sprintf(format, args...)})
	}

	var out []Finding
	if doc.ParseErr != nil {
		return add(out, "%v", doc.ParseErr)
	}
	p := doc.Post

	if sf.Name() != p.Slug {
		out = add(out, "file name '%s' differs from slug '%s'", sf.Name(), p.Slug)
	}

	h, ok := c.md.FirstHeading([]byte(p.Body), 1)
	switch {
	case !ok:
		out = add(out, "body has no level 1 heading")
	case strings.TrimSpace(h.Text) != strings.TrimSpace(p.Title):
		out = add(out, "first heading '%s' differs from title '%s'", h.Text, p.Title)
	}

	if _, err := os.Stat(p.ImagePath); err != nil {
		out = add(out, "header image '%s' does not exist", p.ImagePath)
	}
	if dir := c.Cfg.ImageDir(p.Slug); filepath.Clean(filepath.Dir(p.ImagePath)) != filepath.Clean(dir) {
		out = add(out, "header image '%s' is outside '%s'", p.ImagePath, dir)
	}

	if p.Modified.Before(p.Date) {
		out = add(out, "dateModified is before date")
	}
	return out
}
