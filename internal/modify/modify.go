// Package modify computes the next state of an existing post from an update
// selection and a set of field edits, then applies it to disk.
package modify

import (
	"log/slog"
	"os"
	"time"

	"alepc/internal/domain/config"
	"alepc/internal/domain/content"
	domainerr "alepc/internal/domain/errors"
	"alepc/internal/post"
	"alepc/internal/textutil"
)

// Plan is a reconciled post plus the side effects Apply still has to run.
// Post.Slug is the slug currently on disk; NewSlug is where it goes.
type Plan struct {
	Post     *content.Post
	NewSlug  string
	NewImage string
}

func (pl Plan) Renames() bool {
	return pl.NewSlug != pl.Post.Slug
}

// now is replaced in tests.
var now = time.Now

// Reconcile loads the post at postPath and resolves its next state. Nothing
// on disk is changed.
//
// Without sel.All only the draft flag (flipped) and the modified date are
// touched and edits is ignored. With sel.All every field comes from edits,
// falling back to the value on file, and the modified date is always bumped.
func Reconcile(cfg config.Config, postPath string, sel content.UpdateSelection, edits content.Edits) (Plan, error) {
	if err := sel.Validate(); err != nil {
		return Plan{}, err
	}
	p, err := post.FromFile(cfg, postPath)
	if err != nil {
		return Plan{}, err
	}

	if sel.FastPath() {
		if sel.DraftStatus {
			p.IsDraft = !p.IsDraft
		}
		if sel.ModifiedDate {
			p.Modified = now()
		}
		slog.Debug("fast path reconciled", "slug", p.Slug, "draft", p.IsDraft)
		return Plan{Post: p, NewSlug: p.Slug}, nil
	}

	plan := Plan{Post: p, NewSlug: textutil.NormalizeSlug(edits.Slug.Or(p.Slug))}
	if plan.NewSlug == "" {
		return Plan{}, domainerr.Validation("the post slug is empty")
	}
	if plan.Renames() {
		if err := checkSlugFree(cfg, plan.NewSlug); err != nil {
			return Plan{}, err
		}
	}

	if title, ok := edits.Title.Get(); ok {
		p.Retitle(title)
	}
	p.Description = edits.Description.Or(p.Description)
	if tags, ok := edits.Tags.Get(); ok {
		if err := post.CheckTags(tags); err != nil {
			return Plan{}, err
		}
		p.Tags = tags
	}
	p.IsDraft = edits.Draft.Or(p.IsDraft)

	if img, ok := edits.Image.Get(); ok {
		abs, err := post.ResolvePath(img)
		if err != nil {
			return Plan{}, err
		}
		if st, err := os.Stat(abs); err != nil || st.IsDir() {
			return Plan{}, domainerr.Validation("the post image doesn't exist: %s", abs)
		}
		plan.NewImage = abs
	}

	p.Modified = now()
	slog.Debug("full edit reconciled", "slug", p.Slug, "new_slug", plan.NewSlug, "new_image", plan.NewImage)
	return plan, nil
}

func checkSlugFree(cfg config.Config, slug string) error {
	for _, path := range []string{cfg.ImageDir(slug), cfg.PostPath(slug)} {
		if _, err := os.Lstat(path); err == nil {
			return domainerr.PostProperties("slug already exists: '%s'", slug)
		}
	}
	return nil
}

// Apply runs the plan's side effects in order: header image replacement,
// file rename, image relocation, full rewrite. A failure stops the sequence
// and leaves earlier steps in place.
func Apply(cfg config.Config, plan Plan) (*content.Post, error) {
	p := plan.Post
	oldSlug := p.Slug

	if plan.NewImage != "" {
		if err := post.ReplaceHeaderImage(cfg, p, plan.NewImage); err != nil {
			return nil, err
		}
	}
	if err := post.RenameSlug(cfg, p, plan.NewSlug); err != nil {
		return nil, err
	}
	if err := post.RelocateImages(cfg, p, oldSlug); err != nil {
		return nil, err
	}
	if err := post.Write(cfg, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Execute is Reconcile followed by Apply.
func Execute(cfg config.Config, postPath string, sel content.UpdateSelection, edits content.Edits) (*content.Post, error) {
	plan, err := Reconcile(cfg, postPath, sel, edits)
	if err != nil {
		return nil, err
	}
	return Apply(cfg, plan)
}
