package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"alepc/internal/domain/config"
	"alepc/internal/post"
	"alepc/internal/textutil"
)

// Length checks the trimmed rune count of s is within lo..hi.
func Length(s string, lo, hi int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	if n < lo {
		return fmt.Errorf("must be at least %d characters, got %d", lo, n)
	}
	if n > hi {
		return fmt.Errorf("must be at most %d characters, got %d", hi, n)
	}
	return nil
}

func Tags(s string, set config.CreatePostSettings) error {
	tags := textutil.NormalizeTags(s, set.SeparatedTagsBy)
	if len(tags) < set.MinimumTagsCount {
		return fmt.Errorf("at least %d tags are required, separated by '%s'", set.MinimumTagsCount, set.SeparatedTagsBy)
	}
	if len(tags) > set.MaximumTagsCount {
		return fmt.Errorf("at most %d tags are allowed", set.MaximumTagsCount)
	}
	for _, tag := range tags {
		if err := textutil.CheckListItem(tag); err != nil {
			return fmt.Errorf("tag '%s' must not contain ',' or '\"'", tag)
		}
		if err := Length(tag, set.MinimumSingleTagLength, set.MaximumSingleTagLength); err != nil {
			return fmt.Errorf("tag '%s' %v", tag, err)
		}
	}
	return nil
}

// ImageFile requires path (after ~ expansion) to be an existing regular file.
func ImageFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("an image path is required")
	}
	abs, err := post.ResolvePath(path)
	if err != nil {
		return err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("'%s' does not exist", abs)
	}
	if !st.IsDir() {
		return nil
	}
	return fmt.Errorf("'%s' is a directory", abs)
}

// PostExists requires a post file for the normalized slug.
func PostExists(cfg config.Config, slug string) error {
	slug = textutil.NormalizeSlug(slug)
	if slug == "" {
		return errors.New("a post slug is required")
	}
	if _, err := os.Stat(cfg.PostPath(slug)); err != nil {
		return fmt.Errorf("there is no post with the slug '%s'", slug)
	}
	return nil
}

// SlugFree requires neither a post file nor an image directory for the
// normalized slug.
func SlugFree(cfg config.Config, slug string) error {
	slug = textutil.NormalizeSlug(slug)
	for _, path := range []string{cfg.PostPath(slug), cfg.ImageDir(slug)} {
		if _, err := os.Lstat(path); err == nil {
			return fmt.Errorf("the slug '%s' already exists", slug)
		}
	}
	return nil
}

// keepOr accepts the keep-old-value text unchanged and hands everything else to check.
func keepOr(cfg config.Config, check func(Answers, string) error) func(Answers, any) error {
	return func(a Answers, v any) error {
		s, _ := v.(string)
		if isKeep(cfg, s) {
			return nil
		}
		return check(a, s)
	}
}

func text(check func(Answers, string) error) func(Answers, any) error {
	return func(a Answers, v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("unexpected answer %v", v)
		}
		return check(a, s)
	}
}

func isKeep(cfg config.Config, s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == cfg.Modify.KeepOldValueMessage
}
