package header

import (
	"os"
	"strings"

	"alepc/internal/domain/config"
	"alepc/internal/domain/content"
	domainerr "alepc/internal/domain/errors"
	"alepc/internal/textutil"
)

// Extract splits raw file content into the header block (both marker lines
// included, no trailing newline) and the body that follows it.
func Extract(raw, source string) (block, body string, err error) {
	norm := strings.ReplaceAll(raw, "\r\n", "\n")

	first, rest, ok := strings.Cut(norm, "\n")
	if !ok || first != Marker {
		return "", "", domainerr.PostProperties("no header block found in '%s'", source)
	}

	lines := []string{first}
	for {
		var line string
		line, rest, ok = strings.Cut(rest, "\n")
		lines = append(lines, line)
		if line == Marker {
			break
		}
		if !ok {
			return "", "", domainerr.PostProperties("header block in '%s' is not closed", source)
		}
	}
	return strings.Join(lines, "\n"), rest, nil
}

// Decode checks block is exactly the marker, the nine recognized keys each
// once as "key: value", and the marker again.
func Decode(block, source string) (Record, error) {
	lines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
	if len(lines) < 2 || lines[0] != Marker || lines[len(lines)-1] != Marker {
		return nil, domainerr.PostProperties("header block in '%s' must start and end with '%s'", source, Marker)
	}

	rec := make(Record, len(Keys))
	for _, line := range lines[1 : len(lines)-1] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, domainerr.PostProperties("'%s' invalid format (key: value) in '%s'", line, source)
		}
		if !isKey(key) {
			return nil, domainerr.PostProperties("'%s' is an invalid key in '%s'", key, source)
		}
		if _, dup := rec[key]; dup {
			return nil, domainerr.PostProperties("'%s' is a duplicate key in '%s'", key, source)
		}
		rec[key] = strings.TrimSpace(value)
	}

	if n := len(lines) - 2; n != len(Keys) {
		for _, key := range Keys {
			if _, ok := rec[key]; !ok {
				return nil, domainerr.PostProperties(
					"'%s' is missing from '%s' (found %d of %d properties)", key, source, n, len(Keys))
			}
		}
	}
	return rec, nil
}

// ToPost parses every value and maps the site-relative image back to disk.
func (r Record) ToPost(cfg config.Config, source string) (*content.Post, error) {
	str := func(key string) (string, error) {
		v, err := textutil.ParseQuotedString(r[key])
		if err != nil {
			return "", domainerr.WrapPostProperties(err, "'%s' in '%s'", key, source)
		}
		return v, nil
	}

	title, err := str(KeyTitle)
	if err != nil {
		return nil, err
	}
	layout, err := str(KeyLayout)
	if err != nil {
		return nil, err
	}
	description, err := str(KeyDescription)
	if err != nil {
		return nil, err
	}
	link, err := str(KeyLink)
	if err != nil {
		return nil, err
	}
	siteImage, err := str(KeyImage)
	if err != nil {
		return nil, err
	}

	tags, err := textutil.ParseStringList(r[KeyTags])
	if err != nil {
		return nil, domainerr.WrapPostProperties(err, "'%s' in '%s'", KeyTags, source)
	}
	draft, err := textutil.ParseBool(r[KeyDraft])
	if err != nil {
		return nil, domainerr.WrapPostProperties(err, "'%s' in '%s'", KeyDraft, source)
	}

	rawDate, err := str(KeyDate)
	if err != nil {
		return nil, err
	}
	created, err := textutil.ParseDate(rawDate, cfg.DateFormat)
	if err != nil {
		return nil, domainerr.WrapPostProperties(err, "'%s' in '%s'", KeyDate, source)
	}
	rawModified, err := str(KeyDateModified)
	if err != nil {
		return nil, err
	}
	modified, err := textutil.ParseDate(rawModified, cfg.DateFormat)
	if err != nil {
		return nil, domainerr.WrapPostProperties(err, "'%s' in '%s'", KeyDateModified, source)
	}

	if !strings.HasPrefix(link, cfg.BlogSitePath) {
		return nil, domainerr.PostProperties(
			"the post link '%s' in '%s' doesn't start with %s", link, source, cfg.BlogSitePath)
	}
	slug := link[strings.LastIndex(link, "/")+1:]
	if slug == "" || slug != textutil.NormalizeSlug(slug) {
		return nil, domainerr.PostProperties("'%s' has an invalid post link '%s'", source, link)
	}

	imagePath, ok := DiskPath(cfg, siteImage)
	if !ok {
		return nil, domainerr.PostProperties(
			"the post image '%s' in '%s' doesn't start with %s", siteImage, source, cfg.ImagesSitePath)
	}
	if _, err := os.Stat(imagePath); err != nil {
		return nil, domainerr.Validation("the post image doesn't exist: %s", imagePath)
	}

	return &content.Post{
		Title:       title,
		Slug:        slug,
		Description: description,
		Tags:        tags,
		IsDraft:     draft,
		ImagePath:   imagePath,
		Date:        created,
		Modified:    modified,
		Link:        link,
		Layout:      layout,
	}, nil
}
