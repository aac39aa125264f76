// Package header encodes and decodes the fixed nine-key metadata block at
// the top of every post file.
package header

import (
	"fmt"
	"strconv"
	"strings"

	"alepc/internal/domain/config"
	"alepc/internal/domain/content"
	"alepc/internal/textutil"
)

const Marker = "---"

const (
	KeyTitle        = "title"
	KeyLayout       = "layout"
	KeyImage        = "image"
	KeyLink         = "link"
	KeyDate         = "date"
	KeyDateModified = "dateModified"
	KeyDescription  = "description"
	KeyDraft        = "draft"
	KeyTags         = "tags"
)

// Keys in file order.
var Keys = [...]string{
	KeyTitle,
	KeyLayout,
	KeyImage,
	KeyLink,
	KeyDate,
	KeyDateModified,
	KeyDescription,
	KeyDraft,
	KeyTags,
}

func isKey(k string) bool {
	for _, key := range Keys {
		if key == k {
			return true
		}
	}
	return false
}

// Record maps each recognized key to its raw, still-encoded value.
type Record map[string]string

func Encode(p *content.Post, cfg config.Config) string {
	layout := p.Layout
	if layout == "" {
		layout = cfg.PostsLayout
	}
	body := p.Body
	if strings.TrimSpace(body) == "" {
		body = content.DefaultBody(p.Title)
	}

	var b strings.Builder
	b.WriteString(Marker + "\n")
	fmt.Fprintf(&b, "%s: %s\n", KeyTitle, quote(p.Title))
	fmt.Fprintf(&b, "%s: %s\n", KeyLayout, quote(layout))
	fmt.Fprintf(&b, "%s: %s\n", KeyImage, quote(SitePath(cfg, p.ImagePath)))
	fmt.Fprintf(&b, "%s: %s\n", KeyLink, quote(p.Link))
	fmt.Fprintf(&b, "%s: %s\n", KeyDate, quote(textutil.FormatDate(p.Date, cfg.DateFormat)))
	fmt.Fprintf(&b, "%s: %s\n", KeyDateModified, quote(textutil.FormatDate(p.Modified, cfg.DateFormat)))
	fmt.Fprintf(&b, "%s: %s\n", KeyDescription, quote(p.Description))
	fmt.Fprintf(&b, "%s: %s\n", KeyDraft, strconv.FormatBool(p.IsDraft))
	fmt.Fprintf(&b, "%s: %s\n", KeyTags, textutil.FormatStringList(p.Tags))
	b.WriteString(Marker + "\n")
	b.WriteString(body)
	return b.String()
}

// quote wraps s verbatim; ParseQuotedString strips exactly these two characters.
func quote(s string) string {
	return `"` + s + `"`
}
