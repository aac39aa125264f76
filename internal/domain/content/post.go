package content

import (
	"strings"
	"time"
)

type Post struct {
	Title       string
	Slug        string
	Description string
	Tags        []string
	IsDraft     bool

	// ImagePath is the on-disk location of the header image. The
	// site-relative form only exists in the encoded header.
	ImagePath string

	Date     time.Time
	Modified time.Time

	Link   string
	Layout string

	// Body is everything after the header block.
	Body string
}

// Summary is the catalog view of a post.
type Summary struct {
	Slug        string
	Title       string
	Description string
	Tags        []string
	Draft       bool
	Date        time.Time
	Modified    time.Time
	SourcePath  string
	ContentHash string
}

func (p *Post) Summary(sourcePath, hash string) Summary {
	return Summary{
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Tags:        append([]string(nil), p.Tags...),
		Draft:       p.IsDraft,
		Date:        p.Date,
		Modified:    p.Modified,
		SourcePath:  sourcePath,
		ContentHash: hash,
	}
}

// Retitle swaps the title and rewrites a leading "# <old title>" heading in Body.
func (p *Post) Retitle(title string) {
	old := p.Title
	p.Title = title
	if old == title {
		return
	}
	trimmed := strings.TrimLeft(p.Body, "\n")
	lead := p.Body[:len(p.Body)-len(trimmed)]
	line, rest, _ := strings.Cut(trimmed, "\n")
	if strings.TrimSpace(line) == "# "+old {
		p.Body = lead + "# " + title + "\n" + rest
	}
}

// DefaultBody is the body written for a new post.
func DefaultBody(title string) string {
	return "\n# " + title + "\n"
}
