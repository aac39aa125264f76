package post

import (
	"strconv"
	"strings"

	"alepc/internal/domain/config"
	"alepc/internal/domain/content"
	"alepc/internal/textutil"
)

type Field int

const (
	FieldTitle Field = iota
	FieldSlug
	FieldDescription
	FieldTags
	FieldImage
	FieldDraft
	FieldDate
	FieldModified
)

// ReadField reads one value of the post at path back as text, the way it is
// shown as the current value in modify prompts.
func ReadField(cfg config.Config, path string, f Field) (string, error) {
	p, err := FromFile(cfg, path)
	if err != nil {
		return "", err
	}
	return FieldValue(cfg, p, f), nil
}

func FieldValue(cfg config.Config, p *content.Post, f Field) string {
	switch f {
	case FieldTitle:
		return p.Title
	case FieldSlug:
		return p.Slug
	case FieldDescription:
		return p.Description
	case FieldTags:
		return strings.Join(p.Tags, cfg.Create.SeparatedTagsBy)
	case FieldImage:
		return p.ImagePath
	case FieldDraft:
		return strconv.FormatBool(p.IsDraft)
	case FieldDate:
		return textutil.FormatDate(p.Date, cfg.DateFormat)
	case FieldModified:
		return textutil.FormatDate(p.Modified, cfg.DateFormat)
	}
	return ""
}
