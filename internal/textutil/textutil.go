// Package textutil holds the pure string helpers shared by the header codec
// and the prompt layer.
package textutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

var ErrInvalidFormat = errors.New("invalid format")

// NormalizeSlug trims, lowercases and turns spaces and underscores into hyphens.
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' {
			return '-'
		}
		return r
	}, s)
}

// NormalizeTags splits on sep, trims and lowercases every piece and drops
// the empty ones. Duplicates are kept in input order.
func NormalizeTags(s, sep string) []string {
	out := []string{}
	for _, item := range strings.Split(s, sep) {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func ParseQuotedString(s string) (string, error) {
	if len(s) < 2 || !strings.HasPrefix(s, `"`) || !strings.HasSuffix(s, `"`) {
		return "", fmt.Errorf("%w: %q is not a quoted string", ErrInvalidFormat, s)
	}
	return s[1 : len(s)-1], nil
}

func ParseStringList(s string) ([]string, error) {
	if len(s) < 2 || !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: %q is not a list", ErrInvalidFormat, s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	out := []string{}
	if inner == "" {
		return out, nil
	}
	for _, item := range strings.Split(inner, ",") {
		v, err := ParseQuotedString(strings.TrimSpace(item))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// CheckListItem rejects items that FormatStringList cannot write in a form
// ParseStringList reads back.
func CheckListItem(item string) error {
	if strings.ContainsAny(item, `,"`) {
		return fmt.Errorf("%w: %q must not contain ',' or '\"'", ErrInvalidFormat, item)
	}
	return nil
}

// FormatStringList is the inverse of ParseStringList for items accepted by
// CheckListItem.
func FormatStringList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = `"` + item + `"`
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func ParseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidFormat, s)
}

// DateLayout converts a strftime pattern into a Go time layout.
func DateLayout(format string) (string, error) {
	layout, err := strftime.Layout(format)
	if err != nil {
		return "", fmt.Errorf("%w: date format %q: %v", ErrInvalidFormat, format, err)
	}
	return layout, nil
}

func FormatDate(t time.Time, format string) string {
	return strftime.Format(format, t)
}

// ParseDate parses a calendar date and anchors it at local midnight.
// A midnight that does not exist or exists twice in time.Local is rejected.
func ParseDate(s, format string) (time.Time, error) {
	layout, err := DateLayout(format)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q does not match %q", ErrInvalidFormat, s, format)
	}
	y, m, day := d.Date()
	return localMidnight(y, m, day)
}

func localMidnight(y int, m time.Month, d int) (time.Time, error) {
	wall := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var found []time.Time
	seen := make(map[int]struct{}, 3)
	for _, probe := range []time.Duration{-36 * time.Hour, 0, 36 * time.Hour} {
		_, off := wall.Add(probe).In(time.Local).Zone()
		if _, ok := seen[off]; ok {
			continue
		}
		seen[off] = struct{}{}
		c := wall.Add(-time.Duration(off) * time.Second).In(time.Local)
		if sameWall(c, wall) && !containsInstant(found, c) {
			found = append(found, c)
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return time.Time{}, fmt.Errorf("%w: %s has no local midnight", ErrInvalidFormat, wall.Format(time.DateOnly))
	default:
		return time.Time{}, fmt.Errorf("%w: %s local midnight is ambiguous", ErrInvalidFormat, wall.Format(time.DateOnly))
	}
}

func sameWall(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd && a.Hour() == b.Hour() && a.Minute() == b.Minute()
}

func containsInstant(ts []time.Time, t time.Time) bool {
	for _, x := range ts {
		if x.Equal(t) {
			return true
		}
	}
	return false
}
