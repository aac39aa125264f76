package index

import (
	"encoding/json"
	"errors"
	"strings"

	bolt "go.etcd.io/bbolt"

	"alepc/internal/domain/content"
	domainerr "alepc/internal/domain/errors"
)

var ErrNotFound = errors.New("not found")

type SortMode string

const (
	SortUpdated SortMode = "updated"
	SortCreated SortMode = "created"
)

func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortUpdated:
		return SortUpdated, nil
	case SortCreated:
		return SortCreated, nil
	}
	return "", domainerr.Validation("unknown sort mode '%s' (use updated or created)", s)
}

// ListOptions filters and pages List. Size <= 0 returns every match.
// With Tag set the order is always by modified date.
type ListOptions struct {
	Sort         SortMode
	Tag          string
	IncludeDraft bool
	Page         int
	Size         int
}

func (s *Store) Get(slug string) (content.Summary, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.Summary{}, ErrNotFound
	}
	var m content.Summary
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &m)
	})
	return m, err
}

func (s *Store) List(opt ListOptions) ([]content.Summary, error) {
	if opt.Page <= 0 {
		opt.Page = 1
	}
	tag := strings.ToLower(strings.TrimSpace(opt.Tag))

	var out []content.Summary
	err := s.db.View(func(tx *bolt.Tx) error {
		metaB := tx.Bucket(bMeta)
		idx := indexBucket(tx, opt.Sort, tag)
		if idx == nil || metaB == nil {
			return nil
		}

		skip := 0
		if opt.Size > 0 {
			skip = (opt.Page - 1) * opt.Size
		}
		cur := idx.Cursor()
		for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
			slug := slugFromTimeSlugKey(k)
			if slug == "" {
				continue
			}
			v := metaB.Get([]byte(slug))
			if v == nil {
				continue
			}
			var m content.Summary
			if err := json.Unmarshal(v, &m); err != nil {
				continue
			}
			if m.Draft && !opt.IncludeDraft {
				continue
			}
			if skip > 0 {
				skip--
				continue
			}
			out = append(out, m)
			if opt.Size > 0 && len(out) >= opt.Size {
				break
			}
		}
		return nil
	})
	return out, err
}

func indexBucket(tx *bolt.Tx, mode SortMode, tag string) *bolt.Bucket {
	if tag != "" {
		parent := tx.Bucket(bIdxTag)
		if parent == nil {
			return nil
		}
		return parent.Bucket([]byte(tag))
	}
	if mode == SortCreated {
		return tx.Bucket(bIdxCreated)
	}
	return tx.Bucket(bIdxUpdated)
}

type TagCount struct {
	Tag   string
	Count int
}

// Tags counts posts per tag, drafts included, ordered by tag name.
func (s *Store) Tags() ([]TagCount, error) {
	var out []TagCount
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bIdxTag)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			sb := b.Bucket(k)
			if sb == nil {
				return nil
			}
			n := 0
			c := sb.Cursor()
			for ck, _ := c.First(); ck != nil; ck, _ = c.Next() {
				n++
			}
			out = append(out, TagCount{Tag: string(k), Count: n})
			return nil
		})
	})
	return out, err
}
