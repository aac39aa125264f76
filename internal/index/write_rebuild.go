package index

import (
	"encoding/json"
	"errors"
	"strings"

	bolt "go.etcd.io/bbolt"

	"alepc/internal/domain/content"
	domainerr "alepc/internal/domain/errors"
)

// Rebuild drops every bucket and indexes posts from scratch. Drafts are
// always stored; List decides whether to show them.
func (s *Store) Rebuild(posts []content.Summary) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bMeta, bIdxTag, bIdxUpdated, bIdxCreated} {
			if err := tx.DeleteBucket(name); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
		}

		metaB, err := tx.CreateBucket(bMeta)
		if err != nil {
			return err
		}
		idxUpdatedB, err := tx.CreateBucket(bIdxUpdated)
		if err != nil {
			return err
		}
		idxCreatedB, err := tx.CreateBucket(bIdxCreated)
		if err != nil {
			return err
		}
		idxTagB, err := tx.CreateBucket(bIdxTag)
		if err != nil {
			return err
		}

		for _, p := range posts {
			if strings.TrimSpace(p.Slug) == "" {
				continue
			}
			mb, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := metaB.Put([]byte(p.Slug), mb); err != nil {
				return err
			}

			uKey := makeTimeSlugKey(p.Modified.UnixNano(), p.Slug)
			if err := idxUpdatedB.Put(uKey, []byte{1}); err != nil {
				return err
			}
			cKey := makeTimeSlugKey(p.Date.UnixNano(), p.Slug)
			if err := idxCreatedB.Put(cKey, []byte{1}); err != nil {
				return err
			}

			for _, tag := range p.Tags {
				if tag == "" {
					continue
				}
				sb, err := idxTagB.CreateBucketIfNotExists([]byte(tag))
				if err != nil {
					return err
				}
				if err := sb.Put(uKey, []byte{1}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return domainerr.FileSystem(err, "cannot rebuild catalog")
	}
	return nil
}
