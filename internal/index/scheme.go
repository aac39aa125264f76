package index

var (
	bMeta   = []byte("meta")    // slug -> summary json
	bIdxTag = []byte("idx_tag") // tag -> sub-bucket of updated keys

	bIdxUpdated = []byte("idx_updated")
	bIdxCreated = []byte("idx_created")
)
