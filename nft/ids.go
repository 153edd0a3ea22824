package nft

import (
	"github.com/iov-one/aexnft/errors"
	"github.com/iov-one/aexnft/orm"
	"github.com/iov-one/aexnft/store"
)

// tokenIDs issues token ids in strictly increasing order, starting at zero.
// The persisted sequence state is the count of ids handed out so far, which
// is also the next id to issue.
type tokenIDs struct {
	seq orm.Sequence
}

func newTokenIDs(ns []byte) tokenIDs {
	return tokenIDs{seq: orm.NewSequence("nft", "id").WithNamespace(ns)}
}

// next returns the current counter value and increments it.
func (t tokenIDs) next(db store.KVStore) (TokenID, error) {
	val, err := t.seq.NextInt(db)
	if err != nil {
		return 0, err
	}
	return TokenID(val - 1), nil
}

// reserve marks a caller-chosen id as issued so the counter never assigns it
// again. Ids beyond the int64 range are rejected to keep the sequence state
// sound.
func (t tokenIDs) reserve(db store.KVStore, id TokenID) error {
	next := int64(id) + 1
	if next <= 0 {
		return errors.Wrapf(errors.ErrOverflow, "token id: %d", id)
	}
	return t.seq.Raise(db, next)
}
