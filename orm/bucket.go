package orm

import (
	"regexp"

	"github.com/iov-one/aexnft/errors"
	"github.com/iov-one/aexnft/store"
)

// isBucketName tells whether a string can be used as a bucket name.
var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores models of one kind under a common
// key prefix. All values are serialized with the canonical model codec.
//
// A bucket does not carry any state itself. It only describes a namespace
// within a KVStore and is safe to copy.
type Bucket struct {
	prefix []byte
}

// NewBucket creates a bucket for the given name. The name must be a short
// lowercase identifier, as it becomes part of every key. Panics on an invalid
// name, which is a programmer error.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic("illegal bucket name: " + name)
	}
	return Bucket{
		prefix: append([]byte(name), ':'),
	}
}

// WithNamespace returns a bucket that additionally scopes every key under
// the given raw namespace. Use it when several instances of the same model
// family share one store, such as per-contract state. Namespaces must be of
// one fixed length so distinct instances cannot produce colliding prefixes.
func (b Bucket) WithNamespace(ns []byte) Bucket {
	prefix := append(append([]byte(nil), b.prefix...), ns...)
	return Bucket{
		prefix: append(prefix, ':'),
	}
}

// DBKey returns the full key including the bucket prefix.
func (b Bucket) DBKey(key []byte) []byte {
	return append(append([]byte(nil), b.prefix...), key...)
}

// Has returns true if an entry exists under the given key.
func (b Bucket) Has(db store.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// One loads the entry stored under the given key into dest. It fails with
// ErrNotFound when no entry exists.
func (b Bucket) One(db store.ReadOnlyKVStore, key []byte, dest interface{}) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %X", key)
	}
	return Unmarshal(raw, dest)
}

// Save persists the value under the given key, overwriting any previous
// entry.
func (b Bucket) Save(db store.SetDeleter, key []byte, value interface{}) error {
	raw, err := Marshal(value)
	if err != nil {
		return err
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes the entry under the given key. Deleting a missing entry is
// not an error.
func (b Bucket) Delete(db store.SetDeleter, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Iterate walks all bucket entries in ascending key order. The callback
// receives the key without the bucket prefix and the raw stored value.
// Returning an error from the callback stops the iteration and is passed
// through.
func (b Bucket) Iterate(db store.ReadOnlyKVStore, fn func(key, raw []byte) error) error {
	it, err := db.Iterator(b.prefix, prefixEnd(b.prefix))
	if err != nil {
		return err
	}
	defer it.Close()

	for ; it.Valid(); it.Next() {
		key := it.Key()[len(b.prefix):]
		if err := fn(key, it.Value()); err != nil {
			return err
		}
	}
	return nil
}

// prefixEnd returns the exclusive upper bound of the key range that shares
// the given prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	// a prefix of only 0xff bytes has no upper bound
	return nil
}
