package orm

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/iov-one/aexnft/errors"
)

// The state must serialize identically on every node, so models are encoded
// with CBOR in canonical form (sorted map keys, shortest integer forms).
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CanonicalEncOptions().EncMode(); err != nil {
		panic(err)
	}
	opts := cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}
	if decMode, err = opts.DecMode(); err != nil {
		panic(err)
	}
}

// Marshal serializes a model value into its canonical byte representation.
// A model that cannot be encoded is a programming error, not a state issue.
func Marshal(value interface{}) ([]byte, error) {
	raw, err := encMode.Marshal(value)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return raw, nil
}

// Unmarshal deserializes raw model bytes into dest, which must be a pointer.
func Unmarshal(raw []byte, dest interface{}) error {
	if err := decMode.Unmarshal(raw, dest); err != nil {
		return errors.Wrap(errors.ErrState, err.Error())
	}
	return nil
}
