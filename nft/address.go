package nft

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
	"golang.org/x/crypto/blake2b"

	"github.com/iov-one/aexnft/errors"
)

// AddressLength is the length of all addresses. It must not change during
// the lifetime of the kvstore.
const AddressLength = 20

// addressHRP is the human readable part of the bech32 address encoding.
const addressHRP = "ak"

// Address is an opaque account identifier, a collision-free one-way digest
// of the account's public key or condition.
type Address []byte

// NewAddress hashes the given material into a valid address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := blake2b.Sum256(data)
	return Address(h[:AddressLength])
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Validate returns an error if the address is not the proper format.
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length: %d", len(a))
	}
	return nil
}

// String returns the bech32 representation, or hex if the value cannot be
// encoded.
func (a Address) String() string {
	if len(a) == 0 {
		return "(empty)"
	}
	conv, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return hex.EncodeToString(a)
	}
	enc, err := bech32.Encode(addressHRP, conv)
	if err != nil {
		return hex.EncodeToString(a)
	}
	return enc
}

// ParseAddress decodes the bech32 representation of an address.
func ParseAddress(enc string) (Address, error) {
	hrp, conv, err := bech32.Decode(enc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if hrp != addressHRP {
		return nil, errors.Wrapf(errors.ErrInput, "address prefix: %q", hrp)
	}
	raw, err := bech32.ConvertBits(conv, 5, 8, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	a := Address(raw)
	return a, a.Validate()
}

// Condition is a specially formatted byte array containing information on
// who can authorize an action. It is of the format:
//
//	sprintf("%s/%s/%s", extension, type, data)
type Condition []byte

// NewCondition composes a condition from its three sections.
func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Address converts a Condition into an Address.
func (c Condition) Address() Address {
	return NewAddress(c)
}

// TokenID is the immutable integer identity of a single non-fungible unit.
// Ids are assigned by the contract in strictly increasing order, starting at
// zero, and are never reused.
type TokenID uint64

// Bytes returns the big-endian key form so ids sort numerically in the
// store.
func (id TokenID) Bytes() []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(id))
	return bz
}

// tokenIDFromBytes is the inverse of Bytes.
func tokenIDFromBytes(bz []byte) (TokenID, error) {
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "token id key length: %d", len(bz))
	}
	return TokenID(binary.BigEndian.Uint64(bz)), nil
}
