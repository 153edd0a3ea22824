package nft

import "github.com/iov-one/aexnft/errors"

// MetadataType enumerates the metadata encodings a deployment can declare.
// It doubles as the variant tag of the Metadata union.
type MetadataType uint8

const (
	// TypeURL carries a link to an off-chain resource.
	TypeURL MetadataType = iota + 1
	// TypeString carries an arbitrary immutable string.
	TypeString
	// TypeIdentifier carries an object id resolved against the base URL.
	TypeIdentifier
	// TypeMap carries an ordered list of string pairs.
	TypeMap
)

// String implements fmt.Stringer, returning the AEX-141 tag name.
func (t MetadataType) String() string {
	switch t {
	case TypeURL:
		return "URL"
	case TypeString:
		return "STRING"
	case TypeIdentifier:
		return "OBJECT_ID"
	case TypeMap:
		return "MAP"
	default:
		return "INVALID"
	}
}

// Validate returns an error unless this is a declared variant.
func (t MetadataType) Validate() error {
	switch t {
	case TypeURL, TypeString, TypeIdentifier, TypeMap:
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "metadata type: %d", t)
	}
}

// MetadataPair is one entry of a TypeMap metadata value. Pairs keep their
// mint-time order.
type MetadataPair struct {
	Key   string `cbor:"1,keyasint"`
	Value string `cbor:"2,keyasint"`
}

// Metadata is the tagged union stored once per token, fixed at mint time.
// Exactly one payload is populated: Text for URL, STRING and OBJECT_ID
// variants, Pairs for the MAP variant.
type Metadata struct {
	Type  MetadataType   `cbor:"1,keyasint"`
	Text  string         `cbor:"2,keyasint,omitempty"`
	Pairs []MetadataPair `cbor:"3,keyasint,omitempty"`
}

// URLMetadata returns a URL variant value.
func URLMetadata(url string) Metadata {
	return Metadata{Type: TypeURL, Text: url}
}

// StringMetadata returns a STRING variant value.
func StringMetadata(s string) Metadata {
	return Metadata{Type: TypeString, Text: s}
}

// IdentifierMetadata returns an OBJECT_ID variant value.
func IdentifierMetadata(id string) Metadata {
	return Metadata{Type: TypeIdentifier, Text: id}
}

// MapMetadata returns a MAP variant value.
func MapMetadata(pairs ...MetadataPair) Metadata {
	return Metadata{Type: TypeMap, Pairs: pairs}
}

// Validate ensures exactly one payload matching the variant tag is set.
func (m Metadata) Validate() error {
	switch m.Type {
	case TypeURL, TypeString, TypeIdentifier:
		if m.Pairs != nil {
			return errors.Wrap(errors.ErrInput, "scalar metadata with map payload")
		}
		if m.Text == "" {
			return errors.Wrap(errors.ErrEmpty, "metadata value")
		}
		return nil
	case TypeMap:
		if m.Text != "" {
			return errors.Wrap(errors.ErrInput, "map metadata with scalar payload")
		}
		return nil
	default:
		return errors.Wrapf(errors.ErrInput, "metadata type: %d", m.Type)
	}
}

// withBase applies the deployment base URL to the stored value. Only URL and
// OBJECT_ID variants are resolved against the base, other variants are
// returned unmodified.
func (m Metadata) withBase(base string) Metadata {
	if base == "" {
		return m
	}
	switch m.Type {
	case TypeURL, TypeIdentifier:
		m.Text = base + m.Text
	}
	return m
}
