// Package codec converts single numeric key fields between the unsigned
// fixed-format byte encoding and saferith's sign-magnitude integers.
package codec

import (
	"errors"
	"math/big"

	"github.com/cronokirby/saferith"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var (
	ErrMalformedInteger = errors.New("codec: malformed signed integer encoding")
	ErrFieldTooLong     = errors.New("codec: value does not fit in field width")
)

// ToInt interprets b as a big-endian unsigned magnitude. The result is never
// negative, whatever the top bit of b[0]. An empty slice is zero.
func ToInt(b []byte) *saferith.Int {
	return new(saferith.Int).SetNat(new(saferith.Nat).SetBytes(b))
}

// ToBytes returns the minimal big-endian magnitude of i.
//
// saferith keeps the announced length of a value, so the magnitude may carry
// leading zero bytes (a two's-complement sign byte included). They are all
// stripped here; padding to a fixed field width is up to the caller.
// The sign of i is ignored: key fields are non-negative.
func ToBytes(i *saferith.Int) []byte {
	if i == nil {
		return nil
	}
	return Trim(i.Abs().Bytes())
}

// Trim strips leading zero bytes. Zero trims down to an empty slice.
func Trim(b []byte) []byte {
	j := 0
	for j < len(b) && b[j] == 0 {
		j++
	}
	out := make([]byte, len(b)-j)
	copy(out, b[j:])
	return out
}

// PadBytes left-pads b with zeros up to size bytes.
func PadBytes(b []byte, size int) ([]byte, error) {
	b = Trim(b)
	if len(b) > size {
		return nil, ErrFieldTooLong
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out, nil
}

// SignedBytes returns the minimal two's-complement encoding of i, the form
// an arbitrary-precision integer exports itself to. A non-negative value whose
// magnitude has the top bit set gets one extra leading 0x00.
func SignedBytes(i *saferith.Int) []byte {
	var b cryptobyte.Builder
	b.AddASN1BigInt(toBig(i))
	der := cryptobyte.String(b.BytesOrPanic())

	var content cryptobyte.String
	if !der.ReadASN1(&content, asn1.INTEGER) {
		// the builder only ever emits a single well-formed INTEGER
		panic("codec: failed to read back ASN.1 INTEGER")
	}
	return []byte(content)
}

// FromSigned parses a minimal two's-complement encoding as produced by
// SignedBytes.
func FromSigned(b []byte) (*saferith.Int, error) {
	var builder cryptobyte.Builder
	builder.AddASN1(asn1.INTEGER, func(c *cryptobyte.Builder) {
		c.AddBytes(b)
	})
	der, err := builder.Bytes()
	if err != nil {
		return nil, ErrMalformedInteger
	}

	s := cryptobyte.String(der)
	x := new(big.Int)
	if !s.ReadASN1Integer(x) {
		return nil, ErrMalformedInteger
	}

	return new(saferith.Int).SetBig(x, x.BitLen()), nil
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func toBig(i *saferith.Int) *big.Int {
	if i == nil {
		return new(big.Int)
	}
	return i.Big()
}
