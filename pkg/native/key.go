// Package native holds the fixed-format key representation: every numeric
// field is a big-endian unsigned byte slice, with no sign byte.
package native

import (
	"errors"

	"github.com/fxamacker/cbor/v2"
	"github.com/mr-shifu/keybridge/core/hash"
)

var (
	ErrNoPrivateMaterial    = errors.New("native: key holds no private material")
	ErrMissingField         = errors.New("native: required key field is empty")
	ErrIncompleteParameters = errors.New("native: private key fields are incomplete")
	ErrUnknownAlgorithm     = errors.New("native: unknown key algorithm")
)

type Algorithm uint8

const (
	AlgorithmUnknown Algorithm = iota
	AlgorithmRSA
	AlgorithmDSA
	AlgorithmEC
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmRSA:
		return "RSA"
	case AlgorithmDSA:
		return "DSA"
	case AlgorithmEC:
		return "EC"
	}
	return "unknown"
}

type Key interface {
	// Algorithm returns the key family.
	Algorithm() Algorithm

	// HasPrivate returns true if the key carries private fields.
	HasPrivate() bool

	// Bytes returns the CBOR encoding of the key.
	Bytes() ([]byte, error)

	// SKI returns the subject key identifier derived from the public fields.
	SKI() []byte
}

type rawHeader struct {
	Algorithm Algorithm
}

// FromBytes decodes a key encoded with Key.Bytes.
func FromBytes(data []byte) (Key, error) {
	var h rawHeader
	if err := cbor.Unmarshal(data, &h); err != nil {
		return nil, err
	}

	switch h.Algorithm {
	case AlgorithmRSA:
		return rsaFromBytes(data)
	case AlgorithmDSA:
		return dsaFromBytes(data)
	case AlgorithmEC:
		return ecFromBytes(data)
	}
	return nil, ErrUnknownAlgorithm
}

// ski hashes the public fields of a key under its algorithm name.
func ski(alg Algorithm, public ...[]byte) []byte {
	h := hash.New(alg.String())
	h.WriteBytes("field", public...)
	return h.Sum()
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
