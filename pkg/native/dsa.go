package native

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/mr-shifu/keybridge/core/codec"
	"github.com/pkg/errors"
)

// DSAParameters holds the numeric fields of a DSA key. X is nil for public
// keys. Seed is nil when the domain parameters carry no validation
// parameters; Counter is meaningful only when Seed is set.
type DSAParameters struct {
	P []byte
	Q []byte
	G []byte
	Y []byte
	X []byte

	Seed    []byte
	Counter int
}

// HasValidation reports whether a seed and counter accompany the domain
// parameters.
func (p DSAParameters) HasValidation() bool {
	return p.Seed != nil
}

// Normalize returns a copy in the canonical fixed format: P and Q minimal,
// G and Y as wide as P, X as wide as Q.
func (p DSAParameters) Normalize() (DSAParameters, error) {
	out := DSAParameters{
		P:    codec.Trim(p.P),
		Q:    codec.Trim(p.Q),
		Seed: clone(p.Seed),
	}
	if out.Seed != nil {
		out.Counter = p.Counter
	}

	var err error
	if out.G, err = codec.PadBytes(p.G, len(out.P)); err != nil {
		return DSAParameters{}, errors.WithMessage(err, "native: dsa G")
	}
	if out.Y, err = codec.PadBytes(p.Y, len(out.P)); err != nil {
		return DSAParameters{}, errors.WithMessage(err, "native: dsa Y")
	}
	if p.X != nil {
		if out.X, err = codec.PadBytes(p.X, len(out.Q)); err != nil {
			return DSAParameters{}, errors.WithMessage(err, "native: dsa X")
		}
	}
	return out, nil
}

// Zero wipes the private exponent in place.
func (p *DSAParameters) Zero() {
	codec.Zero(p.X)
}

// DSAKey is an opaque DSA key, public only or public and private.
type DSAKey struct {
	params DSAParameters
}

var _ Key = (*DSAKey)(nil)

type rawDSAKey struct {
	Algorithm Algorithm
	Params    DSAParameters
}

// NewDSAKey validates and normalizes params into a new key. The caller keeps
// ownership of params.
func NewDSAKey(params DSAParameters) (*DSAKey, error) {
	for _, f := range [][]byte{params.P, params.Q, params.G, params.Y} {
		if len(codec.Trim(f)) == 0 {
			return nil, errors.WithMessage(ErrMissingField, "native: dsa P, Q, G and Y")
		}
	}
	if params.X != nil && len(codec.Trim(params.X)) == 0 {
		return nil, ErrIncompleteParameters
	}

	p, err := params.Normalize()
	if err != nil {
		return nil, err
	}
	return &DSAKey{params: p}, nil
}

func (k *DSAKey) Algorithm() Algorithm {
	return AlgorithmDSA
}

func (k *DSAKey) HasPrivate() bool {
	return k.params.X != nil
}

// ExportParameters returns a copy of the key fields. Requesting private
// fields from a public key fails with ErrNoPrivateMaterial.
func (k *DSAKey) ExportParameters(includePrivate bool) (DSAParameters, error) {
	out := DSAParameters{
		P:    clone(k.params.P),
		Q:    clone(k.params.Q),
		G:    clone(k.params.G),
		Y:    clone(k.params.Y),
		Seed: clone(k.params.Seed),
	}
	if out.Seed != nil {
		out.Counter = k.params.Counter
	}
	if !includePrivate {
		return out, nil
	}
	if !k.HasPrivate() {
		return DSAParameters{}, ErrNoPrivateMaterial
	}

	out.X = clone(k.params.X)
	return out, nil
}

// PublicKey returns the public part of the key.
func (k *DSAKey) PublicKey() *DSAKey {
	p, _ := k.ExportParameters(false)
	return &DSAKey{params: p}
}

func (k *DSAKey) Bytes() ([]byte, error) {
	return cbor.Marshal(&rawDSAKey{Algorithm: AlgorithmDSA, Params: k.params})
}

func (k *DSAKey) SKI() []byte {
	return ski(AlgorithmDSA, k.params.P, k.params.Q, k.params.G, k.params.Y)
}

func dsaFromBytes(data []byte) (*DSAKey, error) {
	raw := &rawDSAKey{}
	if err := cbor.Unmarshal(data, raw); err != nil {
		return nil, err
	}
	return NewDSAKey(raw.Params)
}
