package native

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/mr-shifu/keybridge/core/codec"
	"github.com/pkg/errors"
)

// RSAParameters holds the numeric fields of an RSA key. Public keys leave
// every private field nil.
type RSAParameters struct {
	Modulus  []byte
	Exponent []byte

	D        []byte
	P        []byte
	Q        []byte
	DP       []byte
	DQ       []byte
	InverseQ []byte
}

func (p RSAParameters) hasPrivate() bool {
	return p.D != nil || p.P != nil || p.Q != nil || p.DP != nil || p.DQ != nil || p.InverseQ != nil
}

func (p RSAParameters) privateComplete() bool {
	return len(p.D) > 0 && len(p.P) > 0 && len(p.Q) > 0 && len(p.DP) > 0 && len(p.DQ) > 0 && len(p.InverseQ) > 0
}

// Normalize returns a copy in the canonical fixed format: modulus and
// exponent minimal, D as wide as the modulus and the CRT fields as wide as
// half the modulus or the longer prime, whichever is more.
func (p RSAParameters) Normalize() (RSAParameters, error) {
	out := RSAParameters{
		Modulus:  codec.Trim(p.Modulus),
		Exponent: codec.Trim(p.Exponent),
	}
	if !p.hasPrivate() {
		return out, nil
	}

	var err error
	size := len(out.Modulus)
	crt := (size + 1) / 2
	// unbalanced primes widen the CRT fields past half the modulus
	if n := len(codec.Trim(p.P)); n > crt {
		crt = n
	}
	if n := len(codec.Trim(p.Q)); n > crt {
		crt = n
	}
	if out.D, err = codec.PadBytes(p.D, size); err != nil {
		return RSAParameters{}, errors.WithMessage(err, "native: rsa D")
	}
	fields := []struct {
		name string
		src  []byte
		dst  *[]byte
	}{
		{"P", p.P, &out.P},
		{"Q", p.Q, &out.Q},
		{"DP", p.DP, &out.DP},
		{"DQ", p.DQ, &out.DQ},
		{"InverseQ", p.InverseQ, &out.InverseQ},
	}
	for _, f := range fields {
		if *f.dst, err = codec.PadBytes(f.src, crt); err != nil {
			return RSAParameters{}, errors.WithMessagef(err, "native: rsa %s", f.name)
		}
	}
	return out, nil
}

// Zero wipes the private fields in place.
func (p *RSAParameters) Zero() {
	for _, b := range [][]byte{p.D, p.P, p.Q, p.DP, p.DQ, p.InverseQ} {
		codec.Zero(b)
	}
}

// RSAKey is an opaque RSA key, public only or public and private.
type RSAKey struct {
	params RSAParameters
}

var _ Key = (*RSAKey)(nil)

type rawRSAKey struct {
	Algorithm Algorithm
	Params    RSAParameters
}

// NewRSAKey validates and normalizes params into a new key. The caller keeps
// ownership of params.
func NewRSAKey(params RSAParameters) (*RSAKey, error) {
	if len(codec.Trim(params.Modulus)) == 0 || len(codec.Trim(params.Exponent)) == 0 {
		return nil, errors.WithMessage(ErrMissingField, "native: rsa modulus and exponent")
	}
	if params.hasPrivate() && !params.privateComplete() {
		return nil, ErrIncompleteParameters
	}

	p, err := params.Normalize()
	if err != nil {
		return nil, err
	}
	return &RSAKey{params: p}, nil
}

func (k *RSAKey) Algorithm() Algorithm {
	return AlgorithmRSA
}

func (k *RSAKey) HasPrivate() bool {
	return k.params.hasPrivate()
}

// ExportParameters returns a copy of the key fields. Requesting private
// fields from a public key fails with ErrNoPrivateMaterial.
func (k *RSAKey) ExportParameters(includePrivate bool) (RSAParameters, error) {
	out := RSAParameters{
		Modulus:  clone(k.params.Modulus),
		Exponent: clone(k.params.Exponent),
	}
	if !includePrivate {
		return out, nil
	}
	if !k.HasPrivate() {
		return RSAParameters{}, ErrNoPrivateMaterial
	}

	out.D = clone(k.params.D)
	out.P = clone(k.params.P)
	out.Q = clone(k.params.Q)
	out.DP = clone(k.params.DP)
	out.DQ = clone(k.params.DQ)
	out.InverseQ = clone(k.params.InverseQ)
	return out, nil
}

// PublicKey returns the public part of the key.
func (k *RSAKey) PublicKey() *RSAKey {
	return &RSAKey{params: RSAParameters{
		Modulus:  clone(k.params.Modulus),
		Exponent: clone(k.params.Exponent),
	}}
}

func (k *RSAKey) Bytes() ([]byte, error) {
	return cbor.Marshal(&rawRSAKey{Algorithm: AlgorithmRSA, Params: k.params})
}

func (k *RSAKey) SKI() []byte {
	return ski(AlgorithmRSA, k.params.Modulus, k.params.Exponent)
}

func rsaFromBytes(data []byte) (*RSAKey, error) {
	raw := &rawRSAKey{}
	if err := cbor.Unmarshal(data, raw); err != nil {
		return nil, err
	}
	return NewRSAKey(raw.Params)
}
