package convert

import (
	"github.com/mr-shifu/keybridge/core/codec"
	"github.com/mr-shifu/keybridge/pkg/keyparams"
	"github.com/mr-shifu/keybridge/pkg/native"
	"github.com/pkg/errors"
)

// ExportRSA converts a native RSA key to library parameters. The private
// component is built only when includePrivate is set, and then the native key
// must hold private material.
func ExportRSA(key *native.RSAKey, includePrivate bool) (*keyparams.KeyPair, error) {
	if key == nil {
		return nil, ErrNilKey
	}

	params, err := key.ExportParameters(includePrivate)
	if err != nil {
		return nil, errors.WithMessagef(ErrInvalidArgument, "convert: rsa: %v", err)
	}
	defer params.Zero()

	pair := keyparams.NewKeyPair(
		keyparams.NewRSAKeyParameters(false, codec.ToInt(params.Modulus), codec.ToInt(params.Exponent)),
		nil,
	)
	if includePrivate {
		pair.Private = keyparams.NewRSAPrivateCrtKeyParameters(
			codec.ToInt(params.Modulus),
			codec.ToInt(params.Exponent),
			codec.ToInt(params.D),
			codec.ToInt(params.P),
			codec.ToInt(params.Q),
			codec.ToInt(params.DP),
			codec.ToInt(params.DQ),
			codec.ToInt(params.InverseQ),
		)
	}
	return pair, nil
}

// ImportRSAPublic builds a public native key from modulus and exponent.
func ImportRSAPublic(key *keyparams.RSAKeyParameters) (*native.RSAKey, error) {
	if key == nil {
		return nil, ErrNilKey
	}
	if key.IsPrivate() {
		return nil, errors.WithMessage(ErrUnsupportedKeyType, "convert: rsa private key without CRT values")
	}

	r := &fieldReader{}
	params := native.RSAParameters{
		Modulus:  r.bytes("rsa modulus", key.Modulus),
		Exponent: r.bytes("rsa exponent", key.Exponent),
	}
	if r.err != nil {
		return nil, r.err
	}
	return newRSAKey(params)
}

// ImportRSAPrivate builds a private native key. The library keeps the private
// exponent d in the Exponent slot and e in PublicExponent; the native key
// takes them as D and Exponent.
func ImportRSAPrivate(key *keyparams.RSAPrivateCrtKeyParameters) (*native.RSAKey, error) {
	if key == nil {
		return nil, ErrNilKey
	}

	r := &fieldReader{}
	params := native.RSAParameters{
		Modulus:  r.bytes("rsa modulus", key.Modulus),
		Exponent: r.bytes("rsa public exponent", key.PublicExponent),
		D:        r.bytes("rsa private exponent", key.Exponent),
		P:        r.bytes("rsa P", key.P),
		Q:        r.bytes("rsa Q", key.Q),
		DP:       r.bytes("rsa DP", key.DP),
		DQ:       r.bytes("rsa DQ", key.DQ),
		InverseQ: r.bytes("rsa QInv", key.QInv),
	}
	defer params.Zero()
	if r.err != nil {
		return nil, r.err
	}
	return newRSAKey(params)
}

func newRSAKey(params native.RSAParameters) (*native.RSAKey, error) {
	k, err := native.NewRSAKey(params)
	if err != nil {
		return nil, errors.WithMessagef(ErrInvalidArgument, "convert: rsa: %v", err)
	}
	return k, nil
}
