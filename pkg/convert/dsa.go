package convert

import (
	"github.com/mr-shifu/keybridge/core/codec"
	"github.com/mr-shifu/keybridge/pkg/keyparams"
	"github.com/mr-shifu/keybridge/pkg/native"
	"github.com/pkg/errors"
)

// ExportDSA converts a native DSA key to library parameters. Public and
// private components share one domain parameters object, which carries
// validation parameters only if the native key has a seed.
func ExportDSA(key *native.DSAKey, includePrivate bool) (*keyparams.KeyPair, error) {
	if key == nil {
		return nil, ErrNilKey
	}

	params, err := key.ExportParameters(includePrivate)
	if err != nil {
		return nil, errors.WithMessagef(ErrInvalidArgument, "convert: dsa: %v", err)
	}
	defer params.Zero()

	var validation *keyparams.DSAValidationParameters
	if params.HasValidation() {
		validation = keyparams.NewDSAValidationParameters(params.Seed, params.Counter)
	}
	domain := keyparams.NewDSAParameters(
		codec.ToInt(params.P),
		codec.ToInt(params.Q),
		codec.ToInt(params.G),
		validation,
	)

	pair := keyparams.NewKeyPair(keyparams.NewDSAPublicKeyParameters(codec.ToInt(params.Y), domain), nil)
	if includePrivate {
		pair.Private = keyparams.NewDSAPrivateKeyParameters(codec.ToInt(params.X), domain)
	}
	return pair, nil
}

// ImportDSAPublic builds a public native key.
func ImportDSAPublic(key *keyparams.DSAPublicKeyParameters) (*native.DSAKey, error) {
	if key == nil {
		return nil, ErrNilKey
	}

	r := &fieldReader{}
	params := domainParameters(r, key.Parameters)
	params.Y = r.bytes("dsa Y", key.Y)
	if r.err != nil {
		return nil, r.err
	}
	return newDSAKey(params)
}

// ImportDSAPrivate builds a private native key. The library private key has
// no public value, so Y is derived from X and the domain parameters.
func ImportDSAPrivate(key *keyparams.DSAPrivateKeyParameters) (*native.DSAKey, error) {
	if key == nil {
		return nil, ErrNilKey
	}

	r := &fieldReader{}
	params := domainParameters(r, key.Parameters)
	params.X = r.bytes("dsa X", key.X)
	defer params.Zero()
	if r.err != nil {
		return nil, r.err
	}

	pub, err := key.PublicKeyParameters()
	if err != nil {
		return nil, errors.WithMessagef(ErrInvalidArgument, "convert: dsa: %v", err)
	}
	params.Y = codec.ToBytes(pub.Y)

	return newDSAKey(params)
}

func domainParameters(r *fieldReader, p *keyparams.DSAParameters) native.DSAParameters {
	if p == nil {
		r.err = errors.WithMessage(ErrInvalidArgument, "convert: dsa domain parameters are missing")
		return native.DSAParameters{}
	}

	params := native.DSAParameters{
		P: r.bytes("dsa P", p.P),
		Q: r.bytes("dsa Q", p.Q),
		G: r.bytes("dsa G", p.G),
	}
	if v := p.Validation; v != nil {
		params.Seed = append([]byte{}, v.Seed...)
		params.Counter = v.Counter
	}
	return params
}

func newDSAKey(params native.DSAParameters) (*native.DSAKey, error) {
	k, err := native.NewDSAKey(params)
	if err != nil {
		return nil, errors.WithMessagef(ErrInvalidArgument, "convert: dsa: %v", err)
	}
	return k, nil
}
