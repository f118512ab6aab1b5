package keyparams

import (
	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/mr-shifu/keybridge/core/codec"
	"github.com/pkg/errors"
)

const (
	typeRSA        = "rsa"
	typeRSAPrivate = "rsa-crt"
	typeDSAPublic  = "dsa"
	typeDSAPrivate = "dsa-private"
	typeECPublic   = "ec"
	typeECPrivate  = "ec-private"
)

// Integers are stored in their signed two's-complement export form.
type rawKey struct {
	Type    string
	Private bool   `cbor:",omitempty"`
	Curve   string `cbor:",omitempty"`

	N    []byte `cbor:",omitempty"`
	E    []byte `cbor:",omitempty"`
	D    []byte `cbor:",omitempty"`
	P    []byte `cbor:",omitempty"`
	Q    []byte `cbor:",omitempty"`
	DP   []byte `cbor:",omitempty"`
	DQ   []byte `cbor:",omitempty"`
	QInv []byte `cbor:",omitempty"`
	G    []byte `cbor:",omitempty"`
	X    []byte `cbor:",omitempty"`
	Y    []byte `cbor:",omitempty"`

	Validation *DSAValidationParameters `cbor:",omitempty"`
}

// Marshal encodes a key parameter object to CBOR.
func Marshal(key Key) ([]byte, error) {
	raw := &rawKey{}

	switch k := key.(type) {
	case *RSAPrivateCrtKeyParameters:
		raw.Type = typeRSAPrivate
		raw.N, raw.E, raw.D = enc(k.Modulus), enc(k.PublicExponent), enc(k.Exponent)
		raw.P, raw.Q = enc(k.P), enc(k.Q)
		raw.DP, raw.DQ, raw.QInv = enc(k.DP), enc(k.DQ), enc(k.QInv)
	case *RSAKeyParameters:
		raw.Type = typeRSA
		raw.Private = k.private
		raw.N, raw.E = enc(k.Modulus), enc(k.Exponent)
	case *DSAPublicKeyParameters:
		raw.Type = typeDSAPublic
		encDSAParameters(raw, k.Parameters)
		raw.Y = enc(k.Y)
	case *DSAPrivateKeyParameters:
		raw.Type = typeDSAPrivate
		encDSAParameters(raw, k.Parameters)
		raw.X = enc(k.X)
	case *ECPublicKeyParameters:
		raw.Type = typeECPublic
		raw.Curve = k.Curve
		raw.X, raw.Y = enc(k.X), enc(k.Y)
	case *ECPrivateKeyParameters:
		raw.Type = typeECPrivate
		raw.Curve = k.Curve
		raw.D = enc(k.D)
	default:
		return nil, errors.WithMessagef(ErrUnknownKeyType, "keyparams: %T", key)
	}

	return cbor.Marshal(raw)
}

// Unmarshal decodes a key parameter object encoded with Marshal.
func Unmarshal(data []byte) (Key, error) {
	raw := &rawKey{}
	if err := cbor.Unmarshal(data, raw); err != nil {
		return nil, err
	}

	d := &decoder{}
	var key Key
	switch raw.Type {
	case typeRSAPrivate:
		key = NewRSAPrivateCrtKeyParameters(
			d.int(raw.N), d.int(raw.E), d.int(raw.D),
			d.int(raw.P), d.int(raw.Q),
			d.int(raw.DP), d.int(raw.DQ), d.int(raw.QInv),
		)
	case typeRSA:
		key = NewRSAKeyParameters(raw.Private, d.int(raw.N), d.int(raw.E))
	case typeDSAPublic:
		key = NewDSAPublicKeyParameters(d.int(raw.Y), d.dsaParameters(raw))
	case typeDSAPrivate:
		key = NewDSAPrivateKeyParameters(d.int(raw.X), d.dsaParameters(raw))
	case typeECPublic:
		key = &ECPublicKeyParameters{Curve: raw.Curve, X: d.int(raw.X), Y: d.int(raw.Y)}
	case typeECPrivate:
		key = &ECPrivateKeyParameters{Curve: raw.Curve, D: d.int(raw.D)}
	default:
		return nil, errors.WithMessagef(ErrUnknownKeyType, "keyparams: type %q", raw.Type)
	}

	if d.err != nil {
		return nil, d.err
	}
	return key, nil
}

func enc(i *saferith.Int) []byte {
	if i == nil {
		return nil
	}
	return codec.SignedBytes(i)
}

func encDSAParameters(raw *rawKey, params *DSAParameters) {
	if params == nil {
		return
	}
	raw.P, raw.Q, raw.G = enc(params.P), enc(params.Q), enc(params.G)
	raw.Validation = params.Validation
}

// decoder keeps the first error so a whole key decodes in one pass.
type decoder struct {
	err error
}

func (d *decoder) int(b []byte) *saferith.Int {
	if b == nil || d.err != nil {
		return nil
	}
	i, err := codec.FromSigned(b)
	if err != nil {
		d.err = err
		return nil
	}
	return i
}

func (d *decoder) dsaParameters(raw *rawKey) *DSAParameters {
	if raw.P == nil && raw.Q == nil && raw.G == nil {
		return nil
	}
	return NewDSAParameters(d.int(raw.P), d.int(raw.Q), d.int(raw.G), raw.Validation)
}
