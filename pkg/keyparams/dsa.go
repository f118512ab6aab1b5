package keyparams

import (
	"crypto/dsa"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
)

// DSAValidationParameters proves the domain parameters were generated
// verifiably.
type DSAValidationParameters struct {
	Seed    []byte
	Counter int
}

func NewDSAValidationParameters(seed []byte, counter int) *DSAValidationParameters {
	s := make([]byte, len(seed))
	copy(s, seed)
	return &DSAValidationParameters{Seed: s, Counter: counter}
}

// DSAParameters are the domain parameters shared by a public and a private
// key. Validation is nil when no seed and counter are known.
type DSAParameters struct {
	P *saferith.Int
	Q *saferith.Int
	G *saferith.Int

	Validation *DSAValidationParameters
}

func NewDSAParameters(p, q, g *saferith.Int, validation *DSAValidationParameters) *DSAParameters {
	return &DSAParameters{P: p, Q: q, G: g, Validation: validation}
}

type DSAPublicKeyParameters struct {
	Y          *saferith.Int
	Parameters *DSAParameters
}

var _ Key = (*DSAPublicKeyParameters)(nil)

func NewDSAPublicKeyParameters(y *saferith.Int, params *DSAParameters) *DSAPublicKeyParameters {
	return &DSAPublicKeyParameters{Y: y, Parameters: params}
}

func (k *DSAPublicKeyParameters) IsPrivate() bool {
	return false
}

type DSAPrivateKeyParameters struct {
	X          *saferith.Int
	Parameters *DSAParameters
}

var _ Key = (*DSAPrivateKeyParameters)(nil)

func NewDSAPrivateKeyParameters(x *saferith.Int, params *DSAParameters) *DSAPrivateKeyParameters {
	return &DSAPrivateKeyParameters{X: x, Parameters: params}
}

func (k *DSAPrivateKeyParameters) IsPrivate() bool {
	return true
}

// PublicKeyParameters derives the public value y = gˣ (mod p).
func (k *DSAPrivateKeyParameters) PublicKeyParameters() (*DSAPublicKeyParameters, error) {
	if k.X == nil || k.Parameters == nil || k.Parameters.P == nil || k.Parameters.G == nil {
		return nil, errors.WithMessage(ErrInvalidKey, "keyparams: dsa key is incomplete")
	}
	if k.Parameters.P.Abs().EqZero() == 1 {
		return nil, errors.WithMessage(ErrInvalidKey, "keyparams: dsa modulus is zero")
	}

	p := saferith.ModulusFromNat(k.Parameters.P.Abs())
	g := new(saferith.Nat).Mod(k.Parameters.G.Abs(), p)
	y := new(saferith.Nat).Exp(g, k.X.Abs(), p)

	return NewDSAPublicKeyParameters(new(saferith.Int).SetNat(y), k.Parameters), nil
}

// DSAPublicKey converts the parameters to a crypto/dsa key. Validation
// parameters have no crypto/dsa counterpart and are dropped.
func (k *DSAPublicKeyParameters) DSAPublicKey() *dsa.PublicKey {
	return &dsa.PublicKey{
		Parameters: dsa.Parameters{
			P: k.Parameters.P.Big(),
			Q: k.Parameters.Q.Big(),
			G: k.Parameters.G.Big(),
		},
		Y: k.Y.Big(),
	}
}

// DSAPrivateKey converts the parameters to a crypto/dsa key.
func (k *DSAPrivateKeyParameters) DSAPrivateKey() (*dsa.PrivateKey, error) {
	pub, err := k.PublicKeyParameters()
	if err != nil {
		return nil, err
	}
	return &dsa.PrivateKey{PublicKey: *pub.DSAPublicKey(), X: k.X.Big()}, nil
}

func FromDSAPublicKey(pub *dsa.PublicKey) *DSAPublicKeyParameters {
	return NewDSAPublicKeyParameters(fromBig(pub.Y), fromDSAParameters(pub.Parameters))
}

// FromDSAPrivateKey converts a crypto/dsa key. Both returned keys share the
// same domain parameters.
func FromDSAPrivateKey(priv *dsa.PrivateKey) *KeyPair {
	params := fromDSAParameters(priv.Parameters)
	return NewKeyPair(
		NewDSAPublicKeyParameters(fromBig(priv.Y), params),
		NewDSAPrivateKeyParameters(fromBig(priv.X), params),
	)
}

func fromDSAParameters(p dsa.Parameters) *DSAParameters {
	return NewDSAParameters(fromBig(p.P), fromBig(p.Q), fromBig(p.G), nil)
}
