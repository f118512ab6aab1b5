package keyparams

import (
	"crypto/rsa"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
)

// RSAKeyParameters is an RSA public key, or the modulus and private exponent
// of a private key when constructed with isPrivate set.
type RSAKeyParameters struct {
	private bool

	Modulus *saferith.Int
	// Exponent is the public exponent e of a public key and the private
	// exponent d of a private key.
	Exponent *saferith.Int
}

var _ Key = (*RSAKeyParameters)(nil)

func NewRSAKeyParameters(isPrivate bool, modulus, exponent *saferith.Int) *RSAKeyParameters {
	return &RSAKeyParameters{
		private:  isPrivate,
		Modulus:  modulus,
		Exponent: exponent,
	}
}

func (k *RSAKeyParameters) IsPrivate() bool {
	return k.private
}

// RSAPublicKey converts public parameters to a crypto/rsa key.
func (k *RSAKeyParameters) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.private {
		return nil, errors.WithMessage(ErrInvalidKey, "keyparams: rsa parameters are private")
	}
	e := k.Exponent.Big()
	if !e.IsInt64() || e.Int64() > int64(^uint32(0)>>1) {
		return nil, errors.WithMessage(ErrInvalidKey, "keyparams: rsa public exponent too large")
	}
	return &rsa.PublicKey{N: k.Modulus.Big(), E: int(e.Int64())}, nil
}

func FromRSAPublicKey(pub *rsa.PublicKey) *RSAKeyParameters {
	return NewRSAKeyParameters(false, fromBig(pub.N), fromBig(big.NewInt(int64(pub.E))))
}

// RSAPrivateCrtKeyParameters is an RSA private key with its CRT values. The
// modulus and public exponent are carried along with the private fields.
type RSAPrivateCrtKeyParameters struct {
	RSAKeyParameters

	PublicExponent *saferith.Int
	P              *saferith.Int
	Q              *saferith.Int
	DP             *saferith.Int
	DQ             *saferith.Int
	QInv           *saferith.Int
}

func NewRSAPrivateCrtKeyParameters(
	modulus, publicExponent, privateExponent, p, q, dp, dq, qInv *saferith.Int,
) *RSAPrivateCrtKeyParameters {
	return &RSAPrivateCrtKeyParameters{
		RSAKeyParameters: RSAKeyParameters{
			private:  true,
			Modulus:  modulus,
			Exponent: privateExponent,
		},
		PublicExponent: publicExponent,
		P:              p,
		Q:              q,
		DP:             dp,
		DQ:             dq,
		QInv:           qInv,
	}
}

// IsPrivate is always true for CRT parameters, however they were built.
func (k *RSAPrivateCrtKeyParameters) IsPrivate() bool {
	return true
}

// RSAPublicKey converts the public half built from Modulus and
// PublicExponent.
func (k *RSAPrivateCrtKeyParameters) RSAPublicKey() (*rsa.PublicKey, error) {
	return k.PublicKeyParameters().RSAPublicKey()
}

// PublicKeyParameters returns the matching public key.
func (k *RSAPrivateCrtKeyParameters) PublicKeyParameters() *RSAKeyParameters {
	return NewRSAKeyParameters(false, k.Modulus, k.PublicExponent)
}

// RSAPrivateKey converts the parameters to a crypto/rsa key with its
// precomputed values filled in.
func (k *RSAPrivateCrtKeyParameters) RSAPrivateKey() (*rsa.PrivateKey, error) {
	pub, err := k.PublicKeyParameters().RSAPublicKey()
	if err != nil {
		return nil, err
	}
	priv := &rsa.PrivateKey{
		PublicKey: *pub,
		D:         k.Exponent.Big(),
		Primes:    []*big.Int{k.P.Big(), k.Q.Big()},
	}
	priv.Precompute()
	return priv, nil
}

// FromRSAPrivateKey converts a two-prime crypto/rsa key. The input is not
// modified.
func FromRSAPrivateKey(priv *rsa.PrivateKey) (*RSAPrivateCrtKeyParameters, error) {
	if len(priv.Primes) != 2 {
		return nil, errors.WithMessagef(ErrInvalidKey, "keyparams: rsa key has %d primes", len(priv.Primes))
	}
	p, q := priv.Primes[0], priv.Primes[1]

	dp, dq, qInv := priv.Precomputed.Dp, priv.Precomputed.Dq, priv.Precomputed.Qinv
	if dp == nil || dq == nil || qInv == nil {
		one := big.NewInt(1)
		dp = new(big.Int).Mod(priv.D, new(big.Int).Sub(p, one))
		dq = new(big.Int).Mod(priv.D, new(big.Int).Sub(q, one))
		qInv = new(big.Int).ModInverse(q, p)
		if qInv == nil {
			return nil, errors.WithMessage(ErrInvalidKey, "keyparams: rsa primes are not coprime")
		}
	}

	return NewRSAPrivateCrtKeyParameters(
		fromBig(priv.N),
		fromBig(big.NewInt(int64(priv.E))),
		fromBig(priv.D),
		fromBig(p),
		fromBig(q),
		fromBig(dp),
		fromBig(dq),
		fromBig(qInv),
	), nil
}

func fromBig(x *big.Int) *saferith.Int {
	return new(saferith.Int).SetBig(x, x.BitLen())
}
