package keyparams

import (
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(v int64) *saferith.Int {
	return fromBig(big.NewInt(v))
}

func sameInt(t *testing.T, a, b *saferith.Int) {
	t.Helper()
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, 0, a.Big().Cmp(b.Big()), "%s != %s", a.Big(), b.Big())
}

func TestRSAStdlibRoundTrip(t *testing.T) {
	k, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	params, err := FromRSAPrivateKey(k)
	require.NoError(t, err)
	assert.True(t, params.IsPrivate())
	assert.Equal(t, 0, params.Exponent.Big().Cmp(k.D))
	assert.Equal(t, int64(k.E), params.PublicExponent.Big().Int64())

	back, err := params.RSAPrivateKey()
	require.NoError(t, err)
	require.NoError(t, back.Validate())
	assert.Equal(t, 0, back.N.Cmp(k.N))
	assert.Equal(t, 0, back.Precomputed.Qinv.Cmp(k.Precomputed.Qinv))

	pub := params.PublicKeyParameters()
	assert.False(t, pub.IsPrivate())
	rpub, err := pub.RSAPublicKey()
	require.NoError(t, err)
	assert.True(t, rpub.Equal(&k.PublicKey))
	sameInt(t, FromRSAPublicKey(&k.PublicKey).Modulus, pub.Modulus)
}

func TestRSAPrivateCrtLiteral(t *testing.T) {
	k, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	built, err := FromRSAPrivateKey(k)
	require.NoError(t, err)

	literal := &RSAPrivateCrtKeyParameters{
		RSAKeyParameters: RSAKeyParameters{Modulus: built.Modulus, Exponent: built.Exponent},
		PublicExponent:   built.PublicExponent,
		P:                built.P,
		Q:                built.Q,
		DP:               built.DP,
		DQ:               built.DQ,
		QInv:             built.QInv,
	}
	assert.True(t, literal.IsPrivate())

	rpub, err := literal.RSAPublicKey()
	require.NoError(t, err)
	assert.True(t, rpub.Equal(&k.PublicKey))

	back, err := literal.RSAPrivateKey()
	require.NoError(t, err)
	require.NoError(t, back.Validate())
}

func TestFromRSAPrivateKeyWithoutPrecomputed(t *testing.T) {
	k, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	bare := &rsa.PrivateKey{PublicKey: k.PublicKey, D: k.D, Primes: k.Primes}
	params, err := FromRSAPrivateKey(bare)
	require.NoError(t, err)
	assert.Nil(t, bare.Precomputed.Dp)

	assert.Equal(t, 0, params.DP.Big().Cmp(k.Precomputed.Dp))
	assert.Equal(t, 0, params.DQ.Big().Cmp(k.Precomputed.Dq))
	assert.Equal(t, 0, params.QInv.Big().Cmp(k.Precomputed.Qinv))
}

func TestRSAPublicKeyRejectsPrivate(t *testing.T) {
	_, err := NewRSAKeyParameters(true, num(33), num(7)).RSAPublicKey()
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestDSAPublicKeyDerivation(t *testing.T) {
	// p = 23, q = 11, g = 4 generates the order-11 subgroup
	params := NewDSAParameters(num(23), num(11), num(4), nil)
	priv := NewDSAPrivateKeyParameters(num(3), params)

	pub, err := priv.PublicKeyParameters()
	require.NoError(t, err)
	assert.Equal(t, int64(18), pub.Y.Big().Int64())
	assert.Same(t, params, pub.Parameters)

	dpriv, err := priv.DSAPrivateKey()
	require.NoError(t, err)
	assert.Equal(t, int64(18), dpriv.Y.Int64())
	assert.Equal(t, int64(3), dpriv.X.Int64())

	pair := FromDSAPrivateKey(dpriv)
	assert.Same(t,
		pair.Public.(*DSAPublicKeyParameters).Parameters,
		pair.Private.(*DSAPrivateKeyParameters).Parameters,
	)
	sameInt(t, FromDSAPublicKey(&dpriv.PublicKey).Y, pub.Y)
}

func TestDSAPublicKeyDerivationIncomplete(t *testing.T) {
	_, err := NewDSAPrivateKeyParameters(num(3), nil).PublicKeyParameters()
	assert.ErrorIs(t, err, ErrInvalidKey)

	params := NewDSAParameters(num(0), num(11), num(4), nil)
	_, err = NewDSAPrivateKeyParameters(num(3), params).PublicKeyParameters()
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestValidationParametersCopySeed(t *testing.T) {
	seed := []byte{1, 2, 3}
	v := NewDSAValidationParameters(seed, 9)
	seed[0] = 0xff
	assert.Equal(t, []byte{1, 2, 3}, v.Seed)
	assert.Equal(t, 9, v.Counter)
}

func TestMarshalRoundTrip(t *testing.T) {
	k, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	rsaPriv, err := FromRSAPrivateKey(k)
	require.NoError(t, err)

	ecPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	ecPair := FromSecp256k1PrivateKey(ecPriv)

	validated := NewDSAParameters(num(23), num(11), num(4), NewDSAValidationParameters([]byte{0xca, 0xfe}, 3))
	plain := NewDSAParameters(num(23), num(11), num(4), nil)

	keys := []Key{
		rsaPriv,
		rsaPriv.PublicKeyParameters(),
		NewDSAPublicKeyParameters(num(18), validated),
		NewDSAPrivateKeyParameters(num(3), plain),
		ecPair.Public,
		ecPair.Private,
	}
	for _, key := range keys {
		b, err := Marshal(key)
		require.NoError(t, err)

		decoded, err := Unmarshal(b)
		require.NoError(t, err)
		assert.IsType(t, key, decoded)
		assert.Equal(t, key.IsPrivate(), decoded.IsPrivate())

		again, err := Marshal(decoded)
		require.NoError(t, err)
		assert.Equal(t, b, again)
	}

	b, err := Marshal(NewDSAPublicKeyParameters(num(18), plain))
	require.NoError(t, err)
	decoded, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Nil(t, decoded.(*DSAPublicKeyParameters).Parameters.Validation)

	b, err = Marshal(NewDSAPublicKeyParameters(num(18), validated))
	require.NoError(t, err)
	decoded, err = Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, validated.Validation, decoded.(*DSAPublicKeyParameters).Parameters.Validation)
}

type otherKey struct{}

func (otherKey) IsPrivate() bool { return false }

func TestMarshalUnknown(t *testing.T) {
	_, err := Marshal(otherKey{})
	assert.ErrorIs(t, err, ErrUnknownKeyType)
}
