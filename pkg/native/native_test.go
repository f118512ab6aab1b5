package native

import (
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rsaParams(t *testing.T) RSAParameters {
	k, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)

	return RSAParameters{
		Modulus:  k.N.Bytes(),
		Exponent: big.NewInt(int64(k.E)).Bytes(),
		D:        k.D.Bytes(),
		P:        k.Primes[0].Bytes(),
		Q:        k.Primes[1].Bytes(),
		DP:       k.Precomputed.Dp.Bytes(),
		DQ:       k.Precomputed.Dq.Bytes(),
		InverseQ: k.Precomputed.Qinv.Bytes(),
	}
}

func dsaParams() DSAParameters {
	return DSAParameters{
		P: []byte{0x17},
		Q: []byte{0x0b},
		G: []byte{0x04},
		Y: []byte{0x12},
		X: []byte{0x03},
	}
}

func TestRSAKeyNormalize(t *testing.T) {
	params := rsaParams(t)
	params.Modulus = append([]byte{0x00}, params.Modulus...)

	key, err := NewRSAKey(params)
	require.NoError(t, err)
	assert.True(t, key.HasPrivate())
	assert.Equal(t, AlgorithmRSA, key.Algorithm())

	out, err := key.ExportParameters(true)
	require.NoError(t, err)
	assert.Len(t, out.Modulus, 128)
	assert.Len(t, out.D, 128)
	for _, f := range [][]byte{out.P, out.Q, out.DP, out.DQ, out.InverseQ} {
		assert.Len(t, f, 64)
	}
	assert.Equal(t, 0, new(big.Int).SetBytes(out.D).Cmp(new(big.Int).SetBytes(params.D)))
}

func TestRSAKeyPublicOnly(t *testing.T) {
	params := rsaParams(t)
	key, err := NewRSAKey(RSAParameters{Modulus: params.Modulus, Exponent: params.Exponent})
	require.NoError(t, err)
	assert.False(t, key.HasPrivate())

	_, err = key.ExportParameters(true)
	assert.ErrorIs(t, err, ErrNoPrivateMaterial)

	out, err := key.ExportParameters(false)
	require.NoError(t, err)
	assert.Nil(t, out.D)
}

func TestRSAKeyInvalid(t *testing.T) {
	_, err := NewRSAKey(RSAParameters{Exponent: []byte{0x01, 0x00, 0x01}})
	assert.ErrorIs(t, err, ErrMissingField)

	params := rsaParams(t)
	params.DQ = nil
	_, err = NewRSAKey(params)
	assert.ErrorIs(t, err, ErrIncompleteParameters)
}

func TestRSAKeyExportIsCopy(t *testing.T) {
	key, err := NewRSAKey(rsaParams(t))
	require.NoError(t, err)

	out, err := key.ExportParameters(true)
	require.NoError(t, err)
	out.Zero()

	again, err := key.ExportParameters(true)
	require.NoError(t, err)
	assert.NotEqual(t, out.D, again.D)
}

func TestDSAKeyNormalize(t *testing.T) {
	params := DSAParameters{
		P: []byte{0x00, 0x00, 0x8f, 0x01},
		Q: []byte{0x00, 0x83},
		G: []byte{0x02},
		Y: []byte{0x05},
		X: []byte{0x07},
	}
	key, err := NewDSAKey(params)
	require.NoError(t, err)

	out, err := key.ExportParameters(true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x8f, 0x01}, out.P)
	assert.Equal(t, []byte{0x83}, out.Q)
	assert.Equal(t, []byte{0x00, 0x02}, out.G)
	assert.Equal(t, []byte{0x00, 0x05}, out.Y)
	assert.Equal(t, []byte{0x07}, out.X)
	assert.False(t, out.HasValidation())
	assert.Nil(t, out.Seed)
}

func TestDSAKeyValidation(t *testing.T) {
	params := dsaParams()
	params.Seed = []byte{0xde, 0xad}
	params.Counter = 105

	key, err := NewDSAKey(params)
	require.NoError(t, err)

	out, err := key.ExportParameters(false)
	require.NoError(t, err)
	assert.True(t, out.HasValidation())
	assert.Equal(t, []byte{0xde, 0xad}, out.Seed)
	assert.Equal(t, 105, out.Counter)
	assert.Nil(t, out.X)

	_, err = key.PublicKey().ExportParameters(true)
	assert.ErrorIs(t, err, ErrNoPrivateMaterial)
}

func TestDSAKeyInvalid(t *testing.T) {
	params := dsaParams()
	params.Y = nil
	_, err := NewDSAKey(params)
	assert.ErrorIs(t, err, ErrMissingField)

	params = dsaParams()
	params.X = []byte{0x00}
	_, err = NewDSAKey(params)
	assert.ErrorIs(t, err, ErrIncompleteParameters)
}

func TestKeyBytes(t *testing.T) {
	rsaKey, err := NewRSAKey(rsaParams(t))
	require.NoError(t, err)

	params := dsaParams()
	params.Seed = []byte{0x01}
	params.Counter = 7
	dsaKey, err := NewDSAKey(params)
	require.NoError(t, err)

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	ecKey := NewECKey(priv)

	for _, key := range []Key{rsaKey, rsaKey.PublicKey(), dsaKey, dsaKey.PublicKey(), ecKey} {
		kb, err := key.Bytes()
		require.NoError(t, err)

		decoded, err := FromBytes(kb)
		require.NoError(t, err)
		assert.Equal(t, key, decoded)
		assert.Equal(t, key.SKI(), decoded.SKI())
		assert.Equal(t, key.HasPrivate(), decoded.HasPrivate())
	}
}

func TestSKIIgnoresPrivateFields(t *testing.T) {
	key, err := NewRSAKey(rsaParams(t))
	require.NoError(t, err)
	assert.Len(t, key.SKI(), 32)
	assert.Equal(t, key.SKI(), key.PublicKey().SKI())

	dsaKey, err := NewDSAKey(dsaParams())
	require.NoError(t, err)
	assert.Equal(t, dsaKey.SKI(), dsaKey.PublicKey().SKI())
	assert.NotEqual(t, key.SKI(), dsaKey.SKI())
}

func TestECKey(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	key := NewECKey(priv)
	assert.Equal(t, AlgorithmEC, key.Algorithm())
	assert.True(t, key.HasPrivate())

	pub := NewECPublicKey(priv.PubKey())
	assert.False(t, pub.HasPrivate())
	assert.Equal(t, key.SKI(), pub.SKI())

	p, err := pub.PublicKey()
	require.NoError(t, err)
	assert.True(t, p.IsEqual(priv.PubKey()))
}

func TestFromBytesUnknownAlgorithm(t *testing.T) {
	// {"Algorithm": 9}
	_, err := FromBytes([]byte{0xa1, 0x69, 'A', 'l', 'g', 'o', 'r', 'i', 't', 'h', 'm', 0x09})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestRSAKeyUnbalancedPrimes(t *testing.T) {
	var k *rsa.PrivateKey
	for k == nil {
		p, err := rand.Prime(rand.Reader, 536)
		require.NoError(t, err)
		q, err := rand.Prime(rand.Reader, 488)
		require.NoError(t, err)

		n := new(big.Int).Mul(p, q)
		phi := new(big.Int).Mul(new(big.Int).Sub(p, big.NewInt(1)), new(big.Int).Sub(q, big.NewInt(1)))
		d := new(big.Int).ModInverse(big.NewInt(65537), phi)
		if d == nil {
			continue
		}
		k = &rsa.PrivateKey{
			PublicKey: rsa.PublicKey{N: n, E: 65537},
			D:         d,
			Primes:    []*big.Int{p, q},
		}
	}
	k.Precompute()
	require.NoError(t, k.Validate())

	key, err := NewRSAKey(RSAParameters{
		Modulus:  k.N.Bytes(),
		Exponent: big.NewInt(int64(k.E)).Bytes(),
		D:        k.D.Bytes(),
		P:        k.Primes[0].Bytes(),
		Q:        k.Primes[1].Bytes(),
		DP:       k.Precomputed.Dp.Bytes(),
		DQ:       k.Precomputed.Dq.Bytes(),
		InverseQ: k.Precomputed.Qinv.Bytes(),
	})
	require.NoError(t, err)

	out, err := key.ExportParameters(true)
	require.NoError(t, err)
	assert.Len(t, out.Modulus, 128)
	for _, f := range [][]byte{out.P, out.Q, out.DP, out.DQ, out.InverseQ} {
		assert.Len(t, f, 67)
	}
	assert.Equal(t, 0, new(big.Int).SetBytes(out.P).Cmp(k.Primes[0]))
}

func TestSKIFieldBoundaries(t *testing.T) {
	assert.Equal(t, ski(AlgorithmRSA, nil, []byte{1}), ski(AlgorithmRSA, []byte{}, []byte{1}))
	assert.NotEqual(t, ski(AlgorithmRSA, []byte{1, 2}), ski(AlgorithmRSA, []byte{1}, []byte{2}))
	assert.NotEqual(t, ski(AlgorithmRSA, []byte{1}), ski(AlgorithmDSA, []byte{1}))
}
