package keyparams

import (
	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-shifu/keybridge/core/codec"
)

type ECPublicKeyParameters struct {
	Curve string
	X     *saferith.Int
	Y     *saferith.Int
}

var _ Key = (*ECPublicKeyParameters)(nil)

func (k *ECPublicKeyParameters) IsPrivate() bool {
	return false
}

type ECPrivateKeyParameters struct {
	Curve string
	D     *saferith.Int
}

var _ Key = (*ECPrivateKeyParameters)(nil)

func (k *ECPrivateKeyParameters) IsPrivate() bool {
	return true
}

func FromSecp256k1PublicKey(pub *secp256k1.PublicKey) *ECPublicKeyParameters {
	return &ECPublicKeyParameters{
		Curve: "secp256k1",
		X:     fromBig(pub.X()),
		Y:     fromBig(pub.Y()),
	}
}

func FromSecp256k1PrivateKey(priv *secp256k1.PrivateKey) *KeyPair {
	return NewKeyPair(
		FromSecp256k1PublicKey(priv.PubKey()),
		&ECPrivateKeyParameters{Curve: "secp256k1", D: codec.ToInt(priv.Serialize())},
	)
}
