package native

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/fxamacker/cbor/v2"
)

// ECKey is a secp256k1 key. Elliptic-curve keys can be stored next to RSA
// and DSA keys but have no library counterpart.
type ECKey struct {
	curve string
	pub   []byte // compressed point
	priv  []byte
}

var _ Key = (*ECKey)(nil)

type rawECKey struct {
	Algorithm Algorithm
	Curve     string
	Pub       []byte
	Priv      []byte
}

func NewECKey(priv *secp256k1.PrivateKey) *ECKey {
	return &ECKey{
		curve: "secp256k1",
		pub:   priv.PubKey().SerializeCompressed(),
		priv:  priv.Serialize(),
	}
}

func NewECPublicKey(pub *secp256k1.PublicKey) *ECKey {
	return &ECKey{
		curve: "secp256k1",
		pub:   pub.SerializeCompressed(),
	}
}

func (k *ECKey) Algorithm() Algorithm {
	return AlgorithmEC
}

func (k *ECKey) HasPrivate() bool {
	return k.priv != nil
}

// PublicKey returns the secp256k1 public point.
func (k *ECKey) PublicKey() (*secp256k1.PublicKey, error) {
	return secp256k1.ParsePubKey(k.pub)
}

func (k *ECKey) Bytes() ([]byte, error) {
	return cbor.Marshal(&rawECKey{Algorithm: AlgorithmEC, Curve: k.curve, Pub: k.pub, Priv: k.priv})
}

func (k *ECKey) SKI() []byte {
	return ski(AlgorithmEC, []byte(k.curve), k.pub)
}

func ecFromBytes(data []byte) (*ECKey, error) {
	raw := &rawECKey{}
	if err := cbor.Unmarshal(data, raw); err != nil {
		return nil, err
	}
	if _, err := secp256k1.ParsePubKey(raw.Pub); err != nil {
		return nil, err
	}
	return &ECKey{curve: raw.Curve, pub: raw.Pub, priv: raw.Priv}, nil
}
