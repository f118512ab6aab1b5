package convert

import "github.com/mr-shifu/keybridge/pkg/keyparams"

// Kind is the closed set of key shapes the converters understand.
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindRSAPublic
	KindRSAPrivate
	KindDSAPublic
	KindDSAPrivate
)

func (k Kind) String() string {
	switch k {
	case KindRSAPublic:
		return "rsa-public"
	case KindRSAPrivate:
		return "rsa-private"
	case KindDSAPublic:
		return "dsa-public"
	case KindDSAPrivate:
		return "dsa-private"
	}
	return "unsupported"
}

// Classify maps a library key parameter object to its Kind. An RSA object
// flagged private without CRT values is unsupported.
func Classify(key keyparams.Key) Kind {
	switch k := key.(type) {
	case *keyparams.RSAPrivateCrtKeyParameters:
		if k != nil {
			return KindRSAPrivate
		}
	case *keyparams.RSAKeyParameters:
		if k != nil && !k.IsPrivate() {
			return KindRSAPublic
		}
	case *keyparams.DSAPublicKeyParameters:
		if k != nil {
			return KindDSAPublic
		}
	case *keyparams.DSAPrivateKeyParameters:
		if k != nil {
			return KindDSAPrivate
		}
	}
	return KindUnsupported
}
