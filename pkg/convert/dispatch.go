package convert

import (
	"reflect"

	"github.com/mr-shifu/keybridge/pkg/keyparams"
	"github.com/mr-shifu/keybridge/pkg/native"
	"github.com/pkg/errors"
)

// ToLibraryKeyPair converts a native key, private part included, to a library
// key pair.
func ToLibraryKeyPair(key native.Key) (*keyparams.KeyPair, error) {
	if isNil(key) {
		return nil, ErrNilKey
	}

	switch k := key.(type) {
	case *native.RSAKey:
		return ExportRSA(k, true)
	case *native.DSAKey:
		return ExportDSA(k, true)
	}
	return nil, errors.WithMessagef(ErrUnsupportedAlgorithm, "convert: %s key %T", key.Algorithm(), key)
}

// ToLibraryPublicKey converts the public part of a native key.
func ToLibraryPublicKey(key native.Key) (keyparams.Key, error) {
	if isNil(key) {
		return nil, ErrNilKey
	}

	var (
		pair *keyparams.KeyPair
		err  error
	)
	switch k := key.(type) {
	case *native.RSAKey:
		pair, err = ExportRSA(k, false)
	case *native.DSAKey:
		pair, err = ExportDSA(k, false)
	default:
		return nil, errors.WithMessagef(ErrUnsupportedAlgorithm, "convert: %s key %T", key.Algorithm(), key)
	}
	if err != nil {
		return nil, err
	}
	return pair.Public, nil
}

// ToNativeKey converts one library key parameter object to a native key.
func ToNativeKey(key keyparams.Key) (native.Key, error) {
	if isNil(key) {
		return nil, ErrNilKey
	}

	// each branch returns explicitly so a failed import never surfaces as a
	// typed nil native.Key
	switch Classify(key) {
	case KindRSAPublic:
		k, err := ImportRSAPublic(key.(*keyparams.RSAKeyParameters))
		if err != nil {
			return nil, err
		}
		return k, nil
	case KindRSAPrivate:
		k, err := ImportRSAPrivate(key.(*keyparams.RSAPrivateCrtKeyParameters))
		if err != nil {
			return nil, err
		}
		return k, nil
	case KindDSAPublic:
		k, err := ImportDSAPublic(key.(*keyparams.DSAPublicKeyParameters))
		if err != nil {
			return nil, err
		}
		return k, nil
	case KindDSAPrivate:
		k, err := ImportDSAPrivate(key.(*keyparams.DSAPrivateKeyParameters))
		if err != nil {
			return nil, err
		}
		return k, nil
	}

	switch key.(type) {
	case *keyparams.ECPublicKeyParameters, *keyparams.ECPrivateKeyParameters:
		return nil, errors.WithMessagef(ErrUnsupportedAlgorithm, "convert: %T", key)
	}
	return nil, errors.WithMessagef(ErrUnsupportedKeyType, "convert: %T", key)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
