// Package keyparams holds the library key representation: numeric fields are
// arbitrary-precision signed integers (saferith.Int).
package keyparams

import "errors"

var (
	ErrUnknownKeyType = errors.New("keyparams: unknown key type")
	ErrInvalidKey     = errors.New("keyparams: invalid key")
)

// Key is implemented by every public or private key parameter object.
type Key interface {
	// IsPrivate returns true for private key parameters.
	IsPrivate() bool
}

// KeyPair couples a public key with its private counterpart.
type KeyPair struct {
	Public  Key
	Private Key
}

func NewKeyPair(public, private Key) *KeyPair {
	return &KeyPair{Public: public, Private: private}
}
