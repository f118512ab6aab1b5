package keystore

import "github.com/mr-shifu/keybridge/pkg/common/keyopts"

// Keystore stores encoded keys in a vault under a handle and indexes the
// handles by key ID and label.
type Keystore interface {
	// Import stores key under handle and links it to the key ID and label
	// in opts.
	Import(handle string, key []byte, opts keyopts.Options) error

	// Update overwrites the key linked to the key ID and label in opts.
	Update(key []byte, opts keyopts.Options) error

	Get(opts keyopts.Options) ([]byte, error)
	Delete(opts keyopts.Options) error
	DeleteAll(opts keyopts.Options) error
}
