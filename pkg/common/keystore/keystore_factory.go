package keystore

import (
	"github.com/mr-shifu/keybridge/pkg/common/keyopts"
	"github.com/mr-shifu/keybridge/pkg/common/vault"
)

// KeystoreFactory is a factory interface for creating new Keystore instances
type KeystoreFactory interface {
	// Create a new Keystore instance on top of the given vault and key options
	NewKeystore(v vault.Vault, kr keyopts.KeyOpts, cfg interface{}) Keystore
}
