package keystore

import (
	"github.com/mr-shifu/keybridge/pkg/common/keyopts"
	"github.com/mr-shifu/keybridge/pkg/common/keystore"
	"github.com/mr-shifu/keybridge/pkg/common/vault"
)

type InMemoryKeystoreFactory struct{}

var _ keystore.KeystoreFactory = InMemoryKeystoreFactory{}

// NewKeystore creates a new Keystore instance for the given keystore configuration
func (f InMemoryKeystoreFactory) NewKeystore(v vault.Vault, kr keyopts.KeyOpts, cfg interface{}) keystore.Keystore {
	return NewInMemoryKeystore(v, kr)
}
