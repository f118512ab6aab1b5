package keystore

import (
	"github.com/mr-shifu/keybridge/pkg/common/keyopts"
	"github.com/mr-shifu/keybridge/pkg/common/keystore"
	"github.com/mr-shifu/keybridge/pkg/common/vault"
	"github.com/pkg/errors"
)

var (
	ErrKeyNotFound = errors.New("keystore: key not found")
)

// InMemoryKeystore keeps encoded keys in a vault and their handles in a key
// options index.
type InMemoryKeystore struct {
	v  vault.Vault
	kr keyopts.KeyOpts
}

var _ keystore.Keystore = (*InMemoryKeystore)(nil)

func NewInMemoryKeystore(v vault.Vault, kr keyopts.KeyOpts) *InMemoryKeystore {
	return &InMemoryKeystore{
		v:  v,
		kr: kr,
	}
}

// Import stores key and indexes it. If opts already indexed a key under
// another handle, that key is dropped from the vault.
func (ks *InMemoryKeystore) Import(handle string, key []byte, opts keyopts.Options) error {
	prev, _ := ks.lookup(opts)

	if err := ks.v.Import(handle, key); err != nil {
		return errors.WithMessage(err, "keystore: store key")
	}
	if err := ks.kr.Import(handle, opts); err != nil {
		// an unindexed vault entry could never be reached again
		_ = ks.v.Delete(handle)
		return errors.WithMessage(err, "keystore: index key")
	}

	if prev != "" && prev != handle {
		_ = ks.v.Delete(prev)
	}
	return nil
}

func (ks *InMemoryKeystore) Update(key []byte, opts keyopts.Options) error {
	handle, err := ks.lookup(opts)
	if err != nil {
		return err
	}
	return errors.WithMessage(ks.v.Import(handle, key), "keystore: update key")
}

func (ks *InMemoryKeystore) Get(opts keyopts.Options) ([]byte, error) {
	handle, err := ks.lookup(opts)
	if err != nil {
		return nil, err
	}

	key, err := ks.v.Get(handle)
	if err != nil {
		return nil, errors.WithMessagef(err, "keystore: load %s", handle)
	}
	return key, nil
}

func (ks *InMemoryKeystore) Delete(opts keyopts.Options) error {
	handle, err := ks.lookup(opts)
	if err != nil {
		return err
	}

	if err := ks.kr.Delete(opts); err != nil {
		return errors.WithMessage(err, "keystore: unindex key")
	}
	return errors.WithMessagef(ks.v.Delete(handle), "keystore: delete %s", handle)
}

// DeleteAll drops every key under the key ID in opts, index entries first.
func (ks *InMemoryKeystore) DeleteAll(opts keyopts.Options) error {
	keys, err := ks.kr.GetAll(opts)
	if err != nil {
		return errors.WithMessage(err, "keystore: list keys")
	}
	if err := ks.kr.DeleteAll(opts); err != nil {
		return errors.WithMessage(err, "keystore: unindex keys")
	}

	for _, kd := range keys {
		if err := ks.v.Delete(kd.SKI); err != nil {
			return errors.WithMessagef(err, "keystore: delete %s", kd.SKI)
		}
	}
	return nil
}

// lookup returns the vault handle indexed by opts.
func (ks *InMemoryKeystore) lookup(opts keyopts.Options) (string, error) {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return "", errors.WithMessage(err, "keystore: lookup key")
	}
	if kd.SKI == "" {
		return "", ErrKeyNotFound
	}
	return kd.SKI, nil
}
