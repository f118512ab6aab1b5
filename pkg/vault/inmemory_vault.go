package vault

import (
	"errors"
	"sync"

	"github.com/mr-shifu/keybridge/core/codec"
	"github.com/mr-shifu/keybridge/pkg/common/vault"
)

var (
	ErrKeyNotFound = errors.New("vault: key not found")
	ErrEmptySKI    = errors.New("vault: empty ski")
)

type InMemoryVault struct {
	lock sync.RWMutex
	keys map[string][]byte
}

var _ vault.Vault = (*InMemoryVault)(nil)

func NewInMemoryVault() *InMemoryVault {
	return &InMemoryVault{
		keys: make(map[string][]byte),
	}
}

// Import stores a copy of key. A key already stored under ski is wiped and
// replaced.
func (store *InMemoryVault) Import(ski string, key []byte) error {
	if ski == "" {
		return ErrEmptySKI
	}

	store.lock.Lock()
	defer store.lock.Unlock()

	if old, ok := store.keys[ski]; ok {
		codec.Zero(old)
	}
	store.keys[ski] = append([]byte(nil), key...)
	return nil
}

func (store *InMemoryVault) Get(ski string) ([]byte, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	key, ok := store.keys[ski]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), key...), nil
}

// Delete wipes the stored bytes before dropping them.
func (store *InMemoryVault) Delete(ski string) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	key, ok := store.keys[ski]
	if !ok {
		return ErrKeyNotFound
	}
	codec.Zero(key)
	delete(store.keys, ski)
	return nil
}
