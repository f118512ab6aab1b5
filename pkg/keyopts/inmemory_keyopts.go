package keyopts

import (
	"errors"
	"sync"

	"github.com/mr-shifu/keybridge/pkg/common/keyopts"
)

var (
	ErrInvalidParamsLabel = errors.New("keyopts: invalid label")
	ErrInvalidParamsKeyID = errors.New("keyopts: invalid keyID")
	ErrInvalidData        = errors.New("keyopts: invalid data")
	ErrKeyNotFound        = errors.New("keyopts: key not found")
)

type Keys map[string]*keyopts.KeyData

type KeyOpts struct {
	lock sync.RWMutex

	// keys maps a key ID to its labeled keys' metadata.
	keys map[string]Keys
}

var _ keyopts.KeyOpts = (*KeyOpts)(nil)

func NewInMemoryKeyOpts() *KeyOpts {
	return &KeyOpts{
		keys: make(map[string]Keys),
	}
}

func (kr *KeyOpts) Import(data interface{}, opts keyopts.Options) error {
	kid, err := keyID(opts)
	if err != nil {
		return err
	}
	l, err := label(opts)
	if err != nil {
		return err
	}
	ski, ok := data.(string)
	if !ok || ski == "" {
		return ErrInvalidData
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	if _, ok := kr.keys[kid]; !ok {
		kr.keys[kid] = make(Keys)
	}
	kr.keys[kid][l] = &keyopts.KeyData{
		Label: l,
		SKI:   ski,
	}

	return nil
}

func (kr *KeyOpts) Get(opts keyopts.Options) (*keyopts.KeyData, error) {
	kid, err := keyID(opts)
	if err != nil {
		return nil, err
	}
	l, err := label(opts)
	if err != nil {
		return nil, err
	}

	kr.lock.RLock()
	defer kr.lock.RUnlock()

	k, ok := kr.keys[kid][l]
	if !ok {
		return nil, ErrKeyNotFound
	}
	kd := *k
	return &kd, nil
}

func (kr *KeyOpts) GetAll(opts keyopts.Options) (map[string]*keyopts.KeyData, error) {
	kid, err := keyID(opts)
	if err != nil {
		return nil, err
	}

	kr.lock.RLock()
	defer kr.lock.RUnlock()

	ks, ok := kr.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}

	result := make(map[string]*keyopts.KeyData, len(ks))
	for l, key := range ks {
		kd := *key
		result[l] = &kd
	}
	return result, nil
}

func (kr *KeyOpts) Delete(opts keyopts.Options) error {
	kid, err := keyID(opts)
	if err != nil {
		return err
	}
	l, err := label(opts)
	if err != nil {
		return err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	ks, ok := kr.keys[kid]
	if !ok {
		return ErrKeyNotFound
	}
	if _, ok := ks[l]; !ok {
		return ErrKeyNotFound
	}

	delete(ks, l)
	if len(ks) == 0 {
		delete(kr.keys, kid)
	}

	return nil
}

func (kr *KeyOpts) DeleteAll(opts keyopts.Options) error {
	kid, err := keyID(opts)
	if err != nil {
		return err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	if _, ok := kr.keys[kid]; !ok {
		return ErrKeyNotFound
	}
	delete(kr.keys, kid)

	return nil
}

func keyID(opts keyopts.Options) (string, error) {
	return stringOpt(opts, "id", ErrInvalidParamsKeyID)
}

func label(opts keyopts.Options) (string, error) {
	return stringOpt(opts, "label", ErrInvalidParamsLabel)
}

func stringOpt(opts keyopts.Options, key string, errInvalid error) (string, error) {
	if opts == nil {
		return "", errInvalid
	}
	v, ok := opts.Get(key)
	if !ok {
		return "", errInvalid
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errInvalid
	}
	return s, nil
}
