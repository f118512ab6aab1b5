// Package keymanager stores native keys and converts them to and from
// library key parameters on the way in and out.
package keymanager

import (
	"encoding/hex"
	"errors"
	"io"
	"reflect"

	"github.com/inconshreveable/log15"
	"github.com/mr-shifu/keybridge/core/codec"
	"github.com/mr-shifu/keybridge/lib/log"
	com_keyopts "github.com/mr-shifu/keybridge/pkg/common/keyopts"
	"github.com/mr-shifu/keybridge/pkg/common/keystore"
	"github.com/mr-shifu/keybridge/pkg/convert"
	"github.com/mr-shifu/keybridge/pkg/keyopts"
	"github.com/mr-shifu/keybridge/pkg/keyparams"
	inmem_keystore "github.com/mr-shifu/keybridge/pkg/keystore"
	"github.com/mr-shifu/keybridge/pkg/native"
	"github.com/mr-shifu/keybridge/pkg/vault"
	pkgerrors "github.com/pkg/errors"
)

const (
	LabelPublic  = "public"
	LabelPrivate = "private"
)

var (
	ErrInvalidKeyID = errors.New("keymanager: invalid key id")
	ErrInvalidRaw   = errors.New("keymanager: unsupported raw key")
	ErrKeyNotFound  = errors.New("keymanager: key not found")
)

type KeyManager struct {
	ks  keystore.Keystore
	cfg *Config
	log log15.Logger

	// logFile is nil unless cfg.LogFile is set.
	logFile io.Closer
}

// NewKeyManager builds a key manager on top of ks. A nil cfg means
// DefaultConfig.
func NewKeyManager(ks keystore.Keystore, cfg *Config) (*KeyManager, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, pkgerrors.WithMessage(err, "keymanager: log level")
	}
	handler, closer, err := log.Handler(log.Formatter(cfg.LogFormat), cfg.LogFile)
	if err != nil {
		return nil, pkgerrors.WithMessage(err, "keymanager: log handler")
	}
	logger := log.New("keymanager")
	log.SetLogger(logger, lvl, handler)

	return &KeyManager{ks: ks, cfg: cfg, log: logger, logFile: closer}, nil
}

// Close releases the log file, if any. Logging after Close is discarded.
func (mgr *KeyManager) Close() error {
	if mgr.logFile == nil {
		return nil
	}
	mgr.log.SetHandler(log15.DiscardHandler())
	err := mgr.logFile.Close()
	mgr.logFile = nil
	return err
}

// NewInMemoryKeyManager builds a key manager over an in-memory vault and
// key options store.
func NewInMemoryKeyManager(cfg *Config) (*KeyManager, error) {
	v := vault.InMemoryVaultFactory{}.NewVault(cfg)
	kr := (&keyopts.InMemoryKeyOptsFactory{}).NewKeyOpts(cfg)
	return NewKeyManager(inmem_keystore.InMemoryKeystoreFactory{}.NewKeystore(v, kr, cfg), cfg)
}

// ImportLibraryKey converts library key parameters to a native key and
// stores it under the key id in opts. raw is a keyparams.Key, a
// *keyparams.KeyPair or a keyparams.Marshal encoding. For a key pair both
// halves are converted before either is stored, and the private native key is
// returned.
func (mgr *KeyManager) ImportLibraryKey(raw interface{}, opts com_keyopts.Options) (native.Key, error) {
	switch key := raw.(type) {
	case []byte:
		decoded, err := keyparams.Unmarshal(key)
		if err != nil {
			return nil, pkgerrors.WithMessage(err, "keymanager: decode library key")
		}
		return mgr.importLibraryKey(decoded, opts)
	case *keyparams.KeyPair:
		if key == nil {
			return nil, convert.ErrNilKey
		}
		if key.Private == nil {
			return mgr.importLibraryKey(key.Public, opts)
		}
		return mgr.importLibraryKeyPair(key, opts)
	case keyparams.Key:
		return mgr.importLibraryKey(key, opts)
	case nil:
		return nil, convert.ErrNilKey
	}
	return nil, pkgerrors.WithMessagef(ErrInvalidRaw, "keymanager: %T", raw)
}

func (mgr *KeyManager) importLibraryKey(key keyparams.Key, opts com_keyopts.Options) (native.Key, error) {
	k, err := convert.ToNativeKey(key)
	if err != nil {
		return nil, err
	}
	if err := mgr.ImportNativeKey(k, opts); err != nil {
		return nil, err
	}
	return k, nil
}

func (mgr *KeyManager) importLibraryKeyPair(pair *keyparams.KeyPair, opts com_keyopts.Options) (native.Key, error) {
	kid, err := keyID(opts)
	if err != nil {
		return nil, err
	}

	priv, err := convert.ToNativeKey(pair.Private)
	if err != nil {
		return nil, err
	}
	keys := []native.Key{priv}
	if pair.Public != nil {
		pub, err := convert.ToNativeKey(pair.Public)
		if err != nil {
			return nil, err
		}
		keys = append(keys, pub)
	}

	for _, k := range keys {
		if err := mgr.store(kid, k); err != nil {
			return nil, err
		}
	}
	return priv, nil
}

// ImportNativeKey stores key under the key id in opts, labeled private or
// public after the material it holds. A key already stored under the same id
// and label is overwritten.
func (mgr *KeyManager) ImportNativeKey(key native.Key, opts com_keyopts.Options) error {
	if rv := reflect.ValueOf(key); key == nil || (rv.Kind() == reflect.Ptr && rv.IsNil()) {
		return convert.ErrNilKey
	}
	kid, err := keyID(opts)
	if err != nil {
		return err
	}
	return mgr.store(kid, key)
}

func (mgr *KeyManager) store(kid string, key native.Key) error {
	label := LabelPublic
	if key.HasPrivate() {
		label = LabelPrivate
	}

	b, err := key.Bytes()
	if err != nil {
		return pkgerrors.WithMessage(err, "keymanager: encode key")
	}
	defer codec.Zero(b)

	opts := labeled(kid, label)
	err = mgr.ks.Update(b, opts)
	if notFound(err) {
		err = mgr.ks.Import(kid+"/"+label, b, opts)
	}
	if err != nil {
		return pkgerrors.WithMessage(err, "keymanager: store key")
	}

	mgr.log.Debug("key imported", "id", kid, "label", label, "algorithm", key.Algorithm(), "ski", hex.EncodeToString(key.SKI()))
	return nil
}

// GetKey returns the key stored under the key id in opts. A "label" option
// selects the public or private entry; without it the private entry wins.
func (mgr *KeyManager) GetKey(opts com_keyopts.Options) (native.Key, error) {
	kid, err := keyID(opts)
	if err != nil {
		return nil, err
	}

	labels := []string{LabelPrivate, LabelPublic}
	if v, ok := opts.Get("label"); ok {
		l, ok := v.(string)
		if !ok || (l != LabelPrivate && l != LabelPublic) {
			return nil, pkgerrors.WithMessagef(ErrKeyNotFound, "keymanager: label %v", v)
		}
		labels = []string{l}
	}

	for _, label := range labels {
		k, err := mgr.load(kid, label)
		if err == nil {
			return k, nil
		}
		if !errors.Is(err, ErrKeyNotFound) {
			return nil, err
		}
	}
	return nil, pkgerrors.WithMessagef(ErrKeyNotFound, "keymanager: id %s", kid)
}

// ExportKeyPair converts the stored private key to a library key pair.
func (mgr *KeyManager) ExportKeyPair(opts com_keyopts.Options) (*keyparams.KeyPair, error) {
	kid, err := keyID(opts)
	if err != nil {
		return nil, err
	}
	k, err := mgr.load(kid, LabelPrivate)
	if err != nil {
		return nil, err
	}

	pair, err := convert.ToLibraryKeyPair(k)
	if err != nil {
		return nil, err
	}
	mgr.log.Debug("key pair exported", "id", kid, "algorithm", k.Algorithm())
	return pair, nil
}

// ExportPublicKey converts the public part of the stored key.
func (mgr *KeyManager) ExportPublicKey(opts com_keyopts.Options) (keyparams.Key, error) {
	kid, err := keyID(opts)
	if err != nil {
		return nil, err
	}
	k, err := mgr.GetKey(keyopts.Options{"id": kid})
	if err != nil {
		return nil, err
	}

	pub, err := convert.ToLibraryPublicKey(k)
	if err != nil {
		return nil, err
	}
	mgr.log.Debug("public key exported", "id", kid, "algorithm", k.Algorithm())
	return pub, nil
}

// DeleteKey removes every key stored under the key id in opts.
func (mgr *KeyManager) DeleteKey(opts com_keyopts.Options) error {
	kid, err := keyID(opts)
	if err != nil {
		return err
	}
	if err := mgr.ks.DeleteAll(keyopts.Options{"id": kid}); err != nil {
		if notFound(err) {
			return pkgerrors.WithMessagef(ErrKeyNotFound, "keymanager: id %s", kid)
		}
		return err
	}

	mgr.log.Debug("key deleted", "id", kid)
	return nil
}

func (mgr *KeyManager) load(kid, label string) (native.Key, error) {
	b, err := mgr.ks.Get(labeled(kid, label))
	if err != nil {
		if notFound(err) {
			return nil, pkgerrors.WithMessagef(ErrKeyNotFound, "keymanager: id %s label %s", kid, label)
		}
		return nil, err
	}
	defer codec.Zero(b)

	k, err := native.FromBytes(b)
	if err != nil {
		return nil, pkgerrors.WithMessage(err, "keymanager: decode key")
	}
	return k, nil
}

func keyID(opts com_keyopts.Options) (string, error) {
	if opts == nil {
		return "", ErrInvalidKeyID
	}
	v, ok := opts.Get("id")
	if !ok {
		return "", ErrInvalidKeyID
	}
	kid, ok := v.(string)
	if !ok || kid == "" {
		return "", ErrInvalidKeyID
	}
	return kid, nil
}

func notFound(err error) bool {
	return errors.Is(err, keyopts.ErrKeyNotFound) || errors.Is(err, inmem_keystore.ErrKeyNotFound)
}

func labeled(kid, label string) keyopts.Options {
	return keyopts.Options{"id": kid, "label": label}
}
