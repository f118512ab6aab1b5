package keyopts

// KeyData is the metadata kept for one stored key.
type KeyData struct {
	Label string
	SKI   string
}

type Options interface {
	Set(kVs ...interface{}) error
	Get(key string) (interface{}, bool)
}

// KeyOpts manages the storage of key metadata referred to by a key ID. A key
// ID groups several labeled keys, for instance the public and private halves
// of one key pair.
type KeyOpts interface {
	// Import links the SKI passed as data to the key ID and label in opts.
	Import(data interface{}, opts Options) error

	// Get returns the metadata of the key with the key ID and label in opts.
	Get(opts Options) (*KeyData, error)

	// GetAll returns the metadata of every key under the key ID in opts,
	// indexed by label.
	GetAll(opts Options) (map[string]*KeyData, error)

	// DeleteAll deletes the metadata of every key under the key ID in opts.
	DeleteAll(opts Options) error

	Delete(opts Options) error
}
