package vault

// Vault holds encoded key material addressed by SKI.
type Vault interface {
	Import(ski string, key []byte) error
	Get(ski string) ([]byte, error)
	Delete(ski string) error
}
