// Package hash computes domain-separated blake3 digests over key fields.
package hash

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

const DigestLengthBytes = 32

// Hash wraps blake3 and writes every input as (domain, data) so that
// adjacent inputs cannot be shifted into one another.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash initialized with "KEYBRIDGE-BLAKE" and then domain.
func New(domain string) *Hash {
	hash := &Hash{h: blake3.New()}
	_, _ = hash.h.WriteString("KEYBRIDGE-BLAKE")
	hash.write("domain", []byte(domain))
	return hash
}

// Digest returns a reader for the current output of the function.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns DigestLengthBytes of output for the current state.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteBytes writes each field under domain. A nil field is written as an
// empty one.
func (hash *Hash) WriteBytes(domain string, fields ...[]byte) {
	for _, f := range fields {
		hash.write(domain, f)
	}
}

// write appends `(<domain_size><domain><data_size><data>)`.
func (hash *Hash) write(domain string, data []byte) {
	var sizeBuf [8]byte

	_, _ = hash.h.WriteString("(")
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(domain)))
	_, _ = hash.h.Write(sizeBuf[:])
	_, _ = hash.h.WriteString(domain)
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(data)))
	_, _ = hash.h.Write(sizeBuf[:])
	_, _ = hash.h.Write(data)
	_, _ = hash.h.WriteString(")")
}
