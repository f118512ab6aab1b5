package convert

import (
	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/keybridge/core/codec"
	"github.com/pkg/errors"
)

// fieldReader encodes library integers to native bytes and keeps the first
// missing or negative field it meets.
type fieldReader struct {
	err error
}

func (r *fieldReader) bytes(name string, i *saferith.Int) []byte {
	if r.err != nil {
		return nil
	}
	if i == nil {
		r.err = errors.WithMessagef(ErrInvalidArgument, "convert: %s is missing", name)
		return nil
	}
	if i.IsNegative() == 1 {
		r.err = errors.WithMessagef(ErrInvalidArgument, "convert: %s is negative", name)
		return nil
	}
	return codec.ToBytes(i)
}
