package convert

import (
	"context"

	"github.com/mr-shifu/keybridge/pkg/keyparams"
	"github.com/mr-shifu/keybridge/pkg/native"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ToNativeKeys converts keys concurrently, running at most limit conversions
// at once; limit < 1 means no limit. Results keep the input order. The first
// failure cancels the remaining conversions.
func ToNativeKeys(ctx context.Context, keys []keyparams.Key, limit int) ([]native.Key, error) {
	out := make([]native.Key, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			k, err := ToNativeKey(key)
			if err != nil {
				return errors.WithMessagef(err, "convert: key %d", i)
			}
			out[i] = k
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ToLibraryKeyPairs is the export counterpart of ToNativeKeys.
func ToLibraryKeyPairs(ctx context.Context, keys []native.Key, limit int) ([]*keyparams.KeyPair, error) {
	out := make([]*keyparams.KeyPair, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pair, err := ToLibraryKeyPair(key)
			if err != nil {
				return errors.WithMessagef(err, "convert: key %d", i)
			}
			out[i] = pair
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
