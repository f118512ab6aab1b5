package convert

import (
	"errors"
	"fmt"
)

var (
	ErrNilKey          = errors.New("convert: key is nil")
	ErrInvalidArgument = errors.New("convert: invalid argument")
	ErrNotSupported    = errors.New("convert: not supported")

	ErrUnsupportedAlgorithm = fmt.Errorf("%w: key algorithm", ErrNotSupported)
	ErrUnsupportedKeyType   = fmt.Errorf("%w: key type", ErrNotSupported)
)
