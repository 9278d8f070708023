package focus

import (
	"errors"
)

var ErrOpticKindMismatch = errors.New("optic kind does not fit the focused atom")
var ErrNilBaseAtom = errors.New("nil base atom supplied")
var ErrEmptyLabel = errors.New("empty label supplied")
