package atom

import (
	"errors"
)

var ErrPending = errors.New("value is still pending")
var ErrReadOnlyAtom = errors.New("atom is read-only")
var ErrNilStore = errors.New("nil store supplied")
