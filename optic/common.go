package optic

import (
	"errors"
)

var ErrNotALens = errors.New("optic does not address exactly one value")
var ErrFocusCountMismatch = errors.New("number of replacement values does not match the number of foci")
