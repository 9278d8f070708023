package persist

import (
	"errors"
)

var ErrEmptyKey = errors.New("empty key supplied")
var ErrEmptyLabel = errors.New("empty label supplied")
var ErrNilBackend = errors.New("nil backend supplied")
var ErrLoadingValueFailed = errors.New("loading value failed")
var ErrSavingValueFailed = errors.New("saving value failed")
var ErrDeletingValueFailed = errors.New("deleting value failed")
var ErrDecodingValueFailed = errors.New("decoding value failed")
var ErrEncodingValueFailed = errors.New("encoding value failed")
