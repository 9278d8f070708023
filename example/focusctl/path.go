package focusctl

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/focused-atoms-go/optic"
)

// Document is a decoded JSON value: nil, bool, float64, string, []any or map[string]any.
type Document = any

var (
	segmentPattern = regexp.MustCompile(`^([A-Za-z0-9_\-]*)((?:\[(?:\*|\d+)\])*)$`)
	indexPattern   = regexp.MustCompile(`\[(\*|\d+)\]`)
)

// CompilePath turns path into an optic on a Document.
// The result is a lens for the empty path, an optional for paths without [*] and a traversal otherwise.
func CompilePath(path string) (optic.Optic[Document, Document], error) {
	o := optic.For[Document]()

	if path == "" {
		return o, nil
	}

	for _, segment := range strings.Split(path, ".") {
		match := segmentPattern.FindStringSubmatch(segment)
		if match == nil || segment == "" {
			return optic.Optic[Document, Document]{}, errors.Join(ErrInvalidPath, fmt.Errorf("segment %q of %q", segment, path))
		}

		if name := match[1]; name != "" {
			o = optic.Key(asObject(o), name)
		}

		for _, index := range indexPattern.FindAllStringSubmatch(match[2], -1) {
			if index[1] == "*" {
				o = optic.Elems(asArray(o))
				continue
			}

			i, err := strconv.Atoi(index[1])
			if err != nil {
				return optic.Optic[Document, Document]{}, errors.Join(ErrInvalidPath, err)
			}

			o = optic.Index(asArray(o), i)
		}
	}

	return o, nil
}

func asObject(o optic.Optic[Document, Document]) optic.Optic[Document, map[string]any] {
	return optic.Compose(o, optic.Optional(
		func(d Document) (map[string]any, bool) {
			m, ok := d.(map[string]any)
			return m, ok
		},
		func(_ Document, m map[string]any) Document {
			return m
		},
	))
}

func asArray(o optic.Optic[Document, Document]) optic.Optic[Document, []any] {
	return optic.Compose(o, optic.Optional(
		func(d Document) ([]any, bool) {
			xs, ok := d.([]any)
			return xs, ok
		},
		func(_ Document, xs []any) Document {
			return xs
		},
	))
}
