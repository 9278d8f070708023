package focusctl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/focused-atoms-go/example/focusctl"
	"github.com/AntonStoeckl/focused-atoms-go/optic"
)

func givenDocument() focusctl.Document {
	return map[string]any{
		"settings": map[string]any{"theme": "dark"},
		"items": []any{
			map[string]any{"name": "apple", "qty": 5.0},
			map[string]any{"name": "pear"},
			map[string]any{"name": "plum", "qty": 2.0},
		},
	}
}

func Test_CompilePath_Kinds(t *testing.T) {
	testCases := []struct {
		path string
		want optic.Kind
	}{
		{path: "", want: optic.KindLens},
		{path: "settings", want: optic.KindOptional},
		{path: "settings.theme", want: optic.KindOptional},
		{path: "items[1]", want: optic.KindOptional},
		{path: "items[*]", want: optic.KindTraversal},
		{path: "items[*].qty", want: optic.KindTraversal},
		{path: "[0].name", want: optic.KindOptional},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			o, err := focusctl.CompilePath(tc.path)

			require.NoError(t, err)
			assert.Equal(t, tc.want, o.Kind())
		})
	}
}

func Test_CompilePath_When_PathIsMalformed_ReturnsErrInvalidPath(t *testing.T) {
	for _, path := range []string{"a..b", ".a", "items[", "items[-1]", "items[x]", "a b"} {
		t.Run(path, func(t *testing.T) {
			_, err := focusctl.CompilePath(path)

			assert.ErrorIs(t, err, focusctl.ErrInvalidPath)
		})
	}
}

func Test_CompilePath_Collect(t *testing.T) {
	testCases := []struct {
		path string
		want []any
	}{
		{path: "settings.theme", want: []any{"dark"}},
		{path: "items[2].name", want: []any{"plum"}},
		{path: "items[*].qty", want: []any{5.0, 2.0}},
		{path: "items[7].name", want: []any{}},
		{path: "settings.theme.color", want: []any{}},
		{path: "settings[0]", want: []any{}},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			o, err := focusctl.CompilePath(tc.path)
			require.NoError(t, err)

			assert.Equal(t, tc.want, optic.Collect(o, givenDocument()))
		})
	}
}

func Test_CompilePath_Over_LeavesInputUntouched(t *testing.T) {
	// arrange
	doc := givenDocument()
	o, err := focusctl.CompilePath("items[*].qty")
	require.NoError(t, err)

	// act
	updated := optic.Over(o, doc, func(v any) any { return v.(float64) * 10 })

	// assert
	assert.Equal(t, []any{50.0, 20.0}, optic.Collect(o, updated))
	assert.Equal(t, []any{5.0, 2.0}, optic.Collect(o, doc))
	assert.NotContains(t, updated.(map[string]any)["items"].([]any)[1], "qty")
}

func Test_CompilePath_Set_OnMissingFocus_IsNoOp(t *testing.T) {
	// arrange
	doc := givenDocument()
	o, err := focusctl.CompilePath("settings.font")
	require.NoError(t, err)

	// act
	updated := optic.Set(o, doc, "mono")

	// assert
	assert.Equal(t, doc, updated)
}
