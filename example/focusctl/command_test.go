package focusctl_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/focused-atoms-go/example/focusctl"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := focusctl.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--backend", "memory"}, args...))

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func Test_RootCommand_Get_When_KeyIsMissing_PrintsNull(t *testing.T) {
	out, err := execute(t, "get", "cart")

	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}

func Test_RootCommand_Get_PrintsYAML(t *testing.T) {
	out, err := execute(t, "--output", "yaml", "get", "cart", "")

	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}

func Test_RootCommand_Set_ReplacesTheRoot(t *testing.T) {
	_, err := execute(t, "set", "cart", "", `{"items":[{"qty":1}]}`)

	assert.NoError(t, err)
}

func Test_RootCommand_Set_When_PathIsMissing_Fails(t *testing.T) {
	_, err := execute(t, "set", "cart", "items[0].qty", "3")

	assert.ErrorIs(t, err, focusctl.ErrPathNotFound)
}

func Test_RootCommand_Set_When_ValueIsNotJSON_Fails(t *testing.T) {
	_, err := execute(t, "set", "cart", "", "{broken")

	assert.Error(t, err)
}

func Test_RootCommand_Inc_When_ByIsNotANumber_Fails(t *testing.T) {
	_, err := execute(t, "inc", "cart", "", "--by", "many")

	assert.ErrorContains(t, err, "invalid --by")
}

func Test_RootCommand_Init_OnMemoryBackend_Succeeds(t *testing.T) {
	_, err := execute(t, "init")

	assert.NoError(t, err)
}

func Test_RootCommand_Delete(t *testing.T) {
	_, err := execute(t, "delete", "cart")

	assert.NoError(t, err)
}

func Test_RootCommand_When_ArgsAreMissing_Fails(t *testing.T) {
	_, err := execute(t, "set", "cart")

	assert.Error(t, err)
}
