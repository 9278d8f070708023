package focusctl_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/focused-atoms-go/example/focusctl"
)

func Test_LoadConfig_When_NothingIsConfigured_FailsWithoutDSN(t *testing.T) {
	_, err := focusctl.LoadConfig(focusctl.NewViper(), "")

	assert.ErrorIs(t, err, focusctl.ErrMissingDSN)
}

func Test_LoadConfig_ReadsEnvironment(t *testing.T) {
	// arrange
	t.Setenv("FOCUSCTL_BACKEND", "sqlx")
	t.Setenv("FOCUSCTL_DSN", "postgres://localhost/atoms")
	t.Setenv("FOCUSCTL_OUTPUT", "yaml")

	// act
	c, err := focusctl.LoadConfig(focusctl.NewViper(), "")

	// assert
	require.NoError(t, err)
	assert.Equal(t, focusctl.Config{
		Backend: focusctl.BackendSQLX,
		DSN:     "postgres://localhost/atoms",
		Table:   "atoms",
		Output:  focusctl.OutputYAML,
	}, c)
}

func Test_LoadConfig_ReadsYAMLFile_AndEnvironmentWins(t *testing.T) {
	// arrange
	file := filepath.Join(t.TempDir(), "focusctl.yaml")
	require.NoError(t, os.WriteFile(file, []byte("backend: memory\ntable: documents\nverbose: true\n"), 0o600))
	t.Setenv("FOCUSCTL_TABLE", "from_env")

	// act
	c, err := focusctl.LoadConfig(focusctl.NewViper(), file)

	// assert
	require.NoError(t, err)
	assert.Equal(t, focusctl.BackendMemory, c.Backend)
	assert.Equal(t, "from_env", c.Table)
	assert.True(t, c.Verbose)
}

func Test_LoadConfig_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{name: "unknown backend", env: map[string]string{"FOCUSCTL_BACKEND": "redis"}, wantErr: focusctl.ErrUnknownBackend},
		{name: "unknown output", env: map[string]string{"FOCUSCTL_BACKEND": "memory", "FOCUSCTL_OUTPUT": "xml"}, wantErr: focusctl.ErrUnknownOutputFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := focusctl.LoadConfig(focusctl.NewViper(), "")

			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func Test_LoadConfig_When_FileIsMissing_ReturnsError(t *testing.T) {
	_, err := focusctl.LoadConfig(focusctl.NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}
