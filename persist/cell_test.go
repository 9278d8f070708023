package persist_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/AntonStoeckl/focused-atoms-go/atom"
	"github.com/AntonStoeckl/focused-atoms-go/focus"
	"github.com/AntonStoeckl/focused-atoms-go/optic"
	"github.com/AntonStoeckl/focused-atoms-go/persist"
	. "github.com/AntonStoeckl/focused-atoms-go/testutil/observability/testdoubles" //nolint:revive
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type settings struct {
	Theme    string   `json:"theme"`
	FontSize int      `json:"fontSize"`
	Plugins  []string `json:"plugins"`
}

// backendSpy counts calls and can be told to fail.
type backendSpy struct {
	*persist.MemoryBackend
	loads   atomic.Int32
	saves   atomic.Int32
	loadErr atomic.Pointer[error]
	saveErr error
}

func newBackendSpy() *backendSpy {
	return &backendSpy{MemoryBackend: persist.NewMemoryBackend()}
}

func (b *backendSpy) Load(ctx context.Context, key string) ([]byte, bool, error) {
	b.loads.Add(1)
	if err := b.loadErr.Load(); err != nil {
		return nil, false, *err
	}

	return b.MemoryBackend.Load(ctx, key)
}

func (b *backendSpy) Save(ctx context.Context, key string, value []byte) error {
	b.saves.Add(1)
	if b.saveErr != nil {
		return b.saveErr
	}

	return b.MemoryBackend.Save(ctx, key, value)
}

func newStore(t *testing.T) *atom.Store {
	t.Helper()

	st, err := atom.NewStore()
	require.NoError(t, err)

	return st
}

func withTimeout(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	return ctx
}

func Test_Cell_Read_When_KeyIsMissing_ReadsInitial(t *testing.T) {
	// setup
	ctx := withTimeout(t)
	st := newStore(t)

	// arrange
	cell, err := persist.NewCell(ctx, persist.NewMemoryBackend(), "settings", settings{Theme: "light"})
	require.NoError(t, err)

	// act
	v := atom.Read(ctx, st, cell.Atom())
	got, readErr := v.Await(ctx)

	// assert
	require.NoError(t, readErr)
	assert.True(t, v.IsAsync(), "the first read loads in the background")
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, "persist(settings)", cell.Atom().Label())
}

func Test_Cell_Read_DecodesStoredValueAndLoadsOncePerStore(t *testing.T) {
	// setup
	ctx := withTimeout(t)
	st := newStore(t)
	backend := newBackendSpy()
	require.NoError(t, backend.Save(ctx, "settings", []byte(`{"theme":"dark","fontSize":14}`)))

	// arrange
	cell, err := persist.NewCell(ctx, backend, "settings", settings{})
	require.NoError(t, err)

	// act
	first, firstErr := atom.Read(ctx, st, cell.Atom()).Await(ctx)
	second := atom.Read(ctx, st, cell.Atom())

	// assert
	require.NoError(t, firstErr)
	assert.Equal(t, settings{Theme: "dark", FontSize: 14}, first)
	got, secondErr := second.Get()
	require.NoError(t, secondErr, "the cached value is ready")
	assert.Equal(t, first, got)
	assert.Equal(t, int32(1), backend.loads.Load())
}

func Test_Cell_Write_SavesThenPublishes(t *testing.T) {
	// setup
	ctx := withTimeout(t)
	st := newStore(t)
	backend := persist.NewMemoryBackend()

	// arrange
	cell, err := persist.NewCell(ctx, backend, "settings", settings{FontSize: 12})
	require.NoError(t, err)

	var notified atomic.Int32
	defer atom.Subscribe(st, cell.Atom(), func() { notified.Add(1) })()

	// act
	written := atom.Write(ctx, st, cell.Atom(), atom.Modify(func(s settings) settings {
		s.FontSize += 2
		return s
	}))
	_, writeErr := written.Await(ctx)

	// assert
	require.NoError(t, writeErr)
	assert.Equal(t, int32(1), notified.Load())

	data, ok, loadErr := backend.Load(ctx, "settings")
	require.NoError(t, loadErr)
	require.True(t, ok)
	assert.JSONEq(t, `{"theme":"","fontSize":14,"plugins":null}`, string(data))

	got, _ := atom.Read(ctx, st, cell.Atom()).Get()
	assert.Equal(t, 14, got.FontSize)
}

func Test_Cell_Write_When_SaveFails_KeepsValueAndReturnsSavingError(t *testing.T) {
	// setup
	ctx := withTimeout(t)
	st := newStore(t)
	backend := newBackendSpy()
	backend.saveErr = errors.New("disk full")
	testHandler := NewLogHandlerSpy(false)

	// arrange
	cell, err := persist.NewCell(ctx, backend, "settings", settings{Theme: "light"}, persist.WithLogger(slog.New(testHandler)))
	require.NoError(t, err)

	// act
	_, writeErr := atom.Write(ctx, st, cell.Atom(), atom.Replace(settings{Theme: "dark"})).Await(ctx)

	// assert
	assert.ErrorIs(t, writeErr, persist.ErrSavingValueFailed)
	assert.ErrorContains(t, writeErr, "disk full")
	got, _ := atom.Read(ctx, st, cell.Atom()).Await(ctx)
	assert.Equal(t, "light", got.Theme)
	assert.True(t, testHandler.HasErrorLogWithMessage("saving persisted value failed").WithAttr("key", "settings").Assert())
}

func Test_Cell_Read_When_LoadFails_NextReadRetries(t *testing.T) {
	// setup
	ctx := withTimeout(t)
	st := newStore(t)
	backend := newBackendSpy()
	loadErr := errors.New("connection refused")
	backend.loadErr.Store(&loadErr)

	// arrange
	cell, err := persist.NewCell(ctx, backend, "settings", settings{Theme: "light"})
	require.NoError(t, err)

	// act
	_, firstErr := atom.Read(ctx, st, cell.Atom()).Await(ctx)
	backend.loadErr.Store(nil)
	got, secondErr := atom.Read(ctx, st, cell.Atom()).Await(ctx)

	// assert
	assert.ErrorIs(t, firstErr, persist.ErrLoadingValueFailed)
	require.NoError(t, secondErr)
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, int32(2), backend.loads.Load())
}

func Test_Cell_Read_When_StoredValueIsCorrupt_ReturnsDecodingError(t *testing.T) {
	// setup
	ctx := withTimeout(t)
	st := newStore(t)
	backend := persist.NewMemoryBackend()
	require.NoError(t, backend.Save(ctx, "settings", []byte(`{"theme":`)))

	// arrange
	cell, err := persist.NewCell(ctx, backend, "settings", settings{})
	require.NoError(t, err)

	// act
	_, readErr := atom.Read(ctx, st, cell.Atom()).Await(ctx)

	// assert
	assert.ErrorIs(t, readErr, persist.ErrDecodingValueFailed)
}

func Test_Cell_Reset_DeletesKeyAndPublishesInitial(t *testing.T) {
	// setup
	ctx := withTimeout(t)
	st := newStore(t)
	backend := persist.NewMemoryBackend()

	// arrange
	cell, err := persist.NewCell(ctx, backend, "settings", settings{Theme: "light"})
	require.NoError(t, err)
	_, writeErr := atom.Write(ctx, st, cell.Atom(), atom.Replace(settings{Theme: "dark"})).Await(ctx)
	require.NoError(t, writeErr)

	// act
	resetErr := cell.Reset(ctx, st)

	// assert
	require.NoError(t, resetErr)
	_, ok, _ := backend.Load(ctx, "settings")
	assert.False(t, ok)
	got, _ := atom.Read(ctx, st, cell.Atom()).Get()
	assert.Equal(t, "light", got.Theme)
}

func Test_Cell_Refresh_PicksUpExternalChanges(t *testing.T) {
	// setup
	ctx := withTimeout(t)
	st := newStore(t)
	backend := persist.NewMemoryBackend()

	// arrange
	cell, err := persist.NewCell(ctx, backend, "settings", settings{Theme: "light"})
	require.NoError(t, err)
	_, _ = atom.Read(ctx, st, cell.Atom()).Await(ctx)
	require.NoError(t, backend.Save(ctx, "settings", []byte(`{"theme":"solarized"}`)))

	// act
	refreshErr := cell.Refresh(ctx, st)
	got, readErr := atom.Read(ctx, st, cell.Atom()).Await(ctx)

	// assert
	require.NoError(t, refreshErr)
	require.NoError(t, readErr)
	assert.Equal(t, "solarized", got.Theme)
}

func Test_Cell_AsFocusBase_WritesThroughTraversal(t *testing.T) {
	// setup
	ctx := withTimeout(t)
	st := newStore(t)
	backend := persist.NewMemoryBackend()
	require.NoError(t, backend.Save(ctx, "settings", []byte(`{"plugins":["git","lint"]}`)))

	// arrange
	cell, err := persist.NewCell(ctx, backend, "settings", settings{})
	require.NoError(t, err)
	plugins, err := focus.Traversal(cell.Atom(), func(o optic.Optic[settings, settings]) optic.Optic[settings, string] {
		return optic.Elems(optic.Prop(o,
			func(s settings) []string { return s.Plugins },
			func(s settings, p []string) settings { s.Plugins = p; return s }))
	})
	require.NoError(t, err)

	// act
	_, writeErr := atom.Write(ctx, st, plugins, atom.Modify(func(p string) string { return "vim-" + p })).Await(ctx)

	// assert
	require.NoError(t, writeErr)
	got, _ := atom.Read(ctx, st, plugins).Await(ctx)
	assert.Equal(t, []string{"vim-git", "vim-lint"}, got)
	data, _, _ := backend.Load(ctx, "settings")
	assert.JSONEq(t, `{"theme":"","fontSize":0,"plugins":["vim-git","vim-lint"]}`, string(data))
}

func Test_NewCell_ValidatesArguments(t *testing.T) {
	ctx := context.Background()

	_, nilBackendErr := persist.NewCell(ctx, nil, "k", 0)
	_, emptyKeyErr := persist.NewAtom(ctx, persist.NewMemoryBackend(), "", 0)
	_, emptyLabelErr := persist.NewCell(ctx, persist.NewMemoryBackend(), "k", 0, persist.WithLabel(""))
	named, err := persist.NewAtom(ctx, persist.NewMemoryBackend(), "k", 0, persist.WithLabel("counter"))

	assert.ErrorIs(t, nilBackendErr, persist.ErrNilBackend)
	assert.ErrorIs(t, emptyKeyErr, persist.ErrEmptyKey)
	assert.ErrorIs(t, emptyLabelErr, persist.ErrEmptyLabel)
	require.NoError(t, err)
	assert.Equal(t, "counter", named.Label())
}
