package depends_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelkit/synapse/depends"
)

//
// -----------------------------------------------------------------------------
// NewProvider / Override
// -----------------------------------------------------------------------------

// TestNewProvider_Empty verifies NewProvider starts with no overrides.
func TestNewProvider_Empty(t *testing.T) {
	t.Parallel()

	p := depends.NewProvider()
	require.NotNil(t, p)
	assert.Equal(t, 0, p.Overrides())
}

// TestOverride_ChainsAndStores verifies Override installs overrides and returns
// the same provider for chaining.
func TestOverride_ChainsAndStores(t *testing.T) {
	t.Parallel()

	a := func() int { return 1 }
	b := func() int { return 2 }
	fakeA := func() int { return 10 }
	fakeB := func() int { return 20 }

	p := depends.NewProvider()
	ret := p.Override(a, fakeA).Override(b, fakeB)
	require.Same(t, p, ret)

	assert.Equal(t, 2, p.Overrides())
	assert.True(t, p.Overridden(a))
	assert.True(t, p.Overridden(b))
}

// TestOverride_LastWriteWins verifies that overriding the same original twice
// keeps only the later override.
func TestOverride_LastWriteWins(t *testing.T) {
	t.Parallel()

	original := func() int { return 1 }
	first := func() int { return 2 }
	second := func() int { return 3 }

	p := depends.NewProvider().Override(original, first).Override(original, second)
	assert.Equal(t, 1, p.Overrides())

	injected := depends.MustInject(p, func(v int) int { return v }, depends.Depends(original))
	got, err := injected()
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

// TestOverride_NonFunction verifies Override panics when given non-callables.
func TestOverride_NonFunction(t *testing.T) {
	t.Parallel()

	p := depends.NewProvider()
	fn := func() int { return 1 }

	assert.PanicsWithValue(t, depends.ErrNotAProvider, func() { p.Override("not a func", fn) })
	assert.PanicsWithValue(t, depends.ErrNotAProvider, func() { p.Override(fn, 42) })
}

//
// -----------------------------------------------------------------------------
// Restore / Reset / Overridden
// -----------------------------------------------------------------------------

// TestRestore_RemovesSingleOverride verifies Restore removes only the given
// original's override.
func TestRestore_RemovesSingleOverride(t *testing.T) {
	t.Parallel()

	a := func() int { return 1 }
	b := func() int { return 2 }
	fake := func() int { return 3 }

	p := depends.NewProvider().Override(a, fake).Override(b, fake)
	p.Restore(a)

	assert.False(t, p.Overridden(a))
	assert.True(t, p.Overridden(b))
	assert.Equal(t, 1, p.Overrides())
}

// TestReset_RemovesEverything verifies Reset clears all overrides.
func TestReset_RemovesEverything(t *testing.T) {
	t.Parallel()

	a := func() int { return 1 }
	b := func() int { return 2 }
	fake := func() int { return 3 }

	p := depends.NewProvider().Override(a, fake).Override(b, fake)
	p.Reset()

	assert.Equal(t, 0, p.Overrides())
	assert.False(t, p.Overridden(a))
}

// TestOverridden_NilProvider verifies a nil provider reports nothing as
// overridden instead of panicking.
func TestOverridden_NilProvider(t *testing.T) {
	t.Parallel()

	var p *depends.Provider
	assert.False(t, p.Overridden(func() int { return 1 }))
	assert.Equal(t, 0, p.Overrides())
}
