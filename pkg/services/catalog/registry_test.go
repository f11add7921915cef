package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DefaultCatalog(t *testing.T) {
	r := NewRegistry()

	c, err := r.Get("")
	require.NoError(t, err)
	assert.Same(t, Default(), c)

	c, err = r.Get(DefaultName)
	require.NoError(t, err)
	assert.Same(t, Default(), c)

	assert.Equal(t, []string{DefaultName}, r.List())
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	compact, err := New("compact", "", []Rule{{Pattern: "Energia", Target: "administrative"}})
	require.NoError(t, err)

	require.NoError(t, r.Register(compact))

	got, err := r.Get("compact")
	require.NoError(t, err)
	assert.Same(t, compact, got)
	assert.Equal(t, []string{"compact", DefaultName}, r.List())

	assert.Error(t, r.Register(compact), "duplicate name")
	assert.Error(t, r.Register(nil))
}

func TestRegistry_RegisterFileRenames(t *testing.T) {
	path := writeCatalog(t, "name: from-file\nrules:\n  - {pattern: Energia, target: administrative}\n")
	r := NewRegistry()

	require.NoError(t, r.RegisterFile("abril", path))

	c, err := r.Get("abril")
	require.NoError(t, err)
	assert.Equal(t, "abril", c.Name())
	_, err = r.Get("from-file")
	assert.Error(t, err)
}

func TestRegistry_UnknownCatalog(t *testing.T) {
	_, err := NewRegistry().Get("missing")
	assert.Error(t, err)
}

func TestRegistryWithDefault(t *testing.T) {
	path := writeCatalog(t, "name: compact\nrules:\n  - {pattern: Energia, target: administrative}\n")
	r := NewRegistryWithDefault("compact")

	_, err := r.Get("")
	assert.Error(t, err, "default not registered yet")

	require.NoError(t, r.RegisterFile("", path))
	c, err := r.Get("")
	require.NoError(t, err)
	assert.Equal(t, "compact", c.Name())
}
