package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// TestPutGet tests payload round-tripping per relation id
func TestPutGet(t *testing.T) {
	store := openTestStore(t)

	payload := map[string]string{
		"json_resources": `{"res_test_haproxy":"lsb:haproxy"}`,
		"json_groups":    `{"grp_test_vips":"res_test_242d562"}`,
	}
	require.NoError(t, store.Put("ha:1", payload))

	got, err := store.Get("ha:1")
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	got, err = store.Get("ha:2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestChanged tests change detection against the recorded payload
func TestChanged(t *testing.T) {
	store := openTestStore(t)

	payload := map[string]string{"json_resources": `{"res_a":"lsb:haproxy"}`}

	// Nothing recorded yet: everything counts as changed.
	assert.True(t, store.Changed("ha:1", payload))

	require.NoError(t, store.Put("ha:1", payload))
	assert.False(t, store.Changed("ha:1", map[string]string{
		"json_resources": `{"res_a":"lsb:haproxy"}`,
	}))

	assert.True(t, store.Changed("ha:1", map[string]string{
		"json_resources": `{"res_a":"ocf:heartbeat:IPaddr2"}`,
	}))
	assert.True(t, store.Changed("ha:1", map[string]string{
		"json_resources": `{"res_a":"lsb:haproxy"}`,
		"json_groups":    `{"grp_a":"res_a"}`,
	}))
	assert.True(t, store.Changed("ha:1", nil))

	// A different relation id has its own record.
	assert.True(t, store.Changed("ha:2", payload))
}
