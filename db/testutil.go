package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKeyValueStoreSuite runs a suite of tests against a KeyValueStore database
// implementation.
//
//nolint:funlen
func TestKeyValueStoreSuite(t *testing.T, newDB func() KeyValueStore) {
	t.Run("Put Get Has Delete", func(t *testing.T) {
		store := newDB()

		has, err := store.Has([]byte("key"))
		require.NoError(t, err)
		assert.False(t, has)
		require.ErrorIs(t, store.Get([]byte("key"), func([]byte) error { return nil }), ErrKeyNotFound)

		value := []byte("value")
		require.NoError(t, store.Put([]byte("key"), value))
		value[0] = 'V'

		has, err = store.Has([]byte("key"))
		require.NoError(t, err)
		assert.True(t, has)
		require.NoError(t, store.Get([]byte("key"), func(got []byte) error {
			assert.Equal(t, []byte("value"), got)
			return nil
		}))

		require.NoError(t, store.Put([]byte("key"), []byte("other")))
		require.NoError(t, store.Get([]byte("key"), func(got []byte) error {
			assert.Equal(t, []byte("other"), got)
			return nil
		}))

		require.NoError(t, store.Delete([]byte("key")))
		require.ErrorIs(t, store.Get([]byte("key"), func([]byte) error { return nil }), ErrKeyNotFound)
		require.NoError(t, store.Delete([]byte("key")))
	})

	t.Run("Get callback error", func(t *testing.T) {
		store := newDB()
		require.NoError(t, store.Put([]byte("k"), []byte("v")))

		want := assert.AnError
		require.ErrorIs(t, store.Get([]byte("k"), func([]byte) error { return want }), want)
	})

	t.Run("Iterator", func(t *testing.T) {
		content := map[string]string{
			"a":     "1",
			"b1":    "2",
			"b2":    "3",
			"b\xff": "4",
			"c":     "5",
		}

		tests := []struct {
			name       string
			prefix     string
			upperBound bool
			start      string
			order      []string
		}{
			{
				name:       "everything",
				upperBound: true,
				order:      []string{"a", "b1", "b2", "b\xff", "c"},
			},
			{
				name:       "prefix",
				prefix:     "b",
				upperBound: true,
				order:      []string{"b1", "b2", "b\xff"},
			},
			{
				name:   "prefix without upper bound",
				prefix: "b",
				order:  []string{"b1", "b2", "b\xff", "c"},
			},
			{
				name:       "non-matching prefix",
				prefix:     "z",
				upperBound: true,
				order:      nil,
			},
			{
				name:       "seek",
				prefix:     "b",
				upperBound: true,
				start:      "b2",
				order:      []string{"b2", "b\xff"},
			},
			{
				name:       "seek to absent key",
				upperBound: true,
				start:      "b3",
				order:      []string{"b\xff", "c"},
			},
		}

		store := newDB()
		for k, v := range content {
			require.NoError(t, store.Put([]byte(k), []byte(v)))
		}

		for _, test := range tests {
			t.Run(test.name, func(t *testing.T) {
				it, err := store.NewIterator([]byte(test.prefix), test.upperBound)
				require.NoError(t, err)

				var (
					keys []string
					ok   bool
				)
				if test.start != "" {
					ok = it.Seek([]byte(test.start))
				} else {
					ok = it.Next()
				}
				for ; ok; ok = it.Next() {
					key := string(it.Key())
					value, err := it.Value()
					require.NoError(t, err)
					assert.Equal(t, content[key], string(value))
					keys = append(keys, key)
				}
				assert.False(t, it.Valid())
				require.NoError(t, it.Close())

				assert.Equal(t, test.order, keys)
			})
		}
	})

	t.Run("Iterator First", func(t *testing.T) {
		store := newDB()
		require.NoError(t, store.Put([]byte("x1"), nil))
		require.NoError(t, store.Put([]byte("x2"), nil))

		it, err := store.NewIterator([]byte("x"), true)
		require.NoError(t, err)
		require.True(t, it.First())
		require.True(t, it.Next())
		require.False(t, it.Next())
		require.True(t, it.First())
		assert.Equal(t, []byte("x1"), it.Key())
		require.NoError(t, it.Close())
	})
}
