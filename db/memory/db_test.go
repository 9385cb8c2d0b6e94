package memory_test

import (
	"testing"

	"github.com/NethermindEth/flatconv/db"
	"github.com/NethermindEth/flatconv/db/memory"
	"github.com/stretchr/testify/require"
)

func TestMemoryDB(t *testing.T) {
	db.TestKeyValueStoreSuite(t, func() db.KeyValueStore {
		return memory.New()
	})
}

func TestClosed(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Close())

	_, err := store.Has([]byte("k"))
	require.Error(t, err)
	require.Error(t, store.Put([]byte("k"), nil))
	_, err = store.NewIterator(nil, false)
	require.Error(t, err)
}
