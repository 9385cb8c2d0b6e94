package db

import "io"

// Represents a data store that can read from the database
type KeyValueReader interface {
	// Checks if a key exists in the data store
	Has(key []byte) (bool, error)
	// Retrieves a value for a given key if it exists. The value passed to cb is only valid
	// until cb returns.
	Get(key []byte, cb func(value []byte) error) error
}

// Represents a data store that can write to the database
type KeyValueWriter interface {
	// Inserts a given value into the data store
	Put(key []byte, value []byte) error
	// Deletes a given key from the data store
	Delete(key []byte) error
}

type Iterable interface {
	// NewIterator returns an iterator over the keys starting with prefix. With withUpperBound
	// false the iterator continues past the prefix to the end of the key space.
	NewIterator(prefix []byte, withUpperBound bool) (Iterator, error)
}

// Represents a key-value data store that can handle different operations
//
//go:generate mockgen -destination=../mocks/mock_db.go -package=mocks github.com/NethermindEth/flatconv/db KeyValueStore
type KeyValueStore interface {
	KeyValueReader
	KeyValueWriter
	Iterable
	io.Closer
}
