package memory

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/NethermindEth/flatconv/db"
)

var errDBClosed = errors.New("memory database closed")

var _ db.KeyValueStore = (*Database)(nil)

// Database holds store entries in a map, for tests and throwaway stores. Closing it drops
// every entry. It is safe for concurrent use.
type Database struct {
	db   map[string][]byte
	lock sync.RWMutex
}

func New() *Database {
	return &Database{
		db: make(map[string][]byte),
	}
}

func (d *Database) Has(key []byte) (bool, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.db == nil {
		return false, errDBClosed
	}

	_, ok := d.db[string(key)]
	return ok, nil
}

// Get hands cb the stored bytes themselves, cb must not keep or modify them.
func (d *Database) Get(key []byte, cb func(value []byte) error) error {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.db == nil {
		return errDBClosed
	}

	val, ok := d.db[string(key)]
	if !ok {
		return db.ErrKeyNotFound
	}

	return cb(val)
}

func (d *Database) Put(key, value []byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.db == nil {
		return errDBClosed
	}

	d.db[string(key)] = slices.Clone(value)
	return nil
}

func (d *Database) Delete(key []byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.db == nil {
		return errDBClosed
	}

	delete(d.db, string(key))
	return nil
}

func (d *Database) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.db = nil
	return nil
}

// NewIterator copies the matching keys when it is created. Entries put later are not
// seen, entries deleted later are still returned.
func (d *Database) NewIterator(prefix []byte, withUpperBound bool) (db.Iterator, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.db == nil {
		return nil, errDBClosed
	}

	pr := string(prefix)
	// nil bound: every key from prefix on
	var ub []byte
	if withUpperBound {
		ub = db.UpperBound(prefix)
	}

	keys := make([]string, 0, len(d.db))
	for k := range d.db {
		switch {
		case !withUpperBound:
			if k >= pr {
				keys = append(keys, k)
			}
		case strings.HasPrefix(k, pr) && (ub == nil || k < string(ub)):
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	vals := make([][]byte, len(keys))
	for i, k := range keys {
		vals[i] = d.db[k]
	}

	return &iterator{
		curInd: -1,
		keys:   keys,
		values: vals,
	}, nil
}
