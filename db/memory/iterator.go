package memory

import (
	"errors"
	"slices"
	"strings"

	"github.com/NethermindEth/flatconv/db"
)

var _ db.Iterator = (*iterator)(nil)

type iterator struct {
	curInd int
	keys   []string
	values [][]byte
}

func (i *iterator) Valid() bool {
	return i.curInd >= 0 && i.curInd < len(i.keys)
}

func (i *iterator) First() bool {
	i.curInd = 0
	return i.Valid()
}

func (i *iterator) Next() bool {
	if i.curInd < len(i.keys) {
		i.curInd++
	}
	return i.Valid()
}

func (i *iterator) Key() []byte {
	if !i.Valid() {
		return nil
	}

	return []byte(i.keys[i.curInd])
}

func (i *iterator) Value() ([]byte, error) {
	if !i.Valid() {
		return nil, errors.New("iterator is not valid")
	}

	return slices.Clone(i.values[i.curInd]), nil
}

func (i *iterator) Seek(key []byte) bool {
	i.curInd, _ = slices.BinarySearchFunc(i.keys, string(key), strings.Compare)
	return i.Valid()
}

func (i *iterator) Close() error {
	i.curInd = -1
	i.keys = nil
	i.values = nil
	return nil
}
