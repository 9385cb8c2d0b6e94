package flatbuf

import (
	"cmp"

	"github.com/NethermindEth/flatconv/utils"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/pkg/errors"
)

// MapCodec converts ordered maps. The wire format has no map type, so a map is written as a
// vector of pairs in key order.
type MapCodec[K, V, W any] struct {
	pair   ElementCodec[Pair[K, V], W]
	cmp    func(a, b K) int
	strict bool
}

func Map[K cmp.Ordered, V, W any](pair ElementCodec[Pair[K, V], W]) MapCodec[K, V, W] {
	return MapFunc(pair, cmp.Compare[K])
}

// MapFunc returns a map codec whose decoded maps are ordered by compare.
func MapFunc[K, V, W any](pair ElementCodec[Pair[K, V], W], compare func(a, b K) int) MapCodec[K, V, W] {
	return MapCodec[K, V, W]{pair: pair, cmp: compare}
}

// Strict returns a copy of c that fails to read vectors holding the same key twice.
// By default the last pair for a key wins.
func (c MapCodec[K, V, W]) Strict() MapCodec[K, V, W] {
	c.strict = true
	return c
}

func (c MapCodec[K, V, W]) Read(vec Vector[W]) (*utils.OrderedMap[K, V], error) {
	m := utils.NewOrderedMapFunc[K, V](c.cmp)
	for view := range vec.Cursor().All() {
		p, err := c.pair.Read(view)
		if err != nil {
			return nil, err
		}
		if replaced := m.Put(p.Key, p.Value); replaced && c.strict {
			return nil, errors.Wrapf(ErrDuplicateKey, "key %v", p.Key)
		}
	}
	return m, nil
}

// WriteVector writes one pair per entry of m, in key order. A nil map is written as an
// empty vector.
func (c MapCodec[K, V, W]) WriteVector(b *flatbuffers.Builder, m *utils.OrderedMap[K, V]) flatbuffers.UOffsetT {
	if m == nil {
		return CreateVector(b, nil)
	}

	elems := make([]Element, 0, m.Size())
	for k, v := range m.All() {
		elems = append(elems, c.pair.WriteVectorElement(b, Pair[K, V]{Key: k, Value: v}))
	}
	return CreateVector(b, elems)
}

func (c MapCodec[K, V, W]) WriteField(b *flatbuffers.Builder, m *utils.OrderedMap[K, V]) Field {
	return Offset(c.WriteVector(b, m))
}
