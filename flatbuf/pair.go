package flatbuf

import flatbuffers "github.com/google/flatbuffers/go"

// Pair is one map entry. On the wire it is a table with the key in slot 0 and the value
// in slot 1.
type Pair[K, V any] struct {
	Key   K
	Value V
}

const (
	pairKeySlot = iota
	pairValueSlot
)

// PairCodec converts pairs given codecs for the key and the value and the views that
// extract their wire shapes from the pair table.
type PairCodec[K, V, KW, VW any] struct {
	key       FieldCodec[K, KW]
	keyView   SlotView[KW]
	value     FieldCodec[V, VW]
	valueView SlotView[VW]
}

func NewPair[K, V, KW, VW any](
	key FieldCodec[K, KW],
	keyView SlotView[KW],
	value FieldCodec[V, VW],
	valueView SlotView[VW],
) PairCodec[K, V, KW, VW] {
	return PairCodec[K, V, KW, VW]{
		key:       key,
		keyView:   keyView,
		value:     value,
		valueView: valueView,
	}
}

func (c PairCodec[K, V, KW, VW]) Read(tab flatbuffers.Table) (Pair[K, V], error) {
	keyView, err := c.keyView(&tab, pairKeySlot)
	if err != nil {
		return Pair[K, V]{}, err
	}
	key, err := c.key.Read(keyView)
	if err != nil {
		return Pair[K, V]{}, err
	}

	valueView, err := c.valueView(&tab, pairValueSlot)
	if err != nil {
		return Pair[K, V]{}, err
	}
	value, err := c.value.Read(valueView)
	if err != nil {
		return Pair[K, V]{}, err
	}

	return Pair[K, V]{Key: key, Value: value}, nil
}

func (c PairCodec[K, V, KW, VW]) WriteTable(b *flatbuffers.Builder, p Pair[K, V]) flatbuffers.UOffsetT {
	key := c.key.WriteField(b, p.Key)
	value := c.value.WriteField(b, p.Value)
	return CreateTable(b, key, value)
}

func (c PairCodec[K, V, KW, VW]) WriteField(b *flatbuffers.Builder, p Pair[K, V]) Field {
	return Offset(c.WriteTable(b, p))
}

func (c PairCodec[K, V, KW, VW]) WriteVectorElement(b *flatbuffers.Builder, p Pair[K, V]) Element {
	return Offset(c.WriteTable(b, p))
}
