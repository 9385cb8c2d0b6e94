package flatbuf

import (
	"cmp"

	"github.com/NethermindEth/flatconv/utils"
	flatbuffers "github.com/google/flatbuffers/go"
)

// SetCodec converts ordered sets of complex elements. A set is always written in its sort
// order, so two sets with the same members have the same encoding.
type SetCodec[T, W any] struct {
	elem ElementCodec[T, W]
	cmp  func(a, b T) int
}

func Set[T cmp.Ordered, W any](elem ElementCodec[T, W]) SetCodec[T, W] {
	return SetFunc(elem, cmp.Compare[T])
}

// SetFunc returns a set codec whose decoded sets are ordered by compare.
func SetFunc[T, W any](elem ElementCodec[T, W], compare func(a, b T) int) SetCodec[T, W] {
	return SetCodec[T, W]{elem: elem, cmp: compare}
}

// Read inserts every element of vec into a new set. Elements comparing equal collapse
// into one.
func (c SetCodec[T, W]) Read(vec Vector[W]) (*utils.OrderedSet[T], error) {
	set := utils.NewOrderedSetFunc(c.cmp)
	for view := range vec.Cursor().All() {
		v, err := c.elem.Read(view)
		if err != nil {
			return nil, err
		}
		set.Insert(v)
	}
	return set, nil
}

func (c SetCodec[T, W]) WriteVector(b *flatbuffers.Builder, set *utils.OrderedSet[T]) flatbuffers.UOffsetT {
	return writeSet(b, c.elem, set)
}

func (c SetCodec[T, W]) WriteField(b *flatbuffers.Builder, set *utils.OrderedSet[T]) Field {
	return Offset(c.WriteVector(b, set))
}

// ScalarSetCodec converts ordered sets of scalars read from a plain slice.
type ScalarSetCodec[T OrderedScalar] struct{}

func ScalarSet[T OrderedScalar]() ScalarSetCodec[T] {
	return ScalarSetCodec[T]{}
}

func (ScalarSetCodec[T]) Read(values []T) (*utils.OrderedSet[T], error) {
	return utils.NewOrderedSet(values...), nil
}

func (ScalarSetCodec[T]) WriteVector(b *flatbuffers.Builder, set *utils.OrderedSet[T]) flatbuffers.UOffsetT {
	return writeSet[T](b, ScalarCodec[T]{}, set)
}

func (c ScalarSetCodec[T]) WriteField(b *flatbuffers.Builder, set *utils.OrderedSet[T]) Field {
	return Offset(c.WriteVector(b, set))
}

// writeSet writes the elements of set in sort order. A nil set is written as an empty vector.
func writeSet[T any](b *flatbuffers.Builder, w ElementWriter[T], set *utils.OrderedSet[T]) flatbuffers.UOffsetT {
	if set == nil {
		return CreateVector(b, nil)
	}
	return writeSequence(b, w, set.List())
}
