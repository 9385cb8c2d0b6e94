package flatbuf

import flatbuffers "github.com/google/flatbuffers/go"

// SequenceCodec converts slices of complex elements. Order and duplicates are kept as is.
type SequenceCodec[T, W any] struct {
	elem ElementCodec[T, W]
}

func Sequence[T, W any](elem ElementCodec[T, W]) SequenceCodec[T, W] {
	return SequenceCodec[T, W]{elem: elem}
}

// Read converts every element of vec. The first element error is returned unchanged
// and no partial slice is returned with it.
func (c SequenceCodec[T, W]) Read(vec Vector[W]) ([]T, error) {
	seq := make([]T, 0, vec.Len())
	for view := range vec.Cursor().All() {
		v, err := c.elem.Read(view)
		if err != nil {
			return nil, err
		}
		seq = append(seq, v)
	}
	return seq, nil
}

func (c SequenceCodec[T, W]) WriteVector(b *flatbuffers.Builder, seq []T) flatbuffers.UOffsetT {
	return writeSequence(b, c.elem, seq)
}

func (c SequenceCodec[T, W]) WriteField(b *flatbuffers.Builder, seq []T) Field {
	return Offset(c.WriteVector(b, seq))
}

// ScalarSequenceCodec converts slices of scalars. Their wire view is a plain slice which
// is copied in bulk, so reading never fails.
type ScalarSequenceCodec[T Scalar] struct{}

func ScalarSequence[T Scalar]() ScalarSequenceCodec[T] {
	return ScalarSequenceCodec[T]{}
}

func (ScalarSequenceCodec[T]) Read(values []T) ([]T, error) {
	seq := make([]T, 0, len(values))
	return append(seq, values...), nil
}

func (ScalarSequenceCodec[T]) WriteVector(b *flatbuffers.Builder, seq []T) flatbuffers.UOffsetT {
	return writeSequence[T](b, ScalarCodec[T]{}, seq)
}

func (c ScalarSequenceCodec[T]) WriteField(b *flatbuffers.Builder, seq []T) Field {
	return Offset(c.WriteVector(b, seq))
}

func writeSequence[T any](b *flatbuffers.Builder, w ElementWriter[T], seq []T) flatbuffers.UOffsetT {
	elems := make([]Element, 0, len(seq))
	for _, v := range seq {
		elems = append(elems, w.WriteVectorElement(b, v))
	}
	return CreateVector(b, elems)
}
