package flatbuf

import (
	"github.com/NethermindEth/flatconv/utils"
	flatbuffers "github.com/google/flatbuffers/go"
)

// RefCodec converts shared references. A reference has no wire shape of its own: it is
// written exactly as the value it points to, and every read allocates a new reference.
// The zero Ref is written as the zero value of T.
type RefCodec[T, W any] struct {
	inner Codec[T, W]
}

func Ref[T, W any](inner Codec[T, W]) RefCodec[T, W] {
	return RefCodec[T, W]{inner: inner}
}

func (c RefCodec[T, W]) Read(view W) (utils.Ref[T], error) {
	v, err := c.inner.Read(view)
	if err != nil {
		return utils.Ref[T]{}, err
	}
	return utils.NewRef(v), nil
}

func (c RefCodec[T, W]) WriteField(b *flatbuffers.Builder, r utils.Ref[T]) Field {
	return c.inner.WriteField(b, deref(r))
}

func (c RefCodec[T, W]) WriteTable(b *flatbuffers.Builder, r utils.Ref[T]) flatbuffers.UOffsetT {
	return c.inner.WriteTable(b, deref(r))
}

func (c RefCodec[T, W]) WriteVectorElement(b *flatbuffers.Builder, r utils.Ref[T]) Element {
	return c.inner.WriteVectorElement(b, deref(r))
}

// RefFieldCodec is RefCodec for values that can only occupy fields, such as containers.
// The zero Ref is written as an empty container.
type RefFieldCodec[T, W any] struct {
	inner FieldCodec[T, W]
}

func RefField[T, W any](inner FieldCodec[T, W]) RefFieldCodec[T, W] {
	return RefFieldCodec[T, W]{inner: inner}
}

func (c RefFieldCodec[T, W]) Read(view W) (utils.Ref[T], error) {
	v, err := c.inner.Read(view)
	if err != nil {
		return utils.Ref[T]{}, err
	}
	return utils.NewRef(v), nil
}

func (c RefFieldCodec[T, W]) WriteField(b *flatbuffers.Builder, r utils.Ref[T]) Field {
	return c.inner.WriteField(b, deref(r))
}

func deref[T any](r utils.Ref[T]) T {
	if r.IsNil() {
		var zero T
		return zero
	}
	return r.Get()
}
