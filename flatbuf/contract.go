package flatbuf

import flatbuffers "github.com/google/flatbuffers/go"

// Reader parses a T out of a wire view W. The view shape is fixed by the schema: a
// flatbuffers.Table for tables and structs, a string for strings, the value itself for
// scalars, a Vector for vectors of complex elements and a slice for vectors of scalars.
type Reader[T, W any] interface {
	Read(view W) (T, error)
}

// FieldWriter places a value in an inline field slot of an enclosing table.
type FieldWriter[T any] interface {
	WriteField(b *flatbuffers.Builder, v T) Field
}

// TableWriter writes a value as a standalone table and returns its offset.
type TableWriter[T any] interface {
	WriteTable(b *flatbuffers.Builder, v T) flatbuffers.UOffsetT
}

// ElementWriter places a value in a vector slot.
type ElementWriter[T any] interface {
	WriteVectorElement(b *flatbuffers.Builder, v T) Element
}

// FieldCodec is implemented by containers: the wire format has neither vectors of vectors
// nor standalone vectors, so a container can only be read and placed in a field.
type FieldCodec[T, W any] interface {
	Reader[T, W]
	FieldWriter[T]
}

// ElementCodec is what containers require from their elements.
type ElementCodec[T, W any] interface {
	Reader[T, W]
	ElementWriter[T]
}

type Codec[T, W any] interface {
	Reader[T, W]
	FieldWriter[T]
	TableWriter[T]
	ElementWriter[T]
}
