package flatbuf

import flatbuffers "github.com/google/flatbuffers/go"

// Scalar lists the fixed-width types the engine stores inline.
type Scalar interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// OrderedScalar is Scalar without bool.
type OrderedScalar interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

var (
	_ Codec[int32, int32]   = ScalarCodec[int32]{}
	_ Codec[string, string] = StringCodec{}
)

// ScalarCodec converts scalars. A scalar is its own wire view. As a standalone table it
// is boxed into slot 0 of a single-field table.
type ScalarCodec[T Scalar] struct{}

func (ScalarCodec[T]) Read(v T) (T, error) {
	return v, nil
}

func (ScalarCodec[T]) WriteField(_ *flatbuffers.Builder, v T) Field {
	return scalar[T]{v}
}

func (ScalarCodec[T]) WriteTable(b *flatbuffers.Builder, v T) flatbuffers.UOffsetT {
	return CreateTable(b, scalar[T]{v})
}

func (ScalarCodec[T]) WriteVectorElement(_ *flatbuffers.Builder, v T) Element {
	return scalar[T]{v}
}

// String is the codec for strings.
var String StringCodec

type StringCodec struct{}

func (StringCodec) Read(s string) (string, error) {
	return s, nil
}

func (StringCodec) WriteField(b *flatbuffers.Builder, s string) Field {
	return Offset(b.CreateString(s))
}

func (c StringCodec) WriteTable(b *flatbuffers.Builder, s string) flatbuffers.UOffsetT {
	return CreateTable(b, c.WriteField(b, s))
}

func (StringCodec) WriteVectorElement(b *flatbuffers.Builder, s string) Element {
	return Offset(b.CreateString(s))
}

// scalar is both the field and the vector element placement of a scalar.
// Fields equal to the zero value are omitted, readers substitute the zero value back.
type scalar[T Scalar] struct {
	v T
}

func (s scalar[T]) PrependSlot(b *flatbuffers.Builder, slot int) {
	switch x := any(s.v).(type) {
	case bool:
		b.PrependBoolSlot(slot, x, false)
	case int8:
		b.PrependInt8Slot(slot, x, 0)
	case uint8:
		b.PrependUint8Slot(slot, x, 0)
	case int16:
		b.PrependInt16Slot(slot, x, 0)
	case uint16:
		b.PrependUint16Slot(slot, x, 0)
	case int32:
		b.PrependInt32Slot(slot, x, 0)
	case uint32:
		b.PrependUint32Slot(slot, x, 0)
	case int64:
		b.PrependInt64Slot(slot, x, 0)
	case uint64:
		b.PrependUint64Slot(slot, x, 0)
	case float32:
		b.PrependFloat32Slot(slot, x, 0)
	case float64:
		b.PrependFloat64Slot(slot, x, 0)
	}
}

func (s scalar[T]) Prepend(b *flatbuffers.Builder) {
	switch x := any(s.v).(type) {
	case bool:
		b.PrependBool(x)
	case int8:
		b.PrependInt8(x)
	case uint8:
		b.PrependUint8(x)
	case int16:
		b.PrependInt16(x)
	case uint16:
		b.PrependUint16(x)
	case int32:
		b.PrependInt32(x)
	case uint32:
		b.PrependUint32(x)
	case int64:
		b.PrependInt64(x)
	case uint64:
		b.PrependUint64(x)
	case float32:
		b.PrependFloat32(x)
	case float64:
		b.PrependFloat64(x)
	}
}

func (scalar[T]) Size() int      { return scalarSize[T]() }
func (scalar[T]) Alignment() int { return scalarSize[T]() }

func scalarSize[T Scalar]() int {
	var v T
	switch any(v).(type) {
	case bool:
		return flatbuffers.SizeBool
	case int8:
		return flatbuffers.SizeInt8
	case uint8:
		return flatbuffers.SizeUint8
	case int16:
		return flatbuffers.SizeInt16
	case uint16:
		return flatbuffers.SizeUint16
	case int32:
		return flatbuffers.SizeInt32
	case uint32:
		return flatbuffers.SizeUint32
	case int64:
		return flatbuffers.SizeInt64
	case uint64:
		return flatbuffers.SizeUint64
	case float32:
		return flatbuffers.SizeFloat32
	case float64:
		return flatbuffers.SizeFloat64
	default:
		panic("unreachable")
	}
}

// getScalar decodes the little-endian scalar stored at pos.
func getScalar[T Scalar](buf []byte, pos flatbuffers.UOffsetT) T {
	var v T
	switch p := any(&v).(type) {
	case *bool:
		*p = flatbuffers.GetBool(buf[pos:])
	case *int8:
		*p = flatbuffers.GetInt8(buf[pos:])
	case *uint8:
		*p = flatbuffers.GetUint8(buf[pos:])
	case *int16:
		*p = flatbuffers.GetInt16(buf[pos:])
	case *uint16:
		*p = flatbuffers.GetUint16(buf[pos:])
	case *int32:
		*p = flatbuffers.GetInt32(buf[pos:])
	case *uint32:
		*p = flatbuffers.GetUint32(buf[pos:])
	case *int64:
		*p = flatbuffers.GetInt64(buf[pos:])
	case *uint64:
		*p = flatbuffers.GetUint64(buf[pos:])
	case *float32:
		*p = flatbuffers.GetFloat32(buf[pos:])
	case *float64:
		*p = flatbuffers.GetFloat64(buf[pos:])
	}
	return v
}
