package flatbuf

import (
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/pkg/errors"
)

// SlotView extracts the wire view of field slot of tab.
type SlotView[W any] func(tab *flatbuffers.Table, slot int) (W, error)

var (
	_ SlotView[string]                    = StringSlot
	_ SlotView[flatbuffers.Table]         = TableSlot
	_ SlotView[flatbuffers.Table]         = StructSlot
	_ SlotView[Vector[flatbuffers.Table]] = TableVectorSlot
	_ SlotView[Vector[string]]            = StringVectorSlot
)

func vtableOffset(slot int) flatbuffers.VOffsetT {
	return flatbuffers.VOffsetT((slot + 2) * flatbuffers.SizeVOffsetT)
}

// fieldPos returns the absolute position of slot in tab, 0 when the slot is absent.
func fieldPos(tab *flatbuffers.Table, slot int) flatbuffers.UOffsetT {
	o := tab.Offset(vtableOffset(slot))
	if o == 0 {
		return 0
	}
	return tab.Pos + flatbuffers.UOffsetT(o)
}

// HasSlot reports whether slot of tab was written.
func HasSlot(tab *flatbuffers.Table, slot int) bool {
	return tab.Offset(vtableOffset(slot)) != 0
}

// ScalarSlot reads a scalar field. Absent fields read as the zero value.
func ScalarSlot[T Scalar](tab *flatbuffers.Table, slot int) (T, error) {
	var v T
	pos := fieldPos(tab, slot)
	if pos == 0 {
		return v, nil
	}
	if err := checkBounds(tab.Bytes, pos, scalarSize[T]()); err != nil {
		return v, err
	}
	return getScalar[T](tab.Bytes, pos), nil
}

// StringSlot copies a string field out of the buffer. Absent fields read as "".
func StringSlot(tab *flatbuffers.Table, slot int) (string, error) {
	pos := fieldPos(tab, slot)
	if pos == 0 {
		return "", nil
	}

	s, err := indirect(tab.Bytes, pos)
	if err != nil {
		return "", err
	}
	if err = checkBounds(tab.Bytes, s, flatbuffers.SizeUOffsetT); err != nil {
		return "", err
	}
	length := int(flatbuffers.GetUOffsetT(tab.Bytes[s:]))
	start := s + flatbuffers.SizeUOffsetT
	if err = checkBounds(tab.Bytes, start, length); err != nil {
		return "", err
	}
	return string(tab.Bytes[start : int(start)+length]), nil
}

// TableSlot views a sub-table field. Tables are required: an absent slot is an error.
func TableSlot(tab *flatbuffers.Table, slot int) (flatbuffers.Table, error) {
	pos := fieldPos(tab, slot)
	if pos == 0 {
		return flatbuffers.Table{}, errors.Wrapf(ErrMissingField, "table in slot %d", slot)
	}

	target, err := indirect(tab.Bytes, pos)
	if err != nil {
		return flatbuffers.Table{}, err
	}
	if err = spend(tab.Bytes, 1); err != nil {
		return flatbuffers.Table{}, err
	}
	return flatbuffers.Table{Bytes: tab.Bytes, Pos: target}, nil
}

// StructSlot views a struct stored inline in tab.
func StructSlot(tab *flatbuffers.Table, slot int) (flatbuffers.Table, error) {
	pos := fieldPos(tab, slot)
	if pos == 0 {
		return flatbuffers.Table{}, errors.Wrapf(ErrMissingField, "struct in slot %d", slot)
	}
	return flatbuffers.Table{Bytes: tab.Bytes, Pos: pos}, nil
}

// VectorSlot views a vector field whose elements are stride bytes apart.
// Absent fields read as an empty vector.
func VectorSlot[W any](tab *flatbuffers.Table, slot, stride int, view ElementView[W]) (Vector[W], error) {
	pos := fieldPos(tab, slot)
	if pos == 0 {
		return Vector[W]{stride: stride, view: view}, nil
	}
	return newVector(tab.Bytes, pos, stride, view)
}

func TableVectorSlot(tab *flatbuffers.Table, slot int) (Vector[flatbuffers.Table], error) {
	return VectorSlot[flatbuffers.Table](tab, slot, flatbuffers.SizeUOffsetT, TableElement)
}

func StringVectorSlot(tab *flatbuffers.Table, slot int) (Vector[string], error) {
	return VectorSlot[string](tab, slot, flatbuffers.SizeUOffsetT, StringElement)
}

// StructVectorSlot returns the view of a vector of inline structs of the given size.
func StructVectorSlot(size int) SlotView[Vector[flatbuffers.Table]] {
	return func(tab *flatbuffers.Table, slot int) (Vector[flatbuffers.Table], error) {
		return VectorSlot[flatbuffers.Table](tab, slot, size, StructElement)
	}
}

// ScalarVectorSlot decodes a vector of scalars into a fresh slice.
func ScalarVectorSlot[T Scalar](tab *flatbuffers.Table, slot int) ([]T, error) {
	vec, err := VectorSlot[T](tab, slot, scalarSize[T](), getScalar[T])
	if err != nil {
		return nil, err
	}

	values := make([]T, vec.Len())
	for i := range values {
		values[i] = vec.At(i)
	}
	return values, nil
}
