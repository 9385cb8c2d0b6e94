package flatbuf

import (
	"fmt"
	"iter"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/pkg/errors"
)

// ElementView decodes the vector element stored at pos of buf.
type ElementView[W any] func(buf []byte, pos flatbuffers.UOffsetT) W

// TableElement follows the offset stored in a vector slot to a table.
func TableElement(buf []byte, pos flatbuffers.UOffsetT) flatbuffers.Table {
	return flatbuffers.Table{Bytes: buf, Pos: pos + flatbuffers.GetUOffsetT(buf[pos:])}
}

// StructElement views a struct stored inline in a vector slot.
func StructElement(buf []byte, pos flatbuffers.UOffsetT) flatbuffers.Table {
	return flatbuffers.Table{Bytes: buf, Pos: pos}
}

// StringElement copies the string referenced by a vector slot out of buf.
func StringElement(buf []byte, pos flatbuffers.UOffsetT) string {
	s := pos + flatbuffers.GetUOffsetT(buf[pos:])
	start := s + flatbuffers.SizeUOffsetT
	return string(buf[start : start+flatbuffers.GetUOffsetT(buf[s:])])
}

// Vector is a read-only view of a wire vector.
type Vector[W any] struct {
	buf    []byte
	start  flatbuffers.UOffsetT
	length int
	stride int
	view   ElementView[W]
}

// newVector views the vector referenced by the offset stored at pos. The whole vector
// body is checked to lie inside buf and its elements are charged to the decode budget.
func newVector[W any](buf []byte, pos flatbuffers.UOffsetT, stride int, view ElementView[W]) (Vector[W], error) {
	header, err := indirect(buf, pos)
	if err != nil {
		return Vector[W]{}, err
	}
	if err = checkBounds(buf, header, flatbuffers.SizeUOffsetT); err != nil {
		return Vector[W]{}, err
	}

	length := int(flatbuffers.GetUOffsetT(buf[header:]))
	start := header + flatbuffers.SizeUOffsetT
	if uint64(start)+uint64(length)*uint64(stride) > uint64(len(buf)) {
		return Vector[W]{}, errors.Wrapf(ErrMalformed,
			"vector of %d elements at %d exceeds buffer of %d bytes", length, start, len(buf))
	}
	if err = spend(buf, length); err != nil {
		return Vector[W]{}, err
	}

	return Vector[W]{
		buf:    buf,
		start:  start,
		length: length,
		stride: stride,
		view:   view,
	}, nil
}

func (v Vector[W]) Len() int {
	return v.length
}

// At returns the view of element i. It panics if i is out of range.
func (v Vector[W]) At(i int) W {
	if i < 0 || i >= v.length {
		panic(fmt.Sprintf("flatbuf: index %d out of range [0:%d]", i, v.length))
	}
	return v.view(v.buf, v.start+flatbuffers.UOffsetT(i*v.stride))
}

// Cursor returns a fresh cursor positioned before the first element.
func (v Vector[W]) Cursor() *Cursor[W] {
	return &Cursor[W]{vec: v}
}

// Cursor walks a vector once, front to back. It cannot be rewound.
type Cursor[W any] struct {
	vec  Vector[W]
	next int
}

// Next returns the next element view. ok is false once the vector is exhausted.
func (c *Cursor[W]) Next() (view W, ok bool) {
	if c.next >= c.vec.length {
		return view, false
	}
	view = c.vec.At(c.next)
	c.next++
	return view, true
}

func (c *Cursor[W]) Remaining() int {
	return c.vec.length - c.next
}

// All yields the elements the cursor has not produced yet, consuming them.
func (c *Cursor[W]) All() iter.Seq[W] {
	return func(yield func(W) bool) {
		for {
			view, ok := c.Next()
			if !ok || !yield(view) {
				return
			}
		}
	}
}

func checkBounds(buf []byte, pos flatbuffers.UOffsetT, size int) error {
	if uint64(pos)+uint64(size) > uint64(len(buf)) {
		return errors.Wrapf(ErrMalformed, "%d bytes at %d exceed buffer of %d bytes", size, pos, len(buf))
	}
	return nil
}

// indirect follows the offset stored at pos.
func indirect(buf []byte, pos flatbuffers.UOffsetT) (flatbuffers.UOffsetT, error) {
	if err := checkBounds(buf, pos, flatbuffers.SizeUOffsetT); err != nil {
		return 0, err
	}
	target := uint64(pos) + uint64(flatbuffers.GetUOffsetT(buf[pos:]))
	if target >= uint64(len(buf)) {
		return 0, errors.Wrapf(ErrMalformed, "offset at %d points past the end of the buffer", pos)
	}
	return flatbuffers.UOffsetT(target), nil
}
