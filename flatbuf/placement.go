package flatbuf

import flatbuffers "github.com/google/flatbuffers/go"

// Field is the placement of a value in an inline slot of a table.
type Field interface {
	PrependSlot(b *flatbuffers.Builder, slot int)
}

// Element is the placement of a value in a vector slot. All elements of a vector share
// the same size and alignment.
type Element interface {
	Prepend(b *flatbuffers.Builder)
	Size() int
	Alignment() int
}

var (
	_ Field   = Offset(0)
	_ Element = Offset(0)
	_ Field   = Struct{}
	_ Element = Struct{}
)

// Offset refers to an object written earlier in the same builder pass.
type Offset flatbuffers.UOffsetT

func (o Offset) PrependSlot(b *flatbuffers.Builder, slot int) {
	b.PrependUOffsetTSlot(slot, flatbuffers.UOffsetT(o), 0)
}

func (o Offset) Prepend(b *flatbuffers.Builder) {
	b.PrependUOffsetT(flatbuffers.UOffsetT(o))
}

func (Offset) Size() int      { return flatbuffers.SizeUOffsetT }
func (Offset) Alignment() int { return flatbuffers.SizeUOffsetT }

// Struct is the placement of a fixed-size record. Structs are written inline, at the
// moment they are prepended to a table or a vector, so write must only prepend the
// record's own bytes and return b.Offset().
type Struct struct {
	size  int
	align int
	write func(b *flatbuffers.Builder) flatbuffers.UOffsetT
}

func NewStruct(size, align int, write func(b *flatbuffers.Builder) flatbuffers.UOffsetT) Struct {
	return Struct{size: size, align: align, write: write}
}

func (s Struct) PrependSlot(b *flatbuffers.Builder, slot int) {
	b.PrependStructSlot(slot, s.write(b), 0)
}

func (s Struct) Prepend(b *flatbuffers.Builder) {
	s.write(b)
}

func (s Struct) Size() int      { return s.size }
func (s Struct) Alignment() int { return s.align }

// CreateVector writes elems, in order, as one vector and returns its offset.
// Offsets held by elems must have been created before the call.
func CreateVector(b *flatbuffers.Builder, elems []Element) flatbuffers.UOffsetT {
	size, align := flatbuffers.SizeUOffsetT, flatbuffers.SizeUOffsetT
	if len(elems) > 0 {
		size, align = elems[0].Size(), elems[0].Alignment()
	}

	b.StartVector(size, len(elems), align)
	// the builder grows downwards
	for i := len(elems) - 1; i >= 0; i-- {
		elems[i].Prepend(b)
	}
	return b.EndVector(len(elems))
}

// CreateTable writes a table holding fields[i] in slot i and returns its offset.
// Nil fields are left absent.
func CreateTable(b *flatbuffers.Builder, fields ...Field) flatbuffers.UOffsetT {
	b.StartObject(len(fields))
	for slot, f := range fields {
		if f != nil {
			f.PrependSlot(b, slot)
		}
	}
	return b.EndObject()
}

// Finish completes b with root as the root table and returns the finished bytes.
// The slice aliases the builder's memory.
func Finish(b *flatbuffers.Builder, root flatbuffers.UOffsetT) []byte {
	b.Finish(root)
	return b.FinishedBytes()
}
