package flatbuf_test

import (
	"cmp"
	"errors"

	"github.com/NethermindEth/flatconv/flatbuf"
	flatbuffers "github.com/google/flatbuffers/go"
)

// box stores a single field in slot 0 of a root table.
type box[T, W any] struct {
	field flatbuf.FieldCodec[T, W]
	view  flatbuf.SlotView[W]
}

func newBox[T, W any](field flatbuf.FieldCodec[T, W], view flatbuf.SlotView[W]) box[T, W] {
	return box[T, W]{field: field, view: view}
}

func (c box[T, W]) Read(tab flatbuffers.Table) (T, error) {
	view, err := c.view(&tab, 0)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.field.Read(view)
}

func (c box[T, W]) WriteTable(b *flatbuffers.Builder, v T) flatbuffers.UOffsetT {
	return flatbuf.CreateTable(b, c.field.WriteField(b, v))
}

var errNegative = errors.New("negative coordinate")

// point is a table with two int32 fields. Negative coordinates fail to read.
type point struct {
	X, Y int32
}

func comparePoints(a, b point) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

type pointCodec struct{}

func (pointCodec) Read(tab flatbuffers.Table) (point, error) {
	x, err := flatbuf.ScalarSlot[int32](&tab, 0)
	if err != nil {
		return point{}, err
	}
	y, err := flatbuf.ScalarSlot[int32](&tab, 1)
	if err != nil {
		return point{}, err
	}
	if x < 0 || y < 0 {
		return point{}, errNegative
	}
	return point{X: x, Y: y}, nil
}

func (pointCodec) WriteTable(b *flatbuffers.Builder, p point) flatbuffers.UOffsetT {
	var i32 flatbuf.ScalarCodec[int32]
	return flatbuf.CreateTable(b, i32.WriteField(b, p.X), i32.WriteField(b, p.Y))
}

func (c pointCodec) WriteField(b *flatbuffers.Builder, p point) flatbuf.Field {
	return flatbuf.Offset(c.WriteTable(b, p))
}

func (c pointCodec) WriteVectorElement(b *flatbuffers.Builder, p point) flatbuf.Element {
	return flatbuf.Offset(c.WriteTable(b, p))
}

// vec2 is an inline struct of two int32.
type vec2 struct {
	X, Y int32
}

const vec2Size = 8

type vec2Codec struct{}

func (vec2Codec) Read(tab flatbuffers.Table) (vec2, error) {
	return vec2{X: tab.GetInt32(tab.Pos), Y: tab.GetInt32(tab.Pos + 4)}, nil
}

func (vec2Codec) place(v vec2) flatbuf.Struct {
	return flatbuf.NewStruct(vec2Size, 4, func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		b.Prep(4, vec2Size)
		b.PrependInt32(v.Y)
		b.PrependInt32(v.X)
		return b.Offset()
	})
}

func (c vec2Codec) WriteField(_ *flatbuffers.Builder, v vec2) flatbuf.Field {
	return c.place(v)
}

func (c vec2Codec) WriteVectorElement(_ *flatbuffers.Builder, v vec2) flatbuf.Element {
	return c.place(v)
}

// rootTable returns the root table of a finished buffer.
func rootTable(buf []byte) *flatbuffers.Table {
	return &flatbuffers.Table{Bytes: buf, Pos: flatbuffers.GetUOffsetT(buf)}
}
