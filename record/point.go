package record

import (
	"github.com/NethermindEth/flatconv/flatbuf"
	flatbuffers "github.com/google/flatbuffers/go"
)

// PointSize is the inline size of a Point.
const PointSize = 8

// Point is a fixed-size struct stored inline in tables and vectors.
type Point struct {
	X int32
	Y int32
}

type PointCodec struct{}

func (PointCodec) Read(tab flatbuffers.Table) (Point, error) {
	return Point{
		X: tab.GetInt32(tab.Pos),
		Y: tab.GetInt32(tab.Pos + flatbuffers.SizeInt32),
	}, nil
}

func (PointCodec) WriteField(_ *flatbuffers.Builder, p Point) flatbuf.Field {
	return placePoint(p)
}

func (PointCodec) WriteVectorElement(_ *flatbuffers.Builder, p Point) flatbuf.Element {
	return placePoint(p)
}

func placePoint(p Point) flatbuf.Struct {
	return flatbuf.NewStruct(PointSize, flatbuffers.SizeInt32, func(b *flatbuffers.Builder) flatbuffers.UOffsetT {
		b.Prep(flatbuffers.SizeInt32, PointSize)
		b.PrependInt32(p.Y)
		b.PrependInt32(p.X)
		return b.Offset()
	})
}
