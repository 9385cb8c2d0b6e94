package flatbuf_test

import (
	"testing"

	"github.com/NethermindEth/flatconv/flatbuf"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	points := newBox(flatbuf.Sequence[point, flatbuffers.Table](pointCodec{}), flatbuf.TableVectorSlot)

	t.Run("tables keep order and duplicates", func(t *testing.T) {
		seq := []point{{X: 3, Y: 1}, {X: 1, Y: 2}, {X: 3, Y: 1}}
		got, err := flatbuf.Decode[[]point](points, flatbuf.Encode(points, seq))
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	})

	t.Run("empty and nil", func(t *testing.T) {
		for _, seq := range [][]point{nil, {}} {
			got, err := flatbuf.Decode[[]point](points, flatbuf.Encode(points, seq))
			require.NoError(t, err)
			assert.Empty(t, got)
		}
	})

	t.Run("first element error is returned unchanged", func(t *testing.T) {
		seq := []point{{X: 1, Y: 1}, {X: -1, Y: 0}, {X: 2, Y: -2}}
		got, err := flatbuf.Decode[[]point](points, flatbuf.Encode(points, seq))
		require.Equal(t, errNegative, err)
		assert.Nil(t, got)
	})

	t.Run("inline structs", func(t *testing.T) {
		structs := newBox(flatbuf.Sequence[vec2, flatbuffers.Table](vec2Codec{}), flatbuf.StructVectorSlot(vec2Size))
		seq := []vec2{{X: -1, Y: 2}, {X: 3, Y: -4}, {X: 0, Y: 0}}

		got, err := flatbuf.Decode[[]vec2](structs, flatbuf.Encode(structs, seq))
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	})

	t.Run("strings", func(t *testing.T) {
		strs := newBox(flatbuf.Sequence[string, string](flatbuf.String), flatbuf.StringVectorSlot)
		seq := []string{"b", "", "a", "b"}

		got, err := flatbuf.Decode[[]string](strs, flatbuf.Encode(strs, seq))
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	})
}

func TestScalarSequence(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ints := newBox(flatbuf.ScalarSequence[int64](), flatbuf.ScalarVectorSlot[int64])
		seq := []int64{-5, 0, 1 << 40, 7, 7}

		got, err := flatbuf.Decode[[]int64](ints, flatbuf.Encode(ints, seq))
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	})

	t.Run("bools and bytes", func(t *testing.T) {
		bools := newBox(flatbuf.ScalarSequence[bool](), flatbuf.ScalarVectorSlot[bool])
		got, err := flatbuf.Decode[[]bool](bools, flatbuf.Encode(bools, []bool{true, false, true}))
		require.NoError(t, err)
		assert.Equal(t, []bool{true, false, true}, got)

		raw := newBox(flatbuf.ScalarSequence[uint8](), flatbuf.ScalarVectorSlot[uint8])
		gotRaw, err := flatbuf.Decode[[]uint8](raw, flatbuf.Encode(raw, []uint8{0xde, 0xad, 0xbe, 0xef}))
		require.NoError(t, err)
		assert.Equal(t, []uint8{0xde, 0xad, 0xbe, 0xef}, gotRaw)
	})

	t.Run("floats", func(t *testing.T) {
		floats := newBox(flatbuf.ScalarSequence[float64](), flatbuf.ScalarVectorSlot[float64])
		seq := []float64{0.5, -1.25, 1e300}

		got, err := flatbuf.Decode[[]float64](floats, flatbuf.Encode(floats, seq))
		require.NoError(t, err)
		assert.Equal(t, seq, got)
	})

	t.Run("bulk read copies and never fails", func(t *testing.T) {
		values := []int32{1, 2, 3}
		got, err := flatbuf.ScalarSequence[int32]().Read(values)
		require.NoError(t, err)

		values[0] = 100
		assert.Equal(t, []int32{1, 2, 3}, got)
	})
}
