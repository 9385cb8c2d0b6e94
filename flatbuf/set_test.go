package flatbuf_test

import (
	"testing"

	"github.com/NethermindEth/flatconv/flatbuf"
	"github.com/NethermindEth/flatconv/utils"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarSet(t *testing.T) {
	set := newBox(flatbuf.ScalarSet[int32](), flatbuf.ScalarVectorSlot[int32])
	seq := newBox(flatbuf.ScalarSequence[int32](), flatbuf.ScalarVectorSlot[int32])

	t.Run("written in sort order", func(t *testing.T) {
		buf := flatbuf.Encode(set, utils.NewOrderedSet[int32](3, 1, 2))

		wire, err := flatbuf.Decode[[]int32](seq, buf)
		require.NoError(t, err)
		assert.Equal(t, []int32{1, 2, 3}, wire)
	})

	t.Run("same members encode the same", func(t *testing.T) {
		a := flatbuf.Encode(set, utils.NewOrderedSet[int32](5, -1, 9))
		b := flatbuf.Encode(set, utils.NewOrderedSet[int32](9, 5, -1, 5))
		assert.Equal(t, a, b)
	})

	t.Run("duplicates on the wire collapse", func(t *testing.T) {
		buf := flatbuf.Encode(seq, []int32{4, 2, 4, 2, 1})

		got, err := flatbuf.Decode[*utils.OrderedSet[int32]](set, buf)
		require.NoError(t, err)
		assert.Equal(t, []int32{1, 2, 4}, got.List())
	})

	t.Run("nil set is empty", func(t *testing.T) {
		got, err := flatbuf.Decode[*utils.OrderedSet[int32]](set, flatbuf.Encode[*utils.OrderedSet[int32]](set, nil))
		require.NoError(t, err)
		assert.Zero(t, got.Size())
	})
}

func TestSet(t *testing.T) {
	points := flatbuf.SetFunc[point, flatbuffers.Table](pointCodec{}, comparePoints)
	set := newBox(points, flatbuf.TableVectorSlot)

	t.Run("round trip", func(t *testing.T) {
		in := utils.NewOrderedSetFunc(comparePoints, point{X: 2, Y: 1}, point{X: 1, Y: 9}, point{X: 2, Y: 0})

		got, err := flatbuf.Decode[*utils.OrderedSet[point]](set, flatbuf.Encode(set, in))
		require.NoError(t, err)
		assert.True(t, in.Equal(got))
		assert.Equal(t, []point{{X: 1, Y: 9}, {X: 2, Y: 0}, {X: 2, Y: 1}}, got.List())
	})

	t.Run("strings", func(t *testing.T) {
		strs := newBox(flatbuf.Set[string, string](flatbuf.String), flatbuf.StringVectorSlot)
		in := utils.NewOrderedSet("pear", "apple", "fig")

		buf := flatbuf.Encode(strs, in)
		got, err := flatbuf.Decode[*utils.OrderedSet[string]](strs, buf)
		require.NoError(t, err)
		assert.Equal(t, []string{"apple", "fig", "pear"}, got.List())

		wire, err := flatbuf.StringVectorSlot(rootTable(buf), 0)
		require.NoError(t, err)
		assert.Equal(t, "apple", wire.At(0))
		assert.Equal(t, "pear", wire.At(2))
	})

	t.Run("element error fails the read", func(t *testing.T) {
		seq := newBox(flatbuf.Sequence[point, flatbuffers.Table](pointCodec{}), flatbuf.TableVectorSlot)
		buf := flatbuf.Encode(seq, []point{{X: 1}, {Y: -3}})

		got, err := flatbuf.Decode[*utils.OrderedSet[point]](set, buf)
		require.Equal(t, errNegative, err)
		assert.Nil(t, got)
	})
}
