package flatbuf_test

import (
	"testing"

	"github.com/NethermindEth/flatconv/flatbuf"
	"github.com/NethermindEth/flatconv/utils"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMalformed(t *testing.T) {
	m := newBox(flatbuf.Map[string, int32, flatbuffers.Table](newCountsPair()), flatbuf.TableVectorSlot)
	in := utils.NewOrderedMap[string, int32]()
	in.Put("alpha", 1)
	in.Put("beta", 2)
	buf := flatbuf.Encode(m, in)

	tests := map[string][]byte{
		"empty":               nil,
		"shorter than root":   buf[:2],
		"truncated":           buf[:len(buf)/2],
		"root past the end":   {0xff, 0xff, 0xff, 0x7f},
		"vtable out of range": {4, 0, 0, 0, 0, 0, 0, 0x80},
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := flatbuf.Decode[*utils.OrderedMap[string, int32]](m, data)
			require.ErrorIs(t, err, flatbuf.ErrMalformed)
		})
	}
}

func TestDecodeStringsDoNotAlias(t *testing.T) {
	strs := newBox(flatbuf.Sequence[string, string](flatbuf.String), flatbuf.StringVectorSlot)
	buf := flatbuf.Encode(strs, []string{"hello", "world"})

	got, err := flatbuf.Decode[[]string](strs, buf)
	require.NoError(t, err)
	clear(buf)
	assert.Equal(t, []string{"hello", "world"}, got)
}

func TestEncodeReturnsOwnedBuffers(t *testing.T) {
	var i32 flatbuf.ScalarCodec[int32]
	a := flatbuf.Encode[int32](i32, 1)
	b := flatbuf.Encode[int32](i32, 2)

	got, err := flatbuf.Decode[int32](newBox[int32, int32](i32, flatbuf.ScalarSlot[int32]), a)
	require.NoError(t, err)
	assert.Equal(t, int32(1), got)
	assert.NotEqual(t, a, b)
}

func TestConcurrentDecode(t *testing.T) {
	set := newBox(flatbuf.Set[string, string](flatbuf.String), flatbuf.StringVectorSlot)
	buf := flatbuf.Encode(set, utils.NewOrderedSet("c", "a", "b"))

	var wg conc.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Go(func() {
			got, err := flatbuf.Decode[*utils.OrderedSet[string]](set, buf)
			if err == nil {
				results[i] = got.List()
			}
		})
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, []string{"a", "b", "c"}, got)
	}
}

// treeSize counts the tables of a tree whose slot 0 lists the children of each table.
type treeSize struct{}

func (c treeSize) Read(tab flatbuffers.Table) (int, error) {
	kids, err := flatbuf.TableVectorSlot(&tab, 0)
	if err != nil {
		return 0, err
	}

	n := 1
	for kid := range kids.Cursor().All() {
		size, err := c.Read(kid)
		if err != nil {
			return 0, err
		}
		n += size
	}
	return n, nil
}

// buildTree nests depth tables, each listing the table below it width times.
func buildTree(depth, width int) []byte {
	b := flatbuffers.NewBuilder(0)
	node := flatbuf.CreateTable(b)
	for range depth {
		kids := make([]flatbuf.Element, width)
		for i := range kids {
			kids[i] = flatbuf.Offset(node)
		}
		node = flatbuf.CreateTable(b, flatbuf.Offset(flatbuf.CreateVector(b, kids)))
	}
	return flatbuf.Finish(b, node)
}

func TestDecodeSharedOffsets(t *testing.T) {
	t.Run("chain", func(t *testing.T) {
		buf := buildTree(40, 1)
		for range 2 {
			got, err := flatbuf.Decode[int](treeSize{}, buf)
			require.NoError(t, err)
			assert.Equal(t, 41, got)
		}
	})

	t.Run("a few repeats fit", func(t *testing.T) {
		got, err := flatbuf.Decode[int](treeSize{}, buildTree(3, 2))
		require.NoError(t, err)
		assert.Equal(t, 15, got)
	})

	t.Run("exponential expansion", func(t *testing.T) {
		buf := buildTree(40, 2)
		require.Less(t, len(buf), 2048)

		_, err := flatbuf.Decode[int](treeSize{}, buf)
		require.ErrorIs(t, err, flatbuf.ErrMalformed)
	})

	t.Run("concurrent decodes of one buffer", func(t *testing.T) {
		buf := buildTree(40, 1)

		var wg conc.WaitGroup
		sizes := make([]int, 8)
		for i := range sizes {
			wg.Go(func() {
				sizes[i], _ = flatbuf.Decode[int](treeSize{}, buf)
			})
		}
		wg.Wait()

		for _, size := range sizes {
			assert.Equal(t, 41, size)
		}
	})
}
