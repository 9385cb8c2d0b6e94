package record_test

import (
	"testing"

	"github.com/NethermindEth/flatconv/flatbuf"
	"github.com/NethermindEth/flatconv/record"
	"github.com/NethermindEth/flatconv/utils"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(id uint64, name string) record.Node {
	return record.Node{
		ID:    id,
		Name:  name,
		Tags:  utils.NewOrderedSet("leaf"),
		Attrs: utils.NewOrderedMap[string, int64](),
	}
}

func sampleGraph(t *testing.T) record.Graph {
	t.Helper()

	shared := utils.NewRef(leaf(3, "shared"))
	attrs := utils.NewOrderedMap[string, int64]()
	attrs.Put("weight", 10)
	attrs.Put("depth", -2)

	parent := record.Node{
		ID:       1,
		Name:     "parent",
		Tags:     utils.NewOrderedSet("root", "inner", "root"),
		Attrs:    attrs,
		Path:     []record.Point{{X: 0, Y: 0}, {X: 3, Y: -4}, {X: 3, Y: -4}},
		Children: []utils.Ref[record.Node]{shared, utils.NewRef(leaf(2, "other")), shared},
	}

	nodes := utils.NewOrderedMap[uint64, record.Node]()
	nodes.Put(parent.ID, parent)
	nodes.Put(3, shared.Get())
	nodes.Put(2, leaf(2, "other"))

	return record.Graph{
		Name:    "sample",
		Nodes:   nodes,
		Weights: []float64{0.25, 1, 0.25},
		Labels:  utils.NewOrderedSet[int32](7, -1, 7, 3),
		Root:    utils.NewRef(parent),
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g := sampleGraph(t)

	got, err := record.DecodeGraph(g.Encode())
	require.NoError(t, err)
	assert.True(t, g.Equal(&got))

	t.Run("containers come back sorted", func(t *testing.T) {
		assert.Equal(t, []uint64{1, 2, 3}, got.Nodes.Keys())
		assert.Equal(t, []int32{-1, 3, 7}, got.Labels.List())

		root := got.Root.Get()
		assert.Equal(t, []string{"inner", "root"}, root.Tags.List())
		assert.Equal(t, []string{"depth", "weight"}, root.Attrs.Keys())
		assert.Equal(t, []float64{0.25, 1, 0.25}, got.Weights)
	})

	t.Run("shared children are decoded separately", func(t *testing.T) {
		children := got.Root.Get().Children
		require.Len(t, children, 3)
		assert.True(t, children[0].Ptr().Equal(children[2].Ptr()))
		assert.NotSame(t, children[0].Ptr(), children[2].Ptr())
	})

	t.Run("encoding is deterministic", func(t *testing.T) {
		assert.Equal(t, g.Encode(), got.Encode())
	})
}

func TestGraphOptionalRoot(t *testing.T) {
	g := record.Graph{Name: "rootless"}

	got, err := record.DecodeGraph(g.Encode())
	require.NoError(t, err)
	assert.True(t, got.Root.IsNil())
	assert.Zero(t, got.Nodes.Size())
	assert.Zero(t, got.Labels.Size())
	assert.Empty(t, got.Weights)
	assert.True(t, g.Equal(&got))
}

func TestGraphDuplicateNodeIDs(t *testing.T) {
	entry := flatbuf.NewPair[uint64, record.Node, uint64, flatbuffers.Table](
		flatbuf.ScalarCodec[uint64]{}, flatbuf.ScalarSlot[uint64],
		record.NodeCodec{}, flatbuf.TableSlot,
	)
	entries := flatbuf.Sequence[flatbuf.Pair[uint64, record.Node], flatbuffers.Table](entry)

	b := flatbuffers.NewBuilder(0)
	nodes := entries.WriteField(b, []flatbuf.Pair[uint64, record.Node]{
		{Key: 1, Value: leaf(1, "a")},
		{Key: 1, Value: leaf(1, "b")},
	})
	name := flatbuf.String.WriteField(b, "dupes")
	buf := flatbuf.Finish(b, flatbuf.CreateTable(b, name, nodes))

	_, err := record.DecodeGraph(buf)
	require.ErrorIs(t, err, flatbuf.ErrDuplicateKey)
}

func TestGraphCorrupt(t *testing.T) {
	g := sampleGraph(t)
	buf := g.Encode()

	for _, n := range []int{0, 3, len(buf) / 3, len(buf) - 1} {
		_, err := record.DecodeGraph(buf[:n])
		require.ErrorIs(t, err, flatbuf.ErrMalformed, "truncated to %d bytes", n)
	}
}

func TestNodeEqual(t *testing.T) {
	a := leaf(1, "a")
	b := leaf(1, "a")
	assert.True(t, a.Equal(&b))

	b.Tags.Insert("extra")
	assert.False(t, a.Equal(&b))

	empty := record.Node{ID: 1, Name: "a", Tags: utils.NewOrderedSet("leaf")}
	assert.True(t, a.Equal(&empty), "nil and empty attrs")
}

func TestDecodeSharedChildren(t *testing.T) {
	// every level lists the node below it twice, 2^30 nodes once expanded
	b := flatbuffers.NewBuilder(0)
	node := flatbuf.CreateTable(b)
	for range 30 {
		children := flatbuf.CreateVector(b, []flatbuf.Element{flatbuf.Offset(node), flatbuf.Offset(node)})
		node = flatbuf.CreateTable(b, nil, nil, nil, nil, nil, flatbuf.Offset(children))
	}
	buf := flatbuf.Finish(b, node)

	_, err := flatbuf.Decode[record.Node](record.NodeCodec{}, buf)
	require.ErrorIs(t, err, flatbuf.ErrMalformed)
}
