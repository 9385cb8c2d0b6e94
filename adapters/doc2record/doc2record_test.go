package doc2record_test

import (
	"testing"

	"github.com/NethermindEth/flatconv/adapters/doc2record"
	"github.com/NethermindEth/flatconv/adapters/record2doc"
	"github.com/NethermindEth/flatconv/document"
	"github.com/NethermindEth/flatconv/record"
	"github.com/NethermindEth/flatconv/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *document.Graph {
	return &document.Graph{
		Name: "sample",
		Nodes: []document.Node{
			{
				ID:       1,
				Name:     "parent",
				Tags:     []string{"inner", "root"},
				Attrs:    map[string]int64{"depth": -2, "weight": 10},
				Path:     []document.Point{{X: 0, Y: 0}, {X: 3, Y: -4}},
				Children: []uint64{2, 3, 2},
			},
			{ID: 2, Name: "shared", Children: []uint64{3}},
			{ID: 3, Name: "leaf", Tags: []string{"leaf"}},
		},
		Weights: []float64{0.5, 1},
		Labels:  []int32{-1, 7},
		Root:    utils.HeapPtr[uint64](1),
	}
}

func TestAdaptGraph(t *testing.T) {
	g, err := doc2record.AdaptGraph(sample())
	require.NoError(t, err)

	assert.Equal(t, []uint64{1, 2, 3}, g.Nodes.Keys())
	require.False(t, g.Root.IsNil())

	t.Run("children are shared", func(t *testing.T) {
		children := g.Root.Get().Children
		require.Len(t, children, 3)
		assert.Same(t, children[0].Ptr(), children[2].Ptr())
		assert.Same(t, children[1].Ptr(), children[0].Get().Children[0].Ptr())
	})

	t.Run("containers are normalised", func(t *testing.T) {
		doc := sample()
		doc.Nodes[0].Tags = []string{"root", "inner", "root"}
		doc.Labels = []int32{7, -1, 7}

		got, err := doc2record.AdaptGraph(doc)
		require.NoError(t, err)
		assert.Equal(t, []string{"inner", "root"}, got.Root.Get().Tags.List())
		assert.Equal(t, []int32{-1, 7}, got.Labels.List())
	})

	t.Run("round trip through the wire", func(t *testing.T) {
		decoded, err := record.DecodeGraph(g.Encode())
		require.NoError(t, err)
		assert.True(t, g.Equal(&decoded))
		assert.Equal(t, sample(), record2doc.AdaptGraph(&decoded))
	})
}

func TestAdaptGraphErrors(t *testing.T) {
	tests := map[string]struct {
		edit func(*document.Graph)
		want error
	}{
		"duplicate node": {
			edit: func(g *document.Graph) { g.Nodes[2].ID = 2 },
			want: doc2record.ErrDuplicateNode,
		},
		"unknown child": {
			edit: func(g *document.Graph) { g.Nodes[1].Children = []uint64{42} },
			want: doc2record.ErrUnknownNode,
		},
		"unknown root": {
			edit: func(g *document.Graph) { g.Root = utils.HeapPtr[uint64](42) },
			want: doc2record.ErrUnknownNode,
		},
		"cycle": {
			edit: func(g *document.Graph) { g.Nodes[2].Children = []uint64{1} },
			want: doc2record.ErrNodeCycle,
		},
		"self reference": {
			edit: func(g *document.Graph) { g.Nodes[2].Children = []uint64{3} },
			want: doc2record.ErrNodeCycle,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			doc := sample()
			test.edit(doc)
			_, err := doc2record.AdaptGraph(doc)
			require.ErrorIs(t, err, test.want)
		})
	}

	t.Run("nil", func(t *testing.T) {
		_, err := doc2record.AdaptGraph(nil)
		require.Error(t, err)
	})

	// node i lists node i+1 twice, so node 0 writes 2^levels-1 tables
	diamond := func(levels int) *document.Graph {
		doc := &document.Graph{Name: "diamond", Root: utils.HeapPtr[uint64](0)}
		for i := range uint64(levels) {
			n := document.Node{ID: i}
			if i+1 < uint64(levels) {
				n.Children = []uint64{i + 1, i + 1}
			}
			doc.Nodes = append(doc.Nodes, n)
		}
		return doc
	}

	t.Run("shared children within bounds", func(t *testing.T) {
		g, err := doc2record.AdaptGraph(diamond(10))
		require.NoError(t, err)
		assert.Equal(t, 10, g.Nodes.Size())
	})

	t.Run("shared children expand too far", func(t *testing.T) {
		_, err := doc2record.AdaptGraph(diamond(30))
		require.ErrorIs(t, err, doc2record.ErrGraphTooLarge)
	})
}
