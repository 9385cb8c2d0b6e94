package record2doc_test

import (
	"testing"

	"github.com/NethermindEth/flatconv/adapters/record2doc"
	"github.com/NethermindEth/flatconv/document"
	"github.com/NethermindEth/flatconv/record"
	"github.com/NethermindEth/flatconv/utils"
	"github.com/stretchr/testify/assert"
)

func TestAdaptGraph(t *testing.T) {
	leaf := utils.NewRef(record.Node{ID: 7, Name: "leaf", Path: []record.Point{}})
	attrs := utils.NewOrderedMap[string, int64]()
	attrs.Put("k", 1)
	parent := record.Node{
		ID:       3,
		Tags:     utils.NewOrderedSet("b", "a"),
		Attrs:    attrs,
		Path:     []record.Point{{X: 1, Y: 2}},
		Children: []utils.Ref[record.Node]{leaf, leaf},
	}
	nodes := utils.NewOrderedMap[uint64, record.Node]()
	nodes.Put(parent.ID, parent)

	g := &record.Graph{
		Name:    "g",
		Nodes:   nodes,
		Weights: []float64{},
		Labels:  utils.NewOrderedSet[int32](),
		Root:    utils.NewRef(parent),
	}

	root := uint64(3)
	want := &document.Graph{
		Name: "g",
		Nodes: []document.Node{
			{
				ID:       3,
				Tags:     []string{"a", "b"},
				Attrs:    map[string]int64{"k": 1},
				Path:     []document.Point{{X: 1, Y: 2}},
				Children: []uint64{7, 7},
			},
			// reachable only as a child
			{ID: 7, Name: "leaf"},
		},
		Root: &root,
	}
	assert.Equal(t, want, record2doc.AdaptGraph(g))
}

func TestAdaptGraphEmpty(t *testing.T) {
	assert.Equal(t, &document.Graph{Name: "empty"}, record2doc.AdaptGraph(&record.Graph{Name: "empty"}))
}
