package record

import (
	"github.com/NethermindEth/flatconv/flatbuf"
	"github.com/NethermindEth/flatconv/utils"
	flatbuffers "github.com/google/flatbuffers/go"
)

// SchemaVersion is the version of schema.fbs. Minor versions only add slots.
const SchemaVersion = "1.0.0"

// Graph slots
const (
	graphName = iota
	graphNodes
	graphWeights
	graphLabels
	graphRoot
)

// Graph is the root record of a buffer.
type Graph struct {
	Name    string
	Nodes   *utils.OrderedMap[uint64, Node]
	Weights []float64
	Labels  *utils.OrderedSet[int32]
	// Root is optional, the zero Ref means no root.
	Root utils.Ref[Node]
}

var (
	graphNodesCodec = flatbuf.Map[uint64, Node, flatbuffers.Table](
		flatbuf.NewPair[uint64, Node, uint64, flatbuffers.Table](
			flatbuf.ScalarCodec[uint64]{}, flatbuf.ScalarSlot[uint64],
			NodeCodec{}, flatbuf.TableSlot,
		),
	).Strict()
	graphWeightsCodec = flatbuf.ScalarSequence[float64]()
	graphLabelsCodec  = flatbuf.ScalarSet[int32]()
	graphRootCodec    = flatbuf.Ref[Node, flatbuffers.Table](NodeCodec{})
)

// GraphCodec converts graphs. Node maps are read strictly: a buffer listing the same node
// id twice is rejected.
type GraphCodec struct{}

func (GraphCodec) Read(tab flatbuffers.Table) (Graph, error) {
	var (
		g   Graph
		err error
	)

	if g.Name, err = flatbuf.StringSlot(&tab, graphName); err != nil {
		return Graph{}, err
	}

	nodes, err := flatbuf.TableVectorSlot(&tab, graphNodes)
	if err != nil {
		return Graph{}, err
	}
	if g.Nodes, err = graphNodesCodec.Read(nodes); err != nil {
		return Graph{}, err
	}

	weights, err := flatbuf.ScalarVectorSlot[float64](&tab, graphWeights)
	if err != nil {
		return Graph{}, err
	}
	if g.Weights, err = graphWeightsCodec.Read(weights); err != nil {
		return Graph{}, err
	}

	labels, err := flatbuf.ScalarVectorSlot[int32](&tab, graphLabels)
	if err != nil {
		return Graph{}, err
	}
	if g.Labels, err = graphLabelsCodec.Read(labels); err != nil {
		return Graph{}, err
	}

	if flatbuf.HasSlot(&tab, graphRoot) {
		root, err := flatbuf.TableSlot(&tab, graphRoot)
		if err != nil {
			return Graph{}, err
		}
		if g.Root, err = graphRootCodec.Read(root); err != nil {
			return Graph{}, err
		}
	}
	return g, nil
}

func (GraphCodec) WriteTable(b *flatbuffers.Builder, g Graph) flatbuffers.UOffsetT {
	var root flatbuf.Field
	if !g.Root.IsNil() {
		root = graphRootCodec.WriteField(b, g.Root)
	}
	labels := graphLabelsCodec.WriteField(b, g.Labels)
	weights := graphWeightsCodec.WriteField(b, g.Weights)
	nodes := graphNodesCodec.WriteField(b, g.Nodes)
	name := flatbuf.String.WriteField(b, g.Name)

	return flatbuf.CreateTable(b, name, nodes, weights, labels, root)
}

// Encode returns g as a finished buffer.
func (g Graph) Encode() []byte {
	return flatbuf.Encode[Graph](GraphCodec{}, g)
}

// DecodeGraph reads the graph stored at the root of buf.
func DecodeGraph(buf []byte) (Graph, error) {
	return flatbuf.Decode[Graph](GraphCodec{}, buf)
}
