package record

import (
	"github.com/NethermindEth/flatconv/flatbuf"
	"github.com/NethermindEth/flatconv/utils"
	flatbuffers "github.com/google/flatbuffers/go"
)

// Node slots
const (
	nodeID = iota
	nodeName
	nodeTags
	nodeAttrs
	nodePath
	nodeChildren
)

// Node is a vertex of a Graph. Children are shared references, the same child may hang
// under several parents in memory. On the wire every occurrence is a separate table.
type Node struct {
	ID       uint64
	Name     string
	Tags     *utils.OrderedSet[string]
	Attrs    *utils.OrderedMap[string, int64]
	Path     []Point
	Children []utils.Ref[Node]
}

var (
	_ flatbuf.Codec[Node, flatbuffers.Table] = NodeCodec{}

	nodeTagsCodec  = flatbuf.Set[string, string](flatbuf.String)
	nodeAttrsCodec = flatbuf.Map[string, int64, flatbuffers.Table](
		flatbuf.NewPair[string, int64, string, int64](
			flatbuf.String, flatbuf.StringSlot,
			flatbuf.ScalarCodec[int64]{}, flatbuf.ScalarSlot[int64],
		),
	)
	nodePathCodec = flatbuf.Sequence[Point, flatbuffers.Table](PointCodec{})
)

// nodeChildrenCodec is built on demand, a package level value would depend on NodeCodec's
// own methods.
func nodeChildrenCodec() flatbuf.SequenceCodec[utils.Ref[Node], flatbuffers.Table] {
	return flatbuf.Sequence[utils.Ref[Node], flatbuffers.Table](flatbuf.Ref[Node, flatbuffers.Table](NodeCodec{}))
}

type NodeCodec struct{}

func (NodeCodec) Read(tab flatbuffers.Table) (Node, error) {
	var (
		n   Node
		err error
	)

	if n.ID, err = flatbuf.ScalarSlot[uint64](&tab, nodeID); err != nil {
		return Node{}, err
	}
	if n.Name, err = flatbuf.StringSlot(&tab, nodeName); err != nil {
		return Node{}, err
	}

	tags, err := flatbuf.StringVectorSlot(&tab, nodeTags)
	if err != nil {
		return Node{}, err
	}
	if n.Tags, err = nodeTagsCodec.Read(tags); err != nil {
		return Node{}, err
	}

	attrs, err := flatbuf.TableVectorSlot(&tab, nodeAttrs)
	if err != nil {
		return Node{}, err
	}
	if n.Attrs, err = nodeAttrsCodec.Read(attrs); err != nil {
		return Node{}, err
	}

	path, err := flatbuf.StructVectorSlot(PointSize)(&tab, nodePath)
	if err != nil {
		return Node{}, err
	}
	if n.Path, err = nodePathCodec.Read(path); err != nil {
		return Node{}, err
	}

	children, err := flatbuf.TableVectorSlot(&tab, nodeChildren)
	if err != nil {
		return Node{}, err
	}
	if n.Children, err = nodeChildrenCodec().Read(children); err != nil {
		return Node{}, err
	}
	return n, nil
}

func (NodeCodec) WriteTable(b *flatbuffers.Builder, n Node) flatbuffers.UOffsetT {
	// offsets must all exist before the table is started
	children := nodeChildrenCodec().WriteField(b, n.Children)
	path := nodePathCodec.WriteField(b, n.Path)
	attrs := nodeAttrsCodec.WriteField(b, n.Attrs)
	tags := nodeTagsCodec.WriteField(b, n.Tags)
	name := flatbuf.String.WriteField(b, n.Name)
	id := flatbuf.ScalarCodec[uint64]{}.WriteField(b, n.ID)

	return flatbuf.CreateTable(b, id, name, tags, attrs, path, children)
}

func (c NodeCodec) WriteField(b *flatbuffers.Builder, n Node) flatbuf.Field {
	return flatbuf.Offset(c.WriteTable(b, n))
}

func (c NodeCodec) WriteVectorElement(b *flatbuffers.Builder, n Node) flatbuf.Element {
	return flatbuf.Offset(c.WriteTable(b, n))
}
