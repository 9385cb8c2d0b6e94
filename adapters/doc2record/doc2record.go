package doc2record

import (
	"slices"

	"github.com/NethermindEth/flatconv/document"
	"github.com/NethermindEth/flatconv/record"
	"github.com/NethermindEth/flatconv/utils"
	"github.com/pkg/errors"
)

var (
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrUnknownNode   = errors.New("unknown node id")
	ErrNodeCycle     = errors.New("node is its own descendant")
	ErrGraphTooLarge = errors.New("graph expands into too many nodes")
)

// MaxWrittenNodes bounds the node tables a graph may write. Shared children are written
// in full under every parent, so a small document can expand exponentially.
const MaxWrittenNodes = 1 << 20

// AdaptGraph resolves the child ids of doc into shared references. A node listed as the
// child of several parents is a single value shared by all of them.
func AdaptGraph(doc *document.Graph) (*record.Graph, error) {
	if doc == nil {
		return nil, errors.New("nil graph document")
	}

	r := resolver{
		docs:     make(map[uint64]*document.Node, len(doc.Nodes)),
		refs:     make(map[uint64]utils.Ref[record.Node], len(doc.Nodes)),
		written:  make(map[uint64]int, len(doc.Nodes)),
		visiting: make(map[uint64]struct{}),
	}
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if _, ok := r.docs[n.ID]; ok {
			return nil, errors.Wrapf(ErrDuplicateNode, "node %d", n.ID)
		}
		r.docs[n.ID] = n
	}

	var written int
	nodes := utils.NewOrderedMap[uint64, record.Node]()
	for _, n := range doc.Nodes {
		ref, err := r.resolve(n.ID)
		if err != nil {
			return nil, err
		}
		nodes.Put(n.ID, ref.Get())
		written = addWritten(written, r.written[n.ID])
	}

	g := &record.Graph{
		Name:    doc.Name,
		Nodes:   nodes,
		Weights: slices.Clone(doc.Weights),
		Labels:  utils.NewOrderedSet(doc.Labels...),
	}
	if doc.Root != nil {
		root, err := r.resolve(*doc.Root)
		if err != nil {
			return nil, errors.WithMessage(err, "root")
		}
		g.Root = root
		written = addWritten(written, r.written[*doc.Root])
	}
	if written > MaxWrittenNodes {
		return nil, errors.Wrapf(ErrGraphTooLarge, "more than %d nodes", MaxWrittenNodes)
	}
	return g, nil
}

// AdaptNode converts n, taking its children already resolved.
func AdaptNode(n *document.Node, children []utils.Ref[record.Node]) record.Node {
	attrs := utils.NewOrderedMap[string, int64]()
	for k, v := range utils.OrderMap(n.Attrs) {
		attrs.Put(k, v)
	}

	return record.Node{
		ID:       n.ID,
		Name:     n.Name,
		Tags:     utils.NewOrderedSet(n.Tags...),
		Attrs:    attrs,
		Path:     utils.Map(n.Path, AdaptPoint),
		Children: children,
	}
}

func AdaptPoint(p document.Point) record.Point {
	return record.Point{X: p.X, Y: p.Y}
}

type resolver struct {
	docs     map[uint64]*document.Node
	refs     map[uint64]utils.Ref[record.Node]
	written  map[uint64]int // node tables written for a node and its descendants
	visiting map[uint64]struct{}
}

// addWritten adds node counts, saturating just past MaxWrittenNodes.
func addWritten(a, b int) int {
	return min(a+b, MaxWrittenNodes+1)
}

func (r *resolver) resolve(id uint64) (utils.Ref[record.Node], error) {
	if ref, ok := r.refs[id]; ok {
		return ref, nil
	}

	doc, ok := r.docs[id]
	if !ok {
		return utils.Ref[record.Node]{}, errors.Wrapf(ErrUnknownNode, "node %d", id)
	}
	if _, ok = r.visiting[id]; ok {
		return utils.Ref[record.Node]{}, errors.Wrapf(ErrNodeCycle, "node %d", id)
	}
	r.visiting[id] = struct{}{}
	defer delete(r.visiting, id)

	written := 1
	children := make([]utils.Ref[record.Node], len(doc.Children))
	for i, child := range doc.Children {
		var err error
		if children[i], err = r.resolve(child); err != nil {
			return utils.Ref[record.Node]{}, err
		}
		written = addWritten(written, r.written[child])
	}

	ref := utils.NewRef(AdaptNode(doc, children))
	r.refs[id] = ref
	r.written[id] = written
	return ref, nil
}
