package record2doc

import (
	"slices"

	"github.com/NethermindEth/flatconv/document"
	"github.com/NethermindEth/flatconv/record"
	"github.com/NethermindEth/flatconv/utils"
)

// AdaptGraph flattens g into a document. Children and the root become node ids. Nodes that
// are only reachable as children or as the root are appended after the entries of g.Nodes,
// the first value seen for an id is the one kept.
func AdaptGraph(g *record.Graph) *document.Graph {
	doc := &document.Graph{Name: g.Name}
	if len(g.Weights) > 0 {
		doc.Weights = slices.Clone(g.Weights)
	}
	if g.Labels != nil && g.Labels.Size() > 0 {
		doc.Labels = g.Labels.List()
	}

	seen := make(map[uint64]struct{})
	var add func(n *record.Node)
	add = func(n *record.Node) {
		if _, ok := seen[n.ID]; ok {
			return
		}
		seen[n.ID] = struct{}{}
		doc.Nodes = append(doc.Nodes, AdaptNode(n))
		for _, child := range n.Children {
			add(child.Ptr())
		}
	}

	if g.Nodes != nil {
		for _, n := range g.Nodes.Values() {
			add(&n)
		}
	}
	if !g.Root.IsNil() {
		root := g.Root.Ptr()
		add(root)
		doc.Root = utils.HeapPtr(root.ID)
	}
	return doc
}

func AdaptNode(n *record.Node) document.Node {
	doc := document.Node{
		ID:   n.ID,
		Name: n.Name,
	}
	if len(n.Path) > 0 {
		doc.Path = utils.Map(n.Path, AdaptPoint)
	}
	if n.Tags != nil && n.Tags.Size() > 0 {
		doc.Tags = n.Tags.List()
	}
	if n.Attrs != nil && n.Attrs.Size() > 0 {
		doc.Attrs = make(map[string]int64, n.Attrs.Size())
		for k, v := range n.Attrs.All() {
			doc.Attrs[k] = v
		}
	}
	if len(n.Children) > 0 {
		doc.Children = make([]uint64, len(n.Children))
		for i, child := range n.Children {
			doc.Children[i] = child.Get().ID
		}
	}
	return doc
}

func AdaptPoint(p record.Point) document.Point {
	return document.Point{X: p.X, Y: p.Y}
}
