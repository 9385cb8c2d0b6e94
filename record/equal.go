package record

import (
	"slices"

	"github.com/NethermindEth/flatconv/utils"
)

// Equal reports whether both nodes hold the same data. Nil containers equal empty ones and
// children are compared by value.
func (n *Node) Equal(other *Node) bool {
	return n.ID == other.ID &&
		n.Name == other.Name &&
		slices.Equal(setItems(n.Tags), setItems(other.Tags)) &&
		mapsEqual(n.Attrs, other.Attrs, func(a, b int64) bool { return a == b }) &&
		slices.Equal(n.Path, other.Path) &&
		slices.EqualFunc(n.Children, other.Children, refsEqual)
}

func (g *Graph) Equal(other *Graph) bool {
	return g.Name == other.Name &&
		mapsEqual(g.Nodes, other.Nodes, func(a, b Node) bool { return a.Equal(&b) }) &&
		slices.Equal(g.Weights, other.Weights) &&
		slices.Equal(setItems(g.Labels), setItems(other.Labels)) &&
		refsEqual(g.Root, other.Root)
}

func refsEqual(a, b utils.Ref[Node]) bool {
	if a.IsNil() || b.IsNil() {
		return a.IsNil() == b.IsNil()
	}
	return a.Ptr().Equal(b.Ptr())
}

func setItems[T any](s *utils.OrderedSet[T]) []T {
	if s == nil {
		return nil
	}
	return s.List()
}

func mapsEqual[K comparable, V any](a, b *utils.OrderedMap[K, V], eq func(V, V) bool) bool {
	var aKeys, bKeys []K
	var aValues, bValues []V
	if a != nil {
		aKeys, aValues = a.Keys(), a.Values()
	}
	if b != nil {
		bKeys, bValues = b.Keys(), b.Values()
	}
	return slices.Equal(aKeys, bKeys) && slices.EqualFunc(aValues, bValues, eq)
}
