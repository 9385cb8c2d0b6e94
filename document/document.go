// Package document holds the interchange form of graphs. Documents are what users edit
// and what the CLI prints: containers are plain slices and maps, and node children are
// referenced by id.
package document

type Point struct {
	X int32 `yaml:"x" json:"x" cbor:"x"`
	Y int32 `yaml:"y" json:"y" cbor:"y"`
}

type Node struct {
	ID       uint64           `yaml:"id" json:"id" cbor:"id"`
	Name     string           `yaml:"name,omitempty" json:"name,omitempty" cbor:"name,omitempty"`
	Tags     []string         `yaml:"tags,omitempty" json:"tags,omitempty" cbor:"tags,omitempty"`
	Attrs    map[string]int64 `yaml:"attrs,omitempty" json:"attrs,omitempty" cbor:"attrs,omitempty"`
	Path     []Point          `yaml:"path,omitempty" json:"path,omitempty" cbor:"path,omitempty"`
	Children []uint64         `yaml:"children,omitempty" json:"children,omitempty" cbor:"children,omitempty"`
}

type Graph struct {
	Name    string    `yaml:"name" json:"name" cbor:"name"`
	Nodes   []Node    `yaml:"nodes,omitempty" json:"nodes,omitempty" cbor:"nodes,omitempty"`
	Weights []float64 `yaml:"weights,omitempty" json:"weights,omitempty" cbor:"weights,omitempty"`
	Labels  []int32   `yaml:"labels,omitempty" json:"labels,omitempty" cbor:"labels,omitempty"`
	// Root is the id of one of Nodes.
	Root *uint64 `yaml:"root,omitempty" json:"root,omitempty" cbor:"root,omitempty"`
}
