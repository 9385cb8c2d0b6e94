package db

import "slices"

// Bucket prefixes the keys of one group of entries. Pebble has no buckets, every key
// starts with the byte of the bucket it belongs to.
type Bucket byte

const (
	// Graphs maps graph names to encoded graph records
	Graphs Bucket = iota
	// Metadata holds store wide values such as the schema version
	Metadata
	// GraphInfos maps graph names to a summary of the stored graph
	GraphInfos
)

func (b Bucket) String() string {
	switch b {
	case Graphs:
		return "Graphs"
	case Metadata:
		return "Metadata"
	case GraphInfos:
		return "GraphInfos"
	default:
		return "Unknown"
	}
}

// Key flattens a prefix and series of byte arrays into a single []byte.
func (b Bucket) Key(key ...[]byte) []byte {
	return append([]byte{byte(b)}, slices.Concat(key...)...)
}

// UpperBound returns the smallest key greater than every key starting with prefix, nil
// when no such key exists.
func UpperBound(prefix []byte) []byte {
	ub := slices.Clone(prefix)
	for i := len(ub) - 1; i >= 0; i-- {
		ub[i]++
		if ub[i] != 0 {
			return ub[:i+1]
		}
	}
	return nil
}
