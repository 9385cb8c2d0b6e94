package key

import (
	"encoding/binary"
	"errors"
	"slices"
)

// Serializer converts keys to and from their byte form. Serializers are zero-size values
// so buckets can be declared as package level variables.
type Serializer[K any] interface {
	~struct{}
	Marshal(K) []byte
	Unmarshal([]byte) (K, error)
}

var errUint64Size = errors.New("uint64 key must be 8 bytes")

var (
	Bytes  = bytesSerializer{}
	String = stringSerializer{}
	Uint64 = uint64Serializer{}
)

type bytesSerializer struct{}

func (bytesSerializer) Marshal(key []byte) []byte {
	return key
}

func (bytesSerializer) Unmarshal(data []byte) ([]byte, error) {
	return slices.Clone(data), nil
}

type stringSerializer struct{}

func (stringSerializer) Marshal(key string) []byte {
	return []byte(key)
}

func (stringSerializer) Unmarshal(data []byte) (string, error) {
	return string(data), nil
}

// uint64Serializer is big endian so that keys sort numerically.
type uint64Serializer struct{}

func (uint64Serializer) Marshal(key uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, key)
}

func (uint64Serializer) Unmarshal(data []byte) (uint64, error) {
	if len(data) != 8 {
		return 0, errUint64Size
	}
	return binary.BigEndian.Uint64(data), nil
}
