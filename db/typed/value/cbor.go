package value

import "github.com/NethermindEth/flatconv/encoder"

func Cbor[V any]() cborSerializer[V] {
	return cborSerializer[V]{}
}

type cborSerializer[V any] struct{}

func (cborSerializer[V]) Marshal(value *V) ([]byte, error) {
	return encoder.Marshal(value)
}

func (cborSerializer[V]) Unmarshal(data []byte, value *V) error {
	return encoder.Unmarshal(data, value)
}
