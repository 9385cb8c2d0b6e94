package value

import (
	"github.com/NethermindEth/flatconv/flatbuf"
	flatbuffers "github.com/google/flatbuffers/go"
)

type tableCodec[V any] interface {
	~struct{}
	flatbuf.Reader[V, flatbuffers.Table]
	flatbuf.TableWriter[V]
}

// Flatbuf stores values as finished buffers with V at the root, converted by C.
func Flatbuf[V any, C tableCodec[V]]() flatbufSerializer[V, C] {
	return flatbufSerializer[V, C]{}
}

type flatbufSerializer[V any, C tableCodec[V]] struct{}

func (flatbufSerializer[V, C]) Marshal(value *V) ([]byte, error) {
	var codec C
	return flatbuf.Encode[V](codec, *value), nil
}

// Unmarshal does not keep references into data.
func (flatbufSerializer[V, C]) Unmarshal(data []byte, value *V) error {
	var codec C
	v, err := flatbuf.Decode[V](codec, data)
	if err != nil {
		return err
	}
	*value = v
	return nil
}
