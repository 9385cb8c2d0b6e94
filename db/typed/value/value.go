package value

import (
	"slices"
)

// Serializer converts values to and from their stored form.
type Serializer[V any] interface {
	~struct{}
	Marshal(*V) ([]byte, error)
	Unmarshal([]byte, *V) error
}

var (
	Bytes  = bytesSerializer{}
	String = stringSerializer{}
)

type bytesSerializer struct{}

func (bytesSerializer) Marshal(value *[]byte) ([]byte, error) {
	return *value, nil
}

// Unmarshal copies data, the database only lends it for the duration of the read.
func (bytesSerializer) Unmarshal(data []byte, value *[]byte) error {
	*value = slices.Clone(data)
	return nil
}

type stringSerializer struct{}

func (stringSerializer) Marshal(value *string) ([]byte, error) {
	return []byte(*value), nil
}

func (stringSerializer) Unmarshal(data []byte, value *string) error {
	*value = string(data)
	return nil
}
