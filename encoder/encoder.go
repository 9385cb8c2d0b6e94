package encoder

import (
	"io"
	"reflect"
	"sync"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maxDocumentItems bounds the array elements and map pairs of a decoded document.
const maxDocumentItems = 1 << 20

var (
	encMode cbor.EncMode
	decMode cbor.DecMode

	initialiseEncoder sync.Once
)

func initEncAndDecModes() {
	var err error
	// canonical encoding sorts map keys, equal documents always produce equal bytes
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: maxDocumentItems,
		MaxMapPairs:      maxDocumentItems,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Marshal returns the canonical CBOR form of v. Equal graph documents give equal bytes.
func Marshal(v any) ([]byte, error) {
	initialiseEncoder.Do(initEncAndDecModes)
	return encMode.Marshal(v)
}

// Unmarshal decodes b into v. Maps holding the same key twice are rejected.
func Unmarshal(b []byte, v any) error {
	initialiseEncoder.Do(initEncAndDecModes)
	return decMode.Unmarshal(b, v)
}

// TestSymmetry asserts that value comes back unchanged from a CBOR round trip.
func TestSymmetry(t *testing.T, value any) {
	t.Helper()
	cborBytes, err := Marshal(value)
	require.NoError(t, err)

	unmarshaled := reflect.New(reflect.TypeOf(value))
	require.NoError(t, Unmarshal(cborBytes, unmarshaled.Interface()))
	assert.Equal(t, value, unmarshaled.Elem().Interface())
}

type Encoder interface {
	Encode(v any) error
}

// NewEncoder writes a stream of canonical CBOR items to w.
func NewEncoder(w io.Writer) Encoder {
	initialiseEncoder.Do(initEncAndDecModes)
	return encMode.NewEncoder(w)
}

type Decoder interface {
	Decode(v any) error
}

// NewDecoder reads a stream of CBOR items from r, as written by NewEncoder.
func NewDecoder(r io.Reader) Decoder {
	initialiseEncoder.Do(initEncAndDecModes)
	return decMode.NewDecoder(r)
}
