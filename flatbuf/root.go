package flatbuf

import (
	"runtime"
	"slices"
	"sync"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/pkg/errors"
)

const initialBuilderSize = 1024

// builders hands every Encode call a builder of its own.
var builders = sync.Pool{
	New: func() any {
		return flatbuffers.NewBuilder(initialBuilderSize)
	},
}

// Encode writes v as the root table of a new buffer.
func Encode[T any](w TableWriter[T], v T) []byte {
	b := builders.Get().(*flatbuffers.Builder)
	defer func() {
		b.Reset()
		builders.Put(b)
	}()

	return slices.Clone(Finish(b, w.WriteTable(b, v)))
}

// Decode reads the root table of buf. Corrupt offsets that make the engine index past
// the end of buf are reported as ErrMalformed, and so are offsets shared so often that
// following them visits more tables and vector slots than buf has bytes.
func Decode[T any](r Reader[T, flatbuffers.Table], buf []byte) (v T, err error) {
	defer recoverMalformed(&err)

	if len(buf) < flatbuffers.SizeUOffsetT {
		return v, errors.Wrapf(ErrMalformed, "buffer of %d bytes has no root", len(buf))
	}
	defer acquireBudget(buf)()

	root, err := indirect(buf, 0)
	if err != nil {
		return v, err
	}
	return r.Read(flatbuffers.Table{Bytes: buf, Pos: root})
}

func recoverMalformed(err *error) {
	p := recover()
	if p == nil {
		return
	}
	rtErr, ok := p.(runtime.Error)
	if !ok {
		panic(p)
	}
	*err = errors.Wrap(ErrMalformed, rtErr.Error())
}
