package db_test

import (
	"testing"

	"github.com/NethermindEth/flatconv/db"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	t.Run("bucket only", func(t *testing.T) {
		assert.Equal(t, []byte{byte(db.Metadata)}, db.Metadata.Key())
	})

	t.Run("parts are concatenated", func(t *testing.T) {
		assert.Equal(t, []byte{byte(db.Graphs), 'a', 'b', 'c'}, db.Graphs.Key([]byte("a"), []byte("bc")))
	})
}

func TestUpperBound(t *testing.T) {
	tests := map[string]struct {
		prefix []byte
		want   []byte
	}{
		"simple":        {prefix: []byte{1, 2}, want: []byte{1, 3}},
		"carry":         {prefix: []byte{1, 0xff}, want: []byte{2}},
		"all max":       {prefix: []byte{0xff, 0xff}, want: nil},
		"empty":         {prefix: nil, want: nil},
		"bucket prefix": {prefix: db.Graphs.Key(), want: db.Metadata.Key()},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, db.UpperBound(test.prefix))
		})
	}
}

func TestBucketString(t *testing.T) {
	assert.Equal(t, "Graphs", db.Graphs.String())
	assert.Equal(t, "GraphInfos", db.GraphInfos.String())
	assert.Equal(t, "Unknown", db.Bucket(200).String())
}
