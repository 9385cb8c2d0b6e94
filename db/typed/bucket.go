package typed

import (
	"github.com/NethermindEth/flatconv/db"
	"github.com/NethermindEth/flatconv/db/typed/key"
	"github.com/NethermindEth/flatconv/db/typed/value"
	"github.com/NethermindEth/flatconv/utils"
)

// Bucket is a db.Bucket whose keys and values are serialised by KS and VS.
type Bucket[K, V any, KS key.Serializer[K], VS value.Serializer[V]] struct {
	bucket db.Bucket
}

func NewBucket[K, V any, KS key.Serializer[K], VS value.Serializer[V]](
	bucket db.Bucket,
	_ KS,
	_ VS,
) Bucket[K, V, KS, VS] {
	return Bucket[K, V, KS, VS]{bucket: bucket}
}

func (b Bucket[K, V, KS, VS]) Key(k K) []byte {
	var ks KS
	return b.bucket.Key(ks.Marshal(k))
}

func (b Bucket[K, V, KS, VS]) Has(r db.KeyValueReader, k K) (bool, error) {
	return r.Has(b.Key(k))
}

func (b Bucket[K, V, KS, VS]) Get(r db.KeyValueReader, k K) (V, error) {
	var (
		v  V
		vs VS
	)
	err := r.Get(b.Key(k), func(data []byte) error {
		return vs.Unmarshal(data, &v)
	})
	return v, err
}

func (b Bucket[K, V, KS, VS]) Put(w db.KeyValueWriter, k K, v *V) error {
	var vs VS
	data, err := vs.Marshal(v)
	if err != nil {
		return err
	}
	return w.Put(b.Key(k), data)
}

func (b Bucket[K, V, KS, VS]) Delete(w db.KeyValueWriter, k K) error {
	return w.Delete(b.Key(k))
}

// Scan calls fn for every entry of the bucket in key order and stops at the first error.
func (b Bucket[K, V, KS, VS]) Scan(it db.Iterable, fn func(K, V) error) (err error) {
	iter, err := it.NewIterator(b.bucket.Key(), true)
	if err != nil {
		return err
	}
	defer func() {
		err = utils.RunAndWrapOnError(iter.Close, err)
	}()

	var (
		ks KS
		vs VS
	)
	for ok := iter.First(); ok; ok = iter.Next() {
		k, err := ks.Unmarshal(iter.Key()[1:])
		if err != nil {
			return err
		}
		data, err := iter.Value()
		if err != nil {
			return err
		}
		var v V
		if err = vs.Unmarshal(data, &v); err != nil {
			return err
		}
		if err = fn(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the keys of the bucket in order without decoding the values.
func (b Bucket[K, V, KS, VS]) Keys(it db.Iterable) (keys []K, err error) {
	iter, err := it.NewIterator(b.bucket.Key(), true)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = utils.RunAndWrapOnError(iter.Close, err)
	}()

	var ks KS
	for ok := iter.First(); ok; ok = iter.Next() {
		k, err := ks.Unmarshal(iter.Key()[1:])
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
