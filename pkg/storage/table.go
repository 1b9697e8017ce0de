package storage

import (
	bolt "go.etcd.io/bbolt"
)

// Codec converts a value of type T to and from its on-disk bytes.
// Encoding never fails; decoding, of keys and values alike, can, since
// the bytes came from a previous run and may in principle be corrupt.
type Codec[T any] struct {
	Encode func(T) []byte
	Decode func([]byte) (T, error)
}

// Table is a generic, bucket-scoped accessor mirroring the original
// node's TableAccessContext<K, V>: every operation opens its own bbolt
// transaction, so callers never hold a table handle across an await
// point or a lock.
type Table[K comparable, V any] struct {
	db      *bolt.DB
	bucket  []byte
	keys    Codec[K]
	values  Codec[V]
	zeroVal V
}

func newTable[K comparable, V any](db *bolt.DB, bucket []byte, keys Codec[K], values Codec[V], zeroVal V) *Table[K, V] {
	return &Table[K, V]{db: db, bucket: bucket, keys: keys, values: values, zeroVal: zeroVal}
}

// Get returns the value stored for key, or the table's zero value if
// the key has never been written.
func (t *Table[K, V]) Get(key K) (V, error) {
	var out V
	err := t.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.bucket)
		raw := b.Get(t.keys.Encode(key))
		if raw == nil {
			out = t.zeroVal
			return nil
		}
		v, err := t.values.Decode(raw)
		if err != nil {
			return newErr(ErrOther, string(t.bucket), err)
		}
		out = v
		return nil
	})
	if err != nil {
		return t.zeroVal, wrapTxErr(err, t.bucket)
	}
	return out, nil
}

// GetOrDefault is an alias for Get: every Table already returns the
// zero value on a miss, matching the original schema's V: Default
// bound. Kept as a separate name because callers reading the
// dispatcher and execution engine code expect it to read that way.
func (t *Table[K, V]) GetOrDefault(key K) (V, error) {
	return t.Get(key)
}

// MultiGet returns the value for each key in order, defaulting
// missing entries the same way Get does.
func (t *Table[K, V]) MultiGet(keys []K) ([]V, error) {
	out := make([]V, 0, len(keys))
	err := t.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.bucket)
		for _, key := range keys {
			raw := b.Get(t.keys.Encode(key))
			if raw == nil {
				out = append(out, t.zeroVal)
				continue
			}
			v, err := t.values.Decode(raw)
			if err != nil {
				return newErr(ErrOther, string(t.bucket), err)
			}
			out = append(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err, t.bucket)
	}
	return out, nil
}

// Insert writes key/value unconditionally, overwriting any prior
// value, and commits before returning.
func (t *Table[K, V]) Insert(key K, value V) error {
	err := t.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.bucket)
		return b.Put(t.keys.Encode(key), t.values.Encode(value))
	})
	return wrapTxErr(err, t.bucket)
}

// MultiInsert writes every pair in a single transaction.
func (t *Table[K, V]) MultiInsert(items map[K]V) error {
	err := t.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.bucket)
		for key, value := range items {
			if err := b.Put(t.keys.Encode(key), t.values.Encode(value)); err != nil {
				return err
			}
		}
		return nil
	})
	return wrapTxErr(err, t.bucket)
}

// Update reads the current value for key (or the zero value if
// absent), applies f, writes the result back, and returns it — all
// within one write transaction, matching the original get-modify-put
// semantics.
func (t *Table[K, V]) Update(key K, f func(V) V) (V, error) {
	var result V
	err := t.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.bucket)
		k := t.keys.Encode(key)
		raw := b.Get(k)
		current := t.zeroVal
		if raw != nil {
			v, err := t.values.Decode(raw)
			if err != nil {
				return newErr(ErrOther, string(t.bucket), err)
			}
			current = v
		}
		result = f(current)
		return b.Put(k, t.values.Encode(result))
	})
	if err != nil {
		return t.zeroVal, wrapTxErr(err, t.bucket)
	}
	return result, nil
}

// MultiUpdate applies f to each key's current (or zero) value in a
// single write transaction and returns the updated values in order.
func (t *Table[K, V]) MultiUpdate(keys []K, f func(V) V) ([]V, error) {
	out := make([]V, 0, len(keys))
	err := t.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.bucket)
		for _, key := range keys {
			k := t.keys.Encode(key)
			raw := b.Get(k)
			current := t.zeroVal
			if raw != nil {
				v, err := t.values.Decode(raw)
				if err != nil {
					return newErr(ErrOther, string(t.bucket), err)
				}
				current = v
			}
			updated := f(current)
			if err := b.Put(k, t.values.Encode(updated)); err != nil {
				return err
			}
			out = append(out, updated)
		}
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err, t.bucket)
	}
	return out, nil
}

// Scan calls fn for every key/value pair in the table, in bbolt's
// natural (sorted-by-encoded-key) order. Returning an error from fn
// stops the scan and propagates that error.
func (t *Table[K, V]) Scan(fn func(K, V) error) error {
	err := t.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(t.bucket)
		return b.ForEach(func(k, v []byte) error {
			key, err := t.keys.Decode(k)
			if err != nil {
				return newErr(ErrOther, string(t.bucket), err)
			}
			val, err := t.values.Decode(v)
			if err != nil {
				return newErr(ErrOther, string(t.bucket), err)
			}
			return fn(key, val)
		})
	})
	return wrapTxErr(err, t.bucket)
}

func wrapTxErr(err error, bucket []byte) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*StorageError); ok {
		return se
	}
	return newErr(ErrAccess, string(bucket), err)
}
