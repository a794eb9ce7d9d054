package types

import (
	"bytes"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Fields is an insertion-ordered map of analytics field names to JSON-compatible
// values. A key may be present with a nil value; it is encoded as JSON null.
// The zero value is ready to use. A nil *Fields reads as empty.
type Fields struct {
	keys []string
	vals map[string]any
}

// NewFields builds a Fields from alternating key/value pairs.
// A trailing key without a value is stored with a nil value.
func NewFields(kv ...any) *Fields {
	f := &Fields{}
	for i := 0; i < len(kv); i += 2 {
		k, _ := kv[i].(string)
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		f.Set(k, v)
	}
	return f
}

// Set stores v under key. An existing key keeps its position.
func (f *Fields) Set(key string, v any) {
	if f.vals == nil {
		f.vals = make(map[string]any)
	}
	if _, ok := f.vals[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.vals[key] = v
}

// Get returns the value stored under key and whether the key is present.
func (f *Fields) Get(key string) (any, bool) {
	if f == nil || f.vals == nil {
		return nil, false
	}
	v, ok := f.vals[key]
	return v, ok
}

// Has reports whether key is present, including keys holding nil.
func (f *Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Delete removes key if present.
func (f *Fields) Delete(key string) {
	if f == nil || f.vals == nil {
		return
	}
	if _, ok := f.vals[key]; !ok {
		return
	}
	delete(f.vals, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Clone returns a shallow copy. Cloning nil yields an empty Fields.
func (f *Fields) Clone() *Fields {
	out := &Fields{}
	if f == nil {
		return out
	}
	for _, k := range f.keys {
		out.Set(k, f.vals[k])
	}
	return out
}

// Merge copies every entry of other into f, overriding values on collision.
func (f *Fields) Merge(other *Fields) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		f.Set(k, other.vals[k])
	}
}

// Map returns an unordered copy of the entries.
func (f *Fields) Map() map[string]any {
	out := make(map[string]any, f.Len())
	if f == nil {
		return out
	}
	for k, v := range f.vals {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the entries as a JSON object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(f.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving the key order of the input.
func (f *Fields) UnmarshalJSON(b []byte) error {
	*f = Fields{}
	iter := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowIterator(b)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnIterator(iter)
	if iter.WhatIsNext() == jsoniter.NilValue {
		iter.Skip()
		return iter.Error
	}
	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		f.Set(key, it.Read())
		return true
	})
	if iter.Error == io.EOF {
		return nil
	}
	return iter.Error
}
