// Package cas is a small content-addressed store. The history controller
// keeps its origin snapshot here, so every reset decodes a fresh copy and
// nothing can mutate the stored original.
package cas

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgryski/go-farm"
)

type Hash uint64

type Serde interface {
	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

type Hashable interface {
	Serde
}

type CAS interface {
	Put(item Hashable) (Hash, error)
	Has(hash Hash) bool
	getValue(hash Hash) (bool, []byte, error)
}

// Fingerprint hashes the serialized form of item without storing it.
func Fingerprint(item Hashable) (Hash, error) {
	data, err := encode(item)
	if err != nil {
		return 0, err
	}
	return Hash(farm.Hash64(data)), nil
}

// Retrieve decodes a fresh T from the bytes stored under hash.
func Retrieve[T any, PT interface {
	*T
	Hashable
}](c CAS, hash Hash) (PT, error) {
	has, data, err := c.getValue(hash)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, fmt.Errorf("hash not found in CAS: 0x%x", uint64(hash))
	}
	out := PT(new(T))
	if err := out.Deserialize(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("decoding 0x%x: %w", uint64(hash), err)
	}
	return out, nil
}

func encode(item Hashable) ([]byte, error) {
	var buf bytes.Buffer
	if err := item.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
