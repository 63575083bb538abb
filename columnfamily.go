package rowmut

import (
	"github.com/andreyvit/rowmut/codec"
)

// ColumnFamily identifies a family (the wide-column analogue of a table)
// and carries the serializers for its row keys and column names. Define
// each family once at startup and share the value.
type ColumnFamily[K, C any] struct {
	name  string
	keys  codec.Serializer[K]
	names codec.Serializer[C]
}

func DefineColumnFamily[K, C any](name string, keys codec.Serializer[K], names codec.Serializer[C]) *ColumnFamily[K, C] {
	if name == "" {
		panic("rowmut: column family name is required")
	}
	if keys == nil {
		panic("rowmut: nil key serializer for column family " + name)
	}
	if names == nil {
		panic("rowmut: nil name serializer for column family " + name)
	}
	return &ColumnFamily[K, C]{name, keys, names}
}

func (cf *ColumnFamily[K, C]) Name() string {
	return cf.name
}
