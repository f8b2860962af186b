package types

import (
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// ArchetypeID is a stable 64-bit identity for an archetype. It is derived
// from the archetype's fully qualified Go type name, so the same struct
// hashes to the same ID across processes. Scene files use it as their map
// key.
type ArchetypeID uint64

// ArchetypeIDOf returns the ArchetypeID for the given archetype struct type.
func ArchetypeIDOf(t reflect.Type) ArchetypeID {
	return ArchetypeID(xxhash.Sum64String(t.PkgPath() + "." + t.Name()))
}

// TypeOf returns the reflect.Type of T without needing a value of it.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
