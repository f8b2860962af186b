package filter

import "reflect"

// Component returns the reflect.Type key for component type T, for use with
// Contains and Exact.
func Component[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func containsComponent(components []reflect.Type, c reflect.Type) bool {
	for _, comp := range components {
		if comp == c {
			return true
		}
	}
	return false
}
