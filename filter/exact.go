package filter

import "reflect"

type exact struct {
	components []reflect.Type
}

// Exact matches archetypes that contain exactly the same components
// specified.
func Exact(components ...reflect.Type) ComponentFilter {
	return exact{components: components}
}

func (f exact) MatchesComponents(components []reflect.Type) bool {
	if len(components) != len(f.components) {
		return false
	}
	for _, componentType := range components {
		if !containsComponent(f.components, componentType) {
			return false
		}
	}
	return true
}
