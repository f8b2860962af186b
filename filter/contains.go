package filter

import "reflect"

type contains struct {
	components []reflect.Type
}

// Contains matches archetypes that contain all the components specified.
func Contains(components ...reflect.Type) ComponentFilter {
	return &contains{components: components}
}

func (f *contains) MatchesComponents(components []reflect.Type) bool {
	for _, componentType := range f.components {
		if !containsComponent(components, componentType) {
			return false
		}
	}
	return true
}
