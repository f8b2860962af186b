package types

// ArchetypeInfo describes a registered archetype for logging and debug
// surfaces.
type ArchetypeInfo struct {
	ID         ArchetypeID `json:"id"`
	Name       string      `json:"name"`
	Components []string    `json:"components"`
	Saved      bool        `json:"saved"`
}
