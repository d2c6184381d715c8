package rpgtoolkit

import "github.com/KirkDiggler/rpg-toolkit/core"

// Entity references a hexgame record as a core.Entity
type Entity struct {
	ID   string
	Kind string
}

// GetID returns the record id
func (e *Entity) GetID() string {
	return e.ID
}

// GetType returns the record kind, e.g. "battle"
func (e *Entity) GetType() string {
	return e.Kind
}

// entityRef returns nil for an empty id so events carry no blank target
func entityRef(kind, id string) core.Entity {
	if id == "" {
		return nil
	}
	return &Entity{ID: id, Kind: kind}
}
