package entities

import (
	"slices"

	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
)

// Hex is one tile of the map
type Hex struct {
	ID     string `json:"id"`
	GameID string `json:"game_id"`
	Q      int    `json:"q"`
	R      int    `json:"r"`
	S      int    `json:"s"`
	// TerrainRating doubles as the defender's battle bonus
	TerrainRating int `json:"terrain_rating"`

	ResourceIndustry    int `json:"resource_industry"`
	ResourceAgriculture int `json:"resource_agriculture"`
	ResourceBuilding    int `json:"resource_building"`

	// OwnerID is empty while unowned
	OwnerID string `json:"owner_id,omitempty"`
	// ExploredBy only grows
	ExploredBy []string `json:"explored_by"`
}

// Coord returns the hex position
func (h *Hex) Coord() hexgrid.Coord {
	return hexgrid.New(h.Q, h.R)
}

// IsExploredBy reports whether the player has revealed the hex
func (h *Hex) IsExploredBy(playerID string) bool {
	return slices.Contains(h.ExploredBy, playerID)
}

// MarkExplored adds the player to the explorers. It returns false if the
// player had already explored the hex.
func (h *Hex) MarkExplored(playerID string) bool {
	if h.IsExploredBy(playerID) {
		return false
	}
	h.ExploredBy = append(h.ExploredBy, playerID)
	return true
}

// Clone returns a deep copy
func (h *Hex) Clone() *Hex {
	if h == nil {
		return nil
	}
	c := *h
	c.ExploredBy = slices.Clone(h.ExploredBy)
	return &c
}
