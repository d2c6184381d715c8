package entities

import "github.com/KirkDiggler/hexgame-api/internal/hexgrid"

// Character is a game piece owned by a player
type Character struct {
	ID                string `json:"id"`
	GameID            string `json:"game_id"`
	PlayerID          string `json:"player_id"`
	Q                 int    `json:"q"`
	R                 int    `json:"r"`
	Melee             int    `json:"melee"`
	Magic             int    `json:"magic"`
	Diplomacy         int    `json:"diplomacy"`
	MovementPoints    int    `json:"movement_points"`
	MaxMovementPoints int    `json:"max_movement_points"`
}

// Coord returns the character position
func (c *Character) Coord() hexgrid.Coord {
	return hexgrid.New(c.Q, c.R)
}

// MoveTo relocates the character
func (c *Character) MoveTo(to hexgrid.Coord) {
	c.Q = to.Q
	c.R = to.R
}

// StatFor returns the stat used in a battle of the given type
func (c *Character) StatFor(t BattleType) int {
	switch t {
	case BattleTypeMelee:
		return c.Melee
	case BattleTypeMagic:
		return c.Magic
	case BattleTypeDiplomacy:
		return c.Diplomacy
	default:
		return 0
	}
}

// AddStat raises the named stat; StatAll raises all three. Unspecified is a
// no-op.
func (c *Character) AddStat(stat Stat, amount int) {
	switch stat {
	case StatMelee:
		c.Melee += amount
	case StatMagic:
		c.Magic += amount
	case StatDiplomacy:
		c.Diplomacy += amount
	case StatAll:
		c.Melee += amount
		c.Magic += amount
		c.Diplomacy += amount
	}
}

// SpendMovement removes points, never going below zero
func (c *Character) SpendMovement(points int) {
	c.MovementPoints = max(0, c.MovementPoints-points)
}

// Clone returns a copy
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
