package entities

import (
	"slices"

	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
)

// Side identifies one party of a battle
type Side string

// Sides
const (
	SideAttacker Side = "ATTACKER"
	SideDefender Side = "DEFENDER"
)

// Battle is a contest between two characters over one hex
type Battle struct {
	ID                  string      `json:"id"`
	GameID              string      `json:"game_id"`
	AttackerCharacterID string      `json:"attacker_character_id"`
	DefenderCharacterID string      `json:"defender_character_id"`
	AttackerPlayerID    string      `json:"attacker_player_id"`
	DefenderPlayerID    string      `json:"defender_player_id"`
	HexQ                int         `json:"hex_q"`
	HexR                int         `json:"hex_r"`
	State               BattleState `json:"state"`
	Type                BattleType  `json:"type,omitempty"`

	AttackerScore int `json:"attacker_score"`
	DefenderScore int `json:"defender_score"`
	// TerrainBonus is zeroed once an attacker card negates it
	TerrainBonus int `json:"terrain_bonus"`

	AttackerSubmitted bool     `json:"attacker_submitted"`
	DefenderSubmitted bool     `json:"defender_submitted"`
	AttackerCards     []string `json:"attacker_cards"`
	DefenderCards     []string `json:"defender_cards"`

	IsCompleted   bool   `json:"is_completed"`
	WinnerID      string `json:"winner_id,omitempty"`
	CreatedTurn   int    `json:"created_turn"`
	CompletedTurn int    `json:"completed_turn,omitempty"`
	// History is the JSON record written at resolution
	History string `json:"history,omitempty"`
}

// Hex returns the contested coordinate
func (b *Battle) Hex() hexgrid.Coord {
	return hexgrid.New(b.HexQ, b.HexR)
}

// SideOf returns the side the player fights on
func (b *Battle) SideOf(playerID string) (Side, bool) {
	switch playerID {
	case b.AttackerPlayerID:
		return SideAttacker, true
	case b.DefenderPlayerID:
		return SideDefender, true
	default:
		return "", false
	}
}

// Involves reports whether the character or player takes part
func (b *Battle) Involves(id string) bool {
	return id == b.AttackerCharacterID || id == b.DefenderCharacterID ||
		id == b.AttackerPlayerID || id == b.DefenderPlayerID
}

// Submitted reports whether the side has locked in
func (b *Battle) Submitted(side Side) bool {
	if side == SideAttacker {
		return b.AttackerSubmitted
	}
	return b.DefenderSubmitted
}

// BothSubmitted reports whether the battle is ready to resolve
func (b *Battle) BothSubmitted() bool {
	return b.State == BattleStateInProgress && b.AttackerSubmitted && b.DefenderSubmitted
}

// Clone returns a deep copy
func (b *Battle) Clone() *Battle {
	if b == nil {
		return nil
	}
	c := *b
	c.AttackerCards = slices.Clone(b.AttackerCards)
	c.DefenderCards = slices.Clone(b.DefenderCards)
	return &c
}
