// Package entities holds the persisted records of a hexgame. Records are
// flat and reference each other by id.
package entities

import (
	"slices"
	"time"
)

// Game is the root record of a match
type Game struct {
	ID              string     `json:"id"`
	NumberOfPlayers int        `json:"number_of_players"`
	MapSize         int        `json:"map_size"`
	CurrentTurn     int        `json:"current_turn"`
	Status          GameStatus `json:"status"`
	// ParticipantPlayerIDs is fixed at creation, in turn-order
	ParticipantPlayerIDs []string `json:"participant_player_ids"`
	// SubmittedTurnPlayerIDs lists players done with the current round
	SubmittedTurnPlayerIDs []string  `json:"submitted_turn_player_ids"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// IsFinished reports whether the game has ended
func (g *Game) IsFinished() bool {
	return g.Status == GameStatusFinished
}

// IsParticipant reports whether the player took part in the game
func (g *Game) IsParticipant(playerID string) bool {
	return slices.Contains(g.ParticipantPlayerIDs, playerID)
}

// HasSubmitted reports whether the player already ended the current round
func (g *Game) HasSubmitted(playerID string) bool {
	return slices.Contains(g.SubmittedTurnPlayerIDs, playerID)
}

// MarkSubmitted records the player as done with the current round
func (g *Game) MarkSubmitted(playerID string) {
	if !g.HasSubmitted(playerID) {
		g.SubmittedTurnPlayerIDs = append(g.SubmittedTurnPlayerIDs, playerID)
	}
}

// Clone returns a deep copy
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	c := *g
	c.ParticipantPlayerIDs = slices.Clone(g.ParticipantPlayerIDs)
	c.SubmittedTurnPlayerIDs = slices.Clone(g.SubmittedTurnPlayerIDs)
	return &c
}

// Player is a seat in a game
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id"`
	// Index is the 0-based turn-order slot
	Index int `json:"index"`
	// IsActive flips to false once, when the player loses its last character
	IsActive bool `json:"is_active"`
}

// Clone returns a copy
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
