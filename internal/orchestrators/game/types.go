package game

import (
	"github.com/KirkDiggler/hexgame-api/internal/engine"
	"github.com/KirkDiggler/hexgame-api/internal/entities"
)

// CreateGameInput defines the request for starting a game
type CreateGameInput struct {
	NumberOfPlayers int
	MapSize         int
}

// CreateGameOutput defines the response for starting a game
type CreateGameOutput struct {
	GameID string
	// PlayerIDs in turn order
	PlayerIDs []string
}

// GetStateInput defines the request for a player's view of a game
type GetStateInput struct {
	GameID   string
	PlayerID string
}

// GetStateOutput defines the response for a player's view of a game
type GetStateOutput struct {
	View *engine.View
}

// MoveInput defines the request for stepping a character
type MoveInput struct {
	GameID      string
	PlayerID    string
	CharacterID string
	TargetQ     int
	TargetR     int
}

// MoveOutput defines the response for stepping a character
type MoveOutput struct {
	View *engine.View
	// Battle is set when the step ran into an opposing character
	Battle *entities.Battle
}

// PlayCardInput defines the request for queueing a card
type PlayCardInput struct {
	GameID            string
	PlayerID          string
	CardID            string
	TargetCharacterID string
}

// PlayCardOutput defines the response for queueing a card
type PlayCardOutput struct {
	View *engine.View
}

// SubmitBattleActionInput defines the request for acting in a battle
type SubmitBattleActionInput struct {
	GameID   string
	PlayerID string
	BattleID string
	// BattleType is empty unless the defender is choosing it
	BattleType entities.BattleType
	CardIDs    []string
	Submit     bool
	SubmitTurn bool
}

// SubmitBattleActionOutput defines the response for acting in a battle
type SubmitBattleActionOutput struct {
	View *engine.View
}

// EndTurnInput defines the request for ending a player's turn
type EndTurnInput struct {
	GameID   string
	PlayerID string
}

// EndTurnOutput defines the response for ending a player's turn
type EndTurnOutput struct {
	View *engine.View
}
