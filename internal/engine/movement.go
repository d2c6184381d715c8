package engine

import (
	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
)

// MoveInput moves one character a single step
type MoveInput struct {
	PlayerID    string
	CharacterID string
	Target      hexgrid.Coord
}

// MoveResult describes what the step did
type MoveResult struct {
	Revealed bool
	Moved    bool
	// Battle is set when the step ran into an opposing character
	Battle *entities.Battle
}

// Move steps a character onto an adjacent hex. Revealing an unexplored hex
// costs one point and moving costs another. Stepping onto an opponent
// starts a battle instead of moving.
func (e *Engine) Move(s *State, input MoveInput) (*MoveResult, error) {
	if err := Eligible(s, input.PlayerID); err != nil {
		return nil, err
	}

	char, ok := s.Characters[input.CharacterID]
	if !ok || char.PlayerID != input.PlayerID {
		return nil, errors.NotFoundf("character %s not found for player %s", input.CharacterID, input.PlayerID)
	}
	if b := s.ActiveBattle; b != nil && b.Involves(char.ID) {
		return nil, errors.FailedPrecondition("character is engaged in a battle")
	}

	hex, ok := s.Hexes[input.Target]
	if !ok {
		return nil, errors.InvalidArgumentf("hex %s does not exist", input.Target)
	}
	if !hexgrid.Adjacent(char.Coord(), input.Target) {
		return nil, errors.InvalidArgumentf("hex %s is not adjacent to %s", input.Target, char.Coord())
	}
	if char.MovementPoints <= 0 {
		return nil, errors.FailedPrecondition("insufficient movement points")
	}

	occupant := s.opponentAt(input.Target, input.PlayerID)
	if occupant != nil && s.ActiveBattle != nil {
		return nil, errors.FailedPrecondition("another battle is already in progress")
	}

	result := &MoveResult{}
	if hex.MarkExplored(input.PlayerID) {
		char.SpendMovement(1)
		result.Revealed = true
	}

	if occupant != nil {
		if result.Revealed {
			s.saveHex(hex)
			s.saveCharacter(char)
		}
		result.Battle = e.startBattle(s, char, occupant, hex)
		return result, nil
	}

	char.MoveTo(input.Target)
	char.SpendMovement(1)
	hex.OwnerID = input.PlayerID
	result.Moved = true

	s.saveHex(hex)
	s.saveCharacter(char)

	return result, nil
}

func (e *Engine) startBattle(s *State, attacker, defender *entities.Character, hex *entities.Hex) *entities.Battle {
	battle := &entities.Battle{
		ID:                  e.ids.Generate(entities.KindBattle),
		GameID:              s.Game.ID,
		AttackerCharacterID: attacker.ID,
		DefenderCharacterID: defender.ID,
		AttackerPlayerID:    attacker.PlayerID,
		DefenderPlayerID:    defender.PlayerID,
		HexQ:                hex.Q,
		HexR:                hex.R,
		State:               entities.BattleStateAwaitingType,
		TerrainBonus:        hex.TerrainRating,
		AttackerCards:       []string{},
		DefenderCards:       []string{},
		CreatedTurn:         s.Game.CurrentTurn,
	}
	s.createBattle(battle)

	return battle
}
