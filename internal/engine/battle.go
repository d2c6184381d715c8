package engine

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
)

// BattleActionInput carries the parts of a battle action. Parts apply in
// field order: type selection, card commitment, submission, turn submission.
type BattleActionInput struct {
	PlayerID string
	BattleID string
	// Type is chosen by the defender while the battle awaits it
	Type    entities.BattleType
	CardIDs []string
	Submit  bool
	// SubmitTurn ends the player's turn after the battle action
	SubmitTurn bool
}

func (in BattleActionInput) empty() bool {
	return in.Type == entities.BattleTypeUnset && len(in.CardIDs) == 0 && !in.Submit && !in.SubmitTurn
}

// BattleAction applies one request against the active battle. The whole
// request is validated before anything changes.
func (e *Engine) BattleAction(s *State, input BattleActionInput) error {
	if input.empty() {
		return errors.InvalidArgument("battle action must choose a type, commit cards or submit")
	}
	if err := Eligible(s, input.PlayerID); err != nil {
		return err
	}

	battle := s.ActiveBattle
	if battle == nil || battle.ID != input.BattleID {
		return errors.NotFoundf("battle %s is not active", input.BattleID)
	}
	side, ok := battle.SideOf(input.PlayerID)
	if !ok {
		return errors.PermissionDenied("player is not part of this battle")
	}

	committed, err := validateBattleAction(s, battle, side, input)
	if err != nil {
		return err
	}

	changed := false
	if input.Type != entities.BattleTypeUnset {
		selectType(s, battle, input.Type)
		changed = true
	}
	for _, card := range committed {
		card.PendingResolution = true
		card.PlayedOnTurn = s.Game.CurrentTurn
		s.saveCard(card)
		if side == entities.SideAttacker {
			battle.AttackerCards = append(battle.AttackerCards, card.ID)
		} else {
			battle.DefenderCards = append(battle.DefenderCards, card.ID)
		}
		changed = true
	}
	if input.Submit {
		if side == entities.SideAttacker {
			battle.AttackerSubmitted = true
		} else {
			battle.DefenderSubmitted = true
		}
		changed = true
	}
	if changed {
		s.saveBattle(battle)
	}

	if input.SubmitTurn {
		return e.endTurn(s, input.PlayerID)
	}
	return e.ResolveRound(s)
}

// validateBattleAction checks every part against the phase the battle
// will be in when that part applies, and returns the cards to commit
func validateBattleAction(
	s *State,
	battle *entities.Battle,
	side entities.Side,
	input BattleActionInput,
) ([]*entities.Card, error) {
	phase := battle.State

	if input.Type != entities.BattleTypeUnset {
		if side != entities.SideDefender {
			return nil, errors.PermissionDenied("only the defender chooses the battle type")
		}
		if phase != entities.BattleStateAwaitingType {
			return nil, errors.FailedPrecondition("battle type was already chosen")
		}
		phase = entities.BattleStateInProgress
	}

	if len(input.CardIDs) == 0 && !input.Submit {
		return nil, nil
	}

	if phase != entities.BattleStateInProgress {
		return nil, errors.FailedPrecondition("battle type has not been chosen")
	}
	if battle.Submitted(side) {
		return nil, errors.FailedPrecondition("battle already has a pending submission from this side")
	}

	committed := make([]*entities.Card, 0, len(input.CardIDs))
	seen := make(map[string]bool, len(input.CardIDs))
	for _, id := range input.CardIDs {
		if seen[id] {
			return nil, errors.InvalidArgumentf("card %s listed twice", id)
		}
		seen[id] = true

		card, ok := s.Cards[id]
		if !ok || card.PlayerID != input.PlayerID {
			return nil, errors.NotFoundf("card %s not found in hand", id)
		}
		if card.Type != entities.CardTypeBattle {
			return nil, errors.FailedPreconditionf("card %s is not a battle card", id)
		}
		if !card.InHand() {
			return nil, errors.FailedPreconditionf("card %s was already played", id)
		}
		committed = append(committed, card)
	}

	return committed, nil
}

// selectType sets the battle type and the opening scores
func selectType(s *State, battle *entities.Battle, t entities.BattleType) {
	battle.Type = t
	battle.AttackerScore = 0
	battle.DefenderScore = battle.TerrainBonus
	if c, ok := s.Characters[battle.AttackerCharacterID]; ok {
		battle.AttackerScore = c.StatFor(t)
	}
	if c, ok := s.Characters[battle.DefenderCharacterID]; ok {
		battle.DefenderScore += c.StatFor(t)
	}
	battle.State = entities.BattleStateInProgress
}

// BattleHistory is the audit record stored on a resolved battle
type BattleHistory struct {
	BattleType           entities.BattleType `json:"battleType"`
	InitialAttackerScore int                 `json:"initialAttackerScore"`
	InitialDefenderScore int                 `json:"initialDefenderScore"`
	TerrainBonus         int                 `json:"terrainBonus"`
	Steps                []string            `json:"steps"`
	FinalAttackerScore   int                 `json:"finalAttackerScore"`
	FinalDefenderScore   int                 `json:"finalDefenderScore"`
	WinnerPlayerID       string              `json:"winnerPlayerId,omitempty"`
	WinnerCharacterID    string              `json:"winnerCharacterId,omitempty"`
	LoserCharacterID     string              `json:"loserCharacterId,omitempty"`
	ResolvedTurn         int                 `json:"resolvedTurn"`
}

// ResolveBattle scores committed cards, applies the outcome and consumes
// the cards. Cards that are already gone are skipped.
func (e *Engine) ResolveBattle(s *State, battle *entities.Battle) error {
	if battle.IsCompleted {
		return errors.FailedPreconditionf("battle %s is already resolved", battle.ID)
	}

	history := BattleHistory{
		BattleType:           battle.Type,
		InitialAttackerScore: battle.AttackerScore,
		InitialDefenderScore: battle.DefenderScore,
		TerrainBonus:         battle.TerrainBonus,
		Steps:                []string{},
		ResolvedTurn:         s.Game.CurrentTurn,
	}

	for _, id := range battle.AttackerCards {
		if card, ok := s.Cards[id]; ok {
			history.Steps = append(history.Steps, applyBattleCard(battle, card, entities.SideAttacker)...)
		}
	}
	for _, id := range battle.DefenderCards {
		if card, ok := s.Cards[id]; ok {
			history.Steps = append(history.Steps, applyBattleCard(battle, card, entities.SideDefender)...)
		}
	}

	attacker, attackerOK := s.Characters[battle.AttackerCharacterID]
	defender, defenderOK := s.Characters[battle.DefenderCharacterID]

	var winner, loser *entities.Character
	switch {
	case attackerOK && defenderOK:
		if battle.AttackerScore > battle.DefenderScore {
			winner, loser = attacker, defender
		} else {
			winner, loser = defender, attacker
		}
	case attackerOK:
		winner = attacker
		history.Steps = append(history.Steps, "defender left the field")
	case defenderOK:
		winner = defender
		history.Steps = append(history.Steps, "attacker left the field")
	default:
		history.Steps = append(history.Steps, "both sides left the field")
	}

	if winner != nil && winner == attacker {
		winner.MoveTo(battle.Hex())
		s.saveCharacter(winner)
		if hex, ok := s.Hexes[battle.Hex()]; ok {
			hex.OwnerID = winner.PlayerID
			hex.MarkExplored(winner.PlayerID)
			s.saveHex(hex)
		}
	}
	if loser != nil {
		s.removeCharacter(loser.ID)
		CheckElimination(s, loser.PlayerID)
		history.LoserCharacterID = loser.ID
	}

	for _, id := range append(append([]string{}, battle.AttackerCards...), battle.DefenderCards...) {
		if _, ok := s.Cards[id]; ok {
			s.removeCard(id)
		}
	}

	history.FinalAttackerScore = battle.AttackerScore
	history.FinalDefenderScore = battle.DefenderScore
	if winner != nil {
		history.WinnerPlayerID = winner.PlayerID
		history.WinnerCharacterID = winner.ID
		battle.WinnerID = winner.PlayerID
	}

	raw, err := json.Marshal(history)
	if err != nil {
		return errors.Wrap(err, "failed to encode battle history")
	}

	battle.History = string(raw)
	battle.State = entities.BattleStateResolved
	battle.IsCompleted = true
	battle.CompletedTurn = s.Game.CurrentTurn
	s.saveBattle(battle)
	if s.ActiveBattle != nil && s.ActiveBattle.ID == battle.ID {
		s.ActiveBattle = nil
	}
	s.RecentBattles = append(s.RecentBattles, battle)

	s.raise(EventBattleResolved, entities.KindBattle, battle.ID, entities.KindPlayer, battle.WinnerID)

	return nil
}

// applyBattleCard adds one card's effect to the scores and describes it
func applyBattleCard(battle *entities.Battle, card *entities.Card, side entities.Side) []string {
	var steps []string
	effect := card.Effect

	if effect.BattleBonus != 0 && effect.AffectsStat.Matches(battle.Type) {
		if side == entities.SideAttacker {
			battle.AttackerScore += effect.BattleBonus
		} else {
			battle.DefenderScore += effect.BattleBonus
		}
		steps = append(steps, fmt.Sprintf("%s played %s: %+d to %s", sideName(side), card.Name,
			effect.BattleBonus, sideName(side)))
	}

	if effect.DefensiveBonus != 0 && side == entities.SideDefender {
		battle.DefenderScore += effect.DefensiveBonus
		steps = append(steps, fmt.Sprintf("defender played %s: %+d defense", card.Name, effect.DefensiveBonus))
	}

	if effect.NegateTerrain && side == entities.SideAttacker && battle.TerrainBonus != 0 {
		battle.DefenderScore -= battle.TerrainBonus
		steps = append(steps, fmt.Sprintf("attacker played %s: terrain bonus of %d negated", card.Name,
			battle.TerrainBonus))
		battle.TerrainBonus = 0
	}

	return steps
}

func sideName(side entities.Side) string {
	if side == entities.SideAttacker {
		return "attacker"
	}
	return "defender"
}
