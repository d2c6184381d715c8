package engine

import (
	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
)

// Eligible returns nil when the player may act in the current round.
// Every active player acts in parallel until it submits its turn.
func Eligible(s *State, playerID string) error {
	if s.Game.IsFinished() {
		return errors.FailedPrecondition("game is finished")
	}

	player := s.Player(playerID)
	if player == nil {
		return errors.NotFoundf("player %s not found in game %s", playerID, s.Game.ID)
	}
	if !player.IsActive {
		return errors.FailedPrecondition("player has been eliminated")
	}
	if s.Game.HasSubmitted(playerID) {
		return errors.FailedPrecondition("not your turn")
	}

	return nil
}

// EndTurn finishes the player's round: pending cards resolve, movement
// resets, two cards are drawn, and the round advances once every active
// player is done.
func (e *Engine) EndTurn(s *State, playerID string) error {
	if err := Eligible(s, playerID); err != nil {
		return err
	}

	return e.endTurn(s, playerID)
}

func (e *Engine) endTurn(s *State, playerID string) error {
	drawn, err := e.pool.Draw(e.roller, CardsDrawnPerTurn)
	if err != nil {
		return err
	}

	bonus := e.ResolvePendingCards(s, playerID)
	for _, c := range s.CharactersOf(playerID) {
		c.MovementPoints = c.MaxMovementPoints + bonus[c.ID]
		s.saveCharacter(c)
	}

	for _, def := range drawn {
		s.addCard(def.NewCard(e.ids.Generate(entities.KindCard), s.Game.ID, playerID))
	}

	s.Game.MarkSubmitted(playerID)
	s.saveGame()

	return e.ResolveRound(s)
}

// ResolveRound advances the turn when every active player has submitted.
// The active battle resolves first if both of its sides submitted.
func (e *Engine) ResolveRound(s *State) error {
	for _, p := range s.ActivePlayers() {
		if !s.Game.HasSubmitted(p.ID) {
			return nil
		}
	}

	if b := s.ActiveBattle; b != nil && b.BothSubmitted() {
		if err := e.ResolveBattle(s, b); err != nil {
			return err
		}
	}

	s.Game.CurrentTurn++
	s.Game.SubmittedTurnPlayerIDs = []string{}
	s.saveGame()
	s.raise(EventRoundAdvanced, entities.KindGame, s.Game.ID, "", "")

	return nil
}

// PlayCardInput queues a general or strategy card for end of turn
type PlayCardInput struct {
	PlayerID          string
	CardID            string
	TargetCharacterID string
}

// PlayCard marks a card from the hand as pending. Its effect fires when
// the player ends the turn.
func (e *Engine) PlayCard(s *State, input PlayCardInput) error {
	if err := Eligible(s, input.PlayerID); err != nil {
		return err
	}

	card, ok := s.Cards[input.CardID]
	if !ok || card.PlayerID != input.PlayerID {
		return errors.NotFoundf("card %s not found in hand", input.CardID)
	}
	if !card.InHand() {
		return errors.FailedPreconditionf("card %s was already played", card.ID)
	}
	if card.Type == entities.CardTypeBattle {
		return errors.FailedPrecondition("battle cards can only be committed to a battle")
	}
	if b := s.ActiveBattle; b != nil && b.Involves(input.PlayerID) {
		return errors.FailedPrecondition("cannot play cards while engaged in a battle")
	}
	if input.TargetCharacterID != "" {
		target, ok := s.Characters[input.TargetCharacterID]
		if !ok || target.PlayerID != input.PlayerID {
			return errors.InvalidArgumentf("target character %s is not one of your characters", input.TargetCharacterID)
		}
	}

	card.PendingResolution = true
	card.PlayedOnTurn = s.Game.CurrentTurn
	card.TargetCharacterID = input.TargetCharacterID
	s.saveCard(card)

	return nil
}
