package engine

import "github.com/KirkDiggler/hexgame-api/internal/entities"

// ResolvePendingCards fires the player's queued general cards and ages the
// ones still lingering from earlier turns. It returns the extra movement
// granted per character; the caller keeps it on top of the movement reset.
//
// A card resolves once. Duration only tracks how long a resolved card stays
// in play; its bonus is never applied again.
func (e *Engine) ResolvePendingCards(s *State, playerID string) map[string]int {
	var pending, lingering []*entities.Card
	for _, card := range s.CardsOf(playerID) {
		switch {
		case card.PendingResolution && card.Type != entities.CardTypeBattle:
			pending = append(pending, card)
		case card.Lingering() && card.Type == entities.CardTypeGeneral:
			lingering = append(lingering, card)
		}
	}

	for _, card := range lingering {
		expire(s, card)
	}

	bonus := make(map[string]int)
	for _, card := range pending {
		if card.Type == entities.CardTypeStrategy {
			// strategy cards have no effect yet
			s.removeCard(card.ID)
			continue
		}

		applyGeneral(s, card, playerID, bonus)

		card.PendingResolution = false
		expire(s, card)
	}

	return bonus
}

func applyGeneral(s *State, card *entities.Card, playerID string, bonus map[string]int) {
	var target *entities.Character
	if card.TargetCharacterID != "" {
		if c, ok := s.Characters[card.TargetCharacterID]; ok && c.PlayerID == playerID {
			target = c
		}
	}

	if card.Effect.AdditionalMovement > 0 && target != nil {
		target.MovementPoints += card.Effect.AdditionalMovement
		bonus[target.ID] += card.Effect.AdditionalMovement
		s.saveCharacter(target)
	}

	if card.Effect.StatBonus == 0 || card.Effect.AffectsStat == entities.StatUnspecified {
		return
	}

	var affected []*entities.Character
	switch {
	case target != nil:
		affected = []*entities.Character{target}
	case card.TargetCharacterID == "":
		affected = s.CharactersOf(playerID)
	}
	for _, c := range affected {
		c.AddStat(card.Effect.AffectsStat, card.Effect.StatBonus)
		s.saveCharacter(c)
	}
}

// expire removes a card on its last turn, or ticks its duration down
func expire(s *State, card *entities.Card) {
	if card.Effect.Duration <= 1 {
		s.removeCard(card.ID)
		return
	}
	card.Effect.Duration--
	s.saveCard(card)
}
