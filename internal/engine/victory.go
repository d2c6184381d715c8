package engine

import "github.com/KirkDiggler/hexgame-api/internal/entities"

// CheckElimination runs after a character of the player is removed. A
// player without characters is out for good; the game finishes when at
// most one player is left.
func CheckElimination(s *State, playerID string) {
	if player := s.Player(playerID); player != nil && player.IsActive && len(s.CharactersOf(playerID)) == 0 {
		player.IsActive = false
		s.savePlayer(player)
		s.raise(EventPlayerEliminated, entities.KindPlayer, player.ID, entities.KindGame, s.Game.ID)
	}

	if s.Game.IsFinished() {
		return
	}

	active := s.ActivePlayers()
	if len(active) > 1 {
		return
	}

	s.Game.Status = entities.GameStatusFinished
	s.saveGame()

	winner := ""
	if len(active) == 1 {
		winner = active[0].ID
	}
	s.raise(EventGameFinished, entities.KindGame, s.Game.ID, entities.KindPlayer, winner)
}
