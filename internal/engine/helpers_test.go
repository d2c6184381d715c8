package engine_test

import (
	"github.com/KirkDiggler/hexgame-api/internal/cards"
	"github.com/KirkDiggler/hexgame-api/internal/engine"
	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
	"github.com/KirkDiggler/hexgame-api/internal/pkg/idgen"
	"github.com/KirkDiggler/hexgame-api/internal/testutils"
)

const (
	gameID  = "game_1"
	player1 = "player_1"
	player2 = "player_2"
	player3 = "player_3"
	hero    = "character_hero"
	rival   = "character_rival"
)

// newTestEngine rolls 1 forever unless values are given, so every draw is
// the first pool entry
func newTestEngine(values ...int) *engine.Engine {
	pool, err := cards.Default()
	if err != nil {
		panic(err)
	}
	if len(values) == 0 {
		values = []int{1}
	}
	e, err := engine.New(&engine.Config{
		Roller: testutils.NewSequenceRoller(values...),
		Pool:   pool,
		IDs:    idgen.NewSequential(),
	})
	if err != nil {
		panic(err)
	}
	return e
}

// newTwoPlayerState builds a radius 2 map with terrain 2 everywhere. The
// hero of player_1 stands on the origin, the rival of player_2 on (1,-1).
func newTwoPlayerState() *engine.State {
	game := &entities.Game{
		ID:                     gameID,
		NumberOfPlayers:        2,
		MapSize:                2,
		CurrentTurn:            1,
		Status:                 entities.GameStatusInProgress,
		ParticipantPlayerIDs:   []string{player1, player2},
		SubmittedTurnPlayerIDs: []string{},
	}
	players := []*entities.Player{
		{ID: player1, GameID: gameID, Index: 0, IsActive: true},
		{ID: player2, GameID: gameID, Index: 1, IsActive: true},
	}
	characters := []*entities.Character{
		{
			ID: hero, GameID: gameID, PlayerID: player1,
			Q: 0, R: 0, Melee: 7, Magic: 3, Diplomacy: 2,
			MovementPoints: 2, MaxMovementPoints: 2,
		},
		{
			ID: rival, GameID: gameID, PlayerID: player2,
			Q: 1, R: -1, Melee: 5, Magic: 6, Diplomacy: 4,
			MovementPoints: 2, MaxMovementPoints: 2,
		},
	}

	var hexes []*entities.Hex
	for _, c := range hexgrid.Range(2) {
		h := &entities.Hex{
			ID: "hex_" + c.String(), GameID: gameID,
			Q: c.Q, R: c.R, S: c.S(),
			TerrainRating: 2,
			ExploredBy:    []string{},
		}
		switch c {
		case hexgrid.New(0, 0):
			h.OwnerID = player1
			h.ExploredBy = []string{player1}
		case hexgrid.New(1, -1):
			h.OwnerID = player2
			h.ExploredBy = []string{player2}
		}
		hexes = append(hexes, h)
	}

	return engine.NewState(game, players, characters, hexes, nil, nil)
}

// addThirdPlayer seats player_3 with a character on (-1,1)
func addThirdPlayer(s *engine.State) {
	s.Game.NumberOfPlayers = 3
	s.Game.ParticipantPlayerIDs = append(s.Game.ParticipantPlayerIDs, player3)
	s.Players = append(s.Players, &entities.Player{ID: player3, GameID: gameID, Index: 2, IsActive: true})
	s.Characters["character_third"] = &entities.Character{
		ID: "character_third", GameID: gameID, PlayerID: player3,
		Q: -1, R: 1, Melee: 4, Magic: 4, Diplomacy: 4,
		MovementPoints: 2, MaxMovementPoints: 2,
	}
}

func giveCard(s *engine.State, id, playerID string, cardType entities.CardType, effect entities.CardEffect) *entities.Card {
	card := &entities.Card{
		ID:           id,
		GameID:       gameID,
		PlayerID:     playerID,
		Type:         cardType,
		DefinitionID: id,
		Name:         id,
		Effect:       effect,
	}
	s.Cards[id] = card
	return card
}

func journalKinds(s *engine.State) []engine.MutationKind {
	var out []engine.MutationKind
	for _, m := range s.Journal() {
		out = append(out, m.Kind)
	}
	return out
}

func eventKinds(s *engine.State) []engine.EventKind {
	var out []engine.EventKind
	for _, e := range s.Events() {
		out = append(out, e.Kind)
	}
	return out
}
