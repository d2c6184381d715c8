package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/hexgame-api/internal/engine"
	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
)

type SetupTestSuite struct {
	suite.Suite
}

func TestSetupSuite(t *testing.T) {
	suite.Run(t, new(SetupTestSuite))
}

func (s *SetupTestSuite) TestTwoPlayersMapSizeThree() {
	state, err := newTestEngine().NewGame(engine.NewGameInput{NumberOfPlayers: 2, MapSize: 3})
	s.Require().NoError(err)

	s.Len(state.Hexes, 37)
	for at, h := range state.Hexes {
		s.Equal(0, h.Q+h.R+h.S, "hex %s", at)
		s.Equal(at, h.Coord())
		s.GreaterOrEqual(h.TerrainRating, 1)
		s.LessOrEqual(h.TerrainRating, engine.MaxTerrainRating)
		s.GreaterOrEqual(h.ResourceIndustry, 0)
		s.LessOrEqual(h.ResourceIndustry, engine.MaxResourceYield)
	}

	s.Require().Len(state.Players, 2)
	s.Equal(entities.GameStatusInProgress, state.Game.Status)
	s.Equal(1, state.Game.CurrentTurn)
	s.Equal([]string{state.Players[0].ID, state.Players[1].ID}, state.Game.ParticipantPlayerIDs)
	s.Empty(state.Game.SubmittedTurnPlayerIDs)

	seen := map[hexgrid.Coord]bool{}
	for i, p := range state.Players {
		s.Equal(i, p.Index)
		s.True(p.IsActive)

		chars := state.CharactersOf(p.ID)
		s.Require().Len(chars, 1)
		c := chars[0]
		s.Equal(engine.StartingMovement, c.MovementPoints)
		s.Equal(engine.StartingMovement, c.MaxMovementPoints)
		for _, stat := range []int{c.Melee, c.Magic, c.Diplomacy} {
			s.GreaterOrEqual(stat, 1)
			s.LessOrEqual(stat, engine.MaxStartingStat)
		}

		start := state.Hexes[c.Coord()]
		s.Equal(p.ID, start.OwnerID)
		s.True(start.IsExploredBy(p.ID))
		s.False(seen[c.Coord()], "players share a starting hex")
		seen[c.Coord()] = true

		hand := state.CardsOf(p.ID)
		s.Len(hand, engine.StartingHandSize)
		for _, card := range hand {
			s.True(card.InHand())
		}
	}
}

func (s *SetupTestSuite) TestJournalOrder() {
	state, err := newTestEngine().NewGame(engine.NewGameInput{NumberOfPlayers: 2, MapSize: 3})
	s.Require().NoError(err)

	kinds := journalKinds(state)
	s.Require().NotEmpty(kinds)
	s.Equal(engine.MutationCreateGame, kinds[0])
	s.Equal(engine.MutationSaveGame, kinds[len(kinds)-1])

	journal := state.Journal()
	s.Equal(entities.GameStatusCreated, journal[0].Game.Status)
	s.Equal(entities.GameStatusInProgress, journal[len(journal)-1].Game.Status)

	counts := map[engine.MutationKind]int{}
	for _, k := range kinds {
		counts[k]++
	}
	s.Equal(2, counts[engine.MutationCreatePlayer])
	s.Equal(1, counts[engine.MutationCreateHexes])
	s.Equal(2, counts[engine.MutationCreateCharacter])
	s.Equal(8, counts[engine.MutationAddCard])

	for _, m := range journal {
		if m.Kind == engine.MutationCreateHexes {
			s.Len(m.Hexes, 37)
		}
	}
}

func (s *SetupTestSuite) TestStartingHexesFallBackWhenCrowded() {
	state, err := newTestEngine().NewGame(engine.NewGameInput{NumberOfPlayers: 8, MapSize: 3})
	s.Require().NoError(err)

	seen := map[hexgrid.Coord]bool{}
	for _, c := range state.Characters {
		s.False(seen[c.Coord()])
		seen[c.Coord()] = true
	}
	s.Len(seen, 8)
}

func (s *SetupTestSuite) TestValidation() {
	testCases := []struct {
		name  string
		input engine.NewGameInput
	}{
		{name: "too few players", input: engine.NewGameInput{NumberOfPlayers: 1, MapSize: 5}},
		{name: "too many players", input: engine.NewGameInput{NumberOfPlayers: 9, MapSize: 5}},
		{name: "map too small", input: engine.NewGameInput{NumberOfPlayers: 2, MapSize: 2}},
		{name: "map too large", input: engine.NewGameInput{NumberOfPlayers: 2, MapSize: 11}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := newTestEngine().NewGame(tc.input)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *SetupTestSuite) TestNewRequiresDependencies() {
	_, err := engine.New(&engine.Config{})
	s.True(errors.IsInvalidArgument(err))

	_, err = engine.New(nil)
	s.True(errors.IsInvalidArgument(err))
}
