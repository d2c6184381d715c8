package cards_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/hexgame-api/internal/cards"
	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/testutils"
)

const twoCardPool = `
version: 1
cards:
  - id: a
    name: Alpha
    type: battle
    weight: 1
    effect:
      battle_bonus: 3
      affects_stat: Melee
  - id: b
    name: Beta
    type: general
    weight: 3
    effect:
      stat_bonus: 1
      affects_stat: All
      duration: 1
`

type PoolTestSuite struct {
	suite.Suite
}

func TestPoolSuite(t *testing.T) {
	suite.Run(t, new(PoolTestSuite))
}

func (s *PoolTestSuite) TestDefaultPoolLoads() {
	pool, err := cards.Default()
	s.Require().NoError(err)
	s.Equal(cards.SupportedVersion, pool.Version())

	strike, ok := pool.Lookup("battle_1")
	s.Require().True(ok)
	s.Equal(entities.CardTypeBattle, strike.Type)

	training, ok := pool.Lookup("general_5")
	s.Require().True(ok)
	card := training.NewCard("card_1", "game_1", "player_1")
	s.Equal(entities.CardTypeGeneral, card.Type)
	s.Equal(entities.StatAll, card.Effect.AffectsStat)
	s.Equal(1, card.Effect.StatBonus)
	s.True(card.InHand())
}

func (s *PoolTestSuite) TestDrawIsWeighted() {
	pool, err := cards.Parse([]byte(twoCardPool))
	s.Require().NoError(err)

	// total weight 4: roll 1 -> a, rolls 2..4 -> b
	roller := testutils.NewSequenceRoller(1, 2, 3, 4)
	drawn, err := pool.Draw(roller, 4)
	s.Require().NoError(err)
	s.Require().Len(drawn, 4)
	s.Equal("a", drawn[0].ID)
	s.Equal("b", drawn[1].ID)
	s.Equal("b", drawn[2].ID)
	s.Equal("b", drawn[3].ID)
}

func (s *PoolTestSuite) TestParseRejectsBadPools() {
	testCases := []struct {
		name string
		data string
	}{
		{name: "wrong version", data: "version: 2\ncards:\n  - {id: a, name: A, type: battle, weight: 1}\n"},
		{name: "empty", data: "version: 1\ncards: []\n"},
		{name: "zero weight", data: "version: 1\ncards:\n  - {id: a, name: A, type: battle, weight: 0}\n"},
		{name: "duplicate id", data: "version: 1\ncards:\n  - {id: a, name: A, type: battle, weight: 1}\n  - {id: a, name: B, type: battle, weight: 1}\n"},
		{name: "missing type", data: "version: 1\ncards:\n  - {id: a, name: A, weight: 1}\n"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := cards.Parse([]byte(tc.data))
			s.Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *PoolTestSuite) TestParseRejectsUnknownTags() {
	_, err := cards.Parse([]byte("version: 1\ncards:\n  - {id: a, name: A, type: trap, weight: 1}\n"))
	s.Error(err)

	_, err = cards.Parse([]byte("version: 1\ncards:\n  - {id: a, name: A, type: battle, weight: 1, effect: {affects_stat: Luck}}\n"))
	s.Error(err)
}
