package cards_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/repositories/cards"
	"github.com/KirkDiggler/hexgame-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	cleanup func()
	repo    cards.Repository
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := cards.NewRedis(&cards.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) add(id string, cardType entities.CardType) *entities.Card {
	card := &entities.Card{
		ID:           id,
		GameID:       "game_1",
		PlayerID:     "player_1",
		Type:         cardType,
		DefinitionID: "general_5",
		Name:         "Training",
		Effect:       entities.CardEffect{StatBonus: 1, AffectsStat: entities.StatAll, Duration: 1},
	}
	_, err := s.repo.Add(s.ctx, cards.AddInput{Card: card})
	s.Require().NoError(err)
	return card
}

func (s *RedisRepositoryTestSuite) TestPendingIndexFollowsUpdates() {
	c1 := s.add("card_1", entities.CardTypeGeneral)
	s.add("card_2", entities.CardTypeBattle)

	pending, err := s.repo.ListPendingByPlayer(s.ctx, cards.ListPendingByPlayerInput{PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Empty(pending.Cards)

	played := c1.Clone()
	played.PendingResolution = true
	played.PlayedOnTurn = 1
	_, err = s.repo.Update(s.ctx, cards.UpdateInput{Card: played})
	s.Require().NoError(err)

	pending, err = s.repo.ListPendingByPlayer(s.ctx, cards.ListPendingByPlayerInput{PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Require().Len(pending.Cards, 1)
	s.Equal("card_1", pending.Cards[0].ID)
	s.Equal(entities.StatAll, pending.Cards[0].Effect.AffectsStat)

	played.PendingResolution = false
	_, err = s.repo.Update(s.ctx, cards.UpdateInput{Card: played})
	s.Require().NoError(err)

	pending, err = s.repo.ListPendingByPlayer(s.ctx, cards.ListPendingByPlayerInput{PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Empty(pending.Cards)

	hand, err := s.repo.ListByPlayer(s.ctx, cards.ListByPlayerInput{PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Len(hand.Cards, 2)
}

func (s *RedisRepositoryTestSuite) TestRemoveIsIdempotent() {
	card := s.add("card_1", entities.CardTypeBattle)
	card.PendingResolution = true
	_, err := s.repo.Update(s.ctx, cards.UpdateInput{Card: card})
	s.Require().NoError(err)

	out, err := s.repo.Remove(s.ctx, cards.RemoveInput{ID: "card_1"})
	s.Require().NoError(err)
	s.True(out.Removed)

	out, err = s.repo.Remove(s.ctx, cards.RemoveInput{ID: "card_1"})
	s.Require().NoError(err)
	s.False(out.Removed)

	_, err = s.repo.Get(s.ctx, cards.GetInput{ID: "card_1"})
	s.True(errors.IsNotFound(err))

	pending, err := s.repo.ListPendingByPlayer(s.ctx, cards.ListPendingByPlayerInput{PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Empty(pending.Cards)
}

func (s *RedisRepositoryTestSuite) TestErrors() {
	_, err := s.repo.Update(s.ctx, cards.UpdateInput{Card: &entities.Card{ID: "missing", PlayerID: "player_1"}})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Add(s.ctx, cards.AddInput{Card: &entities.Card{ID: "card_x"}})
	s.True(errors.IsInvalidArgument(err))

	s.add("card_dup", entities.CardTypeBattle)
	_, err = s.repo.Add(s.ctx, cards.AddInput{Card: &entities.Card{ID: "card_dup", PlayerID: "player_1"}})
	s.Equal(errors.CodeAlreadyExists, errors.GetCode(err))
}
