package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/hexgame-api/internal/engine"
	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
)

func TestBuildViewFogOfWar(t *testing.T) {
	s := newTwoPlayerState()

	view, err := engine.BuildView(s, player1)
	require.NoError(t, err)

	// the origin plus its six neighbours
	require.Len(t, view.Hexes, 7)
	explored := 0
	for _, vh := range view.Hexes {
		assert.Equal(t, 0, vh.Hex.Q+vh.Hex.R+vh.Hex.S)
		if vh.Explored {
			explored++
			assert.Equal(t, hexgrid.New(0, 0), vh.Hex.Coord())
			assert.Equal(t, 2, vh.Hex.TerrainRating)
			continue
		}
		assert.Equal(t, 1, hexgrid.Distance(hexgrid.Origin, vh.Hex.Coord()))
		assert.Zero(t, vh.Hex.TerrainRating, "unexplored hexes hide their terrain")
	}
	assert.Equal(t, 1, explored)

	for i := 1; i < len(view.Hexes); i++ {
		a, b := view.Hexes[i-1].Hex, view.Hexes[i].Hex
		assert.True(t, a.Q < b.Q || (a.Q == b.Q && a.R < b.R))
	}
}

func TestBuildViewRingGrowsWithExploration(t *testing.T) {
	s := newTwoPlayerState()
	e := newTestEngine()

	_, err := e.Move(s, engine.MoveInput{PlayerID: player1, CharacterID: hero, Target: hexgrid.New(-1, 0)})
	require.NoError(t, err)

	view, err := engine.BuildView(s, player1)
	require.NoError(t, err)

	// origin and (-1,0) share two neighbours and each other
	assert.Len(t, view.Hexes, 10)
	explored := 0
	for _, vh := range view.Hexes {
		if vh.Explored {
			explored++
		}
	}
	assert.Equal(t, 2, explored)
}

func TestBuildViewContents(t *testing.T) {
	s := newTwoPlayerState()
	giveCard(s, "c_boon", player1, entities.CardTypeGeneral, entities.CardEffect{Duration: 1})
	giveCard(s, "c_strike", player1, entities.CardTypeBattle, entities.CardEffect{BattleBonus: 3})
	giveCard(s, "c_theirs", player2, entities.CardTypeBattle, entities.CardEffect{BattleBonus: 3})
	e := newTestEngine()
	require.NoError(t, e.PlayCard(s, engine.PlayCardInput{PlayerID: player1, CardID: "c_boon"}))

	view, err := engine.BuildView(s, player1)
	require.NoError(t, err)

	assert.Equal(t, gameID, view.GameID)
	assert.Equal(t, 1, view.Turn)
	assert.Equal(t, 1, view.Round)
	assert.Equal(t, entities.GameStatusInProgress, view.Status)
	assert.True(t, view.CanAct)
	assert.False(t, view.HasLost)
	assert.Equal(t, []string{player1, player2}, view.ParticipantPlayerIDs)
	assert.Empty(t, view.SubmittedPlayerIDs)

	require.Len(t, view.Hand, 1)
	assert.Equal(t, "c_strike", view.Hand[0].ID)
	require.Len(t, view.CardsInPlay, 1)
	assert.Equal(t, "c_boon", view.CardsInPlay[0].ID)

	require.Len(t, view.Characters, 1)
	assert.Equal(t, hero, view.Characters[0].ID)
	require.Len(t, view.AllCharacters, 2)
	assert.Equal(t, hero, view.AllCharacters[0].ID)
	assert.Equal(t, rival, view.AllCharacters[1].ID)
	assert.Nil(t, view.ActiveBattle)

	view.Characters[0].Melee = 99
	assert.Equal(t, 7, s.Characters[hero].Melee, "views are copies")
}

func TestBuildViewAfterSubmittingAndLosing(t *testing.T) {
	s := newTwoPlayerState()
	e := newTestEngine()
	require.NoError(t, e.EndTurn(s, player1))

	view, err := engine.BuildView(s, player1)
	require.NoError(t, err)
	assert.False(t, view.CanAct)
	assert.Equal(t, []string{player1}, view.SubmittedPlayerIDs)

	delete(s.Characters, rival)
	engine.CheckElimination(s, player2)

	lost, err := engine.BuildView(s, player2)
	require.NoError(t, err)
	assert.True(t, lost.HasLost)
	assert.False(t, lost.CanAct)
	assert.Equal(t, entities.GameStatusFinished, lost.Status)
	assert.Empty(t, lost.Characters)
	assert.Len(t, lost.AllCharacters, 1)
}

func TestBuildViewUnknownPlayer(t *testing.T) {
	_, err := engine.BuildView(newTwoPlayerState(), "player_unknown")
	assert.True(t, errors.IsNotFound(err))
}
