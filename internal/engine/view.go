package engine

import (
	"slices"
	"sort"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
)

// VisibleHex is a hex the player can see. Unexplored hexes on the fog
// ring only show position and owner.
type VisibleHex struct {
	Hex      *entities.Hex
	Explored bool
}

// View is the game as one player sees it
type View struct {
	GameID      string
	Turn        int
	Round       int
	Status      entities.GameStatus
	Player      *entities.Player
	Hand        []*entities.Card
	CardsInPlay []*entities.Card
	// Characters are the player's own
	Characters    []*entities.Character
	AllCharacters []*entities.Character
	Hexes         []VisibleHex
	ActiveBattle  *entities.Battle
	RecentBattles []*entities.Battle
	CanAct        bool
	HasLost       bool

	SubmittedPlayerIDs   []string
	ParticipantPlayerIDs []string
}

// BuildView projects the state for a participant, eliminated or not
func BuildView(s *State, playerID string) (*View, error) {
	player := s.Player(playerID)
	if player == nil || !s.Game.IsParticipant(playerID) {
		return nil, errors.NotFoundf("player %s not found in game %s", playerID, s.Game.ID)
	}

	view := &View{
		GameID:               s.Game.ID,
		Turn:                 s.Game.CurrentTurn,
		Round:                s.Game.CurrentTurn,
		Status:               s.Game.Status,
		Player:               player.Clone(),
		CanAct:               Eligible(s, playerID) == nil,
		SubmittedPlayerIDs:   slices.Clone(s.Game.SubmittedTurnPlayerIDs),
		ParticipantPlayerIDs: slices.Clone(s.Game.ParticipantPlayerIDs),
		ActiveBattle:         s.ActiveBattle.Clone(),
	}

	for _, card := range s.CardsOf(playerID) {
		if card.InHand() {
			view.Hand = append(view.Hand, card.Clone())
		} else {
			view.CardsInPlay = append(view.CardsInPlay, card.Clone())
		}
	}

	for _, c := range s.CharactersOf(playerID) {
		view.Characters = append(view.Characters, c.Clone())
	}
	view.HasLost = !player.IsActive || len(view.Characters) == 0

	order := make(map[string]int, len(s.Players))
	for _, p := range s.Players {
		order[p.ID] = p.Index
	}
	for _, c := range s.Characters {
		view.AllCharacters = append(view.AllCharacters, c.Clone())
	}
	sort.Slice(view.AllCharacters, func(i, j int) bool {
		a, b := view.AllCharacters[i], view.AllCharacters[j]
		if order[a.PlayerID] != order[b.PlayerID] {
			return order[a.PlayerID] < order[b.PlayerID]
		}
		return a.ID < b.ID
	})

	view.Hexes = visibleHexes(s, playerID)

	for _, b := range s.RecentBattles {
		view.RecentBattles = append(view.RecentBattles, b.Clone())
	}

	return view, nil
}

// visibleHexes returns explored hexes plus the unexplored ring around them,
// ordered by q then r
func visibleHexes(s *State, playerID string) []VisibleHex {
	visible := make(map[hexgrid.Coord]bool)
	for at, h := range s.Hexes {
		if !h.IsExploredBy(playerID) {
			continue
		}
		visible[at] = true
		for _, n := range at.Neighbors() {
			if _, ok := s.Hexes[n]; ok {
				visible[n] = true
			}
		}
	}

	out := make([]VisibleHex, 0, len(visible))
	for at := range visible {
		h := s.Hexes[at]
		if h.IsExploredBy(playerID) {
			out = append(out, VisibleHex{Hex: h.Clone(), Explored: true})
			continue
		}
		out = append(out, VisibleHex{Hex: &entities.Hex{
			ID:         h.ID,
			GameID:     h.GameID,
			Q:          h.Q,
			R:          h.R,
			S:          h.S,
			OwnerID:    h.OwnerID,
			ExploredBy: []string{},
		}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hex.Q != out[j].Hex.Q {
			return out[i].Hex.Q < out[j].Hex.Q
		}
		return out[i].Hex.R < out[j].Hex.R
	})
	return out
}
