package engine

import (
	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
)

// NewGameInput contains the parameters of a new game
type NewGameInput struct {
	NumberOfPlayers int
	MapSize         int
}

// Validate checks player count and map size
func (in NewGameInput) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("number_of_players", in.NumberOfPlayers, MinPlayers, MaxPlayers, vb)
	errors.ValidateRange("map_size", in.MapSize, MinMapSize, MaxMapSize, vb)
	return vb.Build()
}

// NewGame generates the map, seats the players and deals starting hands.
// The returned state journals every record to create.
func (e *Engine) NewGame(input NewGameInput) (*State, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	game := &entities.Game{
		ID:                     e.ids.Generate(entities.KindGame),
		NumberOfPlayers:        input.NumberOfPlayers,
		MapSize:                input.MapSize,
		CurrentTurn:            1,
		Status:                 entities.GameStatusCreated,
		ParticipantPlayerIDs:   []string{},
		SubmittedTurnPlayerIDs: []string{},
	}

	hexes, err := e.generateMap(game.ID, input.MapSize)
	if err != nil {
		return nil, err
	}

	starts, err := e.startingHexes(input.MapSize, input.NumberOfPlayers)
	if err != nil {
		return nil, err
	}

	s := NewState(game, nil, nil, hexes, nil, nil)
	s.record(Mutation{Kind: MutationCreateGame, ID: game.ID, Game: game.Clone()})

	var characters []*entities.Character
	var hands []*entities.Card
	for i, start := range starts {
		player := &entities.Player{
			ID:       e.ids.Generate(entities.KindPlayer),
			GameID:   game.ID,
			Index:    i,
			IsActive: true,
		}
		s.Players = append(s.Players, player)
		game.ParticipantPlayerIDs = append(game.ParticipantPlayerIDs, player.ID)
		s.record(Mutation{Kind: MutationCreatePlayer, ID: player.ID, Player: player.Clone()})

		hex := s.Hexes[start]
		hex.OwnerID = player.ID
		hex.MarkExplored(player.ID)

		character, err := e.newCharacter(game.ID, player.ID, start)
		if err != nil {
			return nil, err
		}
		characters = append(characters, character)

		defs, err := e.pool.Draw(e.roller, StartingHandSize)
		if err != nil {
			return nil, err
		}
		for _, def := range defs {
			hands = append(hands, def.NewCard(e.ids.Generate(entities.KindCard), game.ID, player.ID))
		}
	}

	created := make([]*entities.Hex, 0, len(hexes))
	for _, h := range hexes {
		created = append(created, h.Clone())
	}
	s.record(Mutation{Kind: MutationCreateHexes, ID: game.ID, Hexes: created})

	for _, c := range characters {
		s.Characters[c.ID] = c
		s.record(Mutation{Kind: MutationCreateCharacter, ID: c.ID, Character: c.Clone()})
	}
	for _, card := range hands {
		s.addCard(card)
	}

	game.Status = entities.GameStatusInProgress
	s.saveGame()

	return s, nil
}

// generateMap rolls terrain and resources for every hex within the radius
func (e *Engine) generateMap(gameID string, radius int) ([]*entities.Hex, error) {
	coords := hexgrid.Range(radius)
	hexes := make([]*entities.Hex, 0, len(coords))
	for _, c := range coords {
		rolls, err := e.roller.RollN(3, MaxResourceYield+1)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll hex")
		}
		terrain, err := e.roller.Roll(MaxTerrainRating)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll terrain")
		}

		hexes = append(hexes, &entities.Hex{
			ID:                  e.ids.Generate(entities.KindHex),
			GameID:              gameID,
			Q:                   c.Q,
			R:                   c.R,
			S:                   c.S(),
			TerrainRating:       terrain,
			ResourceIndustry:    rolls[0] - 1,
			ResourceAgriculture: rolls[1] - 1,
			ResourceBuilding:    rolls[2] - 1,
			ExploredBy:          []string{},
		})
	}
	return hexes, nil
}

// startingHexes spreads players near the centre, keeping picks at least
// MinStartingSeparation apart while the candidates last
func (e *Engine) startingHexes(mapSize, players int) ([]hexgrid.Coord, error) {
	radius := max(2, mapSize/2)

	var candidates, remaining []hexgrid.Coord
	for _, c := range hexgrid.Range(mapSize) {
		remaining = append(remaining, c)
		if c.Length() <= radius {
			candidates = append(candidates, c)
		}
	}

	starts := make([]hexgrid.Coord, 0, players)
	for len(starts) < players {
		pool := candidates
		if len(pool) == 0 {
			pool = remaining
		}

		roll, err := e.roller.Roll(len(pool))
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll starting hex")
		}
		pick := pool[roll-1]
		starts = append(starts, pick)

		candidates = filterCoords(candidates, func(c hexgrid.Coord) bool {
			return hexgrid.Distance(c, pick) >= MinStartingSeparation
		})
		remaining = filterCoords(remaining, func(c hexgrid.Coord) bool { return c != pick })
	}
	return starts, nil
}

func (e *Engine) newCharacter(gameID, playerID string, at hexgrid.Coord) (*entities.Character, error) {
	stats, err := e.roller.RollN(3, MaxStartingStat)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll character stats")
	}

	return &entities.Character{
		ID:                e.ids.Generate(entities.KindCharacter),
		GameID:            gameID,
		PlayerID:          playerID,
		Q:                 at.Q,
		R:                 at.R,
		Melee:             stats[0],
		Magic:             stats[1],
		Diplomacy:         stats[2],
		MovementPoints:    StartingMovement,
		MaxMovementPoints: StartingMovement,
	}, nil
}

func filterCoords(coords []hexgrid.Coord, keep func(hexgrid.Coord) bool) []hexgrid.Coord {
	out := coords[:0:0]
	for _, c := range coords {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
