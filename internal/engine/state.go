package engine

import (
	"sort"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/hexgrid"
)

// MutationKind names one entity write
type MutationKind string

// Mutation kinds, one per repository write
const (
	MutationCreateGame      MutationKind = "create_game"
	MutationSaveGame        MutationKind = "save_game"
	MutationCreatePlayer    MutationKind = "create_player"
	MutationSavePlayer      MutationKind = "save_player"
	MutationCreateHexes     MutationKind = "create_hexes"
	MutationSaveHex         MutationKind = "save_hex"
	MutationCreateCharacter MutationKind = "create_character"
	MutationSaveCharacter   MutationKind = "save_character"
	MutationRemoveCharacter MutationKind = "remove_character"
	MutationAddCard         MutationKind = "add_card"
	MutationSaveCard        MutationKind = "save_card"
	MutationRemoveCard      MutationKind = "remove_card"
	MutationCreateBattle    MutationKind = "create_battle"
	MutationSaveBattle      MutationKind = "save_battle"
)

// Mutation is a snapshot of one write. Only the field matching Kind is set;
// removals carry the id only.
type Mutation struct {
	Kind      MutationKind
	ID        string
	Game      *entities.Game
	Player    *entities.Player
	Hexes     []*entities.Hex
	Character *entities.Character
	Card      *entities.Card
	Battle    *entities.Battle
}

// EventKind names a domain event
type EventKind string

// Domain events raised while applying rules
const (
	EventBattleResolved   EventKind = "hexgame.battle.resolved"
	EventPlayerEliminated EventKind = "hexgame.player.eliminated"
	EventGameFinished     EventKind = "hexgame.game.finished"
	EventRoundAdvanced    EventKind = "hexgame.round.advanced"
)

// Event is a notable outcome. Subject is what the event is about; Target is
// the party it favours or belongs to and may be empty.
type Event struct {
	Kind        EventKind
	GameID      string
	Turn        int
	SubjectKind string
	SubjectID   string
	TargetKind  string
	TargetID    string
}

// State is the loaded aggregate of one game
type State struct {
	Game *entities.Game
	// Players in turn order
	Players    []*entities.Player
	Characters map[string]*entities.Character
	Hexes      map[hexgrid.Coord]*entities.Hex
	// Cards of every player of the game, keyed by id
	Cards        map[string]*entities.Card
	ActiveBattle *entities.Battle
	// RecentBattles were resolved on the previous turn
	RecentBattles []*entities.Battle

	journal []Mutation
	events  []Event
}

// NewState indexes loaded entities into an aggregate
func NewState(
	game *entities.Game,
	players []*entities.Player,
	characters []*entities.Character,
	hexes []*entities.Hex,
	cards []*entities.Card,
	activeBattle *entities.Battle,
) *State {
	s := &State{
		Game:         game,
		Players:      players,
		Characters:   make(map[string]*entities.Character, len(characters)),
		Hexes:        make(map[hexgrid.Coord]*entities.Hex, len(hexes)),
		Cards:        make(map[string]*entities.Card, len(cards)),
		ActiveBattle: activeBattle,
	}
	sort.SliceStable(s.Players, func(i, j int) bool { return s.Players[i].Index < s.Players[j].Index })
	for _, c := range characters {
		s.Characters[c.ID] = c
	}
	for _, h := range hexes {
		s.Hexes[h.Coord()] = h
	}
	for _, c := range cards {
		s.Cards[c.ID] = c
	}
	return s
}

// Journal returns the writes recorded since the state was loaded
func (s *State) Journal() []Mutation {
	return s.journal
}

// Events returns the events raised since the state was loaded
func (s *State) Events() []Event {
	return s.events
}

// Player returns the player with the id, or nil
func (s *State) Player(id string) *entities.Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ActivePlayers returns the players still in the game, in turn order
func (s *State) ActivePlayers() []*entities.Player {
	var out []*entities.Player
	for _, p := range s.Players {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

// CharactersOf returns the player's characters ordered by id
func (s *State) CharactersOf(playerID string) []*entities.Character {
	var out []*entities.Character
	for _, c := range s.Characters {
		if c.PlayerID == playerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CardsOf returns the player's cards ordered by play turn then id
func (s *State) CardsOf(playerID string) []*entities.Card {
	var out []*entities.Card
	for _, c := range s.Cards {
		if c.PlayerID == playerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayedOnTurn != out[j].PlayedOnTurn {
			return out[i].PlayedOnTurn < out[j].PlayedOnTurn
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// opponentAt returns a character on the hex not owned by the player
func (s *State) opponentAt(at hexgrid.Coord, playerID string) *entities.Character {
	var found *entities.Character
	for _, c := range s.Characters {
		if c.PlayerID == playerID || c.Coord() != at {
			continue
		}
		if found == nil || c.ID < found.ID {
			found = c
		}
	}
	return found
}

func (s *State) record(m Mutation) {
	s.journal = append(s.journal, m)
}

func (s *State) raise(kind EventKind, subjectKind, subjectID, targetKind, targetID string) {
	s.events = append(s.events, Event{
		Kind:        kind,
		GameID:      s.Game.ID,
		Turn:        s.Game.CurrentTurn,
		SubjectKind: subjectKind,
		SubjectID:   subjectID,
		TargetKind:  targetKind,
		TargetID:    targetID,
	})
}

func (s *State) saveGame() {
	s.record(Mutation{Kind: MutationSaveGame, ID: s.Game.ID, Game: s.Game.Clone()})
}

func (s *State) savePlayer(p *entities.Player) {
	s.record(Mutation{Kind: MutationSavePlayer, ID: p.ID, Player: p.Clone()})
}

func (s *State) saveHex(h *entities.Hex) {
	s.record(Mutation{Kind: MutationSaveHex, ID: h.ID, Hexes: []*entities.Hex{h.Clone()}})
}

func (s *State) saveCharacter(c *entities.Character) {
	s.record(Mutation{Kind: MutationSaveCharacter, ID: c.ID, Character: c.Clone()})
}

func (s *State) removeCharacter(id string) {
	delete(s.Characters, id)
	s.record(Mutation{Kind: MutationRemoveCharacter, ID: id})
}

func (s *State) addCard(c *entities.Card) {
	s.Cards[c.ID] = c
	s.record(Mutation{Kind: MutationAddCard, ID: c.ID, Card: c.Clone()})
}

func (s *State) saveCard(c *entities.Card) {
	s.record(Mutation{Kind: MutationSaveCard, ID: c.ID, Card: c.Clone()})
}

func (s *State) removeCard(id string) {
	delete(s.Cards, id)
	s.record(Mutation{Kind: MutationRemoveCard, ID: id})
}

func (s *State) createBattle(b *entities.Battle) {
	s.ActiveBattle = b
	s.record(Mutation{Kind: MutationCreateBattle, ID: b.ID, Battle: b.Clone()})
}

func (s *State) saveBattle(b *entities.Battle) {
	s.record(Mutation{Kind: MutationSaveBattle, ID: b.ID, Battle: b.Clone()})
}
