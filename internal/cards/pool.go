// Package cards loads the card pool and draws weighted cards from it.
package cards

import (
	_ "embed"
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
)

// SupportedVersion is the pool file format this package reads
const SupportedVersion = 1

//go:embed pool.yaml
var defaultPool []byte

// Definition is one entry of the pool file
type Definition struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Type        entities.CardType `yaml:"type"`
	Description string            `yaml:"description"`
	Weight      int               `yaml:"weight"`
	Effect      definitionEffect  `yaml:"effect"`
}

type definitionEffect struct {
	StatBonus          int           `yaml:"stat_bonus"`
	AffectsStat        entities.Stat `yaml:"affects_stat"`
	BattleBonus        int           `yaml:"battle_bonus"`
	DefensiveBonus     int           `yaml:"defensive_bonus"`
	NegateTerrain      bool          `yaml:"negate_terrain"`
	AdditionalMovement int           `yaml:"additional_movement"`
	Duration           int           `yaml:"duration"`
}

type poolFile struct {
	Version int          `yaml:"version"`
	Cards   []Definition `yaml:"cards"`
}

// Pool is an immutable, validated set of card definitions
type Pool struct {
	version     int
	definitions []Definition
	totalWeight int
}

// Default returns the pool embedded in the binary
func Default() (*Pool, error) {
	return Parse(defaultPool)
}

// Parse reads a pool file
func Parse(data []byte) (*Pool, error) {
	var file poolFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse card pool")
	}

	if file.Version != SupportedVersion {
		return nil, errors.InvalidArgumentf("unsupported card pool version %d", file.Version)
	}
	if len(file.Cards) == 0 {
		return nil, errors.InvalidArgument("card pool is empty")
	}

	pool := &Pool{version: file.Version}
	seen := make(map[string]bool, len(file.Cards))
	for i, def := range file.Cards {
		vb := errors.NewValidationBuilder()
		field := fmt.Sprintf("cards[%d]", i)
		errors.ValidateRequired(field+".id", def.ID, vb)
		errors.ValidateRequired(field+".name", def.Name, vb)
		if def.Type == "" {
			vb.RequiredField(field + ".type")
		}
		if def.Weight <= 0 {
			vb.Field(field+".weight", "must be positive")
		}
		if seen[def.ID] {
			vb.InvalidField(field+".id", "duplicate "+def.ID)
		}
		if err := vb.Build(); err != nil {
			return nil, err
		}

		seen[def.ID] = true
		pool.definitions = append(pool.definitions, def)
		pool.totalWeight += def.Weight
	}

	return pool, nil
}

// Version returns the pool file version
func (p *Pool) Version() int {
	return p.version
}

// Definitions returns a copy of the definitions
func (p *Pool) Definitions() []Definition {
	out := make([]Definition, len(p.definitions))
	copy(out, p.definitions)
	return out
}

// Lookup returns the definition with the given id
func (p *Pool) Lookup(id string) (Definition, bool) {
	for _, def := range p.definitions {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// Draw picks n definitions with replacement, weighted by Weight
func (p *Pool) Draw(roller dice.Roller, n int) ([]Definition, error) {
	out := make([]Definition, 0, n)
	for i := 0; i < n; i++ {
		roll, err := roller.Roll(p.totalWeight)
		if err != nil {
			return nil, errors.Wrap(err, "failed to roll for card")
		}
		out = append(out, p.pick(roll))
	}
	return out, nil
}

// pick walks the cumulative weights for a roll in [1, totalWeight]
func (p *Pool) pick(roll int) Definition {
	cumulative := 0
	for _, def := range p.definitions {
		cumulative += def.Weight
		if roll <= cumulative {
			return def
		}
	}
	return p.definitions[len(p.definitions)-1]
}

// NewCard instantiates a definition as a card in a player's hand
func (d Definition) NewCard(id, gameID, playerID string) *entities.Card {
	return &entities.Card{
		ID:           id,
		GameID:       gameID,
		PlayerID:     playerID,
		Type:         d.Type,
		DefinitionID: d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Effect: entities.CardEffect{
			StatBonus:          d.Effect.StatBonus,
			AffectsStat:        d.Effect.AffectsStat,
			BattleBonus:        d.Effect.BattleBonus,
			DefensiveBonus:     d.Effect.DefensiveBonus,
			NegateTerrain:      d.Effect.NegateTerrain,
			AdditionalMovement: d.Effect.AdditionalMovement,
			Duration:           d.Effect.Duration,
		},
	}
}
