// Package engine holds the rules of hexgame. It works on a State loaded by
// the caller, mutates it in memory, and records every entity write in an
// ordered journal the caller flushes to storage.
package engine

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/hexgame-api/internal/cards"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
	"github.com/KirkDiggler/hexgame-api/internal/pkg/idgen"
)

// Game setup constants
const (
	MinPlayers = 2
	MaxPlayers = 8
	MinMapSize = 3
	MaxMapSize = 10

	StartingHandSize      = 4
	CardsDrawnPerTurn     = 2
	StartingMovement      = 2
	MaxStartingStat       = 10
	MaxTerrainRating      = 5
	MaxResourceYield      = 5
	MinStartingSeparation = 3
)

// Engine applies game rules to a State
type Engine struct {
	roller dice.Roller
	pool   *cards.Pool
	ids    idgen.Generator
}

// Config contains the dependencies of the engine
type Config struct {
	Roller dice.Roller
	Pool   *cards.Pool
	IDs    idgen.Generator
}

// Validate checks the config
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config is required")
	}
	if cfg.Roller == nil {
		return errors.InvalidArgument("dice roller is required")
	}
	if cfg.Pool == nil {
		return errors.InvalidArgument("card pool is required")
	}
	if cfg.IDs == nil {
		return errors.InvalidArgument("id generator is required")
	}
	return nil
}

// New creates an engine
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		roller: cfg.Roller,
		pool:   cfg.Pool,
		ids:    cfg.IDs,
	}, nil
}
