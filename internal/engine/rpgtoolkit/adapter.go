// Package rpgtoolkit publishes engine events on an rpg-toolkit event bus.
package rpgtoolkit

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/hexgame-api/internal/engine"
	"github.com/KirkDiggler/hexgame-api/internal/errors"
)

// Context keys set on published events
const (
	ContextKeyGameID = "game_id"
	ContextKeyTurn   = "turn"
)

// Kinds lists every event the engine raises
var Kinds = []engine.EventKind{
	engine.EventBattleResolved,
	engine.EventPlayerEliminated,
	engine.EventGameFinished,
	engine.EventRoundAdvanced,
}

// Publisher forwards engine events to the bus
type Publisher struct {
	bus events.EventBus
}

// PublisherConfig contains configuration for creating a Publisher
type PublisherConfig struct {
	EventBus events.EventBus
}

// Validate checks that all required dependencies are provided
func (c *PublisherConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.EventBus == nil {
		return errors.InvalidArgument("event bus is required")
	}
	return nil
}

// NewPublisher creates a new Publisher
func NewPublisher(cfg *PublisherConfig) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Publisher{bus: cfg.EventBus}, nil
}

// Publish sends the events in order and stops at the first failing handler
func (p *Publisher) Publish(ctx context.Context, evts []engine.Event) error {
	for _, e := range evts {
		if err := p.bus.Publish(ctx, ToGameEvent(e)); err != nil {
			return errors.Wrapf(err, "failed to publish %s", e.Kind)
		}
	}
	return nil
}

// ToGameEvent converts an engine event. Game id and turn ride on the event
// context.
func ToGameEvent(e engine.Event) *events.GameEvent {
	evt := events.NewGameEvent(string(e.Kind), entityRef(e.SubjectKind, e.SubjectID), entityRef(e.TargetKind, e.TargetID))
	evt.Context().Set(ContextKeyGameID, e.GameID)
	evt.Context().Set(ContextKeyTurn, e.Turn)
	return evt
}

// SubscribeLogger logs every engine event at info level and returns the
// subscription ids
func SubscribeLogger(bus events.EventBus, logger *slog.Logger) []string {
	ids := make([]string, 0, len(Kinds))
	for _, kind := range Kinds {
		ids = append(ids, bus.SubscribeFunc(string(kind), 0, func(ctx context.Context, evt events.Event) error {
			gameID, _ := evt.Context().Get(ContextKeyGameID)
			turn, _ := evt.Context().Get(ContextKeyTurn)
			logger.InfoContext(ctx, "game event",
				"type", evt.Type(),
				"game_id", gameID,
				"turn", turn,
				"source", refID(evt.Source()),
				"target", refID(evt.Target()))
			return nil
		}))
	}
	return ids
}

func refID(e core.Entity) string {
	if e == nil {
		return ""
	}
	return e.GetType() + ":" + e.GetID()
}
