// Package cards provides storage for player hands and cards in play
package cards

import (
	"context"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=cardsmock github.com/KirkDiggler/hexgame-api/internal/repositories/cards Repository

// AddInput contains a card to place in a player's hand
type AddInput struct {
	Card *entities.Card
}

// AddOutput contains the stored card
type AddOutput struct {
	Card *entities.Card
}

// GetInput contains parameters for retrieving a card
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved card
type GetOutput struct {
	Card *entities.Card
}

// UpdateInput contains parameters for replacing a card
type UpdateInput struct {
	Card *entities.Card
}

// UpdateOutput contains the stored card
type UpdateOutput struct {
	Card *entities.Card
}

// RemoveInput contains parameters for consuming a card
type RemoveInput struct {
	ID string
}

// RemoveOutput reports whether a card was actually removed
type RemoveOutput struct {
	Removed bool
}

// ListByPlayerInput contains parameters for listing a player's cards
type ListByPlayerInput struct {
	PlayerID string
}

// ListByPlayerOutput lists cards ordered by id
type ListByPlayerOutput struct {
	Cards []*entities.Card
}

// ListPendingByPlayerInput contains parameters for listing played cards
// awaiting resolution
type ListPendingByPlayerInput struct {
	PlayerID string
}

// ListPendingByPlayerOutput lists pending cards ordered by id
type ListPendingByPlayerOutput struct {
	Cards []*entities.Card
}

// Repository defines storage operations for cards
type Repository interface {
	Add(ctx context.Context, input AddInput) (*AddOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
	// Remove is idempotent; removing a missing card reports Removed=false
	Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error)
	ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error)
	ListPendingByPlayer(ctx context.Context, input ListPendingByPlayerInput) (*ListPendingByPlayerOutput, error)
}
