// Package players provides storage for the seats of a game
package players

import (
	"context"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=playersmock github.com/KirkDiggler/hexgame-api/internal/repositories/players Repository

// CreateInput contains parameters for creating a player
type CreateInput struct {
	Player *entities.Player
}

// CreateOutput contains the stored player
type CreateOutput struct {
	Player *entities.Player
}

// GetInput contains parameters for retrieving a player
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved player
type GetOutput struct {
	Player *entities.Player
}

// UpdateInput contains parameters for replacing a player
type UpdateInput struct {
	Player *entities.Player
}

// UpdateOutput contains the stored player
type UpdateOutput struct {
	Player *entities.Player
}

// ListByGameInput contains parameters for listing the players of a game
type ListByGameInput struct {
	GameID string
}

// ListByGameOutput lists players ordered by turn index
type ListByGameOutput struct {
	Players []*entities.Player
}

// Repository defines storage operations for players
type Repository interface {
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
	ListByGame(ctx context.Context, input ListByGameInput) (*ListByGameOutput, error)
}
