// Package games provides storage for game records
package games

import (
	"context"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=gamesmock github.com/KirkDiggler/hexgame-api/internal/repositories/games Repository

// CreateInput contains parameters for creating a game
type CreateInput struct {
	Game *entities.Game
}

// CreateOutput contains the stored game
type CreateOutput struct {
	Game *entities.Game
}

// GetInput contains parameters for retrieving a game
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved game
type GetOutput struct {
	Game *entities.Game
}

// UpdateInput contains parameters for replacing a game
type UpdateInput struct {
	Game *entities.Game
}

// UpdateOutput contains the stored game
type UpdateOutput struct {
	Game *entities.Game
}

// Repository defines storage operations for games
type Repository interface {
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
}
