// Package characters provides storage for game pieces
package characters

import (
	"context"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=charactersmock github.com/KirkDiggler/hexgame-api/internal/repositories/characters Repository

// CreateInput contains parameters for creating a character
type CreateInput struct {
	Character *entities.Character
}

// CreateOutput contains the stored character
type CreateOutput struct {
	Character *entities.Character
}

// GetInput contains parameters for retrieving a character
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved character
type GetOutput struct {
	Character *entities.Character
}

// UpdateInput contains parameters for replacing a character
type UpdateInput struct {
	Character *entities.Character
}

// UpdateOutput contains the stored character
type UpdateOutput struct {
	Character *entities.Character
}

// DeleteInput contains parameters for removing a character
type DeleteInput struct {
	ID string
}

// DeleteOutput is empty; deleting a missing character is an error
type DeleteOutput struct{}

// ListByGameInput contains parameters for listing every character of a game
type ListByGameInput struct {
	GameID string
}

// ListByGameOutput lists characters ordered by id
type ListByGameOutput struct {
	Characters []*entities.Character
}

// ListByPlayerInput contains parameters for listing a player's characters
type ListByPlayerInput struct {
	PlayerID string
}

// ListByPlayerOutput lists characters ordered by id
type ListByPlayerOutput struct {
	Characters []*entities.Character
}

// Repository defines storage operations for characters
type Repository interface {
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
	ListByGame(ctx context.Context, input ListByGameInput) (*ListByGameOutput, error)
	ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error)
}
