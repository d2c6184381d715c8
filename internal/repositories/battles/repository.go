// Package battles provides storage for battles and their resolution history
package battles

import (
	"context"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=battlesmock github.com/KirkDiggler/hexgame-api/internal/repositories/battles Repository

// CreateInput contains a new battle
type CreateInput struct {
	Battle *entities.Battle
}

// CreateOutput contains the stored battle
type CreateOutput struct {
	Battle *entities.Battle
}

// GetInput contains parameters for retrieving a battle
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved battle
type GetOutput struct {
	Battle *entities.Battle
}

// GetActiveInput contains parameters for fetching the open battle of a game
type GetActiveInput struct {
	GameID string
}

// GetActiveOutput contains the open battle. A game without one yields
// a not found error.
type GetActiveOutput struct {
	Battle *entities.Battle
}

// ListActiveInput contains parameters for listing open battles
type ListActiveInput struct {
	GameID string
}

// ListActiveOutput lists open battles ordered by id
type ListActiveOutput struct {
	Battles []*entities.Battle
}

// ListSubmittedInput contains parameters for listing battles ready to
// resolve
type ListSubmittedInput struct {
	GameID string
}

// ListSubmittedOutput lists open battles whose both sides submitted
type ListSubmittedOutput struct {
	Battles []*entities.Battle
}

// ListCompletedOnTurnInput selects battles resolved on a given turn
type ListCompletedOnTurnInput struct {
	GameID string
	Turn   int
}

// ListCompletedOnTurnOutput lists resolved battles ordered by id
type ListCompletedOnTurnOutput struct {
	Battles []*entities.Battle
}

// UpdateInput contains parameters for replacing a battle
type UpdateInput struct {
	Battle *entities.Battle
}

// UpdateOutput contains the stored battle
type UpdateOutput struct {
	Battle *entities.Battle
}

// Repository defines storage operations for battles
type Repository interface {
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	GetActive(ctx context.Context, input GetActiveInput) (*GetActiveOutput, error)
	ListActive(ctx context.Context, input ListActiveInput) (*ListActiveOutput, error)
	ListSubmitted(ctx context.Context, input ListSubmittedInput) (*ListSubmittedOutput, error)
	ListCompletedOnTurn(ctx context.Context, input ListCompletedOnTurnInput) (*ListCompletedOnTurnOutput, error)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
}
