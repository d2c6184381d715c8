// Package hexes provides storage for map tiles, addressed by game and
// coordinate
package hexes

import (
	"context"

	"github.com/KirkDiggler/hexgame-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=hexesmock github.com/KirkDiggler/hexgame-api/internal/repositories/hexes Repository

// CreateBatchInput contains the generated map of a game
type CreateBatchInput struct {
	GameID string
	Hexes  []*entities.Hex
}

// CreateBatchOutput reports how many hexes were stored
type CreateBatchOutput struct {
	Count int
}

// GetInput addresses one hex
type GetInput struct {
	GameID string
	Q      int
	R      int
}

// GetOutput contains the retrieved hex
type GetOutput struct {
	Hex *entities.Hex
}

// UpdateInput contains parameters for replacing a hex
type UpdateInput struct {
	Hex *entities.Hex
}

// UpdateOutput contains the stored hex
type UpdateOutput struct {
	Hex *entities.Hex
}

// ListByGameInput contains parameters for loading a whole map
type ListByGameInput struct {
	GameID string
}

// ListByGameOutput lists hexes ordered by q then r
type ListByGameOutput struct {
	Hexes []*entities.Hex
}

// Repository defines storage operations for hexes
type Repository interface {
	CreateBatch(ctx context.Context, input CreateBatchInput) (*CreateBatchOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
	ListByGame(ctx context.Context, input ListByGameInput) (*ListByGameOutput, error)
}
