package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/hexgame-api/internal/pkg/idgen"
)

func TestSequentialGenerator(t *testing.T) {
	g := idgen.NewSequential()

	assert.Equal(t, "game_1", g.Generate("game"))
	assert.Equal(t, "player_1", g.Generate("player"))
	assert.Equal(t, "player_2", g.Generate("player"))
	assert.Equal(t, "1", g.Generate(""))
}

func TestUUIDGenerator(t *testing.T) {
	g := idgen.NewUUID()

	a := g.Generate("card")
	b := g.Generate("card")
	assert.True(t, strings.HasPrefix(a, "card_"))
	assert.NotEqual(t, a, b)
	assert.Len(t, g.Generate(""), 36)
}
