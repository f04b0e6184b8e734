package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/build-api/internal/engine"
)

func TestRegistry(t *testing.T) {
	registry := engine.NewRegistry()

	assert.Equal(t, 0, registry.Count("potion"))
	assert.False(t, registry.Selected("potion"))

	registry.Increment("potion")
	registry.Increment("potion")
	registry.Increment("sword")

	assert.Equal(t, 2, registry.Count("potion"))
	assert.True(t, registry.Selected("sword"))
	assert.Equal(t, []string{"potion", "sword"}, registry.IDs())

	registry.Decrement("potion")
	registry.Decrement("sword")
	assert.Equal(t, map[string]int{"potion": 1}, registry.Counts())

	registry.Decrement("sword")
	registry.Decrement("never")
	assert.Equal(t, 0, registry.Count("sword"))
	assert.Equal(t, []string{"potion"}, registry.IDs())
}

func TestRegistry_CountsIsCopy(t *testing.T) {
	registry := engine.NewRegistry()
	registry.Increment("a")

	counts := registry.Counts()
	counts["a"] = 42

	assert.Equal(t, 1, registry.Count("a"))
}
