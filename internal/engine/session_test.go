package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/build-api/internal/engine"
	"github.com/KirkDiggler/build-api/internal/errors"
	"github.com/KirkDiggler/build-api/internal/testutils"
)

func newSampleSession(t *testing.T) *engine.Session {
	t.Helper()

	session, err := engine.NewSession(testutils.LoadSampleCatalog(t))
	require.NoError(t, err)
	return session
}

func TestNewSession_RequiresCatalog(t *testing.T) {
	_, err := engine.NewSession(nil)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestSession_StartingState(t *testing.T) {
	session := newSampleSession(t)

	assert.Equal(t, map[string]float64{"gold": 20, "favor": 0}, session.Balances())
	assert.Empty(t, session.Export())
}

func TestSession_UnknownOption(t *testing.T) {
	session := newSampleSession(t)

	_, err := session.SelectOption("dragon")
	assert.True(t, errors.IsNotFound(err))

	_, err = session.DeselectOption("dragon")
	assert.True(t, errors.IsNotFound(err))
}

func TestSession_LockedCategoryBlocksSelection(t *testing.T) {
	session := newSampleSession(t)
	knight, _ := session.Catalog().Option("knight")

	mustSelect(t, session, "noble")
	mustSelect(t, session, "sword")
	assert.True(t, session.CanSelect(knight), "the option itself is eligible")
	assert.False(t, session.Selectable(knight), "but its category is still locked")

	ok, err := session.SelectOption("knight")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, engine.ReasonCategoryLocked, session.Explain(knight)[0].Kind)
}

func TestSession_FullBuild(t *testing.T) {
	session := newSampleSession(t)

	mustSelect(t, session, "noble")
	assert.Equal(t, 30.0, session.Balance("gold"))

	ok, err := session.SelectOption("peasant")
	require.NoError(t, err)
	assert.False(t, ok, "peasant conflicts with noble")

	mustSelect(t, session, "sword")
	mustSelect(t, session, "horse")
	mustSelect(t, session, "knight")
	assert.Equal(t, 5.0, session.Balance("gold"))
	assert.Equal(t, 1.0, session.Balance("favor"))

	ok, err = session.SelectOption("potion")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = session.SelectOption("potion")
	require.NoError(t, err)
	assert.False(t, ok, "2 gold left, potion costs 3")

	assert.Equal(t, map[string]int{"noble": 1, "sword": 1, "horse": 1, "knight": 1, "potion": 1}, session.Export())
}

func TestSession_ImportReplaysAndSkipsInvalid(t *testing.T) {
	session := newSampleSession(t)
	mustSelect(t, session, "potion")

	applied := session.Import(map[string]int{
		"knight":  1,
		"horse":   1,
		"sword":   1,
		"noble":   1,
		"peasant": 1,
		"potion":  3,
		"ghost":   4,
	})

	// Document order: noble 20->30, peasant skipped, sword ->20, potions ->11, horse unaffordable
	counts := session.Export()
	assert.Equal(t, 1, counts["noble"])
	assert.Equal(t, 0, counts["peasant"], "conflicts with noble")
	assert.Equal(t, 1, counts["sword"])
	assert.Equal(t, 3, counts["potion"])
	assert.Equal(t, 0, counts["horse"], "after three potions only 11 gold remain")
	assert.Equal(t, 0, counts["knight"], "knighthood stays locked without a horse")
	assert.Equal(t, 5, applied)
	assert.Equal(t, 11.0, session.Balance("gold"))
}

func TestSession_ImportThenExportRoundTrip(t *testing.T) {
	source := newSampleSession(t)
	for _, id := range []string{"noble", "sword", "horse", "knight", "potion"} {
		mustSelect(t, source, id)
	}

	target := newSampleSession(t)
	target.Import(source.Export())

	assert.Equal(t, source.Export(), target.Export())
	assert.Equal(t, source.Balances(), target.Balances())
}

func TestSession_RestoreMatchesReplay(t *testing.T) {
	source := newSampleSession(t)
	for _, id := range []string{"noble", "sword", "horse", "potion", "potion"} {
		mustSelect(t, source, id)
	}

	restored := newSampleSession(t)
	restored.Restore(source.Export())

	assert.Equal(t, source.Export(), restored.Export())
	assert.Equal(t, source.Balances(), restored.Balances())
}

func TestSession_Reset(t *testing.T) {
	session := newSampleSession(t)
	mustSelect(t, session, "noble")

	session.Reset()

	assert.Empty(t, session.Export())
	assert.Equal(t, 20.0, session.Balance("gold"))
}

func TestSession_Snapshot(t *testing.T) {
	session := newSampleSession(t)
	mustSelect(t, session, "noble")

	state := session.Snapshot()
	require.Len(t, state.Categories, 3)

	origins := state.Categories[0]
	assert.True(t, origins.Unlocked)
	assert.Equal(t, engine.OptionState{ID: "noble", Label: "Noble", Count: 1, Cap: 1,
		Reasons: []engine.Reason{{Kind: engine.ReasonCapacity, Refs: []string{"noble"}}}}, origins.Options[0])
	assert.False(t, origins.Options[1].Selectable)

	gear := state.Categories[1]
	assert.True(t, gear.Options[0].Selectable)
	assert.Equal(t, 3, gear.Options[1].Cap)
	assert.True(t, gear.Options[2].Selectable, "horse: noble selected and 30 gold")

	knighthood := state.Categories[2]
	assert.False(t, knighthood.Unlocked)
	assert.Len(t, knighthood.Requirements, 2)
	assert.False(t, knighthood.Options[0].Selectable)

	assert.Equal(t, 30.0, state.Balances["gold"])
	assert.Equal(t, map[string]int{"noble": 1}, state.Counts)
}
