package build_test

import (
	"context"
	"sync"
	"testing"
	"time"

	dicemock "github.com/KirkDiggler/rpg-toolkit/dice/mock"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/build-api/internal/document"
	"github.com/KirkDiggler/build-api/internal/errors"
	"github.com/KirkDiggler/build-api/internal/orchestrators/build"
	"github.com/KirkDiggler/build-api/internal/pkg/clock"
	"github.com/KirkDiggler/build-api/internal/pkg/idgen"
	buildrepo "github.com/KirkDiggler/build-api/internal/repositories/build"
	documentrepo "github.com/KirkDiggler/build-api/internal/repositories/document"
	"github.com/KirkDiggler/build-api/internal/testutils"
)

func newIntegrationOrchestrator(t *testing.T) build.Service {
	t.Helper()
	return newIntegrationOrchestratorWith(t, nil)
}

// newIntegrationOrchestratorWith lets a test wrap the Redis build repository
func newIntegrationOrchestratorWith(t *testing.T, wrap func(buildrepo.Repository) buildrepo.Repository) build.Service {
	t.Helper()

	client, _ := testutils.CreateTestRedisClient(t)

	docRepo, err := documentrepo.NewRedisRepository(&documentrepo.Config{Client: client})
	require.NoError(t, err)

	buildRepo, err := buildrepo.NewRedisRepository(&buildrepo.Config{
		Client: client,
		Clock:  clock.NewFixed(time.Now()),
	})
	require.NoError(t, err)
	if wrap != nil {
		buildRepo = wrap(buildRepo)
	}

	orchestrator, err := build.NewOrchestrator(&build.Config{
		DocumentRepo:        docRepo,
		BuildRepo:           buildRepo,
		DocumentIDGenerator: idgen.NewUUID("doc"),
		BuildIDGenerator:    idgen.NewUUID("build"),
		EventBus:            events.NewBus(),
		DiceRoller:          dicemock.NewMockRoller(gomock.NewController(t)),
	})
	require.NoError(t, err)
	return orchestrator
}

func TestOrchestrator_FullBuildAgainstRedis(t *testing.T) {
	ctx := context.Background()
	orchestrator := newIntegrationOrchestrator(t)

	loaded, err := orchestrator.LoadDocument(ctx, &build.LoadDocumentInput{
		ID:     "heroic",
		Data:   []byte(testutils.SampleDocumentYAML),
		Format: document.FormatYAML,
	})
	require.NoError(t, err)
	assert.Equal(t, "heroic", loaded.Document.ID)

	listed, err := orchestrator.ListDocuments(ctx, &build.ListDocumentsInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"heroic"}, listed.DocumentIDs)

	created, err := orchestrator.CreateBuild(ctx, &build.CreateBuildInput{DocumentID: "heroic"})
	require.NoError(t, err)
	buildID := created.Build.ID

	for _, id := range []string{"noble", "sword", "horse", "knight"} {
		out, err := orchestrator.SelectOption(ctx, &build.SelectOptionInput{BuildID: buildID, OptionID: id})
		require.NoError(t, err)
		require.True(t, out.Selected, "select %s", id)
	}

	got, err := orchestrator.GetBuild(ctx, &build.GetBuildInput{BuildID: buildID})
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.State.Balances["gold"])
	assert.Equal(t, 1.0, got.State.Balances["favor"])
	assert.True(t, got.State.Categories[2].Unlocked)

	exported, err := orchestrator.ExportBuild(ctx, &build.ExportBuildInput{BuildID: buildID})
	require.NoError(t, err)

	// A second build receives the export and ends up identical
	other, err := orchestrator.CreateBuild(ctx, &build.CreateBuildInput{DocumentID: "heroic"})
	require.NoError(t, err)
	imported, err := orchestrator.ImportBuild(ctx, &build.ImportBuildInput{
		BuildID:    other.Build.ID,
		Selections: exported.Selections,
	})
	require.NoError(t, err)
	assert.Empty(t, imported.Skipped)
	assert.Equal(t, got.State.Balances, imported.State.Balances)

	// Deselecting the horse leaves the knight selected; no cascade
	deselected, err := orchestrator.DeselectOption(ctx, &build.DeselectOptionInput{BuildID: buildID, OptionID: "horse"})
	require.NoError(t, err)
	assert.True(t, deselected.Deselected)
	assert.Equal(t, 1, deselected.State.Counts["knight"])
	assert.False(t, deselected.State.Categories[2].Unlocked)

	_, err = orchestrator.DeleteBuild(ctx, &build.DeleteBuildInput{BuildID: buildID})
	require.NoError(t, err)
	_, err = orchestrator.GetBuild(ctx, &build.GetBuildInput{BuildID: buildID})
	assert.True(t, errors.IsNotFound(err))
}

// pausedBuildRepo holds the first reads of a build until every expected reader
// has one, so concurrent requests start from the same stored version
type pausedBuildRepo struct {
	buildrepo.Repository

	mu      sync.Mutex
	readers int
	arrived sync.WaitGroup
}

func newPausedBuildRepo(repo buildrepo.Repository, readers int) *pausedBuildRepo {
	r := &pausedBuildRepo{Repository: repo, readers: readers}
	r.arrived.Add(readers)
	return r
}

func (r *pausedBuildRepo) Get(ctx context.Context, input buildrepo.GetInput) (*buildrepo.GetOutput, error) {
	out, err := r.Repository.Get(ctx, input)

	r.mu.Lock()
	hold := r.readers > 0
	if hold {
		r.readers--
	}
	r.mu.Unlock()

	if hold {
		r.arrived.Done()
		r.arrived.Wait()
	}
	return out, err
}

func TestOrchestrator_ConcurrentSelectionsAreBothKept(t *testing.T) {
	ctx := context.Background()

	orchestrator := newIntegrationOrchestratorWith(t, func(repo buildrepo.Repository) buildrepo.Repository {
		return newPausedBuildRepo(repo, 2)
	})

	_, err := orchestrator.LoadDocument(ctx, &build.LoadDocumentInput{
		ID:     "heroic",
		Data:   []byte(testutils.SampleDocumentJSON),
		Format: document.FormatJSON,
	})
	require.NoError(t, err)

	created, err := orchestrator.CreateBuild(ctx, &build.CreateBuildInput{DocumentID: "heroic"})
	require.NoError(t, err)
	buildID := created.Build.ID

	options := []string{"noble", "sword"}
	results := make([]*build.SelectOptionOutput, len(options))
	errs := make([]error, len(options))

	var wg sync.WaitGroup
	for i, id := range options {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i], errs[i] = orchestrator.SelectOption(ctx, &build.SelectOptionInput{
				BuildID:  buildID,
				OptionID: id,
			})
		}(i, id)
	}
	wg.Wait()

	for i, id := range options {
		require.NoError(t, errs[i], "select %s", id)
		assert.True(t, results[i].Selected, "select %s", id)
	}

	got, err := orchestrator.GetBuild(ctx, &build.GetBuildInput{BuildID: buildID})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"noble": 1, "sword": 1}, got.Build.Selections)
	assert.Equal(t, 20.0, got.State.Balances["gold"])
	assert.Equal(t, int64(3), got.Build.Version)
}
