// Package build implements the build orchestrator: it loads documents,
// rehydrates a build's engine session from storage, applies one operation
// and saves the resulting selections.
package build

//go:generate mockgen -destination=mock/mock_service.go -package=buildmock github.com/KirkDiggler/build-api/internal/orchestrators/build Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/build-api/internal/document"
	entities "github.com/KirkDiggler/build-api/internal/entities/build"
	"github.com/KirkDiggler/build-api/internal/engine"
	"github.com/KirkDiggler/build-api/internal/errors"
	"github.com/KirkDiggler/build-api/internal/pkg/idgen"
	buildrepo "github.com/KirkDiggler/build-api/internal/repositories/build"
	documentrepo "github.com/KirkDiggler/build-api/internal/repositories/document"
)

// maxSaveAttempts bounds how often a change is replayed after a concurrent write
const maxSaveAttempts = 3

// Service defines the build operations
type Service interface {
	// Documents
	LoadDocument(ctx context.Context, input *LoadDocumentInput) (*LoadDocumentOutput, error)
	GetDocument(ctx context.Context, input *GetDocumentInput) (*GetDocumentOutput, error)
	ListDocuments(ctx context.Context, input *ListDocumentsInput) (*ListDocumentsOutput, error)

	// Builds
	CreateBuild(ctx context.Context, input *CreateBuildInput) (*CreateBuildOutput, error)
	GetBuild(ctx context.Context, input *GetBuildInput) (*GetBuildOutput, error)
	DeleteBuild(ctx context.Context, input *DeleteBuildInput) (*DeleteBuildOutput, error)

	// Selection
	SelectOption(ctx context.Context, input *SelectOptionInput) (*SelectOptionOutput, error)
	DeselectOption(ctx context.Context, input *DeselectOptionInput) (*DeselectOptionOutput, error)
	RollOption(ctx context.Context, input *RollOptionInput) (*RollOptionOutput, error)

	// Portability
	ExportBuild(ctx context.Context, input *ExportBuildInput) (*ExportBuildOutput, error)
	ImportBuild(ctx context.Context, input *ImportBuildInput) (*ImportBuildOutput, error)
}

// Config holds the dependencies for the build orchestrator
type Config struct {
	DocumentRepo        documentrepo.Repository
	BuildRepo           buildrepo.Repository
	DocumentIDGenerator idgen.Generator
	BuildIDGenerator    idgen.Generator
	EventBus            events.EventBus
	DiceRoller          dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DocumentRepo == nil {
		vb.RequiredField("DocumentRepo")
	}
	if c.BuildRepo == nil {
		vb.RequiredField("BuildRepo")
	}
	if c.DocumentIDGenerator == nil {
		vb.RequiredField("DocumentIDGenerator")
	}
	if c.BuildIDGenerator == nil {
		vb.RequiredField("BuildIDGenerator")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}

	return vb.Build()
}

type orchestrator struct {
	documentRepo documentrepo.Repository
	buildRepo    buildrepo.Repository
	documentIDs  idgen.Generator
	buildIDs     idgen.Generator
	eventBus     events.EventBus
	roller       dice.Roller
}

// NewOrchestrator creates a new build orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		documentRepo: cfg.DocumentRepo,
		buildRepo:    cfg.BuildRepo,
		documentIDs:  cfg.DocumentIDGenerator,
		buildIDs:     cfg.BuildIDGenerator,
		eventBus:     cfg.EventBus,
		roller:       cfg.DiceRoller,
	}, nil
}

// LoadDocument decodes, indexes and stores a document. Lint findings are
// returned as warnings; only documents the engine cannot index are rejected.
func (o *orchestrator) LoadDocument(ctx context.Context, input *LoadDocumentInput) (*LoadDocumentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Data) == 0 {
		return nil, errors.InvalidArgument("document data is required")
	}

	format := input.Format
	if format == "" {
		format = document.FormatJSON
	}

	doc, err := document.Decode(input.Data, format)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode document")
	}

	if _, err := document.NewCatalog(doc); err != nil {
		return nil, errors.Wrap(err, "failed to index document")
	}

	var warnings map[string][]string
	if lintErr := document.Lint(doc); lintErr != nil {
		warnings, _ = errors.GetMeta(lintErr)["validation_errors"].(map[string][]string)
		slog.WarnContext(ctx, "document loaded with lint warnings",
			"document_id", input.ID,
			"warnings", len(warnings))
	}

	doc.ID = input.ID
	if doc.ID == "" {
		doc.ID = o.documentIDs.Generate()
	}

	if _, err := o.documentRepo.Create(ctx, documentrepo.CreateInput{Document: doc}); err != nil {
		return nil, errors.Wrapf(err, "failed to store document %s", doc.ID)
	}

	slog.InfoContext(ctx, "loaded document",
		"document_id", doc.ID,
		"title", doc.Title,
		"categories", len(doc.Categories))

	return &LoadDocumentOutput{
		Document: doc,
		Warnings: warnings,
	}, nil
}

func (o *orchestrator) GetDocument(ctx context.Context, input *GetDocumentInput) (*GetDocumentOutput, error) {
	if input == nil || input.DocumentID == "" {
		return nil, errors.InvalidArgument("document ID is required")
	}

	out, err := o.documentRepo.Get(ctx, documentrepo.GetInput{ID: input.DocumentID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get document %s", input.DocumentID)
	}

	return &GetDocumentOutput{Document: out.Document}, nil
}

func (o *orchestrator) ListDocuments(ctx context.Context, _ *ListDocumentsInput) (*ListDocumentsOutput, error) {
	out, err := o.documentRepo.List(ctx, documentrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list documents")
	}

	return &ListDocumentsOutput{DocumentIDs: out.IDs}, nil
}

func (o *orchestrator) CreateBuild(ctx context.Context, input *CreateBuildInput) (*CreateBuildOutput, error) {
	if input == nil || input.DocumentID == "" {
		return nil, errors.InvalidArgument("document ID is required")
	}

	session, err := o.newSession(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}

	created, err := o.buildRepo.Create(ctx, buildrepo.CreateInput{
		Build: &entities.Build{
			ID:         o.buildIDs.Generate(),
			DocumentID: input.DocumentID,
			Selections: map[string]int{},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create build")
	}

	slog.InfoContext(ctx, "created build",
		"build_id", created.Build.ID,
		"document_id", input.DocumentID)

	return &CreateBuildOutput{
		Build: created.Build,
		State: session.Snapshot(),
	}, nil
}

func (o *orchestrator) GetBuild(ctx context.Context, input *GetBuildInput) (*GetBuildOutput, error) {
	if input == nil || input.BuildID == "" {
		return nil, errors.InvalidArgument("build ID is required")
	}

	b, session, err := o.loadBuild(ctx, input.BuildID)
	if err != nil {
		return nil, err
	}

	return &GetBuildOutput{
		Build: b,
		State: session.Snapshot(),
	}, nil
}

func (o *orchestrator) DeleteBuild(ctx context.Context, input *DeleteBuildInput) (*DeleteBuildOutput, error) {
	if input == nil || input.BuildID == "" {
		return nil, errors.InvalidArgument("build ID is required")
	}

	if _, err := o.buildRepo.Delete(ctx, buildrepo.DeleteInput{ID: input.BuildID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete build %s", input.BuildID)
	}

	slog.InfoContext(ctx, "deleted build", "build_id", input.BuildID)
	return &DeleteBuildOutput{}, nil
}

func (o *orchestrator) SelectOption(ctx context.Context, input *SelectOptionInput) (*SelectOptionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateOptionInput(input.BuildID, input.OptionID); err != nil {
		return nil, err
	}

	b, session, selected, err := o.mutate(ctx, input.BuildID, func(session *engine.Session) (bool, error) {
		selected, err := session.SelectOption(input.OptionID)
		if err != nil {
			return false, errors.Wrapf(err, "failed to select option %s", input.OptionID)
		}
		return selected, nil
	})
	if err != nil {
		return nil, err
	}

	option, _ := session.Catalog().Option(input.OptionID)
	output := &SelectOptionOutput{
		Selected: selected,
		Build:    b,
		State:    session.Snapshot(),
	}
	if !selected {
		output.Reasons = session.Explain(option)
		return output, nil
	}

	o.publish(ctx, EventOptionSelected, b, option)
	return output, nil
}

func (o *orchestrator) DeselectOption(ctx context.Context, input *DeselectOptionInput) (*DeselectOptionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateOptionInput(input.BuildID, input.OptionID); err != nil {
		return nil, err
	}

	b, session, deselected, err := o.mutate(ctx, input.BuildID, func(session *engine.Session) (bool, error) {
		deselected, err := session.DeselectOption(input.OptionID)
		if err != nil {
			return false, errors.Wrapf(err, "failed to deselect option %s", input.OptionID)
		}
		return deselected, nil
	})
	if err != nil {
		return nil, err
	}

	if deselected {
		option, _ := session.Catalog().Option(input.OptionID)
		o.publish(ctx, EventOptionDeselected, b, option)
	}

	return &DeselectOptionOutput{
		Deselected: deselected,
		Build:      b,
		State:      session.Snapshot(),
	}, nil
}

// RollOption selects a uniformly random option among those currently
// selectable in an unlocked category
func (o *orchestrator) RollOption(ctx context.Context, input *RollOptionInput) (*RollOptionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("build_id", input.BuildID, vb)
	errors.ValidateRequired("category", input.Category, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var picked *entities.Option
	var candidates int
	b, session, _, err := o.mutate(ctx, input.BuildID, func(session *engine.Session) (bool, error) {
		option, count, err := o.roll(session, input.Category)
		if err != nil {
			return false, err
		}
		picked, candidates = option, count

		if _, err := session.SelectOption(option.ID); err != nil {
			return false, errors.Wrapf(err, "failed to select option %s", option.ID)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	o.publish(ctx, EventOptionSelected, b, picked)

	slog.InfoContext(ctx, "rolled option",
		"build_id", b.ID,
		"category", input.Category,
		"option_id", picked.ID,
		"candidates", candidates)

	return &RollOptionOutput{
		OptionID: picked.ID,
		Build:    b,
		State:    session.Snapshot(),
	}, nil
}

// roll picks one of the selectable options of an unlocked category and
// returns it with the number of candidates it was drawn from
func (o *orchestrator) roll(session *engine.Session, name string) (*entities.Option, int, error) {
	category, ok := session.Catalog().Category(name)
	if !ok {
		return nil, 0, errors.NotFoundf("category %q not found", name).
			WithMeta("category", name)
	}
	if !session.IsUnlocked(category) {
		return nil, 0, errors.FailedPreconditionf("category %q is locked", name).
			WithMeta("category", name)
	}

	var candidates []*entities.Option
	for _, option := range category.Options {
		if option != nil && session.Selectable(option) {
			candidates = append(candidates, option)
		}
	}
	if len(candidates) == 0 {
		return nil, 0, errors.FailedPreconditionf("no selectable options in category %q", name).
			WithMeta("category", name)
	}

	roll, err := o.roller.Roll(len(candidates))
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to roll")
	}
	if roll < 1 || roll > len(candidates) {
		return nil, 0, errors.Internalf("roll %d out of range 1-%d", roll, len(candidates))
	}
	return candidates[roll-1], len(candidates), nil
}

func (o *orchestrator) ExportBuild(ctx context.Context, input *ExportBuildInput) (*ExportBuildOutput, error) {
	if input == nil || input.BuildID == "" {
		return nil, errors.InvalidArgument("build ID is required")
	}

	b, session, err := o.loadBuild(ctx, input.BuildID)
	if err != nil {
		return nil, err
	}

	return &ExportBuildOutput{
		DocumentID: b.DocumentID,
		Selections: session.Export(),
	}, nil
}

// ImportBuild resets the build and replays the given selections. Entries that
// cannot be applied are skipped and reported in the output.
func (o *orchestrator) ImportBuild(ctx context.Context, input *ImportBuildInput) (*ImportBuildOutput, error) {
	if input == nil || input.BuildID == "" {
		return nil, errors.InvalidArgument("build ID is required")
	}

	var applied int
	var skipped map[string]int
	b, session, _, err := o.mutate(ctx, input.BuildID, func(session *engine.Session) (bool, error) {
		applied = session.Import(input.Selections)

		skipped = make(map[string]int)
		for id, requested := range input.Selections {
			if missing := requested - session.Count(id); missing > 0 {
				skipped[id] = missing
			}
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	o.publish(ctx, EventBuildImported, b, nil)

	slog.InfoContext(ctx, "imported build",
		"build_id", b.ID,
		"applied", applied,
		"skipped", len(skipped))

	return &ImportBuildOutput{
		Applied: applied,
		Skipped: skipped,
		Build:   b,
		State:   session.Snapshot(),
	}, nil
}

func (o *orchestrator) newSession(ctx context.Context, documentID string) (*engine.Session, error) {
	out, err := o.documentRepo.Get(ctx, documentrepo.GetInput{ID: documentID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get document %s", documentID)
	}

	catalog, err := document.NewCatalog(out.Document)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to index document %s", documentID)
	}

	session, err := engine.NewSession(catalog)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}
	return session, nil
}

// loadBuild fetches a build and rehydrates its session from the stored counts
func (o *orchestrator) loadBuild(ctx context.Context, buildID string) (*entities.Build, *engine.Session, error) {
	out, err := o.buildRepo.Get(ctx, buildrepo.GetInput{ID: buildID})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to get build %s", buildID)
	}

	session, err := o.newSession(ctx, out.Build.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	session.Restore(out.Build.Selections)

	return out.Build, session, nil
}

// mutate loads a build, applies change to its session and saves the result
// when change reports a modification. A save that loses the race with another
// request is retried from a fresh load, so change may run more than once.
func (o *orchestrator) mutate(
	ctx context.Context,
	buildID string,
	change func(*engine.Session) (bool, error),
) (*entities.Build, *engine.Session, bool, error) {
	var lastErr error
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		b, session, err := o.loadBuild(ctx, buildID)
		if err != nil {
			return nil, nil, false, err
		}

		changed, err := change(session)
		if err != nil {
			return nil, nil, false, err
		}
		if !changed {
			return b, session, false, nil
		}

		saved, err := o.save(ctx, b, session)
		if err == nil {
			return saved, session, true, nil
		}
		if !errors.IsAborted(err) {
			return nil, nil, false, err
		}

		lastErr = err
		slog.DebugContext(ctx, "build changed while saving, retrying",
			"build_id", buildID,
			"attempt", attempt)
	}

	return nil, nil, false, errors.Wrapf(lastErr, "build %s kept changing, gave up after %d attempts",
		buildID, maxSaveAttempts)
}

func (o *orchestrator) save(ctx context.Context, b *entities.Build, session *engine.Session) (*entities.Build, error) {
	updated := *b
	updated.Selections = session.Export()

	out, err := o.buildRepo.Update(ctx, buildrepo.UpdateInput{Build: &updated})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save build %s", b.ID)
	}
	return out.Build, nil
}

func validateOptionInput(buildID, optionID string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("build_id", buildID, vb)
	errors.ValidateRequired("option_id", optionID, vb)
	return vb.Build()
}
